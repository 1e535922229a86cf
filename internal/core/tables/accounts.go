package tables

import (
	"github.com/JonMunkholm/vendorboard/internal/core"
	"github.com/JonMunkholm/vendorboard/internal/schema"
)

// AccountsKey is the registry key of the accounts table.
const AccountsKey = "accounts"

// AccountCSVFields is the accounts export field order.
var AccountCSVFields = []string{
	"accountName", "accountId", "vendor", "environment", "currency",
	"balance", "pendingAmount", "transactions", "successRate", "status",
}

func accountsConfig() core.ModuleConfig[schema.Account] {
	return core.ModuleConfig[schema.Account]{
		Info: core.TableInfo{
			Key:         AccountsKey,
			Group:       GroupPayments,
			Label:       "Accounts",
			Description: "Merchant and treasury accounts held with each vendor.",
		},
		RowID: func(a schema.Account) string { return a.ID },
		Search: func(a schema.Account) []string {
			return []string{a.AccountName, a.AccountID, a.Vendor, a.Environment, a.Currency, a.Status}
		},
		CSVFields: AccountCSVFields,
		Axes: []core.Axis[schema.Account]{
			{
				Key:     "status",
				Label:   "Status",
				Options: statusOptions,
				Bucket:  func(a schema.Account) string { return StatusBucket(a.Status) },
			},
			{
				Key:   "environment",
				Label: "Environment",
				Options: []core.AxisOption{
					{Value: core.AxisAll, Label: "All"},
					{Value: "production", Label: "Production"},
					{Value: "sandbox", Label: "Sandbox"},
				},
				Bucket: func(a schema.Account) string {
					return oneOf(core.Normalize(a.Environment), []string{"production", "sandbox"})
				},
			},
		},
		Columns: []core.Column[schema.Account]{
			{Key: "accountName", Header: "Account"},
			{Key: "accountId", Header: "Account ID", Hideable: true},
			{Key: "vendor", Header: "Vendor", Hideable: true},
			{
				Key: "environment", Header: "Environment", Hideable: true,
				Tone: func(a schema.Account) core.Tone { return environmentTone(a.Environment) },
			},
			{Key: "currency", Header: "Currency", Hideable: true},
			{
				Key: "balance", Header: "Balance", Hideable: true,
				Format: func(f *core.Formatter, a schema.Account) string { return f.CurrencyFloat(a.Balance, a.Currency) },
			},
			{
				Key: "pendingAmount", Header: "Pending", Hideable: true,
				Format: func(f *core.Formatter, a schema.Account) string {
					return f.NullableCurrency(a.PendingAmount, a.Currency)
				},
			},
			{
				Key: "transactions", Header: "Transactions", Hideable: true,
				Format: func(f *core.Formatter, a schema.Account) string { return f.Integer(a.Transactions) },
			},
			{
				Key: "successRate", Header: "Success Rate", Hideable: true,
				Format: func(f *core.Formatter, a schema.Account) string { return f.Percent(a.SuccessRate) },
			},
			{
				Key: "status", Header: "Status", Hideable: true,
				Tone: func(a schema.Account) core.Tone { return statusTone(a.Status) },
			},
		},
	}
}

// NewAccounts builds the accounts table.
func NewAccounts(rows []schema.Account) (*core.TableModule[schema.Account], error) {
	return core.NewTableModule(accountsConfig(), rows)
}
