package tables

import (
	"github.com/JonMunkholm/vendorboard/internal/core"
	"github.com/JonMunkholm/vendorboard/internal/schema"
)

// TransactionsKey is the registry key of the transactions table.
const TransactionsKey = "transactions"

// TransactionCSVFields is the transactions export field order.
var TransactionCSVFields = []string{
	"dateTime", "vendor", "type", "amountOriginal", "amountUsd",
	"feeOriginal", "feeUsd", "varianceUsd", "variancePercent",
}

func transactionsConfig() core.ModuleConfig[schema.Transaction] {
	return core.ModuleConfig[schema.Transaction]{
		Info: core.TableInfo{
			Key:         TransactionsKey,
			Group:       GroupPayments,
			Label:       "Transactions",
			Description: "Recent payments with original and USD amounts and fee variance.",
		},
		RowID: func(t schema.Transaction) string { return t.ID },
		Search: func(t schema.Transaction) []string {
			return []string{t.Vendor, t.Type, t.AmountOriginal, t.FeeOriginal}
		},
		CSVFields: TransactionCSVFields,
		Axes: []core.Axis[schema.Transaction]{{
			Key:     "type",
			Label:   "Type",
			Options: transactionTypeOptions,
			Bucket:  func(t schema.Transaction) string { return TransactionTypeBucket(t.Type) },
		}},
		Columns: []core.Column[schema.Transaction]{
			{
				Key: "dateTime", Header: "Date",
				Format: func(f *core.Formatter, t schema.Transaction) string { return f.DateTime(t.DateTime) },
			},
			{Key: "vendor", Header: "Vendor", Hideable: true},
			{
				Key: "type", Header: "Type", Hideable: true,
				Tone: func(schema.Transaction) core.Tone { return core.ToneMuted },
			},
			{
				Key: "amountOriginal", Header: "Amount", Hideable: true,
				Format: func(f *core.Formatter, t schema.Transaction) string { return f.MoneyString(t.AmountOriginal) },
			},
			{
				Key: "amountUsd", Header: "Amount (USD)", Hideable: true,
				Format: func(f *core.Formatter, t schema.Transaction) string { return f.USD(t.AmountUsd) },
			},
			{
				Key: "feeOriginal", Header: "Fee", Hideable: true,
				Format: func(f *core.Formatter, t schema.Transaction) string { return f.MoneyString(t.FeeOriginal) },
			},
			{
				Key: "feeUsd", Header: "Fee (USD)", Hideable: true,
				Format: func(f *core.Formatter, t schema.Transaction) string { return f.USD(t.FeeUsd) },
			},
			{
				Key: "varianceUsd", Header: "Variance (USD)", Hideable: true,
				Format: func(f *core.Formatter, t schema.Transaction) string { return f.NullableCurrency(t.VarianceUsd, "USD") },
				Tone:   func(t schema.Transaction) core.Tone { return varianceTone(t.VarianceUsd.Valid) },
			},
			{
				Key: "variancePercent", Header: "Variance %", Hideable: true,
				Format: func(f *core.Formatter, t schema.Transaction) string { return f.Percent(t.VariancePercent) },
				Tone:   func(t schema.Transaction) core.Tone { return varianceTone(t.VariancePercent.Valid) },
			},
		},
	}
}

func varianceTone(present bool) core.Tone {
	if !present {
		return core.ToneMuted
	}
	return core.ToneNegative
}

// NewTransactions builds the transactions table.
func NewTransactions(rows []schema.Transaction) (*core.TableModule[schema.Transaction], error) {
	return core.NewTableModule(transactionsConfig(), rows)
}
