package tables

import (
	"github.com/JonMunkholm/vendorboard/internal/core"
	"github.com/JonMunkholm/vendorboard/internal/schema"
)

// ContractsKey is the registry key of the contracts table.
const ContractsKey = "contracts"

// ContractCSVFields is the contracts export field order.
var ContractCSVFields = []string{
	"contract", "vendor", "type", "activeFrom", "activeUntil", "renewal", "status",
}

func contractsConfig() core.ModuleConfig[schema.Contract] {
	return core.ModuleConfig[schema.Contract]{
		Info: core.TableInfo{
			Key:         ContractsKey,
			Group:       GroupPayments,
			Label:       "Contracts",
			Description: "Vendor agreements with their active window and renewal date.",
		},
		RowID: func(c schema.Contract) string { return c.ID },
		Search: func(c schema.Contract) []string {
			return []string{c.Contract, c.Vendor, c.Type, c.ActiveFrom, c.ActiveUntil, c.Renewal.String, c.Status}
		},
		CSVFields: ContractCSVFields,
		Axes: []core.Axis[schema.Contract]{{
			Key:     "status",
			Label:   "Status",
			Options: statusOptions,
			Bucket:  func(c schema.Contract) string { return StatusBucket(c.Status) },
		}},
		Columns: []core.Column[schema.Contract]{
			{Key: "contract", Header: "Contract"},
			{Key: "vendor", Header: "Vendor", Hideable: true},
			{
				Key: "type", Header: "Type", Hideable: true,
				Tone: func(schema.Contract) core.Tone { return core.ToneMuted },
			},
			{
				Key: "activeFrom", Header: "Active From", Hideable: true,
				Format: func(f *core.Formatter, c schema.Contract) string { return f.Date(c.ActiveFrom) },
			},
			{
				Key: "activeUntil", Header: "Active Until", Hideable: true,
				Format: func(f *core.Formatter, c schema.Contract) string { return f.Date(c.ActiveUntil) },
			},
			{
				Key: "renewal", Header: "Renewal", Hideable: true,
				Format: func(f *core.Formatter, c schema.Contract) string { return f.NullableDate(c.Renewal) },
			},
			{
				Key: "status", Header: "Status", Hideable: true,
				Tone: func(c schema.Contract) core.Tone { return statusTone(c.Status) },
			},
		},
	}
}

// NewContracts builds the contracts table.
func NewContracts(rows []schema.Contract) (*core.TableModule[schema.Contract], error) {
	return core.NewTableModule(contractsConfig(), rows)
}
