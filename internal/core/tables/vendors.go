package tables

import (
	"github.com/JonMunkholm/vendorboard/internal/core"
	"github.com/JonMunkholm/vendorboard/internal/schema"
)

// VendorsKey is the registry key of the vendors table.
const VendorsKey = "vendors"

// VendorCSVFields is the vendors export field order.
var VendorCSVFields = []string{
	"vendor", "category", "status", "accounts", "volumeMtd",
	"feeMtd", "feeLeakage", "slaBreaches", "alerts", "score",
}

func vendorsConfig() core.ModuleConfig[schema.Vendor] {
	return core.ModuleConfig[schema.Vendor]{
		Info: core.TableInfo{
			Key:         VendorsKey,
			Group:       GroupOverview,
			Label:       "Vendors",
			Description: "Payment providers with month-to-date volume, fees and SLA health.",
		},
		RowID: func(v schema.Vendor) string { return v.ID },
		Search: func(v schema.Vendor) []string {
			return []string{v.Vendor, v.Category, v.Status}
		},
		CSVFields: VendorCSVFields,
		Axes: []core.Axis[schema.Vendor]{
			{
				Key:     "category",
				Label:   "Category",
				Options: categoryOptions,
				Bucket:  func(v schema.Vendor) string { return CategoryBucket(v.Category) },
			},
			{
				Key:     "status",
				Label:   "Status",
				Options: vendorStatusOptions,
				Bucket:  func(v schema.Vendor) string { return VendorStatusBucket(v.Status) },
			},
		},
		Columns: []core.Column[schema.Vendor]{
			{Key: "vendor", Header: "Vendor"},
			{
				Key: "category", Header: "Category", Hideable: true,
				Tone: func(schema.Vendor) core.Tone { return core.ToneMuted },
			},
			{
				Key: "status", Header: "Status", Hideable: true,
				Tone: func(v schema.Vendor) core.Tone { return statusTone(v.Status) },
			},
			{
				Key: "accounts", Header: "Accounts", Hideable: true,
				Format: func(f *core.Formatter, v schema.Vendor) string { return f.Integer(v.Accounts) },
			},
			{
				Key: "volumeMtd", Header: "Volume (MTD)", Hideable: true,
				Format: func(f *core.Formatter, v schema.Vendor) string { return f.USD(v.VolumeMtd) },
			},
			{
				Key: "feeMtd", Header: "Fees (MTD)", Hideable: true,
				Format: func(f *core.Formatter, v schema.Vendor) string { return f.USD(v.FeeMtd) },
			},
			{
				Key: "feeLeakage", Header: "Fee Leakage", Hideable: true,
				Format: func(f *core.Formatter, v schema.Vendor) string { return f.NullableCurrency(v.FeeLeakage, "USD") },
				Tone: func(v schema.Vendor) core.Tone {
					if !v.FeeLeakage.Valid {
						return core.ToneMuted
					}
					return core.ToneNegative
				},
			},
			{
				Key: "slaBreaches", Header: "SLA Breaches", Hideable: true,
				Format: func(f *core.Formatter, v schema.Vendor) string { return f.Integer(v.SlaBreaches) },
				Tone:   func(v schema.Vendor) core.Tone { return breachesTone(v.SlaBreaches) },
			},
			{
				Key: "alerts", Header: "Alerts", Hideable: true,
				Format: func(f *core.Formatter, v schema.Vendor) string { return f.NullableInteger(v.Alerts) },
			},
			{
				Key: "score", Header: "Score", Hideable: true,
				Tone: func(v schema.Vendor) core.Tone { return scoreTone(v.Score) },
			},
		},
	}
}

// NewVendors builds the vendors table.
func NewVendors(rows []schema.Vendor) (*core.TableModule[schema.Vendor], error) {
	return core.NewTableModule(vendorsConfig(), rows)
}
