package tables

import "github.com/JonMunkholm/vendorboard/internal/core"

// Bucket values. Each categorical axis maps a row's free-text field onto one
// of these; rows that map to "" never match a specific selection.
const (
	bucketActive       = "active"
	bucketExpiringSoon = "expiring-soon"
	bucketExpired      = "expired"
	bucketPaused       = "paused"
	bucketArchived     = "archived"
	bucketDisabled     = "disabled"
	bucketOpen         = "open"
	bucketResolved     = "resolved"
)

// StatusBucket maps account and contract statuses.
func StatusBucket(status string) string {
	switch core.Normalize(status) {
	case "active":
		return bucketActive
	case "expiring soon":
		return bucketExpiringSoon
	case "inactive", "expired":
		return bucketExpired
	}
	return ""
}

// VendorStatusBucket extends StatusBucket with the vendor lifecycle states.
func VendorStatusBucket(status string) string {
	switch core.Normalize(status) {
	case "paused":
		return bucketPaused
	case "archived":
		return bucketArchived
	}
	return StatusBucket(status)
}

var vendorCategories = []string{"on-ramp", "off-ramp", "cards", "bank", "exchange", "custody"}

// CategoryBucket maps a vendor category.
func CategoryBucket(category string) string {
	return oneOf(core.Normalize(category), vendorCategories)
}

var transactionTypes = []string{"payin", "payout", "transfer", "fx"}

// TransactionTypeBucket maps a transaction type.
func TransactionTypeBucket(typ string) string {
	return oneOf(core.Normalize(typ), transactionTypes)
}

// RuleStatusBucket maps an effective alert rule state.
func RuleStatusBucket(enabled bool) string {
	if enabled {
		return bucketActive
	}
	return bucketDisabled
}

// AlertStatusBucket maps a triggered alert status.
func AlertStatusBucket(status string) string {
	return oneOf(core.Normalize(status), []string{bucketOpen, bucketResolved})
}

// SeverityBucket maps a triggered alert severity.
func SeverityBucket(severity string) string {
	return oneOf(core.Normalize(severity), []string{"low", "medium", "high"})
}

func oneOf(v string, allowed []string) string {
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return ""
}

// Shared axis options, "all" first.

var statusOptions = []core.AxisOption{
	{Value: core.AxisAll, Label: "All"},
	{Value: bucketActive, Label: "Active"},
	{Value: bucketExpiringSoon, Label: "Expiring Soon"},
	{Value: bucketExpired, Label: "Expired"},
}

var vendorStatusOptions = []core.AxisOption{
	{Value: core.AxisAll, Label: "All"},
	{Value: bucketActive, Label: "Active"},
	{Value: bucketPaused, Label: "Paused"},
	{Value: bucketArchived, Label: "Archived"},
	{Value: bucketExpiringSoon, Label: "Expiring Soon"},
	{Value: bucketExpired, Label: "Expired"},
}

var categoryOptions = []core.AxisOption{
	{Value: core.AxisAll, Label: "All"},
	{Value: "on-ramp", Label: "On-Ramp"},
	{Value: "off-ramp", Label: "Off-Ramp"},
	{Value: "cards", Label: "Cards"},
	{Value: "bank", Label: "Bank"},
	{Value: "exchange", Label: "Exchange"},
	{Value: "custody", Label: "Custody"},
}

var transactionTypeOptions = []core.AxisOption{
	{Value: core.AxisAll, Label: "All"},
	{Value: "payin", Label: "Payin"},
	{Value: "payout", Label: "Payout"},
	{Value: "transfer", Label: "Transfer"},
	{Value: "fx", Label: "FX"},
}

var ruleStatusOptions = []core.AxisOption{
	{Value: core.AxisAll, Label: "All"},
	{Value: bucketActive, Label: "Active"},
	{Value: bucketDisabled, Label: "Disabled"},
}

var alertStatusOptions = []core.AxisOption{
	{Value: core.AxisAll, Label: "All"},
	{Value: bucketOpen, Label: "Open"},
	{Value: bucketResolved, Label: "Resolved"},
}

var severityOptions = []core.AxisOption{
	{Value: core.AxisAll, Label: "All"},
	{Value: "high", Label: "High"},
	{Value: "medium", Label: "Medium"},
	{Value: "low", Label: "Low"},
}
