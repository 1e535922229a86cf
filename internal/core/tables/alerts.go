package tables

import (
	"strings"

	"github.com/JonMunkholm/vendorboard/internal/core"
	"github.com/JonMunkholm/vendorboard/internal/schema"
)

// Registry keys of the two alert tables.
const (
	AlertRulesKey   = "alert_rules"
	AlertHistoryKey = "alert_history"
)

// AlertRuleCSVFields is the alert rules export field order.
var AlertRuleCSVFields = []string{"Alert Name", "Status", "Vendors", "Condition", "Channels"}

// AlertHistoryCSVFields is the alert history export field order.
var AlertHistoryCSVFields = []string{
	"Alert Title", "Vendor", "Category", "Severity", "Status", "Triggered", "Description",
}

// Effective rule status text written by the Enabled toggle.
const (
	ruleStatusActive   = "Active"
	ruleStatusDisabled = "Disabled"
)

func ruleEnabled(r schema.AlertRule) bool {
	return core.Normalize(r.Status) == bucketActive
}

var ruleToggle = core.Toggle[schema.AlertRule]{
	Name:    "Enabled",
	Initial: ruleEnabled,
	Apply: func(r schema.AlertRule, enabled bool) schema.AlertRule {
		if enabled {
			r.Status = ruleStatusActive
		} else {
			r.Status = ruleStatusDisabled
		}
		return r
	},
}

func alertRulesConfig() core.ModuleConfig[schema.AlertRule] {
	toggle := ruleToggle
	return core.ModuleConfig[schema.AlertRule]{
		Info: core.TableInfo{
			Key:         AlertRulesKey,
			Group:       GroupMonitoring,
			Label:       "Alert Rules",
			Description: "Monitoring rules and the channels they notify.",
		},
		RowID: func(r schema.AlertRule) string { return r.ID },
		Search: func(r schema.AlertRule) []string {
			return []string{r.Name, r.Status, r.Vendors.String(), r.Condition, strings.Join(r.Channels, " ")}
		},
		CSVFields: AlertRuleCSVFields,
		Axes: []core.Axis[schema.AlertRule]{{
			Key:     "status",
			Label:   "Status",
			Options: ruleStatusOptions,
			Bucket:  func(r schema.AlertRule) string { return RuleStatusBucket(ruleEnabled(r)) },
		}},
		Columns: []core.Column[schema.AlertRule]{
			{Key: "Alert Name", Header: "Alert Name"},
			{
				Key: "Status", Header: "Status", Hideable: true,
				Tone: func(r schema.AlertRule) core.Tone {
					if ruleEnabled(r) {
						return core.TonePositive
					}
					return core.ToneMuted
				},
			},
			{
				Key: "Vendors", Header: "Vendors", Hideable: true,
				Format: func(_ *core.Formatter, r schema.AlertRule) string { return r.Vendors.String() },
				Value:  func(r schema.AlertRule) any { return r.Vendors.String() },
			},
			{Key: "Condition", Header: "Condition", Hideable: true},
			{
				Key: "Channels", Header: "Channels", Hideable: true,
				Format: func(_ *core.Formatter, r schema.AlertRule) string { return strings.Join(r.Channels, ", ") },
				Value:  func(r schema.AlertRule) any { return strings.Join(r.Channels, ",") },
			},
		},
		Toggle: &toggle,
	}
}

func alertHistoryConfig() core.ModuleConfig[schema.AlertHistoryEntry] {
	return core.ModuleConfig[schema.AlertHistoryEntry]{
		Info: core.TableInfo{
			Key:         AlertHistoryKey,
			Group:       GroupMonitoring,
			Label:       "Alert History",
			Description: "Alerts triggered by the monitoring rules.",
		},
		RowID: schema.AlertHistoryEntry.ID,
		Search: func(e schema.AlertHistoryEntry) []string {
			return []string{e.Title, e.Description, e.Vendor, e.Triggered, e.Status, e.Severity, e.Category}
		},
		CSVFields: AlertHistoryCSVFields,
		Axes: []core.Axis[schema.AlertHistoryEntry]{
			{
				Key:     "status",
				Label:   "Status",
				Options: alertStatusOptions,
				Bucket:  func(e schema.AlertHistoryEntry) string { return AlertStatusBucket(e.Status) },
			},
			{
				Key:     "severity",
				Label:   "Severity",
				Options: severityOptions,
				Bucket:  func(e schema.AlertHistoryEntry) string { return SeverityBucket(e.Severity) },
			},
		},
		Columns: []core.Column[schema.AlertHistoryEntry]{
			{Key: "Alert Title", Header: "Alert Title"},
			{Key: "Vendor", Header: "Vendor", Hideable: true},
			{
				Key: "Category", Header: "Category", Hideable: true,
				Tone: func(schema.AlertHistoryEntry) core.Tone { return core.ToneMuted },
			},
			{
				Key: "Severity", Header: "Severity", Hideable: true,
				Tone: func(e schema.AlertHistoryEntry) core.Tone { return severityTone(e.Severity) },
				Value: func(e schema.AlertHistoryEntry) any {
					return int64(severityRank(e.Severity))
				},
			},
			{
				Key: "Status", Header: "Status", Hideable: true,
				Tone: func(e schema.AlertHistoryEntry) core.Tone { return alertStatusTone(e.Status) },
			},
			{
				Key: "Triggered", Header: "Triggered", Hideable: true,
				Format: func(f *core.Formatter, e schema.AlertHistoryEntry) string { return f.DateTime(e.Triggered) },
				Tone:   func(schema.AlertHistoryEntry) core.Tone { return core.ToneMuted },
			},
			{Key: "Description", Header: "Description", Hideable: true},
		},
	}
}

// severityRank orders severities low to high; unknown values sort first.
func severityRank(s string) int {
	switch SeverityBucket(s) {
	case "low":
		return 1
	case "medium":
		return 2
	case "high":
		return 3
	}
	return 0
}

// NewAlertRules builds the alert rules table with its Enabled toggle.
func NewAlertRules(rows []schema.AlertRule) (*core.TableModule[schema.AlertRule], error) {
	return core.NewTableModule(alertRulesConfig(), rows)
}

// NewAlertHistory builds the alert history table. Rows are keyed by
// title and trigger time.
func NewAlertHistory(rows []schema.AlertHistoryEntry) (*core.TableModule[schema.AlertHistoryEntry], error) {
	return core.NewTableModule(alertHistoryConfig(), rows)
}
