package tables

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JonMunkholm/vendorboard/internal/core"
	"github.com/JonMunkholm/vendorboard/internal/fixtures"
	"github.com/JonMunkholm/vendorboard/internal/schema"
)

// =============================================================================
// Helpers
// =============================================================================

func loadSet(t *testing.T) *fixtures.Set {
	t.Helper()
	set, err := fixtures.Load(fixtures.Embedded())
	if err != nil {
		t.Fatalf("fixtures.Load() error = %v", err)
	}
	return set
}

func newRegistry(t *testing.T) *core.Registry {
	t.Helper()
	reg := core.NewRegistry()
	if err := Register(reg, loadSet(t)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return reg
}

func queryIDs(t *testing.T, tbl core.Table, q core.Query) []string {
	t.Helper()
	if q.PageSize == 0 {
		q.PageSize = core.MaxPageSize
	}
	data, err := tbl.Query(context.Background(), q, nil)
	if err != nil {
		t.Fatalf("Query(%+v) error = %v", q, err)
	}
	ids := make([]string, len(data.Rows))
	for i, r := range data.Rows {
		ids[i] = r.ID
	}
	return ids
}

func table(t *testing.T, reg *core.Registry, key string) core.Table {
	t.Helper()
	tbl, err := reg.Lookup(key)
	if err != nil {
		t.Fatalf("Lookup(%q) error = %v", key, err)
	}
	return tbl
}

// =============================================================================
// Registration
// =============================================================================

func TestRegister_AllTables(t *testing.T) {
	reg := newRegistry(t)

	if got := reg.TableCount(); got != 6 {
		t.Errorf("TableCount() = %d, want 6", got)
	}

	wantGroups := []string{GroupOverview, GroupPayments, GroupMonitoring}
	if diff := cmp.Diff(wantGroups, reg.Groups()); diff != "" {
		t.Errorf("Groups() mismatch (-want +got):\n%s", diff)
	}

	var payments []string
	for _, tbl := range reg.ByGroup(GroupPayments) {
		payments = append(payments, tbl.Info().Key)
	}
	if diff := cmp.Diff([]string{AccountsKey, ContractsKey, TransactionsKey}, payments); diff != "" {
		t.Errorf("ByGroup(Payments) mismatch (-want +got):\n%s", diff)
	}
}

func TestRegister_NilSet(t *testing.T) {
	err := Register(core.NewRegistry(), nil)
	if !errors.Is(err, core.ErrInvalidFixture) {
		t.Errorf("Register(nil) error = %v, want ErrInvalidFixture", err)
	}
}

func TestRegister_TwiceRejectsDuplicates(t *testing.T) {
	reg := core.NewRegistry()
	set := loadSet(t)
	if err := Register(reg, set); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if err := Register(reg, set); !errors.Is(err, core.ErrDuplicateTable) {
		t.Errorf("second Register() error = %v, want ErrDuplicateTable", err)
	}
}

func TestNewAlertRules_DuplicateID(t *testing.T) {
	rows := []schema.AlertRule{
		{ID: "ar-1", Name: "Fee Leakage", Status: "Active"},
		{ID: "ar-1", Name: "Fee Leakage", Status: "Disabled"},
	}
	if _, err := NewAlertRules(rows); !errors.Is(err, core.ErrDuplicateID) {
		t.Errorf("NewAlertRules() error = %v, want ErrDuplicateID", err)
	}
}

func TestNewAlertRules_SameNameDistinctIDs(t *testing.T) {
	rows := []schema.AlertRule{
		{ID: "ar-1", Name: "Fee Leakage", Status: "Active"},
		{ID: "ar-2", Name: "Fee Leakage", Status: "Disabled"},
	}
	m, err := NewAlertRules(rows)
	if err != nil {
		t.Fatalf("NewAlertRules() error = %v", err)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestNewAlertHistory_MissingTimestamp(t *testing.T) {
	rows := []schema.AlertHistoryEntry{{Title: "Payout Delay"}}
	if _, err := NewAlertHistory(rows); !errors.Is(err, core.ErrMissingID) {
		t.Errorf("NewAlertHistory() error = %v, want ErrMissingID", err)
	}
}

// =============================================================================
// Filtering
// =============================================================================

func TestContracts_StatusAndSearch(t *testing.T) {
	tbl := table(t, newRegistry(t), ContractsKey)

	tests := []struct {
		name   string
		status string
		search string
		want   []string
	}{
		{name: "active stripe", status: "active", search: "stripe", want: []string{"con-001"}},
		{name: "expired stripe", status: "expired", search: "stripe", want: []string{"con-002"}},
		{name: "expired includes inactive", status: "expired", want: []string{"con-002", "con-005", "con-008"}},
		{name: "expiring soon", status: "expiring-soon", want: []string{"con-003"}},
		{name: "diacritics ignored", status: "all", search: "nacion", want: []string{"con-006"}},
		{name: "no match", status: "active", search: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := queryIDs(t, tbl, core.Query{Search: tt.search, Axes: map[string]string{"status": tt.status}})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVendors_CategoryAndStatus(t *testing.T) {
	tbl := table(t, newRegistry(t), VendorsKey)

	got := queryIDs(t, tbl, core.Query{Axes: map[string]string{"category": "cards", "status": "active"}})
	if diff := cmp.Diff([]string{"ven-001", "ven-002"}, got); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}

	got = queryIDs(t, tbl, core.Query{Axes: map[string]string{"status": "paused"}})
	if diff := cmp.Diff([]string{"ven-003"}, got); diff != "" {
		t.Errorf("paused ids mismatch (-want +got):\n%s", diff)
	}
}

func TestTransactions_TypeAxis(t *testing.T) {
	tbl := table(t, newRegistry(t), TransactionsKey)

	got := queryIDs(t, tbl, core.Query{Axes: map[string]string{"type": "fx"}})
	if diff := cmp.Diff([]string{"txn-002", "txn-007"}, got); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestAccounts_EnvironmentAxis(t *testing.T) {
	tbl := table(t, newRegistry(t), AccountsKey)

	got := queryIDs(t, tbl, core.Query{Axes: map[string]string{"environment": "sandbox"}})
	if diff := cmp.Diff([]string{"acc-003"}, got); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestAlertHistory_SeverityAndStatus(t *testing.T) {
	tbl := table(t, newRegistry(t), AlertHistoryKey)

	got := queryIDs(t, tbl, core.Query{Axes: map[string]string{"severity": "high", "status": "open"}})
	want := []string{
		"SLA Response Time Warning::2025-01-14T05:10:00Z",
		"Payout Delay::2025-01-11T11:20:00Z",
		"Success Rate Drop::2025-01-10T07:05:00Z",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownAxisValue(t *testing.T) {
	tbl := table(t, newRegistry(t), ContractsKey)

	_, err := tbl.Query(context.Background(), core.Query{Axes: map[string]string{"status": "bogus"}}, nil)
	if !errors.Is(err, core.ErrInvalidFilter) {
		t.Errorf("Query() error = %v, want ErrInvalidFilter", err)
	}
}

// =============================================================================
// Alert rule toggle
// =============================================================================

func TestAlertRules_Toggle(t *testing.T) {
	tbl := table(t, newRegistry(t), AlertRulesKey)
	if tbl.ToggleName() != "Enabled" {
		t.Fatalf("ToggleName() = %q, want Enabled", tbl.ToggleName())
	}

	disabled := core.Query{Axes: map[string]string{"status": "disabled"}}
	got := queryIDs(t, tbl, disabled)
	if diff := cmp.Diff([]string{"ar-004", "ar-005"}, got); diff != "" {
		t.Errorf("initial disabled ids mismatch (-want +got):\n%s", diff)
	}

	disabled.Toggles = core.Toggles{"ar-001": false, "ar-004": true}
	got = queryIDs(t, tbl, disabled)
	if diff := cmp.Diff([]string{"ar-001", "ar-005"}, got); diff != "" {
		t.Errorf("toggled disabled ids mismatch (-want +got):\n%s", diff)
	}

	// Search sees the effective status.
	got = queryIDs(t, tbl, core.Query{Search: "disabled", Toggles: disabled.Toggles})
	if diff := cmp.Diff([]string{"ar-001", "ar-005"}, got); diff != "" {
		t.Errorf("search ids mismatch (-want +got):\n%s", diff)
	}
}

func TestAlertRules_ToggleDoesNotMutateSource(t *testing.T) {
	set := loadSet(t)
	m, err := NewAlertRules(set.AlertRules)
	if err != nil {
		t.Fatalf("NewAlertRules() error = %v", err)
	}

	_ = m.Rows(core.Toggles{"ar-001": false})
	if got := m.Rows(nil)[0].Status; got != "Active" {
		t.Errorf("source status = %q after overlay, want Active", got)
	}
}

// =============================================================================
// Rendering and export
// =============================================================================

func TestVendors_RenderedCells(t *testing.T) {
	tbl := table(t, newRegistry(t), VendorsKey)

	data, err := tbl.Query(context.Background(), core.Query{Search: "stripe"}, core.DefaultFormatter)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(data.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(data.Rows))
	}

	cells := map[string]core.Cell{}
	for _, c := range data.Rows[0].Cells {
		cells[c.Key] = c
	}
	if got := cells["status"].Tone; got != core.TonePositive {
		t.Errorf("status tone = %q, want %q", got, core.TonePositive)
	}
	if got := cells["volumeMtd"].Text; !strings.HasPrefix(got, "$") {
		t.Errorf("volumeMtd = %q, want USD formatted", got)
	}
}

func TestContracts_ExportQuotesCommas(t *testing.T) {
	tbl := table(t, newRegistry(t), ContractsKey)

	file, err := tbl.Export(context.Background(), core.Query{Search: "acme"}, core.ExportCSV)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	want := "contract,vendor,type,activeFrom,activeUntil,renewal,status\n" +
		`"Acme, Inc. Referral Agreement","Acme, Inc.",Referral,2021-01-01,2023-01-01,,Expired`
	if diff := cmp.Diff(want, string(file.Body)); diff != "" {
		t.Errorf("Export() body mismatch (-want +got):\n%s", diff)
	}
	if file.Filename != "contracts.csv" {
		t.Errorf("Filename = %q, want contracts.csv", file.Filename)
	}
}

func TestAlertRules_ExportEffectiveStatus(t *testing.T) {
	set := loadSet(t)
	m, err := NewAlertRules(set.AlertRules)
	if err != nil {
		t.Fatalf("NewAlertRules() error = %v", err)
	}

	q := core.Query{Search: "fx markup", Toggles: core.Toggles{"ar-001": false}}
	file, err := m.Export(context.Background(), q, core.ExportExcel)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	lines := strings.Split(string(file.Body), "\n")
	if lines[0] != "Alert Name,Status,Vendors,Condition,Channels" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "FX Markup Variance,Disabled,") {
		t.Errorf("rows = %q, want one disabled FX rule", lines[1:])
	}
	if file.Filename != "alert_rules.xls" {
		t.Errorf("Filename = %q, want alert_rules.xls", file.Filename)
	}
}

// =============================================================================
// Buckets
// =============================================================================

func TestStatusBucket(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Active", "active"},
		{" expiring soon ", "expiring-soon"},
		{"Inactive", "expired"},
		{"Expired", "expired"},
		{"Paused", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StatusBucket(tt.in); got != tt.want {
			t.Errorf("StatusBucket(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVendorStatusBucket(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Paused", "paused"},
		{"Archived", "archived"},
		{"Active", "active"},
		{"Unknown", ""},
	}
	for _, tt := range tests {
		if got := VendorStatusBucket(tt.in); got != tt.want {
			t.Errorf("VendorStatusBucket(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCategoryAndTypeBuckets(t *testing.T) {
	if got := CategoryBucket("On-Ramp"); got != "on-ramp" {
		t.Errorf("CategoryBucket(On-Ramp) = %q", got)
	}
	if got := CategoryBucket("Lending"); got != "" {
		t.Errorf("CategoryBucket(Lending) = %q, want empty", got)
	}
	if got := TransactionTypeBucket("FX"); got != "fx" {
		t.Errorf("TransactionTypeBucket(FX) = %q", got)
	}
	if got := SeverityBucket("HIGH"); got != "high" {
		t.Errorf("SeverityBucket(HIGH) = %q", got)
	}
	if got := AlertStatusBucket("Resolved"); got != "resolved" {
		t.Errorf("AlertStatusBucket(Resolved) = %q", got)
	}
}

func TestSummaryInput(t *testing.T) {
	set := loadSet(t)
	s := core.ComputeSummary(SummaryInput(set))
	if s.OpenAlerts != 6 {
		t.Errorf("OpenAlerts = %d, want 6", s.OpenAlerts)
	}
	if len(s.RecentAlerts) != core.RecentAlertLimit {
		t.Errorf("RecentAlerts = %d, want %d", len(s.RecentAlerts), core.RecentAlertLimit)
	}
}
