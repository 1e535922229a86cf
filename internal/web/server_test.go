package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/JonMunkholm/vendorboard/internal/core"
	"github.com/JonMunkholm/vendorboard/internal/core/tables"
	"github.com/JonMunkholm/vendorboard/internal/fixtures"
)

// =============================================================================
// Helpers
// =============================================================================

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()

	set, err := fixtures.Load(fixtures.Embedded())
	if err != nil {
		t.Fatalf("fixtures.Load() error = %v", err)
	}
	reg := core.NewRegistry()
	if err := tables.Register(reg, set); err != nil {
		t.Fatalf("tables.Register() error = %v", err)
	}
	svc := core.NewService(reg, core.ComputeSummary(tables.SummaryInput(set)), core.ServiceOptions{PageSize: 50})

	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC) }
	}
	s := NewServer(svc, opts)
	t.Cleanup(func() { _ = s.Shutdown(t.Context()) })
	return s
}

func do(s *Server, method, target string, body url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func rowIDs(data core.TableData) []string {
	ids := make([]string, len(data.Rows))
	for i, r := range data.Rows {
		ids[i] = r.ID
	}
	return ids
}

// =============================================================================
// API
// =============================================================================

func TestListTables(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(s, http.MethodGet, "/api/tables", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	groups := decode[[]TableGroupResponse](t, rec)
	var names []string
	for _, g := range groups {
		names = append(names, g.Name)
	}
	want := []string{tables.GroupOverview, tables.GroupPayments, tables.GroupMonitoring}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestTableData(t *testing.T) {
	s := newTestServer(t, Options{})

	tests := []struct {
		name     string
		target   string
		wantCode int
		wantIDs  []string
		wantErr  string
	}{
		{
			name:     "status and search",
			target:   "/api/table/contracts?status=expired&search=stripe",
			wantCode: http.StatusOK,
			wantIDs:  []string{"con-002"},
		},
		{
			name:     "sorted descending",
			target:   "/api/table/transactions?type=fx&sort=amountUsd&dir=desc",
			wantCode: http.StatusOK,
		},
		{
			name:     "unknown table",
			target:   "/api/table/vendorz",
			wantCode: http.StatusNotFound,
			wantErr:  "TBL001",
		},
		{
			name:     "unknown axis value",
			target:   "/api/table/contracts?status=bogus",
			wantCode: http.StatusBadRequest,
			wantErr:  "FLT001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodGet, tt.target, nil)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantErr != "" {
				if got := decode[ErrorResponse](t, rec).Code; got != tt.wantErr {
					t.Errorf("code = %q, want %q", got, tt.wantErr)
				}
				return
			}
			data := decode[core.TableData](t, rec)
			if tt.wantIDs != nil {
				if diff := cmp.Diff(tt.wantIDs, rowIDs(data)); diff != "" {
					t.Errorf("ids mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestExport(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(s, http.MethodGet, "/api/export/contracts?search=acme&sort=vendor&page=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="contracts.csv"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != core.ExportCSV.MIMEType {
		t.Errorf("Content-Type = %q", got)
	}
	want := "contract,vendor,type,activeFrom,activeUntil,renewal,status\n" +
		`"Acme, Inc. Referral Agreement","Acme, Inc.",Referral,2021-01-01,2023-01-01,,Expired`
	if diff := cmp.Diff(want, rec.Body.String()); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}

	rec = do(s, http.MethodGet, "/api/export/vendors?format=excel", nil)
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="vendors.xls"` {
		t.Errorf("excel Content-Disposition = %q", got)
	}

	rec = do(s, http.MethodGet, "/api/export/vendors?format=pdf", nil)
	if rec.Code != http.StatusBadRequest || decode[ErrorResponse](t, rec).Code != "EXP001" {
		t.Errorf("pdf export = %d %s, want 400 EXP001", rec.Code, rec.Body.String())
	}
}

// =============================================================================
// View state
// =============================================================================

func TestToggle_ScopedToView(t *testing.T) {
	s := newTestServer(t, Options{})

	first := do(s, http.MethodGet, "/api/table/alert_rules", nil)
	view := cookieNamed(first, viewCookie)
	if view == nil {
		t.Fatal("no view cookie issued")
	}

	rec := do(s, http.MethodPost, "/api/toggle/alert_rules/ar-001", url.Values{"enabled": {"false"}}, view)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[ToggleResponse](t, rec); got.Enabled || got.RowID != "ar-001" {
		t.Errorf("toggle response = %+v", got)
	}

	rec = do(s, http.MethodGet, "/api/table/alert_rules?status=disabled", nil, view)
	if diff := cmp.Diff([]string{"ar-001", "ar-004", "ar-005"}, rowIDs(decode[core.TableData](t, rec))); diff != "" {
		t.Errorf("own view mismatch (-want +got):\n%s", diff)
	}

	rec = do(s, http.MethodGet, "/api/table/alert_rules?status=disabled", nil)
	if diff := cmp.Diff([]string{"ar-004", "ar-005"}, rowIDs(decode[core.TableData](t, rec))); diff != "" {
		t.Errorf("fresh view mismatch (-want +got):\n%s", diff)
	}

	rec = do(s, http.MethodPost, "/api/view/reset", url.Values{}, view)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("reset status = %d", rec.Code)
	}
	rec = do(s, http.MethodGet, "/api/table/alert_rules?status=disabled", nil, view)
	if diff := cmp.Diff([]string{"ar-004", "ar-005"}, rowIDs(decode[core.TableData](t, rec))); diff != "" {
		t.Errorf("after reset mismatch (-want +got):\n%s", diff)
	}
}

func TestToggle_Errors(t *testing.T) {
	s := newTestServer(t, Options{})

	tests := []struct {
		name     string
		target   string
		enabled  string
		wantCode int
		wantErr  string
	}{
		{"no toggle column", "/api/toggle/vendors/ven-001", "true", http.StatusBadRequest, "VIEW001"},
		{"unknown row", "/api/toggle/alert_rules/ar-999", "true", http.StatusNotFound, "VIEW002"},
		{"unknown table", "/api/toggle/rules/ar-001", "true", http.StatusNotFound, "TBL001"},
		{"bad boolean", "/api/toggle/alert_rules/ar-001", "maybe", http.StatusBadRequest, "FLT001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodPost, tt.target, url.Values{"enabled": {tt.enabled}})
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if got := decode[ErrorResponse](t, rec).Code; got != tt.wantErr {
				t.Errorf("code = %q, want %q", got, tt.wantErr)
			}
		})
	}
}

func TestToggle_EscapedRowID(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(s, http.MethodPost, "/api/toggle/alert_rules/ar%2D001", url.Values{"enabled": {"false"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[ToggleResponse](t, rec).RowID; got != "ar-001" {
		t.Errorf("RowID = %q, want ar-001", got)
	}

	// A literal percent sign in an id is decoded once, not twice.
	rec = do(s, http.MethodPost, "/api/toggle/alert_rules/ar%252D001", url.Values{"enabled": {"false"}})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func TestToggle_FormRedirect(t *testing.T) {
	s := newTestServer(t, Options{})

	form := url.Values{"enabled": {"true"}, "return": {"/table/alert_rules?status=all"}}
	rec := do(s, http.MethodPost, "/api/toggle/alert_rules/ar-004", form)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/table/alert_rules?status=all" {
		t.Errorf("Location = %q", got)
	}

	form.Set("return", "https://evil.example/")
	rec = do(s, http.MethodPost, "/api/toggle/alert_rules/ar-004", form)
	if got := rec.Header().Get("Location"); got != "/table/alert_rules" {
		t.Errorf("Location for external return = %q, want /table/alert_rules", got)
	}
}

// =============================================================================
// Pages
// =============================================================================

func TestDashboardPage(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(s, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"<h1>Dashboard</h1>", "Open alerts", "SLA Response Time Warning", `data-theme="light"`} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("security headers not set")
	}
}

func TestDashboardPreviewTabs(t *testing.T) {
	s := newTestServer(t, Options{})

	tests := []struct {
		name      string
		target    string
		wantTab   string
		wantLink  string
		wantCells []string
	}{
		{
			name:      "default tab",
			target:    "/",
			wantTab:   `href="/?tab=alert_rules" role="tab" class="active" aria-selected="true">Alert Rules</a>`,
			wantLink:  "View all Alert Rules",
			wantCells: []string{"FX Markup Variance", "6 of 6 rows"},
		},
		{
			name:      "vendors",
			target:    "/?tab=vendors",
			wantTab:   `href="/?tab=vendors" role="tab" class="active" aria-selected="true">Vendors</a>`,
			wantLink:  "View all Vendors",
			wantCells: []string{"Circle", "9 of 9 rows"},
		},
		{
			name:     "unknown tab falls back",
			target:   "/?tab=nope",
			wantTab:  `href="/?tab=alert_rules" role="tab" class="active" aria-selected="true">Alert Rules</a>`,
			wantLink: "View all Alert Rules",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodGet, tt.target, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			body := rec.Body.String()
			for _, want := range append([]string{tt.wantTab, tt.wantLink}, tt.wantCells...) {
				if !strings.Contains(body, want) {
					t.Errorf("dashboard missing %q", want)
				}
			}
			if got := strings.Count(body, `aria-selected="true"`); got != 1 {
				t.Errorf("active tabs = %d, want 1", got)
			}
		})
	}
}

func TestDashboardPreviewSkipsUnknownTables(t *testing.T) {
	s := newTestServer(t, Options{PreviewTables: []string{"nope", "contracts"}})

	rec := do(s, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "View all Contracts") {
		t.Error("first registered table should be the active tab")
	}
	if strings.Contains(body, "?tab=nope") {
		t.Error("unregistered table rendered as a tab")
	}
}

func TestTablePage(t *testing.T) {
	s := newTestServer(t, Options{})
	dark := &http.Cookie{Name: themeCookie, Value: "dark"}

	rec := do(s, http.MethodGet, "/table/contracts?search=acme&hide=type", nil, dark)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{`data-theme="dark"`, "Acme, Inc. Referral Agreement", "1 of 8 rows"} {
		if !strings.Contains(body, want) {
			t.Errorf("table page missing %q", want)
		}
	}
	if strings.Contains(body, "<td>Referral</td>") || strings.Contains(body, ">Referral</span>") {
		t.Error("hidden column was rendered")
	}

	rec = do(s, http.MethodGet, "/table/contracts?search=zzz", nil)
	if !strings.Contains(rec.Body.String(), "No results.") {
		t.Error("empty table missing placeholder row")
	}

	rec = do(s, http.MethodGet, "/table/nope", nil)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "TBL001") {
		t.Errorf("unknown table page = %d %q", rec.Code, rec.Body.String())
	}
}

func TestTheme(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(s, http.MethodPost, "/theme", url.Values{"return": {"/table/vendors"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	c := cookieNamed(rec, themeCookie)
	if c == nil || c.Value != "dark" {
		t.Fatalf("theme cookie = %+v, want dark", c)
	}
	if got := rec.Header().Get("Location"); got != "/table/vendors" {
		t.Errorf("Location = %q", got)
	}

	rec = do(s, http.MethodPost, "/theme", url.Values{}, c)
	if c := cookieNamed(rec, themeCookie); c == nil || c.Value != "light" {
		t.Errorf("second toggle cookie = %+v, want light", c)
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Options{RateLimitEnabled: true, RequestsPerMinute: 2})

	for i := 0; i < 2; i++ {
		if rec := do(s, http.MethodGet, "/api/tables", nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i+1, rec.Code)
		}
	}
	rec := do(s, http.MethodGet, "/api/tables", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := decode[ErrorResponse](t, rec).Code; got != "RATE001" {
		t.Errorf("code = %q, want RATE001", got)
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     1,
		window:   time.Minute,
		now:      func() time.Time { return now },
		done:     make(chan struct{}),
	}

	if !rl.allow("1.1.1.1") || rl.allow("1.1.1.1") {
		t.Fatal("expected one request per window")
	}
	if !rl.allow("2.2.2.2") {
		t.Error("limits must be per client")
	}

	now = now.Add(61 * time.Second)
	if !rl.allow("1.1.1.1") {
		t.Error("window did not reset")
	}

	now = now.Add(5 * time.Minute)
	if removed := rl.cleanup(); removed != 2 {
		t.Errorf("cleanup() removed %d, want 2", removed)
	}
}
