package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustRuleModule(t *testing.T, key, group string) Table {
	t.Helper()
	cfg := ruleConfig(false)
	cfg.Info.Key = key
	cfg.Info.Group = group
	m, err := NewTableModule(cfg, ruleRows)
	if err != nil {
		t.Fatalf("NewTableModule(%s) error = %v", key, err)
	}
	return m
}

func tableKeys(tables []Table) []string {
	keys := make([]string, len(tables))
	for i, tb := range tables {
		keys[i] = tb.Info().Key
	}
	return keys
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	for _, tc := range []struct{ key, group string }{
		{"vendors", "Overview"},
		{"transactions", "Payments"},
		{"accounts", "Payments"},
		{"alert_rules", "Monitoring"},
	} {
		if err := r.Register(mustRuleModule(t, tc.key, tc.group)); err != nil {
			t.Fatalf("Register(%s) error = %v", tc.key, err)
		}
	}

	if got := r.TableCount(); got != 4 {
		t.Errorf("TableCount() = %d, want 4", got)
	}
	if diff := cmp.Diff([]string{"Overview", "Payments", "Monitoring"}, r.Groups()); diff != "" {
		t.Errorf("Groups() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"vendors", "accounts", "transactions", "alert_rules"}, tableKeys(r.All())); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"accounts", "transactions"}, tableKeys(r.ByGroup("Payments"))); diff != "" {
		t.Errorf("ByGroup() mismatch (-want +got):\n%s", diff)
	}

	if _, ok := r.Get("vendors"); !ok {
		t.Error("Get(vendors) should succeed")
	}

	if err := r.Register(mustRuleModule(t, "vendors", "Overview")); !errors.Is(err, ErrDuplicateTable) {
		t.Errorf("Register(duplicate) error = %v, want ErrDuplicateTable", err)
	}

	r.Clear()
	if r.TableCount() != 0 || len(r.Groups()) != 0 {
		t.Error("Clear() should empty the registry")
	}
}

func TestRegistrySuggest(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(mustRuleModule(t, "vendors", "Overview"))
	r.MustRegister(mustRuleModule(t, "contracts", "Payments"))

	tests := []struct {
		input string
		want  string
	}{
		{"vendor", "vendors"},
		{"Vendorz", "vendors"},
		{"contract", "contracts"},
		{"something-else", ""},
	}

	for _, tt := range tests {
		if got := r.Suggest(tt.input); got != tt.want {
			t.Errorf("Suggest(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	_, err := r.Lookup("vendorz")
	if !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("Lookup(vendorz) error = %v, want ErrTableNotFound", err)
	}
	if !strings.Contains(err.Error(), `did you mean "vendors"`) {
		t.Errorf("Lookup() error = %q, want a suggestion", err)
	}
}

func TestDefaultRegistry(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(mustRuleModule(t, "vendors", "Overview"))
	if TableCount() != 1 {
		t.Errorf("TableCount() = %d, want 1", TableCount())
	}
	if _, ok := Get("vendors"); !ok {
		t.Error("Get(vendors) should succeed")
	}

	defer func() {
		if recover() == nil {
			t.Error("Register(duplicate) should panic")
		}
	}()
	Register(mustRuleModule(t, "vendors", "Overview"))
}
