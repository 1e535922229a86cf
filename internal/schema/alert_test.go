package schema

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVendorScope_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    VendorScope
		wantAll bool
	}{
		{name: "all vendors string", input: `"All Vendors"`, want: VendorScope{"All Vendors"}, wantAll: true},
		{name: "single vendor string", input: `"Stripe"`, want: VendorScope{"Stripe"}},
		{name: "vendor list", input: `["Stripe","Adyen"]`, want: VendorScope{"Stripe", "Adyen"}},
		{name: "null", input: `null`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got VendorScope
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Unmarshal(%s) mismatch (-want +got):\n%s", tt.input, diff)
			}
			if got.IsAll() != tt.wantAll {
				t.Errorf("IsAll() = %v, want %v", got.IsAll(), tt.wantAll)
			}
		})
	}
}

func TestVendorScope_RejectsNumbers(t *testing.T) {
	var got VendorScope
	if err := json.Unmarshal([]byte(`42`), &got); err == nil {
		t.Error("expected error for numeric vendor scope")
	}
}

func TestVendorScope_String(t *testing.T) {
	if got := (VendorScope{"Stripe", "Adyen"}).String(); got != "Stripe, Adyen" {
		t.Errorf("String() = %q, want %q", got, "Stripe, Adyen")
	}
}

func TestAlertHistoryEntry_ID(t *testing.T) {
	e := AlertHistoryEntry{Title: "Fee spike", Triggered: "2025-01-10T09:00:00Z"}
	if got := e.ID(); got != "Fee spike::2025-01-10T09:00:00Z" {
		t.Errorf("ID() = %q", got)
	}

	if got := (AlertHistoryEntry{Title: "Fee spike"}).ID(); got != "" {
		t.Errorf("ID() without timestamp = %q, want empty", got)
	}
}
