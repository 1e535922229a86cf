package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// AllVendors is the vendor scope text used by rules that watch every vendor.
const AllVendors = "All Vendors"

// AlertRule is a configured monitoring rule. ID must be set explicitly in the
// fixture; the display name is not an identity.
type AlertRule struct {
	ID        string      `json:"id"`
	Name      string      `json:"Alert Name"`
	Status    string      `json:"Status"`
	Vendors   VendorScope `json:"Vendors"`
	Condition string      `json:"Condition"`
	Channels  []string    `json:"Channels"`
}

// AlertHistoryEntry is one triggered alert.
type AlertHistoryEntry struct {
	Title       string `json:"Alert Title"`
	Description string `json:"Description"`
	Vendor      string `json:"Vendor"`
	Triggered   string `json:"Triggered"`
	Status      string `json:"Status"`
	Severity    string `json:"Severity"`
	Category    string `json:"Category"`
}

// ID returns the composite identity "<title>::<triggered>".
func (e AlertHistoryEntry) ID() string {
	if e.Title == "" || e.Triggered == "" {
		return ""
	}
	return e.Title + "::" + e.Triggered
}

// VendorScope is the set of vendors a rule applies to. Fixtures encode it
// either as a single string ("All Vendors", "Stripe") or as a list.
type VendorScope []string

// String joins the vendor names for display and search.
func (v VendorScope) String() string {
	return strings.Join(v, ", ")
}

// IsAll reports whether the scope is the "All Vendors" wildcard.
func (v VendorScope) IsAll() bool {
	return len(v) == 1 && strings.EqualFold(strings.TrimSpace(v[0]), AllVendors)
}

// UnmarshalJSON accepts a string, a list of strings, or null.
func (v *VendorScope) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = nil
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("vendor scope: %w", err)
		}
		*v = VendorScope{s}
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("vendor scope: %w", err)
	}
	*v = VendorScope(list)
	return nil
}

// MarshalJSON writes a single vendor back as a plain string.
func (v VendorScope) MarshalJSON() ([]byte, error) {
	if len(v) == 1 {
		return json.Marshal(v[0])
	}
	return json.Marshal([]string(v))
}
