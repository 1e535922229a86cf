package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type filterRow struct {
	ID     string
	Name   string
	Status string
}

func filterRowFields(r filterRow) []string { return []string{r.Name, r.Status} }

func filterRowIDs(rows []filterRow) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

var filterRows = []filterRow{
	{ID: "1", Name: "Stripe", Status: "Active"},
	{ID: "2", Name: "Adyen", Status: "Expired"},
	{ID: "3", Name: "Café Pagos", Status: "Active"},
	{ID: "4", Name: "Stripe Treasury", Status: "Inactive"},
}

func isActive(r filterRow) bool { return Normalize(r.Status) == "active" }

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		pred  Predicate[filterRow]
		query string
		want  []string
	}{
		{"no filter returns all", nil, "", []string{"1", "2", "3", "4"}},
		{"whitespace query is no filter", nil, "   ", []string{"1", "2", "3", "4"}},
		{"text only", nil, "stripe", []string{"1", "4"}},
		{"text ignores case and accents", nil, "CAFE", []string{"3"}},
		{"predicate only", isActive, "", []string{"1", "3"}},
		{"predicate and text", isActive, "stripe", []string{"1"}},
		{"matches across fields", nil, "adyen expired", []string{"2"}},
		{"no match", nil, "paypal", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterRowIDs(Filter(filterRows, tt.pred, tt.query, filterRowFields))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterReturnsInputWhenUnfiltered(t *testing.T) {
	got := Filter(filterRows, nil, "", filterRowFields)
	if len(got) != len(filterRows) || &got[0] != &filterRows[0] {
		t.Error("Filter() with no predicate and empty query should return the input slice")
	}
}

// Every result is a member of the input, in input order, and every excluded
// row fails the predicate or the text test.
func TestFilterSubsequenceAndTotality(t *testing.T) {
	queries := []string{"", "a", "stripe", "active", "é", "zzz"}
	preds := map[string]Predicate[filterRow]{"nil": nil, "active": isActive}

	for pname, pred := range preds {
		for _, q := range queries {
			got := Filter(filterRows, pred, q, filterRowFields)

			next := 0
			for _, g := range got {
				for next < len(filterRows) && filterRows[next].ID != g.ID {
					next++
				}
				if next == len(filterRows) {
					t.Fatalf("pred=%s q=%q: result %q is not an ordered subsequence", pname, q, g.ID)
				}
				next++
			}

			kept := make(map[string]bool, len(got))
			for _, g := range got {
				kept[g.ID] = true
			}
			for _, r := range filterRows {
				passes := (pred == nil || pred(r)) && Matches(r, q, filterRowFields)
				if passes != kept[r.ID] {
					t.Errorf("pred=%s q=%q row %s: kept=%v, want %v", pname, q, r.ID, kept[r.ID], passes)
				}
			}
		}
	}
}

func TestAnd(t *testing.T) {
	if And[filterRow]() != nil {
		t.Error("And() with no predicates should be nil")
	}
	if And[filterRow](nil, nil) != nil {
		t.Error("And(nil, nil) should be nil")
	}

	isStripe := func(r filterRow) bool { return Matches(r, "stripe", filterRowFields) }
	both := And(isActive, nil, isStripe)

	got := filterRowIDs(Filter(filterRows, both, "", filterRowFields))
	if diff := cmp.Diff([]string{"1"}, got); diff != "" {
		t.Errorf("And() mismatch (-want +got):\n%s", diff)
	}
}
