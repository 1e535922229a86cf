package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgtype"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name              string
		total, page, size int
		want              Page
	}{
		{"first page", 25, 1, 10, Page{Number: 1, Size: 10, TotalPages: 3, Start: 0, End: 10}},
		{"last partial page", 25, 3, 10, Page{Number: 3, Size: 10, TotalPages: 3, Start: 20, End: 25}},
		{"page past end is clamped", 25, 9, 10, Page{Number: 3, Size: 10, TotalPages: 3, Start: 20, End: 25}},
		{"page zero is clamped", 25, 0, 10, Page{Number: 1, Size: 10, TotalPages: 3, Start: 0, End: 10}},
		{"no rows still has one page", 0, 1, 10, Page{Number: 1, Size: 10, TotalPages: 1, Start: 0, End: 0}},
		{"default size", 3, 1, 0, Page{Number: 1, Size: DefaultPageSize, TotalPages: 1, Start: 0, End: 3}},
		{"size capped", 1000, 1, 10000, Page{Number: 1, Size: MaxPageSize, TotalPages: 2, Start: 0, End: MaxPageSize}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Paginate(tt.total, tt.page, tt.size)); diff != "" {
				t.Errorf("Paginate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type gridRow struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Money string        `json:"money"`
	Score pgtype.Float8 `json:"score"`
	Group string        `json:"group"`
}

func gridIDs(rows []gridRow) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func TestSortRows(t *testing.T) {
	rows := []gridRow{
		{ID: "a", Name: "beta", Money: "USD 1,200", Score: pgtype.Float8{Float64: 2, Valid: true}, Group: "x"},
		{ID: "b", Name: "Alpha", Money: "USD 900", Group: "y"},
		{ID: "c", Name: "Écho", Money: "USD 50.5", Score: pgtype.Float8{Float64: 1, Valid: true}, Group: "x"},
		{ID: "d", Name: "delta", Money: "USD 900", Score: pgtype.Float8{Float64: 3, Valid: true}, Group: "y"},
	}
	value := JSONFields[gridRow]()

	tests := []struct {
		name  string
		specs []SortSpec
		want  []string
	}{
		{"no specs keeps order", nil, []string{"a", "b", "c", "d"}},
		{"text ignores case and accents", []SortSpec{{Column: "name", Dir: "asc"}}, []string{"b", "a", "d", "c"}},
		{"money strings sort by amount", []SortSpec{{Column: "money", Dir: "asc"}}, []string{"c", "b", "d", "a"}},
		{"nulls last ascending", []SortSpec{{Column: "score", Dir: "asc"}}, []string{"c", "a", "d", "b"}},
		{"nulls last descending", []SortSpec{{Column: "score", Dir: "desc"}}, []string{"d", "a", "c", "b"}},
		{"second key breaks ties", []SortSpec{{Column: "group", Dir: "asc"}, {Column: "name", Dir: "desc"}}, []string{"c", "a", "d", "b"}},
		{"stable on ties", []SortSpec{{Column: "group", Dir: "desc"}}, []string{"b", "d", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gridIDs(sortRows(rows, tt.specs, value))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("sortRows() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if rows[0].ID != "a" || rows[1].ID != "b" {
		t.Error("sortRows() modified its input")
	}
}

func TestNormalizeSort(t *testing.T) {
	known := func(c string) bool { return c != "hidden" }

	got := normalizeSort([]SortSpec{
		{Column: "hidden", Dir: "asc"},
		{Column: "name", Dir: "DESC"},
		{Column: "name", Dir: "asc"},
		{Column: "amount", Dir: "sideways"},
		{Column: "third", Dir: "asc"},
	}, known)

	want := []SortSpec{{Column: "name", Dir: "desc"}, {Column: "amount", Dir: "asc"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("normalizeSort() mismatch (-want +got):\n%s", diff)
	}
}
