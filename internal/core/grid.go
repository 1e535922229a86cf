package core

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// DefaultPageSize is used when a query leaves PageSize unset.
const DefaultPageSize = 10

// MaxPageSize caps client-requested page sizes.
const MaxPageSize = 500

// sortValue is a comparable projection of a raw field value.
type sortValue struct {
	null    bool
	numeric bool
	num     float64
	text    string
}

func toSortValue(v any) sortValue {
	switch val := v.(type) {
	case nil:
		return sortValue{null: true}
	case pgtype.Float8:
		if !val.Valid {
			return sortValue{null: true}
		}
		return sortValue{numeric: true, num: val.Float64}
	case pgtype.Int8:
		if !val.Valid {
			return sortValue{null: true}
		}
		return sortValue{numeric: true, num: float64(val.Int64)}
	case pgtype.Text:
		if !val.Valid {
			return sortValue{null: true}
		}
		return textSortValue(val.String)
	case float64:
		if math.IsNaN(val) {
			return sortValue{null: true}
		}
		return sortValue{numeric: true, num: val}
	case int64:
		return sortValue{numeric: true, num: float64(val)}
	case int:
		return sortValue{numeric: true, num: float64(val)}
	case bool:
		if val {
			return sortValue{numeric: true, num: 1}
		}
		return sortValue{numeric: true}
	case string:
		return textSortValue(val)
	default:
		return textSortValue(CellToText(val))
	}
}

// textSortValue treats plain numbers and money strings as numbers so
// "USD 900" sorts before "USD 1,200".
func textSortValue(s string) sortValue {
	if strings.TrimSpace(s) == "" {
		return sortValue{null: true}
	}
	if m, ok := ParseMoneyString(s); ok {
		return sortValue{numeric: true, num: m.Amount.InexactFloat64()}
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return sortValue{numeric: true, num: f}
	}
	return sortValue{text: Normalize(s)}
}

// compareSortValues orders numbers before text. Nulls are handled by the caller.
func compareSortValues(a, b sortValue) int {
	switch {
	case a.numeric && b.numeric:
		return cmp.Compare(a.num, b.num)
	case a.numeric:
		return -1
	case b.numeric:
		return 1
	}
	return strings.Compare(a.text, b.text)
}

// normalizeSort drops unknown columns, lower-cases directions and keeps at
// most MaxSortKeys entries.
func normalizeSort(specs []SortSpec, known func(string) bool) []SortSpec {
	out := make([]SortSpec, 0, MaxSortKeys)
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if len(out) == MaxSortKeys {
			break
		}
		if s.Column == "" || seen[s.Column] || !known(s.Column) {
			continue
		}
		seen[s.Column] = true
		dir := "asc"
		if strings.EqualFold(s.Dir, "desc") {
			dir = "desc"
		}
		out = append(out, SortSpec{Column: s.Column, Dir: dir})
	}
	return out
}

// sortRows returns a stably sorted copy of rows. Nulls sort last in both
// directions. The input slice is not modified.
func sortRows[R any](rows []R, specs []SortSpec, value FieldValue[R]) []R {
	if len(specs) == 0 || len(rows) < 2 {
		return rows
	}

	type keyed struct {
		row  R
		keys []sortValue
	}
	items := make([]keyed, len(rows))
	for i, row := range rows {
		keys := make([]sortValue, len(specs))
		for j, s := range specs {
			v, _ := value(row, s.Column)
			keys[j] = toSortValue(v)
		}
		items[i] = keyed{row: row, keys: keys}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		for j, s := range specs {
			ka, kb := a.keys[j], b.keys[j]
			switch {
			case ka.null && kb.null:
				continue
			case ka.null:
				return 1
			case kb.null:
				return -1
			}
			c := compareSortValues(ka, kb)
			if s.Dir == "desc" {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})

	out := make([]R, len(items))
	for i, it := range items {
		out[i] = it.row
	}
	return out
}

// Page is a resolved pagination window.
type Page struct {
	Number     int // 1-based, clamped into range
	Size       int
	TotalPages int // Always at least 1
	Start, End int // Half-open slice bounds
}

// Paginate resolves a page window over total rows.
func Paginate(total, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	page = min(max(page, 1), pages)

	start := min((page-1)*size, total)
	end := min(start+size, total)

	return Page{Number: page, Size: size, TotalPages: pages, Start: start, End: end}
}
