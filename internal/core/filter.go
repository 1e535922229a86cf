package core

import "strings"

// Predicate reports whether a row passes a categorical filter.
type Predicate[R any] func(R) bool

// SearchFields returns the raw searchable text of a row. The engine
// normalizes and joins the fields into the row's haystack.
type SearchFields[R any] func(R) []string

// Filter returns the rows that satisfy pred (nil passes every row) and whose
// haystack contains the normalized query (an empty query passes every row).
//
// The result preserves source order. With a nil predicate and an empty query
// the input slice is returned as-is.
func Filter[R any](rows []R, pred Predicate[R], query string, fields SearchFields[R]) []R {
	q := Normalize(query)
	if pred == nil && q == "" {
		return rows
	}

	out := make([]R, 0, len(rows))
	for _, row := range rows {
		// Category first: rows failing it never build a haystack.
		if pred != nil && !pred(row) {
			continue
		}
		if q != "" && (fields == nil || !strings.Contains(Haystack(fields(row)), q)) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// Matches reports whether row's haystack contains the normalized query.
func Matches[R any](row R, query string, fields SearchFields[R]) bool {
	q := Normalize(query)
	if q == "" {
		return true
	}
	if fields == nil {
		return false
	}
	return strings.Contains(Haystack(fields(row)), q)
}

// And composes predicates; nil entries are skipped. Returns nil when no
// predicate remains so Filter can take its fast path.
func And[R any](preds ...Predicate[R]) Predicate[R] {
	active := make([]Predicate[R], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}

	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}

	return func(row R) bool {
		for _, p := range active {
			if !p(row) {
				return false
			}
		}
		return true
	}
}
