package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a mistyped key may be from a suggestion.
const maxSuggestDistance = 3

// Registry holds the registered tables keyed by Info().Key.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]Table
	groups []string // Registration order of groups
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]Table)}
}

// Register adds a table. A duplicate key is an error.
func (r *Registry) Register(t Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := t.Info().Key
	if _, exists := r.tables[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTable, key)
	}

	r.tables[key] = t
	group := t.Info().Group
	if !containsString(r.groups, group) {
		r.groups = append(r.groups, group)
	}
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(t Table) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Get returns a table by key.
func (r *Registry) Get(key string) (Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tables[key]
	return t, ok
}

// Lookup is Get with an error that names the closest known key.
func (r *Registry) Lookup(key string) (Table, error) {
	if t, ok := r.Get(key); ok {
		return t, nil
	}
	if s := r.Suggest(key); s != "" {
		return nil, fmt.Errorf("%w: %q (did you mean %q?)", ErrTableNotFound, key, s)
	}
	return nil, fmt.Errorf("%w: %q", ErrTableNotFound, key)
}

// All returns every table, ordered by group registration order then key.
func (r *Registry) All() []Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rank := make(map[string]int, len(r.groups))
	for i, g := range r.groups {
		rank[g] = i
	}

	result := make([]Table, 0, len(r.tables))
	for _, t := range r.tables {
		result = append(result, t)
	}

	sort.Slice(result, func(i, j int) bool {
		gi, gj := rank[result[i].Info().Group], rank[result[j].Info().Group]
		if gi != gj {
			return gi < gj
		}
		return result[i].Info().Key < result[j].Info().Key
	})

	return result
}

// ByGroup returns the tables of one group, sorted by key.
func (r *Registry) ByGroup(group string) []Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Table
	for _, t := range r.tables {
		if t.Info().Group == group {
			result = append(result, t)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Info().Key < result[j].Info().Key
	})

	return result
}

// Groups returns group names in registration order.
func (r *Registry) Groups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.groups...)
}

// TableCount returns the number of registered tables.
func (r *Registry) TableCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tables)
}

// Suggest returns the registered key closest to key by edit distance, or ""
// when nothing is within maxSuggestDistance.
func (r *Registry) Suggest(key string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best, bestDist := "", maxSuggestDistance+1
	for k := range r.tables {
		d := levenshtein.ComputeDistance(Normalize(key), k)
		if d < bestDist || (d == bestDist && k < best) {
			best, bestDist = k, d
		}
	}
	return best
}

// Clear removes all registered tables.
// Primarily useful for testing.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables = make(map[string]Table)
	r.groups = nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Default registry used by the package-level helpers.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry { return defaultRegistry }

// Register adds a table to the default registry.
// Panics if a table with the same key is already registered.
func Register(t Table) {
	defaultRegistry.MustRegister(t)
}

// Get returns a table from the default registry.
func Get(key string) (Table, bool) {
	return defaultRegistry.Get(key)
}

// All returns every table in the default registry.
func All() []Table {
	return defaultRegistry.All()
}

// ByGroup returns the default registry's tables for a group.
func ByGroup(group string) []Table {
	return defaultRegistry.ByGroup(group)
}

// Groups returns the default registry's group names.
func Groups() []string {
	return defaultRegistry.Groups()
}

// TableCount returns the number of tables in the default registry.
func TableCount() int {
	return defaultRegistry.TableCount()
}

// Clear empties the default registry.
func Clear() {
	defaultRegistry.Clear()
}
