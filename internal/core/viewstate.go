package core

import (
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ViewStore holds transient per-view toggle state: view id -> table key ->
// row id -> enabled. Nothing here is persisted; a restart starts every view
// from the fixture state again.
type ViewStore struct {
	mu    sync.RWMutex
	views map[string]*viewState
	now   func() time.Time
}

type viewState struct {
	tables   map[string]Toggles
	lastSeen time.Time
}

// NewViewStore returns an empty store.
func NewViewStore() *ViewStore {
	return &ViewStore{
		views: make(map[string]*viewState),
		now:   time.Now,
	}
}

// NewViewID returns a fresh random view identifier.
func NewViewID() string {
	return uuid.NewString()
}

// ValidViewID reports whether id looks like a view id issued by NewViewID.
func ValidViewID(id string) bool {
	return uuid.Validate(id) == nil
}

// Toggles returns a copy of the view's overrides for a table.
// Unknown views and tables yield an empty map.
func (s *ViewStore) Toggles(viewID, table string) Toggles {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.views[viewID]
	if !ok {
		return Toggles{}
	}
	out := make(Toggles, len(v.tables[table]))
	maps.Copy(out, v.tables[table])
	return out
}

// SetToggle records an override for one row.
func (s *ViewStore) SetToggle(viewID, table, rowID string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.views[viewID]
	if !ok {
		v = &viewState{tables: make(map[string]Toggles)}
		s.views[viewID] = v
	}
	if v.tables[table] == nil {
		v.tables[table] = make(Toggles)
	}
	v.tables[table][rowID] = enabled
	v.lastSeen = s.now()
}

// Touch marks a view as recently used.
func (s *ViewStore) Touch(viewID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.views[viewID]; ok {
		v.lastSeen = s.now()
	}
}

// Reset drops all overrides of a view.
func (s *ViewStore) Reset(viewID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.views, viewID)
}

// Prune drops views idle for longer than ttl and returns how many went.
func (s *ViewStore) Prune(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	n := 0
	for id, v := range s.views {
		if v.lastSeen.Before(cutoff) {
			delete(s.views, id)
			n++
		}
	}
	return n
}

// Len returns the number of views holding overrides.
func (s *ViewStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.views)
}
