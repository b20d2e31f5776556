package store

import (
	"github.com/strikerapp/striker-backend/internal/catalog"
	"github.com/strikerapp/striker-backend/internal/engine"
)

// Store maps match ids to their machines with get-or-create semantics.
// Match ids are opaque caller-supplied strings and live for the process
// lifetime.
//
// The hub goroutine is the sole owner; no locking here.
type Store struct {
	cat     *catalog.Catalog
	matches map[string]*engine.Machine
}

func New(cat *catalog.Catalog) *Store {
	return &Store{
		cat:     cat,
		matches: make(map[string]*engine.Machine),
	}
}

// GetOrCreate returns the machine for id, creating a fresh first-game
// machine on first reference.
func (s *Store) GetOrCreate(id string) *engine.Machine {
	m, ok := s.matches[id]
	if !ok {
		m = engine.New(s.cat, engine.ModeFirstGame)
		s.matches[id] = m
	}
	return m
}

// Len returns the number of known matches.
func (s *Store) Len() int { return len(s.matches) }
