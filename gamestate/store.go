// Package gamestate holds the read model: the authoritative entity store and
// the mutation interpreter that is the only writer to it. The store is fully
// derivable from the event log; it is never the source of truth.
package gamestate

import (
	"sort"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/hearthforge/chronicle/types"
)

// Reader is the read-only capability handed to systems. Systems must not
// mutate the store directly; they only propose mutations.
type Reader interface {
	// Entity returns the entity with the given id, or ErrEntityNotFound.
	Entity(id types.EntityID) (types.Entity, error)
}

// Store is the in-memory read model. Each entity is guarded independently:
// updates to different ids proceed concurrently, while two updates to the
// same id serialize in arrival order.
type Store struct {
	mu    sync.RWMutex
	cells map[types.EntityID]*cell
}

type cell struct {
	mu     sync.RWMutex
	entity types.Entity
}

var _ Reader = &Store{}

// NewStore creates an empty entity store.
func NewStore() *Store {
	return &Store{cells: make(map[types.EntityID]*cell)}
}

// Entity returns the entity with the given id.
func (s *Store) Entity(id types.EntityID) (types.Entity, error) {
	s.mu.RLock()
	c, ok := s.cells[id]
	s.mu.RUnlock()
	if !ok {
		return types.Entity{}, eris.Wrapf(ErrEntityNotFound, "entity %q", id)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entity, nil
}

// Set unconditionally upserts the entity by id.
func (s *Store) Set(entity types.Entity) {
	s.mu.Lock()
	c, ok := s.cells[entity.ID]
	if !ok {
		s.cells[entity.ID] = &cell{entity: entity}
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	c.mu.Lock()
	c.entity = entity
	c.mu.Unlock()
}

// Update applies fn to the entity with the given id as a single logical
// read-modify-write. It fails with ErrEntityNotFound for a missing id, or
// with fn's error, in which case the entity is left unchanged.
func (s *Store) Update(id types.EntityID, fn func(types.Entity) (types.Entity, error)) error {
	s.mu.RLock()
	c, ok := s.cells[id]
	s.mu.RUnlock()
	if !ok {
		return eris.Wrapf(ErrEntityNotFound, "entity %q", id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	updated, err := fn(c.entity)
	if err != nil {
		return err
	}
	updated.ID = id
	c.entity = updated
	return nil
}

// All returns a snapshot of every entity, ordered by id so that enumeration
// is deterministic. Used by the dashboard boundary and by tests.
func (s *Store) All() []types.Entity {
	s.mu.RLock()
	cells := make([]*cell, 0, len(s.cells))
	for _, c := range s.cells {
		cells = append(cells, c)
	}
	s.mu.RUnlock()

	entities := make([]types.Entity, 0, len(cells))
	for _, c := range cells {
		c.mu.RLock()
		entities = append(entities, c.entity)
		c.mu.RUnlock()
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
	return entities
}

// Len returns the number of entities in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cells)
}

// Clear removes every entity. Used by the replayer's reset path and tests.
func (s *Store) Clear() {
	s.mu.Lock()
	s.cells = make(map[types.EntityID]*cell)
	s.mu.Unlock()
}
