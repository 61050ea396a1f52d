// Package storage provides the per-component-type backing stores of the engine.
//
// A Store keeps every live instance of one component type in a dense slice, with an
// Index mapping entity IDs to dense positions. Insert, lookup and removal are all
// O(1). Removal swaps the last slot into the vacated position, so the dense slice
// stays gap-free but makes no ordering promise.
package storage

import (
	"github.com/nexus-engine/nexus/iterators"
	"github.com/nexus-engine/nexus/types"
)

// Slot is one dense entry of a Store: a component value and the entity that owns it.
type Slot struct {
	ID    types.EntityID
	Value any
}

// Store holds every instance of a single component type.
type Store struct {
	comp  types.ComponentMetadata
	slots []Slot
	index *Index
}

// NewStore creates an empty store for the given component type.
func NewStore(comp types.ComponentMetadata, capacity int) *Store {
	return &Store{
		comp:  comp,
		slots: make([]Slot, 0, capacity),
		index: NewIndex(capacity),
	}
}

// Component returns the metadata of the component type this store holds.
func (s *Store) Component() types.ComponentMetadata {
	return s.comp
}

// Insert stores value for id. If id already has a value it is overwritten in its
// current slot and Insert reports false; otherwise the value is appended to the dense
// slice and Insert reports true.
func (s *Store) Insert(id types.EntityID, value any) bool {
	if pos, ok := s.index.Get(id); ok {
		s.slots[pos].Value = value
		return false
	}
	s.index.Set(id, len(s.slots))
	s.slots = append(s.slots, Slot{ID: id, Value: value})
	return true
}

// Get returns the value stored for id.
func (s *Store) Get(id types.EntityID) (any, bool) {
	pos, ok := s.index.Get(id)
	if !ok {
		return nil, false
	}
	return s.slots[pos].Value, true
}

// Contains reports whether id has a value in this store.
func (s *Store) Contains(id types.EntityID) bool {
	_, ok := s.index.Get(id)
	return ok
}

// Remove deletes the value stored for id, reporting whether a value was present.
// Removing an absent id is a no-op.
func (s *Store) Remove(id types.EntityID) bool {
	pos, ok := s.index.Get(id)
	if !ok {
		return false
	}
	last := len(s.slots) - 1
	if pos != last {
		moved := s.slots[last]
		s.slots[pos] = moved
		s.index.Set(moved.ID, pos)
	}
	s.slots[last] = Slot{} // release the value so it can be collected
	s.slots = s.slots[:last]
	s.index.Clear(id)
	return true
}

// Len returns the number of stored values.
func (s *Store) Len() int {
	return len(s.slots)
}

// At returns the slot at dense position i. Positions are only stable until the next
// mutation of the store.
func (s *Store) At(i int) (types.EntityID, any) {
	return s.slots[i].ID, s.slots[i].Value
}

// Iter returns a cursor over all slots in dense order. Mutating the store invalidates
// the cursor.
func (s *Store) Iter() iterators.SlotIterator {
	return iterators.NewSlotIterator(s)
}
