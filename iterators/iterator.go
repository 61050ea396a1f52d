// Package iterators provides cursor-style iteration over dense entity collections.
package iterators

import (
	"github.com/nexus-engine/nexus/types"
)

// EntityList is a dense, index-addressable list of entity IDs.
type EntityList interface {
	Len() int
	At(i int) types.EntityID
}

// EntityIterator walks an EntityList in dense order. Mutating the underlying list
// invalidates the iterator.
type EntityIterator struct {
	current int
	list    EntityList
}

// NewEntityIterator returns an iterator positioned before the first element.
func NewEntityIterator(list EntityList) EntityIterator {
	return EntityIterator{list: list}
}

// HasNext reports whether another entity remains.
func (it *EntityIterator) HasNext() bool {
	return it.current < it.list.Len()
}

// Next returns the next entity ID, or ErrIteratorExhausted when none remains.
func (it *EntityIterator) Next() (types.EntityID, error) {
	if !it.HasNext() {
		return 0, ErrIteratorExhausted
	}
	id := it.list.At(it.current)
	it.current++
	return id, nil
}

// SlotList is a dense, index-addressable list of (entity, component value) pairs.
type SlotList interface {
	Len() int
	At(i int) (types.EntityID, any)
}

// SlotIterator walks a SlotList in dense order. Mutating the underlying list
// invalidates the iterator.
type SlotIterator struct {
	current int
	list    SlotList
}

// NewSlotIterator returns an iterator positioned before the first slot.
func NewSlotIterator(list SlotList) SlotIterator {
	return SlotIterator{list: list}
}

// HasNext reports whether another slot remains.
func (it *SlotIterator) HasNext() bool {
	return it.current < it.list.Len()
}

// Next returns the next entity and its component value, or ErrIteratorExhausted when
// none remains.
func (it *SlotIterator) Next() (types.EntityID, any, error) {
	if !it.HasNext() {
		return 0, nil, ErrIteratorExhausted
	}
	id, value := it.list.At(it.current)
	it.current++
	return id, value, nil
}
