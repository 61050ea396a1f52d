package storage

import (
	"github.com/nexus-engine/nexus/types"
)

// none marks an absent entry in the position table.
const none = -1

// Index maps entity IDs to positions in a dense backing array. The table grows on
// demand and never shrinks; an absent entity costs one int.
type Index struct {
	positions []int
}

// NewIndex creates an empty position table with room for capacity entities.
func NewIndex(capacity int) *Index {
	return &Index{positions: make([]int, 0, capacity)}
}

// Get returns the dense position recorded for id.
func (ix *Index) Get(id types.EntityID) (int, bool) {
	if int(id) >= len(ix.positions) || ix.positions[id] == none {
		return 0, false
	}
	return ix.positions[id], true
}

// Set records the dense position of id, growing the table as needed.
func (ix *Index) Set(id types.EntityID, pos int) {
	ix.grow(id)
	ix.positions[id] = pos
}

// Clear marks id absent.
func (ix *Index) Clear(id types.EntityID) {
	if int(id) < len(ix.positions) {
		ix.positions[id] = none
	}
}

func (ix *Index) grow(id types.EntityID) {
	for int(id) >= len(ix.positions) {
		ix.positions = append(ix.positions, none)
	}
}
