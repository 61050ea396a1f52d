package filter

import (
	"math/bits"

	"github.com/nexus-engine/nexus/types"
)

const (
	// maskWords is the number of 64-bit words in a Mask.
	maskWords = 4

	// MaxComponentTypes is the number of distinct component types a single registry can
	// hold, bounded by the width of Mask.
	MaxComponentTypes = maskWords * 64
)

// Mask records which component types an entity currently carries, one bit per
// registered component type. Component IDs start at 1, so ID n occupies bit n-1.
// The zero Mask carries nothing.
type Mask [maskWords]uint64

// Set marks id as present. IDs outside [1, MaxComponentTypes] are ignored.
func (m *Mask) Set(id types.ComponentID) {
	if id < 1 || id > MaxComponentTypes {
		return
	}
	bit := uint(id - 1)
	m[bit>>6] |= 1 << (bit & 63)
}

// Clear marks id as absent.
func (m *Mask) Clear(id types.ComponentID) {
	if id < 1 || id > MaxComponentTypes {
		return
	}
	bit := uint(id - 1)
	m[bit>>6] &^= 1 << (bit & 63)
}

// Has reports whether id is present.
func (m Mask) Has(id types.ComponentID) bool {
	if id < 1 || id > MaxComponentTypes {
		return false
	}
	bit := uint(id - 1)
	return m[bit>>6]&(1<<(bit&63)) != 0
}

// ContainsAll reports whether every bit set in other is also set in m.
func (m Mask) ContainsAll(other Mask) bool {
	for i := range m {
		if m[i]&other[i] != other[i] {
			return false
		}
	}
	return true
}

// Intersects reports whether m and other share at least one set bit.
func (m Mask) Intersects(other Mask) bool {
	for i := range m {
		if m[i]&other[i] != 0 {
			return true
		}
	}
	return false
}

// IsEmpty reports whether no bit is set.
func (m Mask) IsEmpty() bool {
	for i := range m {
		if m[i] != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of set bits.
func (m Mask) Count() int {
	count := 0
	for i := range m {
		count += bits.OnesCount64(m[i])
	}
	return count
}

// Each calls fn for every component ID present in the mask, in ascending ID order.
// Iteration stops early when fn returns false.
func (m Mask) Each(fn func(types.ComponentID) bool) {
	for w := 0; w < maskWords; w++ {
		word := m[w]
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			if !fn(types.ComponentID(w<<6 + bit + 1)) {
				return
			}
			word &= word - 1
		}
	}
}
