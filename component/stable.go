package component

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/nexus-engine/nexus/types"
)

// StableTypeIDOf derives the process-independent identifier of a component type from
// its name. Equal names always hash to equal identifiers, which is what allows state
// persisted by one process to be matched back to types registered by another.
func StableTypeIDOf(name string) types.StableTypeID {
	return types.StableTypeID(xxhash.Sum64String(name))
}

// StableKey derives the persisted identifier of one entity's instance of a component
// type. A given (type, entity) pair maps to the same key in every process.
func StableKey(typeID types.StableTypeID, id types.EntityID) types.StableID {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(typeID))
	binary.LittleEndian.PutUint64(buf[8:], uint64(id))
	return types.StableID(xxhash.Sum64(buf[:]))
}
