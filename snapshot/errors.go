package snapshot

import (
	"github.com/rotisserie/eris"

	"github.com/nexus-engine/nexus/types"
)

var (
	// ErrVersionMismatch is returned when a snapshot was captured under a format
	// version this build cannot restore.
	ErrVersionMismatch = eris.New("snapshot format version is not compatible")

	// ErrUnknownComponent is returned when a snapshot references a component type
	// that is not registered with the target nexus. Registering the type and
	// restoring again resolves it.
	ErrUnknownComponent = eris.New("snapshot references an unregistered component type")

	// ErrPayloadMissing is returned when an entity references a stable key that has
	// no payload in the snapshot. This is corruption, not absence: the snapshot
	// contradicts itself, and no part of it is applied.
	ErrPayloadMissing = eris.New("snapshot payload missing for referenced component")

	// ErrCorrupt is returned when a referenced payload cannot be decoded into its
	// component type. Like ErrPayloadMissing it aborts the restore before any entity
	// is created.
	ErrCorrupt = eris.New("snapshot is corrupt")

	// ErrSchemaMismatch is returned when a component's schema captured in the
	// snapshot differs from the schema of the type registered under the same name.
	ErrSchemaMismatch = types.ErrComponentSchemaMismatch

	// ErrSnapshotNotFound is returned by a Store when no snapshot exists under the
	// requested name.
	ErrSnapshotNotFound = eris.New("snapshot not found")
)
