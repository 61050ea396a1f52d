// Package snapshot captures the complete component state of a nexus in a
// process-independent form and re-creates that state in another nexus.
//
// A snapshot never stores process-local component IDs or dense storage positions.
// Every component instance is keyed by its stable ID, derived from the component
// name and the owning entity, so a snapshot taken by one process can be restored by
// any process that registers the same component names.
package snapshot

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/nexus-engine/nexus"
	"github.com/nexus-engine/nexus/codec"
	"github.com/nexus-engine/nexus/component"
	"github.com/nexus-engine/nexus/statsd"
	"github.com/nexus-engine/nexus/types"
)

// Version identifies the snapshot wire format. Snapshots restore across minor and
// patch revisions; a major revision breaks compatibility.
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

// FormatVersion is the wire format this build captures snapshots under.
var FormatVersion = Version{Major: 1, Minor: 0, Patch: 0}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compatible reports whether a snapshot captured under v can be restored by this
// build.
func (v Version) Compatible() bool {
	return v.Major == FormatVersion.Major
}

// Snapshot is one captured state: the stable keys each entity carried, and the
// encoded payload behind each stable key. Schemas holds the JSON schema of every
// component type at capture time, keyed by component name, so a restoring process
// can detect that a type changed shape since the capture.
type Snapshot struct {
	ID       string                              `json:"id"`
	Version  Version                             `json:"version"`
	Entities map[types.EntityID][]types.StableID `json:"entities"`
	Payloads map[types.StableID]json.RawMessage  `json:"payloads"`
	Schemas  map[string]json.RawMessage          `json:"schemas,omitempty"`
}

// Take captures every live entity of nx together with all component values attached
// to them. The nexus is not modified.
func Take(nx *nexus.Nexus) (*Snapshot, error) {
	startTime := time.Now()
	snap := &Snapshot{
		ID:       uuid.NewString(),
		Version:  FormatVersion,
		Entities: make(map[types.EntityID][]types.StableID, nx.EntityCount()),
		Payloads: make(map[types.StableID]json.RawMessage),
		Schemas:  make(map[string]json.RawMessage),
	}
	for _, compMetadata := range nx.RegisteredComponents() {
		snap.Schemas[compMetadata.Name()] = compMetadata.GetSchema()
	}
	for _, id := range nx.Entities() {
		compMetadatas, _ := nx.ComponentsFor(id)
		keys := make([]types.StableID, 0, len(compMetadatas))
		for _, compMetadata := range compMetadatas {
			value, ok := nx.Component(id, compMetadata)
			if !ok {
				return nil, eris.Errorf(
					"entity %d reports component %q but holds no value for it", id, compMetadata.Name())
			}
			bz, err := compMetadata.Encode(value)
			if err != nil {
				return nil, eris.Wrapf(err,
					"failed to encode component %q on entity %d", compMetadata.Name(), id)
			}
			key := component.StableKey(compMetadata.StableTypeID(), id)
			keys = append(keys, key)
			snap.Payloads[key] = bz
		}
		snap.Entities[id] = keys
	}
	statsd.EmitSnapshotStat(startTime, "take")
	nx.Logger().Debug().
		Str("snapshot_id", snap.ID).
		Int("entity_count", len(snap.Entities)).
		Int("payload_count", len(snap.Payloads)).
		Msg("captured snapshot")
	return snap, nil
}

// Encode marshals the snapshot for storage.
func (s *Snapshot) Encode() ([]byte, error) {
	return codec.Encode(s)
}

// Decode unmarshals a stored snapshot.
func Decode(bz []byte) (*Snapshot, error) {
	snap, err := codec.Decode[Snapshot](bz)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
