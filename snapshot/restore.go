package snapshot

import (
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/nexus-engine/nexus"
	"github.com/nexus-engine/nexus/component"
	nexuslog "github.com/nexus-engine/nexus/log"
	"github.com/nexus-engine/nexus/statsd"
	"github.com/nexus-engine/nexus/types"
)

// pendingComponent is one validated component value waiting to be assigned.
type pendingComponent struct {
	compMetadata types.ComponentMetadata
	value        types.Component
}

// pendingEntity is one captured entity with all of its component values decoded.
type pendingEntity struct {
	capturedID types.EntityID
	comps      []pendingComponent
}

// Restore re-creates the captured entities in nx.
//
// The whole snapshot is validated before nx is touched: the format version first,
// then every referenced payload is located, decoded and checked against the schema
// registered for its component name. Any failure aborts the restore, so a corrupt
// snapshot never leaves nx partially restored.
//
// Entities are re-created in ascending captured order and components are attached in
// registration order, so restoring one snapshot into equally prepared nexuses always
// produces the same sequence of mutations. The restored entities receive fresh IDs
// from nx; they coincide with the captured IDs only when nx has never created an
// entity.
func Restore(nx *nexus.Nexus, snap *Snapshot) error {
	if !snap.Version.Compatible() {
		return eris.Wrapf(ErrVersionMismatch,
			"snapshot version %s, supported version %s", snap.Version, FormatVersion)
	}

	validateStart := time.Now()
	compMetadatas := nx.RegisteredComponents()
	for _, compMetadata := range compMetadatas {
		schema, ok := snap.Schemas[compMetadata.Name()]
		if !ok {
			continue
		}
		if err := compMetadata.ValidateAgainstSchema(schema); err != nil {
			return eris.Wrapf(err, "component %q changed shape since the capture", compMetadata.Name())
		}
	}

	capturedIDs := make([]types.EntityID, 0, len(snap.Entities))
	for id := range snap.Entities {
		capturedIDs = append(capturedIDs, id)
	}
	sort.Slice(capturedIDs, func(i, j int) bool { return capturedIDs[i] < capturedIDs[j] })

	pending := make([]pendingEntity, 0, len(capturedIDs))
	for _, id := range capturedIDs {
		// Stable keys mix the component type with the owning entity, so the reverse
		// mapping has to be rebuilt per entity.
		keyToMetadata := make(map[types.StableID]types.ComponentMetadata, len(compMetadatas))
		for _, compMetadata := range compMetadatas {
			keyToMetadata[component.StableKey(compMetadata.StableTypeID(), id)] = compMetadata
		}

		keys := snap.Entities[id]
		comps := make([]pendingComponent, 0, len(keys))
		for _, key := range keys {
			compMetadata, ok := keyToMetadata[key]
			if !ok {
				return eris.Wrapf(ErrUnknownComponent,
					"entity %d references stable key %d", id, key)
			}
			bz, ok := snap.Payloads[key]
			if !ok {
				return eris.Wrapf(ErrPayloadMissing,
					"no payload for stable key %d referenced by entity %d (component %q)",
					key, id, compMetadata.Name())
			}
			decoded, err := compMetadata.Decode(bz)
			if err != nil {
				return eris.Wrapf(ErrCorrupt,
					"cannot decode payload for component %q on entity %d: %v",
					compMetadata.Name(), id, err)
			}
			comp, ok := decoded.(types.Component)
			if !ok {
				return eris.Errorf(
					"decoded value for component %q does not implement Component", compMetadata.Name())
			}
			comps = append(comps, pendingComponent{compMetadata: compMetadata, value: comp})
		}
		sort.Slice(comps, func(i, j int) bool {
			return comps[i].compMetadata.ID() < comps[j].compMetadata.ID()
		})
		pending = append(pending, pendingEntity{capturedID: id, comps: comps})
	}
	statsd.EmitSnapshotStat(validateStart, "restore_validate")

	applyStart := time.Now()
	for _, pe := range pending {
		ent := nx.CreateEntity()
		for _, pc := range pe.comps {
			if err := ent.Assign(pc.value); err != nil {
				return eris.Wrapf(err,
					"failed to assign restored component %q (captured entity %d)",
					pc.compMetadata.Name(), pe.capturedID)
			}
		}
	}
	statsd.EmitSnapshotStat(applyStart, "restore_apply")

	nexuslog.Components(nx.Logger(), nx, zerolog.DebugLevel)
	nx.Logger().Info().
		Str("snapshot_id", snap.ID).
		Int("entity_count", len(pending)).
		Msg("restored snapshot")
	return nil
}
