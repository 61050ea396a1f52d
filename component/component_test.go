package component_test

import (
	"testing"

	"github.com/nexus-engine/nexus/assert"
	"github.com/nexus-engine/nexus/component"
	"github.com/nexus-engine/nexus/types"
)

type unnamed struct{}

func (unnamed) Name() string { return "" }

func TestMetadataRequiresName(t *testing.T) {
	_, err := component.NewComponentMetadata[unnamed]()
	assert.IsError(t, err)
}

func TestMetadataIDCanOnlyBeSetOnce(t *testing.T) {
	compMetadata := mustMetadata[Energy](t)
	assert.NilError(t, compMetadata.SetID(5))
	// Re-registering under the same ID is tolerated so components can be shared
	// between engine instances in tests.
	assert.NilError(t, compMetadata.SetID(5))
	assert.ErrorContains(t, compMetadata.SetID(6), "already set")
}

func TestMetadataEncodeDecodeRoundTrip(t *testing.T) {
	compMetadata := mustMetadata[Energy](t)

	bz, err := compMetadata.Encode(Energy{Amount: 40})
	assert.NilError(t, err)

	decoded, err := compMetadata.Decode(bz)
	assert.NilError(t, err)
	assert.Equal(t, Energy{Amount: 40}, decoded)
}

func TestMetadataDecodeRejectsGarbage(t *testing.T) {
	compMetadata := mustMetadata[Energy](t)
	_, err := compMetadata.Decode([]byte("{"))
	assert.IsError(t, err)
}

func TestMetadataNewUsesDefaultValue(t *testing.T) {
	plain := mustMetadata[Energy](t)
	bz, err := plain.New()
	assert.NilError(t, err)
	decoded, err := plain.Decode(bz)
	assert.NilError(t, err)
	assert.Equal(t, Energy{}, decoded)

	withDefault, err := component.NewComponentMetadata[Energy](component.WithDefault(Energy{Amount: 100}))
	assert.NilError(t, err)
	bz, err = withDefault.New()
	assert.NilError(t, err)
	decoded, err = withDefault.Decode(bz)
	assert.NilError(t, err)
	assert.Equal(t, Energy{Amount: 100}, decoded)
}

func TestMetadataSchemaValidation(t *testing.T) {
	energy := mustMetadata[Energy](t)
	ownable := mustMetadata[Ownable](t)

	assert.NilError(t, energy.ValidateAgainstSchema(energy.GetSchema()))
	err := energy.ValidateAgainstSchema(ownable.GetSchema())
	assert.ErrorIs(t, err, types.ErrComponentSchemaMismatch)
}

func TestStableTypeIDIsDerivedFromNameAlone(t *testing.T) {
	first := mustMetadata[Energy](t)
	second := mustMetadata[Energy](t)

	// Two independent registrations of the same name agree on the stable ID; the
	// process-local ID is free to differ between registries.
	assert.Equal(t, first.StableTypeID(), second.StableTypeID())
	assert.Equal(t, component.StableTypeIDOf("energy"), first.StableTypeID())
	assert.NotEqual(t, first.StableTypeID(), mustMetadata[Ownable](t).StableTypeID())
}

func TestStableKeyMixesTypeAndEntity(t *testing.T) {
	energyType := component.StableTypeIDOf("energy")
	ownableType := component.StableTypeIDOf("ownable")

	assert.Equal(t, component.StableKey(energyType, 7), component.StableKey(energyType, 7))
	assert.NotEqual(t, component.StableKey(energyType, 7), component.StableKey(energyType, 8))
	assert.NotEqual(t, component.StableKey(energyType, 7), component.StableKey(ownableType, 7))
}
