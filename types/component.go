package types

import (
	"github.com/rotisserie/eris"
)

// ErrComponentSchemaMismatch is returned when a component's schema does not match a
// schema that was captured for the same component name at an earlier point in time.
var ErrComponentSchemaMismatch = eris.New("component schema does not match target schema")

type (
	// ComponentID is the process-local identifier of a registered component type. It is
	// assigned sequentially at registration time and is not stable across runs.
	ComponentID int

	// StableTypeID identifies a component type independently of the process that
	// registered it. It is derived from the component name alone, so it stays the same
	// across runs and across registry rebuilds.
	StableTypeID uint64

	// StableID identifies one entity's instance of a component type in persisted state.
	// It is derived from the component's StableTypeID and the owning entity's ID.
	StableID uint64
)

// Component is the interface that the user needs to implement to create a new component type.
type Component interface {
	// Name returns the name of the component.
	Name() string
}

// ComponentMetadata wraps the user-defined Component struct and provides functionalities that is used internally
// in the engine.
type ComponentMetadata interface { //revive:disable-line:exported
	// SetID sets the ComponentID of this component. It must only be set once.
	SetID(ComponentID) error
	// ID returns the ComponentID of the component.
	ID() ComponentID
	// StableTypeID returns the process-independent identifier of the component type.
	StableTypeID() StableTypeID
	// New returns the marshaled bytes of the default value for the component struct.
	New() ([]byte, error)
	Encode(any) ([]byte, error)
	Decode([]byte) (any, error)
	GetSchema() []byte
	// ValidateAgainstSchema returns ErrComponentSchemaMismatch if targetSchema describes
	// a different shape than the component's own schema.
	ValidateAgainstSchema(targetSchema []byte) error

	Component
}
