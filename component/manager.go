package component

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/nexus-engine/nexus/filter"
	"github.com/nexus-engine/nexus/types"
)

var (
	ErrComponentNotRegistered = eris.New("component not registered")
	ErrComponentRegistryFull  = eris.New("component registry is full")
	ErrStableTypeIDCollision  = eris.New("stable type id collision")
)

// Manager keeps the set of registered component types. Component names are unique, and
// every registered type is assigned a sequential process-local ID starting from 1.
type Manager struct {
	registeredComponents map[string]types.ComponentMetadata
	componentsByID       map[types.ComponentID]types.ComponentMetadata
	componentsByStableID map[types.StableTypeID]types.ComponentMetadata
	nextComponentID      types.ComponentID
}

// NewManager creates a new component manager.
func NewManager() *Manager {
	return &Manager{
		registeredComponents: make(map[string]types.ComponentMetadata),
		componentsByID:       make(map[types.ComponentID]types.ComponentMetadata),
		componentsByStableID: make(map[types.StableTypeID]types.ComponentMetadata),
		nextComponentID:      1,
	}
}

// RegisterComponent registers component with the component manager.
// There can only be one component with a given name, which is declared by the user by implementing the Name() method.
// If there is a duplicate component name, an error will be returned and the component will not be registered.
func (m *Manager) RegisterComponent(compMetadata types.ComponentMetadata) error {
	// Check that the component is not already registered
	if err := m.isComponentNameUnique(compMetadata); err != nil {
		return err
	}

	if int(m.nextComponentID) > filter.MaxComponentTypes {
		return eris.Wrap(ErrComponentRegistryFull,
			fmt.Sprintf("cannot register more than %d component types", filter.MaxComponentTypes),
		)
	}

	// Two distinct names hashing to the same stable type id would make persisted state
	// ambiguous, so the registration is refused outright.
	if other, ok := m.componentsByStableID[compMetadata.StableTypeID()]; ok {
		return eris.Wrap(ErrStableTypeIDCollision,
			fmt.Sprintf("components %q and %q share stable type id %d",
				compMetadata.Name(), other.Name(), compMetadata.StableTypeID()),
		)
	}

	// Set the component ID and register the component.
	if err := compMetadata.SetID(m.nextComponentID); err != nil {
		return err
	}
	m.registeredComponents[compMetadata.Name()] = compMetadata
	m.componentsByID[compMetadata.ID()] = compMetadata
	m.componentsByStableID[compMetadata.StableTypeID()] = compMetadata
	m.nextComponentID++

	return nil
}

// GetComponents returns a list of all registered components, ordered by component ID.
func (m *Manager) GetComponents() []types.ComponentMetadata {
	registeredComponents := make([]types.ComponentMetadata, 0, len(m.registeredComponents))
	for id := types.ComponentID(1); id < m.nextComponentID; id++ {
		registeredComponents = append(registeredComponents, m.componentsByID[id])
	}
	return registeredComponents
}

// GetComponentByName returns the component metadata for the given component name.
func (m *Manager) GetComponentByName(name string) (types.ComponentMetadata, error) {
	c, ok := m.registeredComponents[name]
	if !ok {
		return nil, eris.Wrap(ErrComponentNotRegistered, fmt.Sprintf("component %q is not registered", name))
	}
	return c, nil
}

// GetComponentByID returns the component metadata for the given process-local ID.
func (m *Manager) GetComponentByID(id types.ComponentID) (types.ComponentMetadata, error) {
	c, ok := m.componentsByID[id]
	if !ok {
		return nil, eris.Wrap(ErrComponentNotRegistered, fmt.Sprintf("component id %d is not registered", id))
	}
	return c, nil
}

// ComponentCount returns the number of registered component types.
func (m *Manager) ComponentCount() int {
	return len(m.registeredComponents)
}

// isComponentNameUnique checks if the component name already exist in component map.
func (m *Manager) isComponentNameUnique(compMetadata types.ComponentMetadata) error {
	_, ok := m.registeredComponents[compMetadata.Name()]
	if ok {
		return eris.Errorf("component %q is already registered", compMetadata.Name())
	}
	return nil
}
