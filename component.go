package nexus

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/nexus-engine/nexus/component"
	"github.com/nexus-engine/nexus/types"
)

// RegisterComponent builds the metadata for T and registers it with the nexus.
func RegisterComponent[T types.Component](nx *Nexus, opts ...component.Option[T]) error {
	compMetadata, err := component.NewComponentMetadata[T](opts...)
	if err != nil {
		return err
	}
	return nx.RegisterComponent(compMetadata)
}

// AssignComponent attaches value to the entity, replacing any existing T in place.
func AssignComponent[T types.Component](nx *Nexus, id types.EntityID, value T) error {
	return nx.Assign(id, value)
}

// GetComponent returns a pointer to a copy of the entity's T. Absence reports false:
// a missing component, a destroyed entity and an unregistered type all behave the
// same way.
func GetComponent[T types.Component](nx *Nexus, id types.EntityID) (*T, bool) {
	var t T
	compValue, ok := nx.Component(id, t)
	if !ok {
		return nil, false
	}

	// Values are stored as whatever the caller assigned, so both T and *T can come
	// back out of storage.
	t, valueOk := compValue.(T)
	if !valueOk {
		ptr, ptrOk := compValue.(*T)
		if !ptrOk {
			return nil, false
		}
		t = *ptr
	}
	return &t, true
}

// HasComponent reports whether the entity carries T.
func HasComponent[T types.Component](nx *Nexus, id types.EntityID) bool {
	var t T
	return nx.Has(id, t)
}

// RemoveComponent detaches T from the entity. Removing an absent T is a no-op.
func RemoveComponent[T types.Component](nx *Nexus, id types.EntityID) error {
	var t T
	return nx.Remove(id, t)
}

// UpdateComponent reads the entity's T, applies fn and writes the result back. Unlike
// GetComponent, a missing component is an error here: an update needs something to
// update.
func UpdateComponent[T types.Component](nx *Nexus, id types.EntityID, fn func(*T) *T) error {
	var t T
	val, ok := GetComponent[T](nx, id)
	if !ok {
		if !nx.IsLive(id) {
			return eris.Wrap(ErrEntityDoesNotExist,
				fmt.Sprintf("cannot update component %q on entity %d", t.Name(), id))
		}
		return eris.Wrap(ErrComponentNotOnEntity,
			fmt.Sprintf("cannot update component %q on entity %d", t.Name(), id))
	}

	updatedVal := fn(val)
	if updatedVal == nil {
		return eris.Errorf("update function for component %q returned nil", t.Name())
	}
	return nx.Assign(id, *updatedVal)
}
