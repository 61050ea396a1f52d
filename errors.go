package nexus

import (
	"github.com/rotisserie/eris"

	"github.com/nexus-engine/nexus/component"
)

var (
	// ErrEntityDoesNotExist is returned when a mutating operation names an entity that
	// is not live: it was never created, or it has already been destroyed.
	ErrEntityDoesNotExist = eris.New("entity does not exist")

	// ErrComponentNotOnEntity is returned by operations that need an existing component
	// instance, such as UpdateComponent, when the entity does not carry the type.
	ErrComponentNotOnEntity = eris.New("component not on entity")

	// ErrComponentNotRegistered mirrors the component package sentinel so callers can
	// match it without importing that package.
	ErrComponentNotRegistered = component.ErrComponentNotRegistered
)
