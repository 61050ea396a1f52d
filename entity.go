package nexus

import (
	"github.com/nexus-engine/nexus/types"
)

// Entity pairs an entity ID with the Nexus it lives in, so collaborators can operate
// on one entity without holding the engine and the ID separately. The zero Entity is
// not usable; handles come from CreateEntity, CreateMany or EachMember.
type Entity struct {
	nexus *Nexus
	id    types.EntityID
}

// ID returns the underlying entity ID.
func (e Entity) ID() types.EntityID {
	return e.id
}

// Nexus returns the engine this entity lives in.
func (e Entity) Nexus() *Nexus {
	return e.nexus
}

// Valid reports whether the entity is still live. A handle goes stale once the entity
// is destroyed, and its ID may later refer to a different, recycled entity.
func (e Entity) Valid() bool {
	return e.nexus != nil && e.nexus.IsLive(e.id)
}

// Assign attaches comp to the entity. See Nexus.Assign.
func (e Entity) Assign(comp types.Component) error {
	return e.nexus.Assign(e.id, comp)
}

// Remove detaches comp's type from the entity. See Nexus.Remove.
func (e Entity) Remove(comp types.Component) error {
	return e.nexus.Remove(e.id, comp)
}

// Get returns the entity's instance of comp's type, reporting false on absence.
func (e Entity) Get(comp types.Component) (any, bool) {
	return e.nexus.Component(e.id, comp)
}

// Has reports whether the entity carries comp's type.
func (e Entity) Has(comp types.Component) bool {
	return e.nexus.Has(e.id, comp)
}

// Destroy removes the entity from its Nexus. See Nexus.Destroy.
func (e Entity) Destroy() error {
	return e.nexus.Destroy(e.id)
}
