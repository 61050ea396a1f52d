package family

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/nexus-engine/nexus/component"
	"github.com/nexus-engine/nexus/filter"
	"github.com/nexus-engine/nexus/types"
)

// Resolver maps a component name to its process-local ID. The engine hands its
// component registry to the Manager in this form so the two stay decoupled.
type Resolver func(name string) (types.ComponentID, bool)

// Manager owns every family and keeps their member caches consistent with entity
// state. The engine reports lifecycle changes through the On* hooks; each hook is
// O(number of affected families), never O(number of entities).
type Manager struct {
	resolve  Resolver
	families map[string]*Family // keyed by TraitSet.Key()
	ordered  []*Family          // registration order, for deterministic walks
	byType   map[types.ComponentID][]*Family
}

// NewManager creates an empty family registry backed by the given name resolver.
func NewManager(resolve Resolver) *Manager {
	return &Manager{
		resolve:  resolve,
		families: make(map[string]*Family),
		byType:   make(map[types.ComponentID][]*Family),
	}
}

// Family returns the family for traits, creating it on first request. The second
// return reports whether this call created the family; a fresh family's cache is
// empty and the caller is expected to backfill it from the live entities. A trait
// set naming an unregistered component is an error.
func (m *Manager) Family(traits filter.TraitSet) (*Family, bool, error) {
	if f, ok := m.families[traits.Key()]; ok {
		return f, false, nil
	}

	var required, excluded filter.Mask
	mentioned := make([]types.ComponentID, 0, len(traits.Required())+len(traits.Excluded()))
	for _, name := range traits.Required() {
		id, ok := m.resolve(name)
		if !ok {
			return nil, false, eris.Wrap(component.ErrComponentNotRegistered,
				fmt.Sprintf("trait set %s requires unregistered component %q", traits, name))
		}
		required.Set(id)
		mentioned = append(mentioned, id)
	}
	for _, name := range traits.Excluded() {
		id, ok := m.resolve(name)
		if !ok {
			return nil, false, eris.Wrap(component.ErrComponentNotRegistered,
				fmt.Sprintf("trait set %s excludes unregistered component %q", traits, name))
		}
		excluded.Set(id)
		mentioned = append(mentioned, id)
	}

	f := newFamily(traits, required, excluded)
	m.families[traits.Key()] = f
	m.ordered = append(m.ordered, f)
	for _, id := range mentioned {
		m.byType[id] = append(m.byType[id], f)
	}
	return f, true, nil
}

// Refresh re-evaluates one entity against one family and updates the cache. It
// reports whether the membership changed.
func (m *Manager) Refresh(f *Family, id types.EntityID, mask filter.Mask) bool {
	if f.Matches(mask) {
		return f.add(id)
	}
	return f.remove(id)
}

// OnCreate adds a fresh, component-less entity to every family an empty mask
// satisfies, which is exactly the families with no required types.
func (m *Manager) OnCreate(id types.EntityID) {
	var empty filter.Mask
	for _, f := range m.ordered {
		if f.Matches(empty) {
			f.add(id)
		}
	}
}

// OnAssign updates memberships after compID was attached to id. mask must already
// reflect the attachment.
func (m *Manager) OnAssign(id types.EntityID, compID types.ComponentID, mask filter.Mask) {
	m.refreshByType(id, compID, mask)
}

// OnRemove updates memberships after compID was detached from id. mask must already
// reflect the detachment.
func (m *Manager) OnRemove(id types.EntityID, compID types.ComponentID, mask filter.Mask) {
	m.refreshByType(id, compID, mask)
}

// refreshByType re-evaluates the families whose trait sets mention compID. Families
// that do not mention the type cannot change their verdict for this entity.
func (m *Manager) refreshByType(id types.EntityID, compID types.ComponentID, mask filter.Mask) {
	for _, f := range m.byType[compID] {
		m.Refresh(f, id, mask)
	}
}

// OnDestroy drops id from every family cache. All families are walked because an
// entity can be a member of a family that mentions none of its component types.
func (m *Manager) OnDestroy(id types.EntityID) {
	for _, f := range m.ordered {
		f.remove(id)
	}
}

// Families returns every registered family in registration order.
func (m *Manager) Families() []*Family {
	return append([]*Family{}, m.ordered...)
}

// Count returns the number of registered families.
func (m *Manager) Count() int {
	return len(m.ordered)
}
