// Package family maintains cached entity memberships for normalized trait sets.
//
// A Family is a live view over engine storage: the set of entities whose attached
// component types satisfy the family's trait set. Membership is updated incrementally
// as components are assigned and removed, so reads never rescan storage. Requesting
// the same trait set twice yields the same Family.
package family

import (
	"github.com/nexus-engine/nexus/filter"
	"github.com/nexus-engine/nexus/iterators"
	"github.com/nexus-engine/nexus/storage"
	"github.com/nexus-engine/nexus/types"
)

// Family is the cached member set of one trait set. Families are created and kept
// current by a Manager; callers only read them.
type Family struct {
	traits   filter.TraitSet
	required filter.Mask
	excluded filter.Mask
	members  []types.EntityID
	index    *storage.Index
}

func newFamily(traits filter.TraitSet, required, excluded filter.Mask) *Family {
	return &Family{
		traits:   traits,
		required: required,
		excluded: excluded,
		members:  make([]types.EntityID, 0),
		index:    storage.NewIndex(0),
	}
}

// Traits returns the normalized trait set this family matches.
func (f *Family) Traits() filter.TraitSet {
	return f.traits
}

// Matches reports whether an entity carrying the component types in mask satisfies
// the family's trait set. It inspects only the mask, so it never touches the cache.
func (f *Family) Matches(mask filter.Mask) bool {
	return mask.ContainsAll(f.required) && !mask.Intersects(f.excluded)
}

// IsMember reports whether id is currently cached as a member.
func (f *Family) IsMember(id types.EntityID) bool {
	_, ok := f.index.Get(id)
	return ok
}

// Count returns the number of cached members.
func (f *Family) Count() int {
	return len(f.members)
}

// Each calls fn for every member until fn returns false. Iteration follows the dense
// cache order, which changes as memberships change; fn must not create or destroy
// entities or assign or remove components.
func (f *Family) Each(fn func(types.EntityID) bool) {
	for _, id := range f.members {
		if !fn(id) {
			return
		}
	}
}

// First returns the first cached member.
func (f *Family) First() (types.EntityID, bool) {
	if len(f.members) == 0 {
		return 0, false
	}
	return f.members[0], true
}

// IDs returns a copy of the member set, safe to hold across mutations.
func (f *Family) IDs() []types.EntityID {
	return append([]types.EntityID{}, f.members...)
}

// Iter returns a cursor over the member set. Mutating memberships invalidates the
// cursor; callers that mutate while walking should use IDs instead.
func (f *Family) Iter() iterators.EntityIterator {
	return iterators.NewEntityIterator(memberList{f})
}

type memberList struct {
	f *Family
}

func (l memberList) Len() int {
	return len(l.f.members)
}

func (l memberList) At(i int) types.EntityID {
	return l.f.members[i]
}

// add caches id as a member, reporting whether it was newly added.
func (f *Family) add(id types.EntityID) bool {
	if _, ok := f.index.Get(id); ok {
		return false
	}
	f.index.Set(id, len(f.members))
	f.members = append(f.members, id)
	return true
}

// remove drops id from the cache, reporting whether it was present. The last member
// is swapped into the vacated position.
func (f *Family) remove(id types.EntityID) bool {
	pos, ok := f.index.Get(id)
	if !ok {
		return false
	}
	last := len(f.members) - 1
	if pos != last {
		moved := f.members[last]
		f.members[pos] = moved
		f.index.Set(moved, pos)
	}
	f.members = f.members[:last]
	f.index.Clear(id)
	return true
}
