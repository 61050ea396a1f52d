package nexus_test

import (
	"testing"

	"github.com/nexus-engine/nexus"
	"github.com/nexus-engine/nexus/assert"
	"github.com/nexus-engine/nexus/filter"
	"github.com/nexus-engine/nexus/types"
)

type Position struct {
	X, Y float64
}

func (Position) Name() string {
	return "position"
}

type Velocity struct {
	DX, DY float64
}

func (Velocity) Name() string {
	return "velocity"
}

type Frozen struct{}

func (Frozen) Name() string {
	return "frozen"
}

func newTestNexus(t *testing.T) *nexus.Nexus {
	t.Helper()
	nx, err := nexus.New(nexus.WithLogLevel("disabled"))
	assert.NilError(t, err)
	assert.NilError(t, nexus.RegisterComponent[Position](nx))
	assert.NilError(t, nexus.RegisterComponent[Velocity](nx))
	assert.NilError(t, nexus.RegisterComponent[Frozen](nx))
	return nx
}

func TestCreateAssignGet(t *testing.T) {
	nx := newTestNexus(t)

	ent := nx.CreateEntity()
	assert.True(t, ent.Valid())
	assert.NilError(t, ent.Assign(Position{X: 1, Y: 2}))

	got, ok := nx.Component(ent.ID(), Position{})
	assert.True(t, ok)
	assert.Equal(t, Position{X: 1, Y: 2}, got)

	assert.True(t, nx.Has(ent.ID(), Position{}))
	assert.False(t, nx.Has(ent.ID(), Velocity{}))
}

func TestDestroyedIDsAreRecycled(t *testing.T) {
	nx := newTestNexus(t)

	a := nx.CreateEntity()
	b := nx.CreateEntity()
	c := nx.CreateEntity()
	assert.Equal(t, types.EntityID(0), a.ID())
	assert.Equal(t, types.EntityID(1), b.ID())
	assert.Equal(t, types.EntityID(2), c.ID())

	assert.NilError(t, b.Assign(Position{X: 5}))
	assert.NilError(t, b.Destroy())
	assert.Equal(t, 2, nx.EntityCount())

	// The freed ID comes back on the next create, stripped of the old
	// entity's components.
	reborn := nx.CreateEntity()
	assert.Equal(t, b.ID(), reborn.ID())
	assert.False(t, reborn.Has(Position{}))
	assert.Equal(t, 3, nx.EntityCount())
}

func TestRecycledIDsComeBackNewestFirst(t *testing.T) {
	nx := newTestNexus(t)

	entities := nx.CreateMany(4)
	assert.Len(t, entities, 4)
	assert.NilError(t, nx.Destroy(entities[1].ID()))
	assert.NilError(t, nx.Destroy(entities[3].ID()))

	assert.Equal(t, types.EntityID(3), nx.CreateEntity().ID())
	assert.Equal(t, types.EntityID(1), nx.CreateEntity().ID())
	assert.Equal(t, types.EntityID(4), nx.CreateEntity().ID())
}

func TestMutatingDeadEntitiesIsAnError(t *testing.T) {
	nx := newTestNexus(t)

	ent := nx.CreateEntity()
	assert.NilError(t, ent.Destroy())
	assert.False(t, ent.Valid())

	assert.ErrorIs(t, ent.Destroy(), nexus.ErrEntityDoesNotExist)
	assert.ErrorIs(t, ent.Assign(Position{}), nexus.ErrEntityDoesNotExist)
	assert.ErrorIs(t, ent.Remove(Position{}), nexus.ErrEntityDoesNotExist)
	assert.ErrorIs(t, nx.Destroy(types.EntityID(42)), nexus.ErrEntityDoesNotExist)
}

func TestUnregisteredComponentIsAnError(t *testing.T) {
	nx := newTestNexus(t)
	ent := nx.CreateEntity()

	assert.ErrorIs(t, nx.Assign(ent.ID(), unregisteredComp{}), nexus.ErrComponentNotRegistered)
	assert.ErrorIs(t, nx.Remove(ent.ID(), unregisteredComp{}), nexus.ErrComponentNotRegistered)
}

type unregisteredComp struct{}

func (unregisteredComp) Name() string {
	return "unregistered"
}

func TestQueriesReportAbsenceWithoutError(t *testing.T) {
	nx := newTestNexus(t)

	ent := nx.CreateEntity()

	// Missing component, unregistered type and dead entity all read as a
	// plain "not there".
	_, ok := nx.Component(ent.ID(), Position{})
	assert.False(t, ok)
	_, ok = nx.Component(ent.ID(), unregisteredComp{})
	assert.False(t, ok)

	assert.NilError(t, ent.Destroy())
	_, ok = nx.Component(ent.ID(), Position{})
	assert.False(t, ok)
	assert.False(t, nx.IsLive(ent.ID()))

	_, ok = nx.ComponentsFor(ent.ID())
	assert.False(t, ok)
}

func TestRemoveIsIdempotent(t *testing.T) {
	nx := newTestNexus(t)

	ent := nx.CreateEntity()
	assert.NilError(t, ent.Assign(Position{X: 1}))
	assert.NilError(t, ent.Remove(Position{}))
	assert.False(t, ent.Has(Position{}))

	// Removing a type the entity does not carry is a no-op.
	assert.NilError(t, ent.Remove(Position{}))
	assert.NilError(t, ent.Remove(Velocity{}))
}

func TestComponentsForIsOrderedByComponentID(t *testing.T) {
	nx := newTestNexus(t)

	ent := nx.CreateEntity()
	assert.NilError(t, ent.Assign(Frozen{}))
	assert.NilError(t, ent.Assign(Position{}))
	assert.NilError(t, ent.Assign(Velocity{}))

	metas, ok := nx.ComponentsFor(ent.ID())
	assert.True(t, ok)
	assert.Len(t, metas, 3)
	assert.Equal(t, "position", metas[0].Name())
	assert.Equal(t, "velocity", metas[1].Name())
	assert.Equal(t, "frozen", metas[2].Name())
}

func TestEntitiesAreSortedAndCopied(t *testing.T) {
	nx := newTestNexus(t)

	nx.CreateMany(3)
	assert.NilError(t, nx.Destroy(types.EntityID(1)))
	nx.CreateEntity()
	nx.CreateEntity()

	assert.DeepEqual(t, []types.EntityID{0, 1, 2, 3}, nx.Entities())
	assert.Equal(t, 4, nx.EntityCount())
}

func TestFamilyMembershipFollowsMutations(t *testing.T) {
	nx := newTestNexus(t)

	movable, err := nx.Family(filter.Requires(Position{}), filter.Excludes(Frozen{}))
	assert.NilError(t, err)

	ent := nx.CreateEntity()
	assert.False(t, movable.IsMember(ent.ID()))

	assert.NilError(t, ent.Assign(Position{}))
	assert.True(t, movable.IsMember(ent.ID()))

	// Gaining an excluded type pushes the entity out.
	assert.NilError(t, ent.Assign(Frozen{}))
	assert.False(t, movable.IsMember(ent.ID()))

	// Shedding it brings the entity back.
	assert.NilError(t, ent.Remove(Frozen{}))
	assert.True(t, movable.IsMember(ent.ID()))

	assert.NilError(t, ent.Remove(Position{}))
	assert.False(t, movable.IsMember(ent.ID()))
	assert.Equal(t, 0, movable.Count())
}

func TestDestroyedEntitiesLeaveTheirFamilies(t *testing.T) {
	nx := newTestNexus(t)

	movable, err := nx.Family(filter.Requires(Position{}))
	assert.NilError(t, err)

	ent := nx.CreateEntity()
	assert.NilError(t, ent.Assign(Position{}))
	assert.Equal(t, 1, movable.Count())

	assert.NilError(t, ent.Destroy())
	assert.Equal(t, 0, movable.Count())
	assert.False(t, movable.IsMember(ent.ID()))
}

func TestEqualTraitsReturnTheSameFamily(t *testing.T) {
	nx := newTestNexus(t)

	a, err := nx.Family(filter.Requires(Position{}), filter.Excludes(Frozen{}))
	assert.NilError(t, err)
	b, err := nx.Family(filter.Excludes(Frozen{}), filter.Requires(Position{}))
	assert.NilError(t, err)
	c, err := nx.Family(filter.RequiresNamed("position"), filter.ExcludesNamed("frozen"))
	assert.NilError(t, err)

	assert.Same(t, a, b)
	assert.Same(t, a, c)

	other, err := nx.Family(filter.Requires(Position{}))
	assert.NilError(t, err)
	assert.NotSame(t, a, other)
}

func TestLateFamiliesAreBackfilled(t *testing.T) {
	nx := newTestNexus(t)

	matching := nx.CreateEntity()
	assert.NilError(t, matching.Assign(Position{}))
	frozen := nx.CreateEntity()
	assert.NilError(t, frozen.Assign(Position{}))
	assert.NilError(t, frozen.Assign(Frozen{}))
	nx.CreateEntity()

	// The family is created after the entities and must pick up the ones
	// that already match.
	movable, err := nx.Family(filter.Requires(Position{}), filter.Excludes(Frozen{}))
	assert.NilError(t, err)
	assert.Equal(t, 1, movable.Count())
	assert.True(t, movable.IsMember(matching.ID()))
}

func TestMatchAllFamilyIncludesComponentlessEntities(t *testing.T) {
	nx := newTestNexus(t)

	everything, err := nx.Family()
	assert.NilError(t, err)

	bare := nx.CreateEntity()
	carrying := nx.CreateEntity()
	assert.NilError(t, carrying.Assign(Position{}))

	assert.Equal(t, 2, everything.Count())
	assert.True(t, everything.IsMember(bare.ID()))
	assert.True(t, everything.IsMember(carrying.ID()))
	assert.Equal(t, "ALL()", everything.Traits().Key())
}

func TestReplacingAComponentKeepsFamilyMembership(t *testing.T) {
	nx := newTestNexus(t)

	movable, err := nx.Family(filter.Requires(Position{}))
	assert.NilError(t, err)

	ent := nx.CreateEntity()
	assert.NilError(t, ent.Assign(Position{X: 1}))
	assert.Equal(t, 1, movable.Count())

	// Re-assigning an already carried type replaces the value in place.
	assert.NilError(t, ent.Assign(Position{X: 9}))
	assert.Equal(t, 1, movable.Count())

	got, ok := ent.Get(Position{})
	assert.True(t, ok)
	assert.Equal(t, Position{X: 9}, got)
}

func TestCanBecomeMemberDoesNotMutate(t *testing.T) {
	nx := newTestNexus(t)

	movable, err := nx.Family(filter.Requires(Position{}), filter.Excludes(Frozen{}))
	assert.NilError(t, err)

	ent := nx.CreateEntity()
	assert.False(t, nx.CanBecomeMember(ent.ID(), movable))

	assert.NilError(t, ent.Assign(Position{}))
	assert.True(t, nx.CanBecomeMember(ent.ID(), movable))
	assert.Equal(t, 1, movable.Count())

	assert.NilError(t, ent.Destroy())
	assert.False(t, nx.CanBecomeMember(ent.ID(), movable))
}

func TestEachMemberStopsWhenAsked(t *testing.T) {
	nx := newTestNexus(t)

	movable, err := nx.Family(filter.Requires(Position{}))
	assert.NilError(t, err)
	for i := 0; i < 5; i++ {
		assert.NilError(t, nx.CreateEntity().Assign(Position{X: float64(i)}))
	}

	var visited []types.EntityID
	nx.EachMember(movable, func(ent nexus.Entity) bool {
		visited = append(visited, ent.ID())
		return len(visited) < 2
	})
	assert.Len(t, visited, 2)
}

func TestFamilyMembershipSurvivesRecycling(t *testing.T) {
	nx := newTestNexus(t)

	movable, err := nx.Family(filter.Requires(Position{}))
	assert.NilError(t, err)

	ent := nx.CreateEntity()
	assert.NilError(t, ent.Assign(Position{}))
	assert.NilError(t, ent.Destroy())

	// The recycled ID starts componentless and must not inherit the dead
	// entity's membership.
	reborn := nx.CreateEntity()
	assert.Equal(t, ent.ID(), reborn.ID())
	assert.False(t, movable.IsMember(reborn.ID()))
	assert.Equal(t, 0, movable.Count())
}
