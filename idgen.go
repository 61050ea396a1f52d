package nexus

import (
	"fmt"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/nexus-engine/nexus/types"
)

// idGenerator hands out entity IDs. Destroyed IDs land on a free stack and are handed
// out again before any new ID is minted, so a long-lived process does not burn through
// the ID space. The most recently destroyed ID is reused first.
type idGenerator struct {
	nextID   types.EntityID
	recycled []types.EntityID
	live     map[types.EntityID]struct{}
}

func newIDGenerator(capacity int) *idGenerator {
	return &idGenerator{
		recycled: make([]types.EntityID, 0, capacity),
		live:     make(map[types.EntityID]struct{}, capacity),
	}
}

// create returns a recycled ID if one is available, otherwise a freshly minted one.
func (g *idGenerator) create() types.EntityID {
	var id types.EntityID
	if n := len(g.recycled); n > 0 {
		id = g.recycled[n-1]
		g.recycled = g.recycled[:n-1]
	} else {
		id = g.nextID
		g.nextID++
	}
	g.live[id] = struct{}{}
	return id
}

// release puts id back on the free stack. Releasing an ID that is not live is a caller
// bug and is reported loudly instead of being absorbed.
func (g *idGenerator) release(id types.EntityID) error {
	if !g.isLive(id) {
		return eris.Wrap(ErrEntityDoesNotExist, fmt.Sprintf("cannot release entity %d", id))
	}
	delete(g.live, id)
	g.recycled = append(g.recycled, id)
	return nil
}

func (g *idGenerator) isLive(id types.EntityID) bool {
	_, ok := g.live[id]
	return ok
}

// liveIDs returns every live ID in ascending order.
func (g *idGenerator) liveIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(g.live))
	for id := range g.live {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (g *idGenerator) count() int {
	return len(g.live)
}
