package iterators_test

import (
	"testing"

	"github.com/nexus-engine/nexus/assert"
	"github.com/nexus-engine/nexus/iterators"
	"github.com/nexus-engine/nexus/types"
)

type idList []types.EntityID

func (l idList) Len() int                { return len(l) }
func (l idList) At(i int) types.EntityID { return l[i] }

func TestEntityIteratorWalksInOrder(t *testing.T) {
	it := iterators.NewEntityIterator(idList{4, 2, 9})

	var got []types.EntityID
	for it.HasNext() {
		id, err := it.Next()
		assert.NilError(t, err)
		got = append(got, id)
	}
	assert.DeepEqual(t, []types.EntityID{4, 2, 9}, got)
}

func TestEntityIteratorExhaustion(t *testing.T) {
	it := iterators.NewEntityIterator(idList{})
	assert.False(t, it.HasNext())
	_, err := it.Next()
	assert.ErrorIs(t, err, iterators.ErrIteratorExhausted)
}
