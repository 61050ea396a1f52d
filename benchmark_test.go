package nexus_test

import (
	"fmt"
	"testing"

	"github.com/nexus-engine/nexus"
	"github.com/nexus-engine/nexus/assert"
	"github.com/nexus-engine/nexus/filter"
	"github.com/nexus-engine/nexus/snapshot"
)

type Health struct {
	Value int
}

func (Health) Name() string {
	return "health"
}

// setupNexus creates a nexus with numOfEntities entities already created, each
// carrying a Health component.
func setupNexus(t testing.TB, numOfEntities int) *nexus.Nexus {
	nx, err := nexus.New(
		nexus.WithLogLevel("disabled"),
		nexus.WithInitialCapacity(numOfEntities),
	)
	assert.NilError(t, err)
	assert.NilError(t, nexus.RegisterComponent[Health](nx))
	for _, ent := range nx.CreateMany(numOfEntities) {
		assert.NilError(t, ent.Assign(Health{}))
	}
	return nx
}

func BenchmarkCreateEntity(b *testing.B) {
	nx := setupNexus(b, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nx.CreateEntity()
	}
}

func BenchmarkAssignComponent(b *testing.B) {
	nx := setupNexus(b, 1)
	id := nx.Entities()[0]
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := nx.Assign(id, Health{Value: i}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFamilyEach(b *testing.B) {
	maxEntities := 10000
	for i := 1; i <= maxEntities; i *= 10 {
		nx := setupNexus(b, i)
		healthy, err := nx.Family(filter.Requires(Health{}))
		assert.NilError(b, err)
		name := fmt.Sprintf("%d entities", i)
		b.Run(
			name, func(b *testing.B) {
				for j := 0; j < b.N; j++ {
					count := 0
					nx.EachMember(healthy, func(nexus.Entity) bool {
						count++
						return true
					})
					if count != i {
						b.Fatalf("expected %d members, got %d", i, count)
					}
				}
			},
		)
	}
}

func BenchmarkSnapshotTake(b *testing.B) {
	maxEntities := 10000
	for i := 1; i <= maxEntities; i *= 10 {
		nx := setupNexus(b, i)
		name := fmt.Sprintf("%d entities", i)
		b.Run(
			name, func(b *testing.B) {
				for j := 0; j < b.N; j++ {
					if _, err := snapshot.Take(nx); err != nil {
						b.Fatal(err)
					}
				}
			},
		)
	}
}
