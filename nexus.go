// Package nexus implements an entity-component engine built around three ideas:
// integer entity handles that are recycled on destruction, one dense store per
// registered component type, and families, which are cached entity sets for
// normalized trait predicates kept current on every mutation.
//
// A Nexus is single-threaded: all access must come from one goroutine. Query
// operations report absence instead of failing; mutating operations fail loudly on
// caller misuse such as touching a destroyed entity or an unregistered component
// type.
package nexus

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/nexus-engine/nexus/component"
	"github.com/nexus-engine/nexus/family"
	"github.com/nexus-engine/nexus/filter"
	nexuslog "github.com/nexus-engine/nexus/log"
	"github.com/nexus-engine/nexus/statsd"
	"github.com/nexus-engine/nexus/storage"
	"github.com/nexus-engine/nexus/types"
)

var _ nexuslog.Loggable = &Nexus{}

// Nexus owns all entity state: the identity generator, one storage per registered
// component type, and the family caches.
type Nexus struct {
	id  string
	cfg Config
	log zerolog.Logger

	// Core modules
	componentManager *component.Manager
	familyManager    *family.Manager

	// Storage
	stores map[types.ComponentID]*storage.Store
	masks  []filter.Mask
	ids    *idGenerator
}

// New creates an empty Nexus. Configuration is read from the environment and options
// override it.
func New(opts ...Option) (*Nexus, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, eris.Wrap(err, "failed to load nexus config")
	}

	nx := &Nexus{
		id:  uuid.NewString(),
		cfg: *cfg,
	}

	// Config-level options must run before the logger and statsd client are built
	// from the config.
	for _, opt := range opts {
		if opt.configOption != nil {
			opt.configOption(&nx.cfg)
		}
	}
	if err := nx.cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(nx.cfg.LogLevel)
	if err != nil {
		return nil, eris.Wrap(err, "invalid log level")
	}
	var out io.Writer = os.Stderr
	if nx.cfg.LogPretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	nx.log = zerolog.New(out).Level(level).With().
		Timestamp().
		Str("nexus", nx.cfg.NexusName).
		Logger()

	nx.componentManager = component.NewManager()
	nx.familyManager = family.NewManager(nx.resolveComponentName)
	nx.stores = make(map[types.ComponentID]*storage.Store)
	nx.masks = make([]filter.Mask, 0, nx.cfg.InitialCapacity)
	nx.ids = newIDGenerator(nx.cfg.InitialCapacity)

	for _, opt := range opts {
		if opt.nexusOption != nil {
			opt.nexusOption(nx)
		}
	}

	if nx.cfg.StatsdAddress != "" {
		tags := []string{"nexus_name:" + nx.cfg.NexusName}
		if err := statsd.Init(nx.cfg.StatsdAddress, tags); err != nil {
			return nil, eris.Wrap(err, "unable to init statsd")
		}
	} else {
		nx.log.Debug().Msg("statsd is disabled")
	}

	nx.log.Info().Str("nexus_id", nx.id).Msg("nexus initialized")
	return nx, nil
}

// RegisterComponent adds a component type to the registry and creates its backing
// store. Every component type must be registered before it is assigned or queried;
// registration order fixes the process-local component IDs.
func (n *Nexus) RegisterComponent(compMetadata types.ComponentMetadata) error {
	if err := n.componentManager.RegisterComponent(compMetadata); err != nil {
		return err
	}
	n.stores[compMetadata.ID()] = storage.NewStore(compMetadata, n.cfg.InitialCapacity)
	n.log.Debug().
		Str("component_name", compMetadata.Name()).
		Int("component_id", int(compMetadata.ID())).
		Uint64("stable_type_id", uint64(compMetadata.StableTypeID())).
		Msg("registered component")
	return nil
}

// CreateEntity creates a new, component-less entity and returns its handle. Creation
// always succeeds; the returned ID may be one recycled from a destroyed entity.
func (n *Nexus) CreateEntity() Entity {
	id := n.ids.create()
	n.ensureMask(id)
	n.masks[id] = filter.Mask{}
	n.familyManager.OnCreate(id)
	statsd.EmitMutationCount("create", "")
	statsd.EmitEntityGauge(n.ids.count())
	nexuslog.Entity(&n.log, zerolog.DebugLevel, id, nil)
	return Entity{nexus: n, id: id}
}

// CreateMany creates num component-less entities in one call.
func (n *Nexus) CreateMany(num int) []Entity {
	entities := make([]Entity, 0, num)
	for i := 0; i < num; i++ {
		entities = append(entities, n.CreateEntity())
	}
	return entities
}

// Destroy removes the entity, all of its components and its family memberships, then
// releases its ID for recycling. Destroying an entity that is not live is an error.
func (n *Nexus) Destroy(id types.EntityID) error {
	if !n.ids.isLive(id) {
		return eris.Wrap(ErrEntityDoesNotExist, fmt.Sprintf("cannot destroy entity %d", id))
	}
	mask := n.masks[id]
	mask.Each(func(compID types.ComponentID) bool {
		n.stores[compID].Remove(id)
		return true
	})
	n.familyManager.OnDestroy(id)
	n.masks[id] = filter.Mask{}
	if err := n.ids.release(id); err != nil {
		return err
	}
	statsd.EmitMutationCount("destroy", "")
	statsd.EmitEntityGauge(n.ids.count())
	n.log.Debug().Uint64("entity_id", uint64(id)).Msg("destroyed entity")
	return nil
}

// Assign attaches comp to the entity. If the entity already carries the type, the
// previous instance is overwritten in place; replacement changes no family
// membership because the entity's type set is unchanged.
func (n *Nexus) Assign(id types.EntityID, comp types.Component) error {
	if !n.ids.isLive(id) {
		return eris.Wrap(ErrEntityDoesNotExist,
			fmt.Sprintf("cannot assign component %q to entity %d", comp.Name(), id))
	}
	compMetadata, err := n.componentManager.GetComponentByName(comp.Name())
	if err != nil {
		return err
	}
	added := n.stores[compMetadata.ID()].Insert(id, comp)
	if added {
		n.masks[id].Set(compMetadata.ID())
		n.familyManager.OnAssign(id, compMetadata.ID(), n.masks[id])
	}
	statsd.EmitMutationCount("assign", comp.Name())
	n.log.Debug().
		Str("component_name", comp.Name()).
		Uint64("entity_id", uint64(id)).
		Bool("replaced", !added).
		Msg("assigned component")
	return nil
}

// Remove detaches comp's type from the entity. Removing a type the entity does not
// carry is a no-op; removing from an entity that is not live is an error.
func (n *Nexus) Remove(id types.EntityID, comp types.Component) error {
	if !n.ids.isLive(id) {
		return eris.Wrap(ErrEntityDoesNotExist,
			fmt.Sprintf("cannot remove component %q from entity %d", comp.Name(), id))
	}
	compMetadata, err := n.componentManager.GetComponentByName(comp.Name())
	if err != nil {
		return err
	}
	removed := n.stores[compMetadata.ID()].Remove(id)
	if removed {
		n.masks[id].Clear(compMetadata.ID())
		n.familyManager.OnRemove(id, compMetadata.ID(), n.masks[id])
		statsd.EmitMutationCount("remove", comp.Name())
		n.log.Debug().
			Str("component_name", comp.Name()).
			Uint64("entity_id", uint64(id)).
			Msg("removed component")
	}
	return nil
}

// Component returns the entity's instance of comp's type. Absence is not an error:
// a missing component, a destroyed entity and an unregistered type all report false.
func (n *Nexus) Component(id types.EntityID, comp types.Component) (any, bool) {
	compMetadata, err := n.componentManager.GetComponentByName(comp.Name())
	if err != nil {
		return nil, false
	}
	if !n.ids.isLive(id) {
		return nil, false
	}
	return n.stores[compMetadata.ID()].Get(id)
}

// Has reports whether the entity currently carries comp's type.
func (n *Nexus) Has(id types.EntityID, comp types.Component) bool {
	_, ok := n.Component(id, comp)
	return ok
}

// IsLive reports whether id refers to a live entity.
func (n *Nexus) IsLive(id types.EntityID) bool {
	return n.ids.isLive(id)
}

// ComponentsFor returns the metadata of every component type the entity carries, in
// ascending component ID order. A dead entity reports ok == false.
func (n *Nexus) ComponentsFor(id types.EntityID) ([]types.ComponentMetadata, bool) {
	if !n.ids.isLive(id) {
		return nil, false
	}
	mask := n.masks[id]
	comps := make([]types.ComponentMetadata, 0, mask.Count())
	mask.Each(func(compID types.ComponentID) bool {
		comps = append(comps, n.stores[compID].Component())
		return true
	})
	return comps, true
}

// Entities returns every live entity ID in ascending order. The slice is a copy, so
// it stays valid while the caller mutates the Nexus.
func (n *Nexus) Entities() []types.EntityID {
	return n.ids.liveIDs()
}

// EntityCount returns the number of live entities.
func (n *Nexus) EntityCount() int {
	return n.ids.count()
}

// Family returns the family for the given clauses, creating and backfilling it on
// first request. Equal clause sets, in any order, return the same *Family.
func (n *Nexus) Family(clauses ...filter.Clause) (*family.Family, error) {
	traits, err := filter.NewTraitSet(clauses...)
	if err != nil {
		return nil, err
	}
	return n.FamilyMatching(traits)
}

// FamilyMatching is Family for callers that already hold a normalized trait set, such
// as the cql package.
func (n *Nexus) FamilyMatching(traits filter.TraitSet) (*family.Family, error) {
	f, created, err := n.familyManager.Family(traits)
	if err != nil {
		return nil, err
	}
	if created {
		// A fresh family starts empty; evaluate the entities that already exist.
		for _, id := range n.ids.liveIDs() {
			n.familyManager.Refresh(f, id, n.masks[id])
		}
		nexuslog.Family(&n.log, zerolog.DebugLevel, traits, f.Count())
	}
	return f, nil
}

// CanBecomeMember reports whether the entity currently satisfies the family's trait
// set. It never changes the family's cache.
func (n *Nexus) CanBecomeMember(id types.EntityID, f *family.Family) bool {
	if !n.ids.isLive(id) {
		return false
	}
	return f.Matches(n.masks[id])
}

// EachMember calls fn with a handle for every member of f until fn returns false.
func (n *Nexus) EachMember(f *family.Family, fn func(Entity) bool) {
	f.Each(func(id types.EntityID) bool {
		return fn(Entity{nexus: n, id: id})
	})
}

// RegisteredComponents returns the metadata of every registered component type in
// registration order.
func (n *Nexus) RegisteredComponents() []types.ComponentMetadata {
	return n.componentManager.GetComponents()
}

// ComponentByName returns the metadata registered under name.
func (n *Nexus) ComponentByName(name string) (types.ComponentMetadata, error) {
	return n.componentManager.GetComponentByName(name)
}

// Logger returns the instance logger. Collaborators derive their own loggers from it
// so their output carries the same instance context.
func (n *Nexus) Logger() *zerolog.Logger {
	return &n.log
}

// Config returns the resolved configuration.
func (n *Nexus) Config() Config {
	return n.cfg
}

// resolveComponentName adapts the component registry for the family manager.
func (n *Nexus) resolveComponentName(name string) (types.ComponentID, bool) {
	compMetadata, err := n.componentManager.GetComponentByName(name)
	if err != nil {
		return 0, false
	}
	return compMetadata.ID(), true
}

func (n *Nexus) ensureMask(id types.EntityID) {
	for int(id) >= len(n.masks) {
		n.masks = append(n.masks, filter.Mask{})
	}
}
