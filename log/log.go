// Package log renders engine state into structured zerolog events.
package log

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/nexus-engine/nexus/filter"
	"github.com/nexus-engine/nexus/types"
)

// Loggable exposes the registered component types of an engine for logging.
type Loggable interface {
	RegisteredComponents() []types.ComponentMetadata
}

func loadComponentIntoArrayLogger(
	component types.ComponentMetadata,
	arrayLogger *zerolog.Array,
) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Int("component_id", int(component.ID()))
	dictLogger = dictLogger.Str("component_name", component.Name())
	return arrayLogger.Dict(dictLogger)
}

func loadComponentsToEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	components := target.RegisteredComponents()
	sort.Slice(components, func(i, j int) bool {
		return components[i].ID() < components[j].ID()
	})
	zeroLoggerEvent.Int("total_components", len(components))
	arrayLogger := zerolog.Arr()
	for _, _component := range components {
		arrayLogger = loadComponentIntoArrayLogger(_component, arrayLogger)
	}
	return zeroLoggerEvent.Array("components", arrayLogger)
}

func loadEntityIntoEvent(
	zeroLoggerEvent *zerolog.Event, entityID types.EntityID,
	components []types.ComponentMetadata,
) *zerolog.Event {
	arrayLogger := zerolog.Arr()
	for _, _component := range components {
		arrayLogger = loadComponentIntoArrayLogger(_component, arrayLogger)
	}
	zeroLoggerEvent.Array("components", arrayLogger)
	return zeroLoggerEvent.Uint64("entity_id", uint64(entityID))
}

// Components logs all component info related to the engine.
func Components(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadComponentsToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}

// Entity logs entity info given an entityID and the component types it carries.
func Entity(
	logger *zerolog.Logger,
	level zerolog.Level, entityID types.EntityID,
	components []types.ComponentMetadata,
) {
	zeroLoggerEvent := logger.WithLevel(level)
	loadEntityIntoEvent(zeroLoggerEvent, entityID, components).Send()
}

// Family logs a family's trait set and current member count.
func Family(logger *zerolog.Logger, level zerolog.Level, traits filter.TraitSet, memberCount int) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent.Str("traits", traits.String())
	zeroLoggerEvent.Int("member_count", memberCount)
	zeroLoggerEvent.Send()
}
