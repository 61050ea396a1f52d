package filter

import (
	"github.com/nexus-engine/nexus/types"
)

// Requires declares component types that every member of a family must carry.
func Requires(components ...types.Component) Clause {
	return Clause{names: componentNames(components)}
}

// RequiresNamed is the name-based form of Requires, for callers that build trait sets
// from text rather than from component values.
func RequiresNamed(names ...string) Clause {
	return Clause{names: append([]string{}, names...)}
}
