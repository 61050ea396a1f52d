package filter

import (
	"github.com/nexus-engine/nexus/types"
)

// Excludes declares component types that no member of a family may carry.
func Excludes(components ...types.Component) Clause {
	return Clause{names: componentNames(components), exclude: true}
}

// ExcludesNamed is the name-based form of Excludes, for callers that build trait sets
// from text rather than from component values.
func ExcludesNamed(names ...string) Clause {
	return Clause{names: append([]string{}, names...), exclude: true}
}
