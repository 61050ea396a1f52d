package filter

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/nexus-engine/nexus/types"
)

// ErrOverlappingClauses is returned when a trait set both requires and excludes the
// same component type. Such a set can never match any entity.
var ErrOverlappingClauses = eris.New("trait set requires and excludes the same component")

// TraitSet is the normalized description of a family of entities: the component types
// every member must carry and the component types no member may carry. Trait sets are
// immutable once built. Two trait sets built from the same clauses in any order are
// equal and render to the same canonical key.
type TraitSet struct {
	required []string
	excluded []string
	key      string
}

// NewTraitSet normalizes clauses into a TraitSet. Component names are deduplicated and
// sorted, so neither clause order nor repetition affects the result.
func NewTraitSet(clauses ...Clause) (TraitSet, error) {
	requiredSet := make(map[string]struct{})
	excludedSet := make(map[string]struct{})
	for _, clause := range clauses {
		for _, name := range clause.names {
			if name == "" {
				return TraitSet{}, eris.New("component name must not be empty")
			}
			if clause.exclude {
				excludedSet[name] = struct{}{}
			} else {
				requiredSet[name] = struct{}{}
			}
		}
	}
	for name := range excludedSet {
		if _, ok := requiredSet[name]; ok {
			return TraitSet{}, eris.Wrap(ErrOverlappingClauses, name)
		}
	}

	traits := TraitSet{
		required: sortedNames(requiredSet),
		excluded: sortedNames(excludedSet),
	}
	traits.key = traits.render()
	return traits, nil
}

// Required returns the component names every member must carry, in sorted order.
func (t TraitSet) Required() []string {
	return append([]string{}, t.required...)
}

// Excluded returns the component names no member may carry, in sorted order.
func (t TraitSet) Excluded() []string {
	return append([]string{}, t.excluded...)
}

// Key returns the canonical text form of the trait set. Equal trait sets have equal
// keys, which is what the family registry dedupes on.
func (t TraitSet) Key() string {
	return t.key
}

// Equal reports whether both trait sets require and exclude the same component types.
func (t TraitSet) Equal(other TraitSet) bool {
	return t.key == other.key
}

func (t TraitSet) String() string {
	return t.key
}

// Matches reports whether an entity carrying exactly the given components would belong
// to the family this trait set describes.
func (t TraitSet) Matches(components []types.Component) bool {
	for _, name := range t.required {
		if !matchComponentName(components, name) {
			return false
		}
	}
	for _, name := range t.excluded {
		if matchComponentName(components, name) {
			return false
		}
	}
	return true
}

// render produces the canonical text form. It is the same syntax the cql package
// parses, so a trait set's key can be fed back through Parse.
func (t TraitSet) render() string {
	var sb strings.Builder
	if len(t.required) > 0 {
		sb.WriteString("WITH(")
		sb.WriteString(strings.Join(t.required, ", "))
		sb.WriteString(")")
	}
	if len(t.excluded) > 0 {
		if sb.Len() > 0 {
			sb.WriteString(" & ")
		}
		sb.WriteString("WITHOUT(")
		sb.WriteString(strings.Join(t.excluded, ", "))
		sb.WriteString(")")
	}
	if sb.Len() == 0 {
		return "ALL()"
	}
	return sb.String()
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
