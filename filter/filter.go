// Package filter describes which component types an entity must and must not carry.
//
// Callers build clauses with Requires and Excludes and normalize them into a TraitSet.
// The trait set is the identity of a family: two trait sets built from the same clauses
// in any order compare equal and share one canonical key.
package filter

// Clause is one piece of a trait set: a group of component names that members must
// carry, or must not carry.
type Clause struct {
	names   []string
	exclude bool
}

// Names returns the component names the clause mentions.
func (c Clause) Names() []string {
	return append([]string{}, c.names...)
}

// IsExclude reports whether the clause forbids its component types rather than
// requiring them.
func (c Clause) IsExclude() bool {
	return c.exclude
}
