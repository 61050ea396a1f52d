// Package cql parses the component query language, a textual form of trait sets.
//
// The grammar accepts WITH(a, b) clauses naming required component types, WITHOUT(c)
// clauses naming excluded ones and ALL() for the unconstrained set, joined by "&":
//
//	WITH(Position, Velocity) & WITHOUT(Frozen)
//
// Parse returns the normalized trait set, so equal queries with their clauses in any
// order produce equal trait sets. Component names are not resolved here; an
// unregistered name surfaces when the trait set is turned into a family.
package cql

import (
	"github.com/alecthomas/participle/v2"
	"github.com/rotisserie/eris"

	"github.com/nexus-engine/nexus/filter"
)

type cqlComponent struct {
	Name string `@Ident`
}

type cqlAll struct{}

func (a *cqlAll) Capture(values []string) error {
	if values[0] == "ALL" && values[1] == "(" && values[2] == ")" {
		*a = cqlAll{}
	}
	return nil
}

type cqlWith struct {
	Components []*cqlComponent `"WITH" "(" (@@ ",")* @@ ")"`
}

type cqlWithout struct {
	Components []*cqlComponent `"WITHOUT" "(" (@@ ",")* @@ ")"`
}

type cqlValue struct {
	All     *cqlAll     `@("ALL" "(" ")")`
	With    *cqlWith    `| @@`
	Without *cqlWithout `| @@`
}

type cqlTerm struct {
	Left  *cqlValue   `@@`
	Right []*cqlValue `("&" @@)*`
}

var internalCQLParser = participle.MustBuild[cqlTerm]()

func valueToClause(value *cqlValue) (filter.Clause, error) {
	switch {
	case value.All != nil:
		// ALL() constrains nothing, so it contributes an empty clause.
		return filter.RequiresNamed(), nil
	case value.With != nil:
		if len(value.With.Components) == 0 {
			return filter.Clause{}, eris.New("WITH cannot have zero parameters")
		}
		return filter.RequiresNamed(componentNames(value.With.Components)...), nil
	case value.Without != nil:
		if len(value.Without.Components) == 0 {
			return filter.Clause{}, eris.New("WITHOUT cannot have zero parameters")
		}
		return filter.ExcludesNamed(componentNames(value.Without.Components)...), nil
	default:
		return filter.Clause{}, eris.New("unknown error during conversion from CQL AST to trait clause")
	}
}

func componentNames(components []*cqlComponent) []string {
	names := make([]string, 0, len(components))
	for _, comp := range components {
		names = append(names, comp.Name)
	}
	return names
}

// Parse parses cqlText into a normalized trait set.
func Parse(cqlText string) (filter.TraitSet, error) {
	term, err := internalCQLParser.ParseString("", cqlText)
	if err != nil {
		return filter.TraitSet{}, eris.Wrap(err, "")
	}
	if term.Left == nil {
		return filter.TraitSet{}, eris.New("not enough values in expression")
	}

	clauses := make([]filter.Clause, 0, 1+len(term.Right))
	clause, err := valueToClause(term.Left)
	if err != nil {
		return filter.TraitSet{}, err
	}
	clauses = append(clauses, clause)
	for _, value := range term.Right {
		clause, err = valueToClause(value)
		if err != nil {
			return filter.TraitSet{}, err
		}
		clauses = append(clauses, clause)
	}
	return filter.NewTraitSet(clauses...)
}
