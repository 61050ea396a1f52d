// Package fsm attaches a finite state machine to an entity, where each state is a
// set of component providers. Transitioning swaps the entity's components: values
// provided only by the old state are removed, values provided only by the new state
// are assigned, and a provider declared by both states leaves its component
// untouched, runtime modifications included.
//
// Providers are compared by kind and key, never by function identity, so two states
// built in different places can still share a component by declaring equal providers.
package fsm

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/rotisserie/eris"

	"github.com/nexus-engine/nexus/codec"
	"github.com/nexus-engine/nexus/types"
)

// Provider produces the component value a state attaches to its entity. Construct
// providers with Instance, OfType, Singleton or Factory.
type Provider struct {
	kind     string
	key      string
	compName string
	proto    types.Component
	provide  func() (types.Component, error)

	// err holds a construction failure, surfaced when the provider is declared.
	err error
}

// Instance provides the given value itself. Two Instance providers are equal when
// their values encode to the same bytes.
func Instance(comp types.Component) *Provider {
	p := &Provider{
		kind:     "instance",
		compName: comp.Name(),
		proto:    comp,
		provide:  func() (types.Component, error) { return comp, nil },
	}
	bz, err := codec.Encode(comp)
	if err != nil {
		p.err = eris.Wrapf(err, "cannot derive instance key for component %q", comp.Name())
		return p
	}
	p.key = fmt.Sprintf("%s/%x", comp.Name(), xxhash.Sum64(bz))
	return p
}

// OfType provides a fresh zero value of T on every provision. All OfType providers
// for the same component type are equal.
func OfType[T types.Component]() *Provider {
	var zero T
	return &Provider{
		kind:     "type",
		key:      zero.Name(),
		compName: zero.Name(),
		proto:    zero,
		provide: func() (types.Component, error) {
			var t T
			return t, nil
		},
	}
}

// Singleton provides one lazily built value of T: init runs on the provider's first
// provision and the result is reused afterwards. Without init the zero value is
// used. All Singleton providers for the same component type are equal.
func Singleton[T types.Component](init ...func() T) *Provider {
	var zero T
	var initFn func() T
	if len(init) > 0 {
		initFn = init[0]
	}
	var cached T
	built := false
	return &Provider{
		kind:     "singleton",
		key:      zero.Name(),
		compName: zero.Name(),
		proto:    zero,
		provide: func() (types.Component, error) {
			if !built {
				if initFn != nil {
					cached = initFn()
				}
				built = true
			}
			return cached, nil
		},
	}
}

// Factory provides fn's result on every provision. Factory providers are equal when
// they are for the same component type and carry the same key, whatever functions
// they wrap.
func Factory[T types.Component](key string, fn func() T) *Provider {
	var zero T
	return &Provider{
		kind:     "factory",
		key:      zero.Name() + "/" + key,
		compName: zero.Name(),
		proto:    zero,
		provide:  func() (types.Component, error) { return fn(), nil },
	}
}

// ComponentName returns the name of the component type this provider produces.
func (p *Provider) ComponentName() string {
	return p.compName
}

// Equal reports whether two providers have the same identity. Equal providers stand
// for the same component value as far as transitions are concerned.
func (p *Provider) Equal(other *Provider) bool {
	return p.kind == other.kind && p.key == other.key
}

func (p *Provider) String() string {
	return p.kind + "(" + p.key + ")"
}
