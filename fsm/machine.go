package fsm

import (
	"github.com/rotisserie/eris"

	"github.com/nexus-engine/nexus"
)

var (
	// ErrUndeclaredState is returned when a transition names a state the machine does
	// not know.
	ErrUndeclaredState = eris.New("state has not been declared")

	// ErrDuplicateState is returned when a state name is declared twice on one
	// machine.
	ErrDuplicateState = eris.New("state is already declared")
)

// State is a named set of component providers, at most one per component type.
type State struct {
	name      string
	providers []*Provider
	byName    map[string]*Provider
}

// Name returns the state's name.
func (s *State) Name() string {
	return s.name
}

// Machine drives one entity through declared states. The zero Machine is not usable;
// use NewMachine.
type Machine struct {
	entity  nexus.Entity
	states  map[string]*State
	current string
}

// NewMachine creates a machine for the given entity. The machine starts in no state;
// the first Transition assigns the full component set of its target.
func NewMachine(entity nexus.Entity) *Machine {
	return &Machine{
		entity: entity,
		states: make(map[string]*State),
	}
}

// Entity returns the entity this machine drives.
func (m *Machine) Entity() nexus.Entity {
	return m.entity
}

// Current returns the name of the machine's current state, or "" before the first
// transition.
func (m *Machine) Current() string {
	return m.current
}

// DeclareState adds a named state built from the given providers. Names must be
// non-empty and unique per machine, and a state may carry at most one provider per
// component type.
func (m *Machine) DeclareState(name string, providers ...*Provider) error {
	if name == "" {
		return eris.New("state name cannot be empty")
	}
	if _, exists := m.states[name]; exists {
		return eris.Wrapf(ErrDuplicateState, "cannot declare state %q twice", name)
	}
	state := &State{
		name:      name,
		providers: providers,
		byName:    make(map[string]*Provider, len(providers)),
	}
	for _, p := range providers {
		if p.err != nil {
			return eris.Wrapf(p.err, "bad provider in state %q", name)
		}
		if _, dup := state.byName[p.compName]; dup {
			return eris.Errorf("state %q declares two providers for component %q", name, p.compName)
		}
		state.byName[p.compName] = p
	}
	m.states[name] = state
	return nil
}

// Transition moves the machine into the named state and swaps the entity's
// components accordingly. Components whose provider also appears in the target state
// are left exactly as they are.
func (m *Machine) Transition(name string) error {
	next, ok := m.states[name]
	if !ok {
		return eris.Wrapf(ErrUndeclaredState, "cannot transition to %q", name)
	}
	var prev *State
	if m.current != "" {
		prev = m.states[m.current]
	}

	if prev != nil {
		for _, p := range prev.providers {
			if counterpart, shared := next.byName[p.compName]; shared && counterpart.Equal(p) {
				continue
			}
			if err := m.entity.Remove(p.proto); err != nil {
				return eris.Wrapf(err, "failed to leave state %q", m.current)
			}
		}
	}
	for _, p := range next.providers {
		if prev != nil {
			if counterpart, shared := prev.byName[p.compName]; shared && counterpart.Equal(p) {
				continue
			}
		}
		comp, err := p.provide()
		if err != nil {
			return eris.Wrapf(err, "provider %s failed entering state %q", p, name)
		}
		if err := m.entity.Assign(comp); err != nil {
			return eris.Wrapf(err, "failed to enter state %q", name)
		}
	}

	from := m.current
	m.current = name
	m.entity.Nexus().Logger().Debug().
		Uint64("entity_id", uint64(m.entity.ID())).
		Str("from", from).
		Str("to", name).
		Msg("state transition")
	return nil
}
