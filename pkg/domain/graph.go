package domain

import "fmt"

// Graph is a protocol described as states connected by message transitions.
// States are kept in insertion order so reports are deterministic.
type Graph struct {
	name   string
	states []*State
	index  map[string]int
	linked bool
}

// NewGraph creates an empty graph.
func NewGraph(name string) *Graph {
	return &Graph{
		name:  name,
		index: make(map[string]int),
	}
}

// Name returns the protocol name.
func (g *Graph) Name() string { return g.name }

// AddState registers a state. Names must be unique within the graph.
func (g *Graph) AddState(s *State) error {
	if s == nil {
		return nil
	}
	if _, exists := g.index[s.name]; exists {
		return fmt.Errorf("graph %q state %q: %w", g.name, s.name, ErrDuplicateState)
	}
	g.index[s.name] = len(g.states)
	g.states = append(g.states, s)
	return nil
}

// State returns the state called name, or nil.
func (g *Graph) State(name string) *State {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return g.states[i]
}

// States returns the states in insertion order.
func (g *Graph) States() []*State {
	out := make([]*State, len(g.states))
	copy(out, g.states)
	return out
}

// StateNames returns the state names in insertion order.
func (g *Graph) StateNames() []string {
	names := make([]string, len(g.states))
	for i, s := range g.states {
		names[i] = s.name
	}
	return names
}

// Len returns the number of states.
func (g *Graph) Len() int { return len(g.states) }

// Link resolves every outgoing transition against the graph and records it as
// incoming on its target state. It runs once; later calls are no-ops.
// On error no state is modified.
func (g *Graph) Link() error {
	if g.linked {
		return nil
	}

	type edge struct {
		target *State
		t      *Transition
	}
	var edges []edge
	for _, s := range g.states {
		for _, t := range s.outgoing {
			next := g.State(t.target)
			if next == nil {
				return fmt.Errorf("graph %q transition %q from %q to %q: %w",
					g.name, t.name, s.name, t.target, ErrUnresolvedState)
			}
			if next.kind == StateInitial {
				return fmt.Errorf("graph %q: state %q: %w", g.name, next.name, ErrInitialIncoming)
			}
			edges = append(edges, edge{target: next, t: t})
		}
	}

	for _, e := range edges {
		if err := e.target.AddIncoming(e.t); err != nil {
			return fmt.Errorf("graph %q: %w", g.name, err)
		}
	}
	g.linked = true
	return nil
}

// Linked reports whether Link completed.
func (g *Graph) Linked() bool { return g.linked }

// TauUse points at a silent transition found in a graph.
type TauUse struct {
	State      string
	Transition string
	Incoming   bool
}

// Taus lists every tau transition touching a state of the graph.
func (g *Graph) Taus() []TauUse {
	var uses []TauUse
	for _, s := range g.states {
		for _, t := range s.OutgoingTaus() {
			uses = append(uses, TauUse{State: s.name, Transition: t.name})
		}
		for _, t := range s.IncomingTaus() {
			uses = append(uses, TauUse{State: s.name, Transition: t.name, Incoming: true})
		}
	}
	return uses
}
