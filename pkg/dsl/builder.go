package dsl

import (
	"fmt"

	"github.com/aretw0/protocompat/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	name   string
	states []*StateBuilder
	byName map[string]*StateBuilder
}

// New creates a new graph builder.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		byName: make(map[string]*StateBuilder),
	}
}

// Add declares a state of the given kind.
// If the state already exists, it returns the existing builder and keeps its kind.
func (b *Builder) Add(name string, kind domain.StateKind) *StateBuilder {
	if sb, ok := b.byName[name]; ok {
		return sb
	}
	sb := &StateBuilder{name: name, kind: kind, builder: b}
	b.byName[name] = sb
	b.states = append(b.states, sb)
	return sb
}

// Initial declares an initial state.
func (b *Builder) Initial(name string) *StateBuilder { return b.Add(name, domain.StateInitial) }

// Normal declares an intermediate state.
func (b *Builder) Normal(name string) *StateBuilder { return b.Add(name, domain.StateNormal) }

// Final declares a final state.
func (b *Builder) Final(name string) *StateBuilder { return b.Add(name, domain.StateFinal) }

// Build compiles the declarations into a linked graph.
func (b *Builder) Build() (*domain.Graph, error) {
	g := domain.NewGraph(b.name)
	for _, sb := range b.states {
		if sb.err != nil {
			return nil, fmt.Errorf("state %q: %w", sb.name, sb.err)
		}
		state, err := domain.NewState(sb.name, sb.kind, nil, sb.outgoing)
		if err != nil {
			return nil, err
		}
		if err := g.AddState(state); err != nil {
			return nil, err
		}
	}
	if err := g.Link(); err != nil {
		return nil, err
	}
	return g, nil
}

// MustBuild is Build for fixtures and examples; it panics on error.
func (b *Builder) MustBuild() *domain.Graph {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}
