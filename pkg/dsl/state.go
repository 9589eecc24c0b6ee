package dsl

import "github.com/aretw0/protocompat/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	name     string
	kind     domain.StateKind
	outgoing []*domain.Transition
	err      error
	builder  *Builder
}

// Emit adds an emission of message name leading to target.
func (s *StateBuilder) Emit(name, target string, params ...string) *StateBuilder {
	return s.add(name, domain.TransitionEmission, target, params)
}

// Receive adds a reception of message name leading to target.
func (s *StateBuilder) Receive(name, target string, params ...string) *StateBuilder {
	return s.add(name, domain.TransitionReception, target, params)
}

// Tau adds a silent move to target.
func (s *StateBuilder) Tau(name, target string) *StateBuilder {
	return s.add(name, domain.TransitionTau, target, nil)
}

// Then returns the graph builder so declarations can keep chaining.
func (s *StateBuilder) Then() *Builder { return s.builder }

func (s *StateBuilder) add(name string, kind domain.TransitionKind, target string, params []string) *StateBuilder {
	if s.err != nil {
		return s
	}
	t, err := domain.NewTransition(name, kind, target, params...)
	if err != nil {
		s.err = err
		return s
	}
	s.outgoing = append(s.outgoing, t)
	return s
}
