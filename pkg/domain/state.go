package domain

import "fmt"

// StateKind classifies a protocol state.
type StateKind int

const (
	StateNormal  StateKind = iota // Intermediate state
	StateInitial                  // Entry point, never targeted by a transition
	StateFinal                    // Sink, never left by a transition
)

// String returns the lower-case name used by the description format.
func (k StateKind) String() string {
	switch k {
	case StateNormal:
		return "normal"
	case StateInitial:
		return "initial"
	case StateFinal:
		return "final"
	default:
		return fmt.Sprintf("StateKind(%d)", int(k))
	}
}

// ParseStateKind maps the description keyword to a kind.
func ParseStateKind(s string) (StateKind, error) {
	switch s {
	case "normal":
		return StateNormal, nil
	case "initial":
		return StateInitial, nil
	case "final":
		return StateFinal, nil
	default:
		return 0, fmt.Errorf("unknown state kind %q", s)
	}
}

// State is a node of a protocol graph.
// It owns its outgoing transitions; incoming ones are filled by Graph.Link.
type State struct {
	name     string
	kind     StateKind
	incoming []*Transition
	outgoing []*Transition
}

// NewState builds a state with optional initial transition lists.
// An initial state cannot have incoming transitions and a final state cannot have outgoing ones.
func NewState(name string, kind StateKind, incoming, outgoing []*Transition) (*State, error) {
	s := &State{
		name:     name,
		kind:     kind,
		incoming: make([]*Transition, 0, len(incoming)),
		outgoing: make([]*Transition, 0, len(outgoing)),
	}
	for _, t := range incoming {
		if err := s.AddIncoming(t); err != nil {
			return nil, err
		}
	}
	for _, t := range outgoing {
		if err := s.AddOutgoing(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// AddIncoming appends a transition arriving at this state. A nil transition is ignored.
func (s *State) AddIncoming(t *Transition) error {
	if t == nil {
		return nil
	}
	if s.kind == StateInitial {
		return fmt.Errorf("state %q: %w", s.name, ErrInitialIncoming)
	}
	s.incoming = append(s.incoming, t)
	return nil
}

// AddOutgoing appends a transition leaving this state. A nil transition is ignored.
func (s *State) AddOutgoing(t *Transition) error {
	if t == nil {
		return nil
	}
	if s.kind == StateFinal {
		return fmt.Errorf("state %q: %w", s.name, ErrFinalOutgoing)
	}
	s.outgoing = append(s.outgoing, t)
	return nil
}

func (s *State) Name() string    { return s.name }
func (s *State) Kind() StateKind { return s.kind }

func (s *State) IsInitial() bool { return s.kind == StateInitial }
func (s *State) IsFinal() bool   { return s.kind == StateFinal }

// Incoming returns a copy of the incoming transitions.
func (s *State) Incoming() []*Transition { return cloneTransitions(s.incoming) }

// Outgoing returns a copy of the outgoing transitions.
func (s *State) Outgoing() []*Transition { return cloneTransitions(s.outgoing) }

func (s *State) NumIncoming() int { return len(s.incoming) }
func (s *State) NumOutgoing() int { return len(s.outgoing) }

// IncomingByName returns the first incoming transition called name, or nil.
func (s *State) IncomingByName(name string) *Transition { return findByName(s.incoming, name) }

// OutgoingByName returns the first outgoing transition called name, or nil.
func (s *State) OutgoingByName(name string) *Transition { return findByName(s.outgoing, name) }

// OutgoingOf filters the outgoing transitions by kind, keeping their order.
func (s *State) OutgoingOf(kind TransitionKind) []*Transition { return filterKind(s.outgoing, kind) }

// IncomingOf filters the incoming transitions by kind, keeping their order.
func (s *State) IncomingOf(kind TransitionKind) []*Transition { return filterKind(s.incoming, kind) }

// Emissions are the outgoing emission transitions.
func (s *State) Emissions() []*Transition { return s.OutgoingOf(TransitionEmission) }

// Receptions are the outgoing reception transitions.
func (s *State) Receptions() []*Transition { return s.OutgoingOf(TransitionReception) }

func (s *State) OutgoingTaus() []*Transition { return s.OutgoingOf(TransitionTau) }
func (s *State) IncomingTaus() []*Transition { return s.IncomingOf(TransitionTau) }

// HasTau reports whether any silent transition enters or leaves the state.
func (s *State) HasTau() bool {
	return len(s.OutgoingTaus()) > 0 || len(s.IncomingTaus()) > 0
}

func cloneTransitions(ts []*Transition) []*Transition {
	out := make([]*Transition, len(ts))
	copy(out, ts)
	return out
}

func findByName(ts []*Transition, name string) *Transition {
	for _, t := range ts {
		if t.name == name {
			return t
		}
	}
	return nil
}

func filterKind(ts []*Transition, kind TransitionKind) []*Transition {
	out := make([]*Transition, 0, len(ts))
	for _, t := range ts {
		if t.kind == kind {
			out = append(out, t)
		}
	}
	return out
}
