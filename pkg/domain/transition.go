package domain

import (
	"fmt"
	"strings"
)

// TransitionKind tells whether a transition emits a message, receives one, or is silent.
type TransitionKind int

const (
	// TransitionTau is an internal (silent) move. It never carries parameters.
	TransitionTau TransitionKind = iota
	// TransitionEmission sends a message.
	TransitionEmission
	// TransitionReception consumes a message.
	TransitionReception
)

// String returns the lower-case name used by the description format.
func (k TransitionKind) String() string {
	switch k {
	case TransitionTau:
		return "tau"
	case TransitionEmission:
		return "emission"
	case TransitionReception:
		return "reception"
	default:
		return fmt.Sprintf("TransitionKind(%d)", int(k))
	}
}

// ParseTransitionKind maps the description keyword to a kind.
// "tau" is accepted so programmatic sources can express silent moves; the file format does not.
func ParseTransitionKind(s string) (TransitionKind, error) {
	switch s {
	case "tau":
		return TransitionTau, nil
	case "emission":
		return TransitionEmission, nil
	case "reception":
		return TransitionReception, nil
	default:
		return 0, fmt.Errorf("unknown transition kind %q", s)
	}
}

// ParamSeparator splits a parameter entry into its name and data type ("id:int").
const ParamSeparator = ":"

// Transition is a labeled edge to another state of the same graph.
// The target is referenced by name and resolved by Graph.Link.
type Transition struct {
	name   string
	kind   TransitionKind
	target string
	params []string
}

// NewTransition validates and builds a transition.
// The params slice is copied, so the caller may reuse it.
func NewTransition(name string, kind TransitionKind, target string, params ...string) (*Transition, error) {
	if kind == TransitionTau && len(params) > 0 {
		return nil, fmt.Errorf("transition %q: %w", name, ErrTauParameters)
	}
	for _, p := range params {
		if _, _, ok := splitParam(p); !ok {
			return nil, fmt.Errorf("transition %q parameter %q: %w", name, p, ErrMalformedParameter)
		}
	}

	owned := make([]string, len(params))
	copy(owned, params)

	return &Transition{
		name:   name,
		kind:   kind,
		target: target,
		params: owned,
	}, nil
}

// Name returns the message name.
func (t *Transition) Name() string { return t.name }

// Kind returns the transition direction.
func (t *Transition) Kind() TransitionKind { return t.kind }

// Target returns the name of the state this transition leads to.
func (t *Transition) Target() string { return t.target }

// Params returns a copy of the raw "name:type" entries.
func (t *Transition) Params() []string {
	out := make([]string, len(t.params))
	copy(out, t.params)
	return out
}

// NumParams returns how many parameters the message carries.
func (t *Transition) NumParams() int { return len(t.params) }

// DataTypes returns the parameter data types, deduplicated in first-seen order.
func (t *Transition) DataTypes() []string {
	types := make([]string, 0, len(t.params))
	seen := make(map[string]struct{}, len(t.params))
	for _, p := range t.params {
		_, typ, _ := splitParam(p)
		if _, dup := seen[typ]; dup {
			continue
		}
		seen[typ] = struct{}{}
		types = append(types, typ)
	}
	return types
}

// ParamType returns the data type of the first parameter called name.
func (t *Transition) ParamType(name string) (string, bool) {
	for _, p := range t.params {
		n, typ, _ := splitParam(p)
		if n == name {
			return typ, true
		}
	}
	return "", false
}

func (t *Transition) String() string {
	return fmt.Sprintf("%s %s(%s) -> %s", t.kind, t.name, strings.Join(t.params, ", "), t.target)
}

func splitParam(p string) (name, typ string, ok bool) {
	name, typ, ok = strings.Cut(p, ParamSeparator)
	if !ok || name == "" || typ == "" {
		return "", "", false
	}
	return name, typ, true
}

// ValidParam reports whether p has the "name:type" form with both parts set.
func ValidParam(p string) bool {
	_, _, ok := splitParam(p)
	return ok
}
