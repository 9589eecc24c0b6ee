package domain

import "errors"

// Structural invariant violations. Raised when a graph is built or mutated.
var (
	// ErrInitialIncoming is returned when an initial state would receive an incoming transition.
	ErrInitialIncoming = errors.New("initial state cannot have incoming transitions")

	// ErrFinalOutgoing is returned when a final state would get an outgoing transition.
	ErrFinalOutgoing = errors.New("final state cannot have outgoing transitions")

	// ErrTauParameters is returned when a silent transition is given parameters.
	ErrTauParameters = errors.New("tau transition cannot have parameters")

	// ErrMalformedParameter is returned for a parameter entry not shaped as "name:type".
	ErrMalformedParameter = errors.New("parameter must be written as name:type")

	// ErrDuplicateState is returned when two states of a graph share a name.
	ErrDuplicateState = errors.New("duplicate state name")
)

// ErrUnresolvedState is returned by Graph.Link when a transition targets an unknown state.
var ErrUnresolvedState = errors.New("unknown next state")

// ErrGraphNotLinked is returned when an unlinked graph reaches the engine.
var ErrGraphNotLinked = errors.New("graph incoming transitions are not linked")

// ErrUnsupportedFeature is returned when a graph uses tau transitions.
// It describes a known limitation of the engine and must not be retried.
var ErrUnsupportedFeature = errors.New("unsupported feature: tau transitions")

// ErrMalformedDescription is returned when a graph description breaks the input schema.
var ErrMalformedDescription = errors.New("malformed graph description")

// ErrRunNotFound is returned when a run ID cannot be found in the result store.
var ErrRunNotFound = errors.New("run not found")

// ErrDescriptionNotFound is returned when a graph source has no description under a reference.
var ErrDescriptionNotFound = errors.New("graph description not found")
