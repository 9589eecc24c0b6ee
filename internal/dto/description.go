package dto

// GraphDescription is the on-disk form of a protocol graph.
// The same keys are used for JSON and YAML files; the parser decodes both
// into a generic map first and then into this struct via mapstructure.
type GraphDescription struct {
	GraphName string             `json:"graph_name" yaml:"graph_name" mapstructure:"graph_name" validate:"required"`
	States    []StateDescription `json:"states" yaml:"states" mapstructure:"states" validate:"required,min=2,unique=StateName,dive"`
}

// StateDescription describes one state and the transitions leaving it.
type StateDescription struct {
	StateName   string                  `json:"state_name" yaml:"state_name" mapstructure:"state_name" validate:"required"`
	StateType   string                  `json:"state_type" yaml:"state_type" mapstructure:"state_type" validate:"required,oneof=initial final normal"`
	Transitions []TransitionDescription `json:"transitions" yaml:"transitions" mapstructure:"transitions" validate:"required,dive"`
}

// TransitionDescription describes a message exchange.
// Params are "name:type" pairs; the list may be empty but must be present.
type TransitionDescription struct {
	TransitionName string   `json:"transition_name" yaml:"transition_name" mapstructure:"transition_name" validate:"required"`
	TransitionType string   `json:"transition_type" yaml:"transition_type" mapstructure:"transition_type" validate:"required,oneof=emission reception"`
	Params         []string `json:"params" yaml:"params" mapstructure:"params" validate:"required,dive,param"`
	NextState      string   `json:"next_state" yaml:"next_state" mapstructure:"next_state" validate:"required"`
}

// CountTransitions returns the number of transitions declared across all states.
func (g *GraphDescription) CountTransitions() int {
	n := 0
	for _, s := range g.States {
		n += len(s.Transitions)
	}
	return n
}
