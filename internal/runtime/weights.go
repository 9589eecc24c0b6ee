package runtime

import (
	"fmt"

	"github.com/aretw0/protocompat/pkg/domain"
)

// Weights balance the three terms of the state compatibility.
type Weights struct {
	Forward  float64 // w1, applied to forward propagation
	Backward float64 // w2, applied to backward propagation
	Nature   float64 // w3, applied to the state-kind agreement
}

// Sum is the normalisation denominator.
func (w Weights) Sum() float64 { return w.Forward + w.Backward + w.Nature }

// WeightStrategy computes the weights for a pair of states.
type WeightStrategy interface {
	Name() string
	Weights(state1, state2 *domain.State) (Weights, error)
}

// Strategy names accepted by StrategyByName.
const (
	WeightingDegree   = "degree"
	WeightingMatching = "matching"
)

// StrategyByName returns the weighting strategy registered under name.
func StrategyByName(name string) (WeightStrategy, error) {
	switch name {
	case "", WeightingDegree:
		return DegreeWeighting{}, nil
	case WeightingMatching:
		return MatchingWeighting{}, nil
	default:
		return nil, fmt.Errorf("unknown weighting strategy %q", name)
	}
}

// DegreeWeighting weighs propagation by the combined out/in degree of the pair.
type DegreeWeighting struct{}

func (DegreeWeighting) Name() string { return WeightingDegree }

func (DegreeWeighting) Weights(state1, state2 *domain.State) (Weights, error) {
	nature, err := natureWeight(state1, state2)
	if err != nil {
		return Weights{}, err
	}
	return Weights{
		Forward:  float64(state1.NumOutgoing() + state2.NumOutgoing()),
		Backward: float64(state1.NumIncoming() + state2.NumIncoming()),
		Nature:   nature,
	}, nil
}

// MatchingWeighting counts same-name, opposite-direction transition pairs
// instead of raw degrees: outgoing pairs for w1, incoming pairs for w2.
type MatchingWeighting struct{}

func (MatchingWeighting) Name() string { return WeightingMatching }

func (MatchingWeighting) Weights(state1, state2 *domain.State) (Weights, error) {
	nature, err := natureWeight(state1, state2)
	if err != nil {
		return Weights{}, err
	}
	return Weights{
		Forward:  float64(countMatches(state1.Outgoing(), state2.Outgoing())),
		Backward: float64(countMatches(state1.Incoming(), state2.Incoming())),
		Nature:   nature,
	}, nil
}

func countMatches(a, b []*domain.Transition) int {
	n := 0
	for _, t1 := range a {
		for _, t2 := range b {
			if t1.Name() == t2.Name() && opposite(t1.Kind(), t2.Kind()) {
				n++
			}
		}
	}
	return n
}

// natureWeight is w3. It is 1 for tau-free pairs; tau transitions are rejected.
func natureWeight(state1, state2 *domain.State) (float64, error) {
	for _, s := range []*domain.State{state1, state2} {
		if s.HasTau() {
			return 0, fmt.Errorf("weights for state %q: %w", s.Name(), domain.ErrUnsupportedFeature)
		}
	}
	return 1, nil
}

// StateNature is 1 when both states have the same kind, 0 otherwise.
func StateNature(state1, state2 *domain.State) float64 {
	if state1.Kind() == state2.Kind() {
		return 1
	}
	return 0
}

// StateCompatibility is the weighted mean of both propagations and the state nature.
func StateCompatibility(w Weights, forward, backward, nature float64) float64 {
	return (w.Forward*forward + w.Backward*backward + w.Nature*nature) / w.Sum()
}
