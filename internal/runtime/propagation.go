package runtime

import (
	"fmt"

	"github.com/aretw0/protocompat/pkg/domain"
)

// ForwardPropagation spreads the observational score along outgoing moves.
// Only tau-free states are supported; each side then contributes obs unchanged.
func ForwardPropagation(state1, state2 *domain.State, obs float64) (float64, error) {
	d1, err := forwardStep(state1, obs)
	if err != nil {
		return 0, err
	}
	d2, err := forwardStep(state2, obs)
	if err != nil {
		return 0, err
	}
	return (d1 + d2) / 2, nil
}

// BackwardPropagation is the incoming-side counterpart of ForwardPropagation.
func BackwardPropagation(state1, state2 *domain.State, obs float64) (float64, error) {
	d1, err := backwardStep(state1, obs)
	if err != nil {
		return 0, err
	}
	d2, err := backwardStep(state2, obs)
	if err != nil {
		return 0, err
	}
	return (d1 + d2) / 2, nil
}

func forwardStep(s *domain.State, obs float64) (float64, error) {
	if taus := s.OutgoingTaus(); len(taus) > 0 {
		return 0, fmt.Errorf("forward propagation from state %q (tau %q): %w",
			s.Name(), taus[0].Name(), domain.ErrUnsupportedFeature)
	}
	return obs, nil
}

func backwardStep(s *domain.State, obs float64) (float64, error) {
	if taus := s.IncomingTaus(); len(taus) > 0 {
		return 0, fmt.Errorf("backward propagation into state %q (tau %q): %w",
			s.Name(), taus[0].Name(), domain.ErrUnsupportedFeature)
	}
	return obs, nil
}
