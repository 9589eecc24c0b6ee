package runtime

import (
	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/aretw0/protocompat/pkg/matrix"
)

// ObservationalCompatibility combines the best matches in both directions for a
// pair of states: state1 belongs to the first graph, state2 to the second.
//
// When neither state emits anything the score is 1 for two final states and 0
// otherwise.
func ObservationalCompatibility(state1, state2 *domain.State, prev *matrix.Matrix) (float64, error) {
	em1, rec1 := state1.Emissions(), state1.Receptions()
	em2, rec2 := state2.Emissions(), state2.Receptions()

	var sum1, sum2 float64
	var err error

	// state1 talks, state2 listens: emission targets are first-graph states.
	if len(em1) > 0 && len(rec2) > 0 {
		sum1, err = BestSum(em1, rec2, func(emTarget, recTarget string) (float64, error) {
			return prev.Pair(emTarget, recTarget)
		})
		if err != nil {
			return 0, err
		}
	}

	// state2 talks, state1 listens: emission targets are second-graph states.
	if len(em2) > 0 && len(rec1) > 0 {
		sum2, err = BestSum(em2, rec1, func(emTarget, recTarget string) (float64, error) {
			return prev.Pair(recTarget, emTarget)
		})
		if err != nil {
			return 0, err
		}
	}

	switch {
	case len(em1) > 0 || len(em2) > 0:
		return (sum1 + sum2) / float64(len(em1)+len(em2)), nil
	case state1.IsFinal() && state2.IsFinal():
		return 1, nil
	default:
		return 0, nil
	}
}
