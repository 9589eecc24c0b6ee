package runtime

import "github.com/aretw0/protocompat/pkg/domain"

// PairScore returns the previous-round compatibility of the states reached by an
// emission and by a reception.
type PairScore func(emissionTarget, receptionTarget string) (float64, error)

// BestSum greedily matches every emission with its best reception and sums the
// matches. A match is worth LabelCompatibility(e, r) times the previous score of
// the two target states; the best value per emission starts at 0 and only a
// strictly greater candidate replaces it. No emissions means a sum of 0.
func BestSum(emissions, receptions []*domain.Transition, prev PairScore) (float64, error) {
	var sum float64
	for _, e := range emissions {
		var best float64
		for _, r := range receptions {
			lab := LabelCompatibility(e, r)
			if lab == 0 {
				continue
			}
			p, err := prev(e.Target(), r.Target())
			if err != nil {
				return 0, err
			}
			if candidate := lab * p; candidate > best {
				best = candidate
			}
		}
		sum += best
	}
	return sum, nil
}
