package runtime

import "github.com/aretw0/protocompat/pkg/domain"

// unsharedPenalty scales the unshared-type count against the parameter count.
const unsharedPenalty = 6.0

// LabelCompatibility scores how well two transitions can talk to each other.
//
// Only a same-name pair with opposite directions (one emission, one reception) is
// eligible; every other pair scores 0. For an eligible pair the score is
//
//	1 - U / (6 * (|params(t1)| + |params(t2)|))
//
// where U counts the data types present on exactly one side. Two parameterless
// messages score 1. U never exceeds the parameter count, so an eligible pair
// scores at least 5/6.
func LabelCompatibility(t1, t2 *domain.Transition) float64 {
	if t1 == nil || t2 == nil {
		return 0
	}
	if t1.Name() != t2.Name() || !opposite(t1.Kind(), t2.Kind()) {
		return 0
	}

	total := t1.NumParams() + t2.NumParams()
	if total == 0 {
		return 1
	}
	u := unsharedTypes(t1.DataTypes(), t2.DataTypes())
	return 1 - float64(u)/(unsharedPenalty*float64(total))
}

// opposite reports whether two kinds form an emission/reception pair.
func opposite(a, b domain.TransitionKind) bool {
	switch a {
	case domain.TransitionEmission:
		return b == domain.TransitionReception
	case domain.TransitionReception:
		return b == domain.TransitionEmission
	case domain.TransitionTau:
		return false
	default:
		return false
	}
}

// unsharedTypes returns the size of the symmetric difference of two type sets.
func unsharedTypes(a, b []string) int {
	inA := make(map[string]struct{}, len(a))
	for _, t := range a {
		inA[t] = struct{}{}
	}
	inB := make(map[string]struct{}, len(b))
	for _, t := range b {
		inB[t] = struct{}{}
	}

	n := 0
	for t := range inA {
		if _, ok := inB[t]; !ok {
			n++
		}
	}
	for t := range inB {
		if _, ok := inA[t]; !ok {
			n++
		}
	}
	return n
}
