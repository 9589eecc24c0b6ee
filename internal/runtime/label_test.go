package runtime_test

import (
	"testing"

	"github.com/aretw0/protocompat/internal/runtime"
	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transition(t *testing.T, name string, kind domain.TransitionKind, target string, params ...string) *domain.Transition {
	t.Helper()
	tr, err := domain.NewTransition(name, kind, target, params...)
	require.NoError(t, err)
	return tr
}

func TestLabelCompatibility(t *testing.T) {
	em := domain.TransitionEmission
	rec := domain.TransitionReception

	tests := []struct {
		name string
		t1   *domain.Transition
		t2   *domain.Transition
		want float64
	}{
		{
			name: "no params on either side",
			t1:   transition(t, "ping", em, "x"),
			t2:   transition(t, "ping", rec, "y"),
			want: 1,
		},
		{
			name: "identical types",
			t1:   transition(t, "req", em, "x", "id:int"),
			t2:   transition(t, "req", rec, "y", "key:int"),
			want: 1,
		},
		{
			name: "two unshared types out of six params",
			t1:   transition(t, "m", em, "x", "a:A", "b:B", "c:C"),
			t2:   transition(t, "m", rec, "y", "a:A", "d:D", "e:E"),
			want: 1 - 4.0/36.0,
		},
		{
			name: "different names",
			t1:   transition(t, "req", em, "x"),
			t2:   transition(t, "resp", rec, "y"),
			want: 0,
		},
		{
			name: "same direction",
			t1:   transition(t, "req", em, "x"),
			t2:   transition(t, "req", em, "y"),
			want: 0,
		},
		{
			name: "tau never matches",
			t1:   transition(t, "req", domain.TransitionTau, "x"),
			t2:   transition(t, "req", rec, "y"),
			want: 0,
		},
		{
			name: "one side without params",
			t1:   transition(t, "m", rec, "x", "a:int"),
			t2:   transition(t, "m", em, "y"),
			want: 1 - 1.0/6.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, runtime.LabelCompatibility(tt.t1, tt.t2), 1e-9)
		})
	}
}

func TestLabelCompatibility_Symmetric(t *testing.T) {
	a := transition(t, "m", domain.TransitionEmission, "x", "a:int", "b:string")
	b := transition(t, "m", domain.TransitionReception, "y", "a:int", "b:bytes")

	assert.Equal(t, runtime.LabelCompatibility(a, b), runtime.LabelCompatibility(b, a))
}

func TestLabelCompatibility_LowerBound(t *testing.T) {
	// Every type unshared is the worst case: 1 - 2/12.
	a := transition(t, "m", domain.TransitionEmission, "x", "a:int")
	b := transition(t, "m", domain.TransitionReception, "y", "a:string")
	assert.InDelta(t, 1-2.0/12.0, runtime.LabelCompatibility(a, b), 1e-9)
	assert.Equal(t, 0.0, runtime.LabelCompatibility(nil, b))
}

func TestBestSum(t *testing.T) {
	em := []*domain.Transition{
		transition(t, "a", domain.TransitionEmission, "e1"),
		transition(t, "b", domain.TransitionEmission, "e2"),
	}
	rec := []*domain.Transition{
		transition(t, "a", domain.TransitionReception, "r1"),
		transition(t, "a", domain.TransitionReception, "r2"),
	}
	prev := map[string]float64{"e1/r1": 0.4, "e1/r2": 0.8}

	sum, err := runtime.BestSum(em, rec, func(e, r string) (float64, error) {
		return prev[e+"/"+r], nil
	})
	require.NoError(t, err)
	// a picks r2 (0.8), b has no partner.
	assert.InDelta(t, 0.8, sum, 1e-9)

	empty, err := runtime.BestSum(nil, rec, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty)
}
