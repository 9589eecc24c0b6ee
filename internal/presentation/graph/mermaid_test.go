package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/protocompat/internal/presentation/graph"
	"github.com/aretw0/protocompat/internal/testutils"
	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/aretw0/protocompat/pkg/dsl"
	"github.com/aretw0/protocompat/pkg/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		graph    func(t *testing.T) *domain.Graph
		contains []string
	}{
		{
			name:  "State Shapes",
			graph: func(t *testing.T) *domain.Graph { return testutils.ClientGraph(t) },
			contains: []string{
				"graph TD",
				"c0((\"c0\"))",
				"c1[\"c1\"]",
				"c2(((\"c2\")))",
			},
		},
		{
			name:  "Message Labels",
			graph: func(t *testing.T) *domain.Graph { return testutils.ServerGraph(t) },
			contains: []string{
				"s0 -- \"?req(id:int)\" --> s1",
				"s1 -- \"!resp(status:string)\" --> s2",
			},
		},
		{
			name: "Tau And Sanitization",
			graph: func(t *testing.T) *domain.Graph {
				return dsl.New("g").
					Initial("in-1").Tau("think", "out.v2").Then().
					Final("out.v2").Then().
					MustBuild()
			},
			contains: []string{
				"in_1((\"in-1\"))",
				"in_1 -. \"τ think\" .-> out_v2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.graph(t), nil)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, got)
				}
			}
			assert.NotContains(t, got, "classDef")
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	m, err := matrix.New([]string{"s0", "s1"}, []string{"c0", "c1", "c2"}, 0.25)
	require.NoError(t, err)
	require.NoError(t, m.Set("s1", "c1", 0.9))

	scores := graph.BestScores(m, true)
	assert.Equal(t, map[string]float64{"c0": 0.25, "c1": 0.9, "c2": 0.25}, scores)
	assert.Equal(t, map[string]float64{"s0": 0.25, "s1": 0.9}, graph.BestScores(m, false))

	got := graph.GenerateMermaid(testutils.ClientGraph(t), &graph.GraphOverlay{Scores: scores, Threshold: 0.5})
	assert.Contains(t, got, "c1[\"c1 <br/> 0.900\"]")
	assert.Contains(t, got, "class c1 matched;")
	assert.Contains(t, got, "class c0 unmatched;")
}
