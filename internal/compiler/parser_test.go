package compiler_test

import (
	"strings"
	"testing"

	"github.com/aretw0/protocompat/internal/compiler"
	"github.com/aretw0/protocompat/internal/testutils"
	"github.com/aretw0/protocompat/internal/validator"
	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_JSON(t *testing.T) {
	g, err := compiler.NewParser().Parse([]byte(testutils.ClientJSON))
	require.NoError(t, err)

	assert.Equal(t, "client", g.Name())
	assert.Equal(t, []string{"c0", "c1", "c2"}, g.StateNames())
	assert.True(t, g.Linked())
	assert.Equal(t, domain.StateInitial, g.State("c0").Kind())
	assert.Equal(t, 1, g.State("c1").NumIncoming())

	req := g.State("c0").OutgoingByName("req")
	require.NotNil(t, req)
	assert.Equal(t, domain.TransitionEmission, req.Kind())
	assert.Equal(t, []string{"id:int"}, req.Params())
}

func TestParse_YAML(t *testing.T) {
	g, err := compiler.NewParser().Parse([]byte(testutils.ServerYAML))
	require.NoError(t, err)

	assert.Equal(t, "server", g.Name())
	assert.Equal(t, domain.TransitionEmission, g.State("s1").OutgoingByName("resp").Kind())
	assert.True(t, g.State("s2").IsFinal())
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, compiler.FormatJSON, compiler.FormatFromPath("a/b.JSON"))
	assert.Equal(t, compiler.FormatYAML, compiler.FormatFromPath("b.yml"))
	assert.Equal(t, compiler.FormatAuto, compiler.FormatFromPath("b.txt"))
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantKey string
	}{
		{
			name:  "not json",
			input: `{"graph_name": `,
		},
		{
			name:    "missing graph name",
			input:   `{"states": [{"state_name":"a","state_type":"initial","transitions":[]},{"state_name":"b","state_type":"final","transitions":[]}]}`,
			wantKey: "graph_name",
		},
		{
			name:    "single state",
			input:   `{"graph_name":"g","states":[{"state_name":"a","state_type":"initial","transitions":[]}]}`,
			wantKey: "states",
		},
		{
			name:    "unknown state type",
			input:   `{"graph_name":"g","states":[{"state_name":"a","state_type":"start","transitions":[]},{"state_name":"b","state_type":"final","transitions":[]}]}`,
			wantKey: "states[0].state_type",
		},
		{
			name:    "transitions missing",
			input:   `{"graph_name":"g","states":[{"state_name":"a","state_type":"initial"},{"state_name":"b","state_type":"final","transitions":[]}]}`,
			wantKey: "states[0].transitions",
		},
		{
			name: "params missing",
			input: `{"graph_name":"g","states":[
				{"state_name":"a","state_type":"initial","transitions":[{"transition_name":"m","transition_type":"emission","next_state":"b"}]},
				{"state_name":"b","state_type":"final","transitions":[]}]}`,
			wantKey: "states[0].transitions[0].params",
		},
		{
			name: "tau in a file",
			input: `{"graph_name":"g","states":[
				{"state_name":"a","state_type":"initial","transitions":[{"transition_name":"m","transition_type":"tau","params":[],"next_state":"b"}]},
				{"state_name":"b","state_type":"final","transitions":[]}]}`,
			wantKey: "states[0].transitions[0].transition_type",
		},
		{
			name: "bad param",
			input: `{"graph_name":"g","states":[
				{"state_name":"a","state_type":"initial","transitions":[{"transition_name":"m","transition_type":"emission","params":["id"],"next_state":"b"}]},
				{"state_name":"b","state_type":"final","transitions":[]}]}`,
			wantKey: "states[0].transitions[0].params[0]",
		},
		{
			name:    "duplicate state",
			input:   `{"graph_name":"g","states":[{"state_name":"a","state_type":"initial","transitions":[]},{"state_name":"a","state_type":"final","transitions":[]}]}`,
			wantKey: "states",
		},
		{
			name:  "wrong field type",
			input: `{"graph_name":"g","states":"nope"}`,
		},
		{
			name:  "empty",
			input: `   `,
		},
	}

	parser := compiler.NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedDescription)

			if tt.wantKey == "" {
				return
			}
			var keys []string
			for _, e := range validator.ValidationErrors(err) {
				ve, ok := e.(*validator.ValidationError)
				require.True(t, ok)
				keys = append(keys, ve.Key)
			}
			assert.Contains(t, keys, tt.wantKey, "errors: %v", err)
		})
	}
}

func TestParse_StructuralErrors(t *testing.T) {
	parser := compiler.NewParser()

	t.Run("unknown next state", func(t *testing.T) {
		in := strings.Replace(testutils.ClientJSON, `"next_state": "c2"`, `"next_state": "c9"`, 1)
		_, err := parser.Parse([]byte(in))
		assert.ErrorIs(t, err, domain.ErrUnresolvedState)
	})

	t.Run("transition into initial state", func(t *testing.T) {
		in := strings.Replace(testutils.ClientJSON, `"next_state": "c2"`, `"next_state": "c0"`, 1)
		_, err := parser.Parse([]byte(in))
		assert.ErrorIs(t, err, domain.ErrInitialIncoming)
	})

	t.Run("final state with outgoing", func(t *testing.T) {
		in := `graph_name: g
states:
  - state_name: a
    state_type: initial
    transitions: []
  - state_name: b
    state_type: final
    transitions:
      - transition_name: m
        transition_type: emission
        params: []
        next_state: a
`
		_, err := parser.Parse([]byte(in))
		assert.ErrorIs(t, err, domain.ErrFinalOutgoing)
	})
}
