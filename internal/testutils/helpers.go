package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/aretw0/protocompat/pkg/dsl"
	"github.com/stretchr/testify/require"
)

// ClientGraph is a three-state client: it sends req, waits for resp, and stops.
// reqParams overrides the parameters of req; the default is ["id:int"].
func ClientGraph(t *testing.T, reqParams ...string) *domain.Graph {
	t.Helper()
	if len(reqParams) == 0 {
		reqParams = []string{"id:int"}
	}
	g, err := dsl.New("client").
		Initial("c0").Emit("req", "c1", reqParams...).Then().
		Normal("c1").Receive("resp", "c2", "status:string").Then().
		Final("c2").Then().
		Build()
	require.NoError(t, err)
	return g
}

// ServerGraph mirrors ClientGraph: it receives req, answers resp, and stops.
func ServerGraph(t *testing.T, reqParams ...string) *domain.Graph {
	t.Helper()
	if len(reqParams) == 0 {
		reqParams = []string{"id:int"}
	}
	g, err := dsl.New("server").
		Initial("s0").Receive("req", "s1", reqParams...).Then().
		Normal("s1").Emit("resp", "s2", "status:string").Then().
		Final("s2").Then().
		Build()
	require.NoError(t, err)
	return g
}

// ClientJSON is ClientGraph in the JSON description format.
const ClientJSON = `{
  "graph_name": "client",
  "states": [
    {"state_name": "c0", "state_type": "initial", "transitions": [
      {"transition_name": "req", "transition_type": "emission", "params": ["id:int"], "next_state": "c1"}
    ]},
    {"state_name": "c1", "state_type": "normal", "transitions": [
      {"transition_name": "resp", "transition_type": "reception", "params": ["status:string"], "next_state": "c2"}
    ]},
    {"state_name": "c2", "state_type": "final", "transitions": []}
  ]
}`

// ServerYAML is ServerGraph in the YAML description format.
const ServerYAML = `graph_name: server
states:
  - state_name: s0
    state_type: initial
    transitions:
      - transition_name: req
        transition_type: reception
        params: ["id:int"]
        next_state: s1
  - state_name: s1
    state_type: normal
    transitions:
      - transition_name: resp
        transition_type: emission
        params: ["status:string"]
        next_state: s2
  - state_name: s2
    state_type: final
    transitions: []
`

// ServerJSON is ServerGraph in the JSON description format.
const ServerJSON = `{
  "graph_name": "server",
  "states": [
    {"state_name": "s0", "state_type": "initial", "transitions": [
      {"transition_name": "req", "transition_type": "reception", "params": ["id:int"], "next_state": "s1"}
    ]},
    {"state_name": "s1", "state_type": "normal", "transitions": [
      {"transition_name": "resp", "transition_type": "emission", "params": ["status:string"], "next_state": "s2"}
    ]},
    {"state_name": "s2", "state_type": "final", "transitions": []}
  ]
}`

// WriteFile writes content under dir and returns the file path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
