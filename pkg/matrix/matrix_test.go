package matrix_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/protocompat/pkg/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		cols    []string
		wantErr error
	}{
		{"empty rows", nil, []string{"a"}, matrix.ErrEmptyAxis},
		{"empty cols", []string{"a"}, []string{}, matrix.ErrEmptyAxis},
		{"duplicate row", []string{"a", "a"}, []string{"x"}, matrix.ErrDuplicateLabel},
		{"duplicate col", []string{"a"}, []string{"x", "y", "x"}, matrix.ErrDuplicateLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := matrix.New(tt.rows, tt.cols, 0)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUniform(t *testing.T) {
	m, err := matrix.Uniform([]string{"s0", "s1"}, []string{"c0", "c1", "c2"})
	require.NoError(t, err)

	assert.Equal(t, []string{"s0", "s1"}, m.Rows())
	assert.Equal(t, []string{"c0", "c1", "c2"}, m.Cols())
	for _, r := range m.Rows() {
		row, err := m.Row(r)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 1, 1}, row)
	}
}

func TestSetAt_UnknownLabels(t *testing.T) {
	m, err := matrix.New([]string{"r"}, []string{"c"}, 0)
	require.NoError(t, err)

	require.NoError(t, m.Set("r", "c", 0.25))
	v, err := m.At("r", "c")
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)

	assert.ErrorIs(t, m.Set("x", "c", 1), matrix.ErrUnknownLabel)
	_, err = m.At("r", "x")
	assert.ErrorIs(t, err, matrix.ErrUnknownLabel)
}

func TestPair_FallsBackToTransposedCell(t *testing.T) {
	// Rows are second-graph states, columns first-graph states.
	m, err := matrix.New([]string{"s0", "s1"}, []string{"c0"}, 0)
	require.NoError(t, err)
	require.NoError(t, m.Set("s1", "c0", 0.7))

	v, err := m.Pair("c0", "s1")
	require.NoError(t, err)
	assert.Equal(t, 0.7, v)

	// Arguments swapped: only the transposed cell exists.
	v, err = m.Pair("s1", "c0")
	require.NoError(t, err)
	assert.Equal(t, 0.7, v)

	_, err = m.Pair("c0", "nope")
	assert.ErrorIs(t, err, matrix.ErrUnknownLabel)
}

func TestPair_SharedNamesUseSide(t *testing.T) {
	// Both graphs call their states a and b.
	m, err := matrix.New([]string{"a", "b"}, []string{"a", "b"}, 0)
	require.NoError(t, err)
	require.NoError(t, m.Set("b", "a", 0.1)) // state2=b, state1=a
	require.NoError(t, m.Set("a", "b", 0.9)) // state2=a, state1=b

	v, err := m.Pair("a", "b")
	require.NoError(t, err)
	assert.Equal(t, 0.1, v)

	v, err = m.Pair("b", "a")
	require.NoError(t, err)
	assert.Equal(t, 0.9, v)
}

func TestLookup_PrefersRowThenTransposed(t *testing.T) {
	m, err := matrix.New([]string{"s0", "s1"}, []string{"c0"}, 0)
	require.NoError(t, err)
	require.NoError(t, m.Set("s1", "c0", 0.7))

	v, err := m.Lookup("s1", "c0")
	require.NoError(t, err)
	assert.Equal(t, 0.7, v)

	v, err = m.Lookup("c0", "s1")
	require.NoError(t, err)
	assert.Equal(t, 0.7, v)

	// With shared names the row reading wins.
	shared, err := matrix.New([]string{"a", "b"}, []string{"a", "b"}, 0)
	require.NoError(t, err)
	require.NoError(t, shared.Set("b", "a", 0.1))
	require.NoError(t, shared.Set("a", "b", 0.9))

	v, err = shared.Lookup("b", "a")
	require.NoError(t, err)
	assert.Equal(t, 0.1, v)

	_, err = m.Lookup("c0", "nope")
	assert.ErrorIs(t, err, matrix.ErrUnknownLabel)
}

func TestCheckAxes(t *testing.T) {
	m, err := matrix.Uniform([]string{"s0", "s1"}, []string{"c0"})
	require.NoError(t, err)

	assert.NoError(t, m.CheckAxes([]string{"s1", "s0"}, []string{"c0"}))
	assert.ErrorIs(t, m.CheckAxes([]string{"s0"}, []string{"c0"}), matrix.ErrShapeMismatch)
	assert.ErrorIs(t, m.CheckAxes([]string{"s0", "s9"}, []string{"c0"}), matrix.ErrShapeMismatch)
}

func TestClone_IsIndependent(t *testing.T) {
	m, err := matrix.Uniform([]string{"r"}, []string{"c"})
	require.NoError(t, err)

	c := m.Clone()
	require.NoError(t, c.Set("r", "c", 0.5))

	v, _ := m.At("r", "c")
	assert.Equal(t, 1.0, v)
	assert.False(t, m.Equal(c, 0.1))
	assert.True(t, m.Equal(c, 0.5))
}

func TestMaxDelta(t *testing.T) {
	a, _ := matrix.Uniform([]string{"r1", "r2"}, []string{"c"})
	b := a.Clone()
	require.NoError(t, b.Set("r2", "c", 0.25))

	d, err := a.MaxDelta(b)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, d, 1e-9)

	other, _ := matrix.Uniform([]string{"x"}, []string{"c"})
	_, err = a.MaxDelta(other)
	assert.ErrorIs(t, err, matrix.ErrShapeMismatch)
}

func TestJSON(t *testing.T) {
	m, err := matrix.New([]string{"s0", "s1"}, []string{"c0", "c1"}, 0.5)
	require.NoError(t, err)
	require.NoError(t, m.Set("s0", "c0", 1))

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rows":["s0","s1"],"cols":["c0","c1"],"values":[[1,0.5],[0.5,0.5]]}`, string(data))

	var back matrix.Matrix
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, m.Equal(&back, 0))
}

func TestJSON_RaggedValues(t *testing.T) {
	var m matrix.Matrix
	err := json.Unmarshal([]byte(`{"rows":["a","b"],"cols":["x"],"values":[[1],[1,2]]}`), &m)
	assert.ErrorIs(t, err, matrix.ErrRaggedValues)
}
