package matrix

import (
	"fmt"
	"math"
	"slices"
)

// Matrix is a labeled dense matrix of float64 values in row-major order.
// Rows hold the second graph's state names, columns the first graph's.
type Matrix struct {
	rows   []string
	cols   []string
	rowIdx map[string]int
	colIdx map[string]int
	data   []float64 // len == len(rows)*len(cols)
}

// New creates a rows×cols matrix with every cell set to fill.
// Complexity: O(rows*cols).
func New(rows, cols []string, fill float64) (*Matrix, error) {
	if len(rows) == 0 || len(cols) == 0 {
		return nil, ErrEmptyAxis
	}
	rowIdx, err := indexLabels(rows)
	if err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	colIdx, err := indexLabels(cols)
	if err != nil {
		return nil, fmt.Errorf("cols: %w", err)
	}

	data := make([]float64, len(rows)*len(cols))
	if fill != 0 {
		for i := range data {
			data[i] = fill
		}
	}

	return &Matrix{
		rows:   slices.Clone(rows),
		cols:   slices.Clone(cols),
		rowIdx: rowIdx,
		colIdx: colIdx,
		data:   data,
	}, nil
}

// Uniform is New with every cell set to 1, the seed of round zero.
func Uniform(rows, cols []string) (*Matrix, error) {
	return New(rows, cols, 1)
}

func indexLabels(labels []string) (map[string]int, error) {
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		if _, dup := idx[l]; dup {
			return nil, fmt.Errorf("%q: %w", l, ErrDuplicateLabel)
		}
		idx[l] = i
	}
	return idx, nil
}

// Rows returns a copy of the row labels.
func (m *Matrix) Rows() []string { return slices.Clone(m.rows) }

// Cols returns a copy of the column labels.
func (m *Matrix) Cols() []string { return slices.Clone(m.cols) }

// HasRow reports whether name labels a row.
func (m *Matrix) HasRow(name string) bool { _, ok := m.rowIdx[name]; return ok }

// HasCol reports whether name labels a column.
func (m *Matrix) HasCol(name string) bool { _, ok := m.colIdx[name]; return ok }

func (m *Matrix) offset(row, col string) (int, error) {
	r, ok := m.rowIdx[row]
	if !ok {
		return 0, fmt.Errorf("row %q: %w", row, ErrUnknownLabel)
	}
	c, ok := m.colIdx[col]
	if !ok {
		return 0, fmt.Errorf("col %q: %w", col, ErrUnknownLabel)
	}
	return r*len(m.cols) + c, nil
}

// At returns the value at (row, col).
func (m *Matrix) At(row, col string) (float64, error) {
	i, err := m.offset(row, col)
	if err != nil {
		return 0, err
	}
	return m.data[i], nil
}

// Set stores v at (row, col).
func (m *Matrix) Set(row, col string, v float64) error {
	i, err := m.offset(row, col)
	if err != nil {
		return err
	}
	m.data[i] = v
	return nil
}

// Pair returns the score of state1 (first graph, a column) against state2
// (second graph, a row). If the matrix was built the other way round, the
// transposed cell is used instead.
func (m *Matrix) Pair(state1, state2 string) (float64, error) {
	if m.HasRow(state2) && m.HasCol(state1) {
		return m.At(state2, state1)
	}
	if m.HasRow(state1) && m.HasCol(state2) {
		return m.At(state1, state2)
	}
	return 0, fmt.Errorf("pair (%q, %q): %w", state1, state2, ErrUnknownLabel)
}

// Lookup reads (a, b) when a is a row and b a column, otherwise (b, a).
// Use it only when the caller cannot tell which graph each name belongs to.
func (m *Matrix) Lookup(a, b string) (float64, error) {
	if m.HasRow(a) && m.HasCol(b) {
		return m.At(a, b)
	}
	if m.HasRow(b) && m.HasCol(a) {
		return m.At(b, a)
	}
	return 0, fmt.Errorf("lookup (%q, %q): %w", a, b, ErrUnknownLabel)
}

// CheckAxes verifies that the matrix has exactly the given rows and columns, in any order.
func (m *Matrix) CheckAxes(rows, cols []string) error {
	if len(rows) != len(m.rows) || len(cols) != len(m.cols) {
		return fmt.Errorf("got %dx%d, want %dx%d: %w",
			len(m.rows), len(m.cols), len(rows), len(cols), ErrShapeMismatch)
	}
	for _, r := range rows {
		if !m.HasRow(r) {
			return fmt.Errorf("missing row %q: %w", r, ErrShapeMismatch)
		}
	}
	for _, c := range cols {
		if !m.HasCol(c) {
			return fmt.Errorf("missing col %q: %w", c, ErrShapeMismatch)
		}
	}
	return nil
}

// Row returns a copy of the values of one row, in column order.
func (m *Matrix) Row(name string) ([]float64, error) {
	r, ok := m.rowIdx[name]
	if !ok {
		return nil, fmt.Errorf("row %q: %w", name, ErrUnknownLabel)
	}
	n := len(m.cols)
	return slices.Clone(m.data[r*n : (r+1)*n]), nil
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{
		rows:   slices.Clone(m.rows),
		cols:   slices.Clone(m.cols),
		rowIdx: make(map[string]int, len(m.rowIdx)),
		colIdx: make(map[string]int, len(m.colIdx)),
		data:   slices.Clone(m.data),
	}
	for k, v := range m.rowIdx {
		out.rowIdx[k] = v
	}
	for k, v := range m.colIdx {
		out.colIdx[k] = v
	}
	return out
}

// Equal reports whether both matrices have the same axes (same order) and
// every cell differs by at most eps.
func (m *Matrix) Equal(other *Matrix, eps float64) bool {
	if other == nil {
		return false
	}
	if !slices.Equal(m.rows, other.rows) || !slices.Equal(m.cols, other.cols) {
		return false
	}
	for i := range m.data {
		if math.Abs(m.data[i]-other.data[i]) > eps {
			return false
		}
	}
	return true
}

// MaxDelta returns the largest absolute cell difference with other, which must
// share the same axes. Useful to watch successive rounds settle.
func (m *Matrix) MaxDelta(other *Matrix) (float64, error) {
	if err := other.CheckAxes(m.rows, m.cols); err != nil {
		return 0, err
	}
	var worst float64
	for r, row := range m.rows {
		for c, col := range m.cols {
			v, _ := other.At(row, col)
			if d := math.Abs(m.data[r*len(m.cols)+c] - v); d > worst {
				worst = d
			}
		}
	}
	return worst, nil
}
