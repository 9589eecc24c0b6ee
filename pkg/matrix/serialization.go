package matrix

import (
	"encoding/json"
	"fmt"
)

// wireMatrix is the JSON shape of a Matrix.
type wireMatrix struct {
	Rows   []string    `json:"rows"`
	Cols   []string    `json:"cols"`
	Values [][]float64 `json:"values"`
}

// MarshalJSON encodes the matrix as {"rows":[...],"cols":[...],"values":[[...]]}.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	w := wireMatrix{
		Rows:   m.rows,
		Cols:   m.cols,
		Values: make([][]float64, len(m.rows)),
	}
	n := len(m.cols)
	for r := range m.rows {
		w.Values[r] = m.data[r*n : (r+1)*n]
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the shape produced by MarshalJSON.
func (m *Matrix) UnmarshalJSON(data []byte) error {
	var w wireMatrix
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("matrix: decode: %w", err)
	}
	decoded, err := New(w.Rows, w.Cols, 0)
	if err != nil {
		return err
	}
	if len(w.Values) != len(w.Rows) {
		return fmt.Errorf("%d value rows for %d labels: %w", len(w.Values), len(w.Rows), ErrRaggedValues)
	}
	n := len(w.Cols)
	for r, row := range w.Values {
		if len(row) != n {
			return fmt.Errorf("row %q has %d values for %d cols: %w", w.Rows[r], len(row), n, ErrRaggedValues)
		}
		copy(decoded.data[r*n:], row)
	}
	*m = *decoded
	return nil
}
