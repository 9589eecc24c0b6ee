package domain

import (
	"time"

	"github.com/aretw0/protocompat/pkg/matrix"
)

// Run is the outcome of one multi-round compatibility computation.
// Matrices[i] is the matrix of round i; Matrices[0] is the uniform seed.
type Run struct {
	ID        string           `json:"id"`
	Graph1    string           `json:"graph1"`
	Graph2    string           `json:"graph2"`
	Rounds    int              `json:"rounds"`
	Weighting string           `json:"weighting,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Matrices  []*matrix.Matrix `json:"matrices"`
}

// Final returns the matrix of the last round, or nil for an empty run.
func (r *Run) Final() *matrix.Matrix {
	if len(r.Matrices) == 0 {
		return nil
	}
	return r.Matrices[len(r.Matrices)-1]
}
