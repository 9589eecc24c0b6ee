package ports

import (
	"context"

	"github.com/aretw0/protocompat/pkg/domain"
)

// ResultStore defines the interface for persisting compatibility runs,
// so results computed by the CLI or the HTTP API can be fetched later.
type ResultStore interface {
	// Save persists a run under run.ID, replacing any previous run with that ID.
	Save(ctx context.Context, run *domain.Run) error

	// Load retrieves a run by ID.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, id string) (*domain.Run, error)

	// Delete removes a run. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored runs.
	List(ctx context.Context) ([]string, error)
}
