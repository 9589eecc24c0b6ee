package ports

import "context"

// GraphSource defines where raw graph descriptions come from.
// The bytes are handed to the compiler, which detects JSON or YAML.
type GraphSource interface {
	// Read returns the raw description stored under ref.
	// Returns domain.ErrDescriptionNotFound if ref is unknown.
	Read(ctx context.Context, ref string) ([]byte, error)

	// List returns every reference the source can read, in a stable order.
	List(ctx context.Context) ([]string, error)
}
