package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/aretw0/protocompat/pkg/ports"
)

// GraphSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.GraphSource.
func GraphSourceContractTest(t *testing.T, source ports.GraphSource, setupData map[string][]byte) {
	t.Helper()
	ctx := context.Background()

	// 1. Test Read (Success)
	t.Run("Read_Success", func(t *testing.T) {
		for ref, expectedContent := range setupData {
			content, err := source.Read(ctx, ref)
			if err != nil {
				t.Fatalf("unexpected error reading %s: %v", ref, err)
			}
			if string(content) != string(expectedContent) {
				t.Errorf("content mismatch for %s. got %q, want %q", ref, content, expectedContent)
			}
		}
	})

	// 2. Test Read (NotFound)
	t.Run("Read_NotFound", func(t *testing.T) {
		_, err := source.Read(ctx, "non-existent-graph.json")
		if !errors.Is(err, domain.ErrDescriptionNotFound) {
			t.Errorf("expected ErrDescriptionNotFound, got %v", err)
		}
	})

	// 3. Test List
	t.Run("List", func(t *testing.T) {
		refs, err := source.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing descriptions: %v", err)
		}

		if len(refs) != len(setupData) {
			t.Errorf("expected %d descriptions, got %d", len(setupData), len(refs))
		}

		lookup := make(map[string]bool)
		for _, ref := range refs {
			lookup[ref] = true
		}

		for ref := range setupData {
			if !lookup[ref] {
				t.Errorf("description %s missing from list", ref)
			}
		}
	})
}
