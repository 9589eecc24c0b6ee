package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/protocompat/pkg/domain"
)

// Source implements ports.GraphSource using an in-memory map.
// Safe for concurrent use.
type Source struct {
	mu           sync.RWMutex
	descriptions map[string][]byte
}

// NewSource creates a source with the provided raw descriptions (JSON or YAML strings).
func NewSource(data map[string]string) *Source {
	descriptions := make(map[string][]byte, len(data))
	for k, v := range data {
		descriptions[k] = []byte(v)
	}
	return &Source{descriptions: descriptions}
}

// Put registers or replaces a description.
func (s *Source) Put(ref string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.descriptions[ref] = append([]byte(nil), data...)
}

// Read retrieves the raw description stored under ref.
func (s *Source) Read(ctx context.Context, ref string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.descriptions[ref]
	if !ok {
		return nil, fmt.Errorf("%s: %w", ref, domain.ErrDescriptionNotFound)
	}
	return append([]byte(nil), content...), nil
}

// List returns all available references.
func (s *Source) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.descriptions))
	for k := range s.descriptions {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
