package ports_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/aretw0/protocompat/pkg/ports"
)

// MockStore is a map-backed ResultStore used to check the contract suite itself.
type MockStore struct {
	data map[string]domain.Run
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string]domain.Run)}
}

func (m *MockStore) Save(ctx context.Context, run *domain.Run) error {
	if run.ID == "" {
		return errors.New("run ID cannot be empty")
	}
	m.data[run.ID] = *run
	return nil
}

func (m *MockStore) Load(ctx context.Context, id string) (*domain.Run, error) {
	run, ok := m.data[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return &run, nil
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	delete(m.data, id)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestResultStore_Contract(t *testing.T) {
	var _ ports.ResultStore = (*MockStore)(nil)
	ports.RunResultStoreContract(t, NewMockStore())
}
