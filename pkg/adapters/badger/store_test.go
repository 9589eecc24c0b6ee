package badger_test

import (
	"context"
	"testing"

	"github.com/aretw0/protocompat/pkg/adapters/badger"
	"github.com/aretw0/protocompat/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerStore_Contract_InMemory(t *testing.T) {
	store, err := badger.Open("", badger.WithInMemory())
	require.NoError(t, err)
	defer store.Close()

	ports.RunResultStoreContract(t, store)
}

func TestBadgerStore_Contract_OnDisk(t *testing.T) {
	store, err := badger.Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	ports.RunResultStoreContract(t, store)
}

func TestBadgerStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := badger.Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, ports.SampleRun(t, "persisted")))
	require.NoError(t, store.Close())

	store, err = badger.Open(dir)
	require.NoError(t, err)
	defer store.Close()

	run, err := store.Load(ctx, "persisted")
	require.NoError(t, err)
	assert.Equal(t, "client", run.Graph1)
}

func TestBadgerStore_RequiresPath(t *testing.T) {
	_, err := badger.Open("")
	assert.Error(t, err)
}
