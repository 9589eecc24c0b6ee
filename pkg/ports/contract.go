package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/aretw0/protocompat/pkg/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SampleRun builds a small two-round run with the given ID for store tests.
func SampleRun(t *testing.T, id string) *domain.Run {
	t.Helper()
	seed, err := matrix.Uniform([]string{"s0", "s1"}, []string{"c0", "c1"})
	require.NoError(t, err)
	next := seed.Clone()
	require.NoError(t, next.Set("s1", "c0", 0.5))
	require.NoError(t, next.Set("s0", "c1", 0.25))

	return &domain.Run{
		ID:        id,
		Graph1:    "client",
		Graph2:    "server",
		Rounds:    1,
		Weighting: "degree",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Matrices:  []*matrix.Matrix{seed, next},
	}
}

// RunResultStoreContract runs a suite of tests to verify that a ResultStore implementation
// adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	runID := "contract-run-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		run := SampleRun(t, runID)
		require.NoError(t, store.Save(ctx, run), "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, run.ID, loaded.ID)
		assert.Equal(t, run.Graph1, loaded.Graph1)
		assert.Equal(t, run.Graph2, loaded.Graph2)
		assert.Equal(t, run.Rounds, loaded.Rounds)
		assert.Equal(t, run.Weighting, loaded.Weighting)
		assert.True(t, run.CreatedAt.Equal(loaded.CreatedAt))
		require.Len(t, loaded.Matrices, 2)
		assert.True(t, run.Final().Equal(loaded.Final(), 0))
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		run := SampleRun(t, runID)
		run.Rounds = 7
		require.NoError(t, store.Save(ctx, run))

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, 7, loaded.Rounds)
	})

	t.Run("Save Rejects Empty ID", func(t *testing.T) {
		assert.Error(t, store.Save(ctx, SampleRun(t, "")))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, SampleRun(t, runID)))

		require.NoError(t, store.Delete(ctx, runID), "Delete should not return error")

		_, err := store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		assert.NoError(t, store.Delete(ctx, runID), "Delete of a missing run is a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		require.NoError(t, store.Save(ctx, SampleRun(t, id1)))
		require.NoError(t, store.Save(ctx, SampleRun(t, id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)
	})
}
