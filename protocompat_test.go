package protocompat_test

import (
	"context"
	"testing"

	"github.com/aretw0/protocompat"
	"github.com/aretw0/protocompat/internal/testutils"
	"github.com/aretw0/protocompat/pkg/adapters/memory"
	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/aretw0/protocompat/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSource() *memory.Source {
	return memory.NewSource(map[string]string{
		"client.json": testutils.ClientJSON,
		"server.yaml": testutils.ServerYAML,
	})
}

func TestAnalyzer_LoadAndCompute(t *testing.T) {
	store := memory.NewStore()
	a, err := protocompat.New(protocompat.WithSource(newSource()), protocompat.WithStore(store))
	require.NoError(t, err)

	ctx := context.Background()
	client, err := a.Load(ctx, "client.json")
	require.NoError(t, err)
	server, err := a.Load(ctx, "server.yaml")
	require.NoError(t, err)

	run, err := a.Compute(ctx, client, server, 1)
	require.NoError(t, err)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "client", run.Graph1)
	assert.Equal(t, "server", run.Graph2)
	assert.Equal(t, "degree", run.Weighting)
	require.Len(t, run.Matrices, 2)

	v, err := run.Final().Pair("c1", "s1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	v, err = run.Final().Pair("c1", "s0")
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	stored, err := a.Fetch(ctx, run.ID)
	require.NoError(t, err)
	assert.True(t, run.Final().Equal(stored.Final(), 0))
}

func TestAnalyzer_LoadMissing(t *testing.T) {
	a, err := protocompat.New(protocompat.WithSource(newSource()))
	require.NoError(t, err)

	_, err = a.Load(context.Background(), "nope.json")
	assert.ErrorIs(t, err, domain.ErrDescriptionNotFound)
}

func TestAnalyzer_FetchWithoutStore(t *testing.T) {
	a, err := protocompat.New()
	require.NoError(t, err)

	_, err = a.Fetch(context.Background(), "x")
	assert.ErrorIs(t, err, protocompat.ErrNoStore)
}

func TestAnalyzer_UnknownWeighting(t *testing.T) {
	_, err := protocompat.New(protocompat.WithWeighting("entropy"))
	assert.Error(t, err)
}

func TestAnalyzer_MatchingWeighting(t *testing.T) {
	a, err := protocompat.New(protocompat.WithWeighting("matching"), protocompat.WithWorkers(2))
	require.NoError(t, err)

	run, err := a.Compute(context.Background(), testutils.ClientGraph(t), testutils.ServerGraph(t), 1)
	require.NoError(t, err)
	assert.Equal(t, "matching", run.Weighting)
	assert.Len(t, run.Matrices, 2)
}

func TestAnalyzer_RejectsTau(t *testing.T) {
	a, err := protocompat.New()
	require.NoError(t, err)

	withTau := dsl.New("tau").
		Initial("t0").Tau("internal", "t1").Then().
		Final("t1").Then().
		MustBuild()

	_, err = a.Compute(context.Background(), withTau, testutils.ServerGraph(t), 1)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFeature)

	_, err = a.Step(context.Background(), withTau, testutils.ServerGraph(t), nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFeature)
}

func TestAnalyzer_StepFromSeed(t *testing.T) {
	a, err := protocompat.New()
	require.NoError(t, err)

	client, server := testutils.ClientGraph(t), testutils.ServerGraph(t)
	seed, err := a.Step(context.Background(), client, server, nil)
	require.NoError(t, err)
	next, err := a.Step(context.Background(), client, server, seed)
	require.NoError(t, err)

	v, err := next.Pair("c0", "s2")
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)
}

func TestAnalyzer_Validate(t *testing.T) {
	a, err := protocompat.New()
	require.NoError(t, err)

	assert.NoError(t, a.Validate([]byte(testutils.ClientJSON)))
	assert.ErrorIs(t, a.Validate([]byte(`{"graph_name":""}`)), domain.ErrMalformedDescription)
}
