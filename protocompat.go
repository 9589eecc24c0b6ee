package protocompat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/protocompat/internal/compiler"
	"github.com/aretw0/protocompat/internal/runtime"
	"github.com/aretw0/protocompat/pkg/adapters/file"
	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/aretw0/protocompat/pkg/matrix"
	"github.com/aretw0/protocompat/pkg/ports"
	"github.com/google/uuid"
)

// ErrNoStore is returned by Fetch when the Analyzer has no ResultStore.
var ErrNoStore = errors.New("no result store configured")

// Analyzer is the high-level entry point of the library.
// It loads protocol graphs, runs the compatibility engine and records the runs.
type Analyzer struct {
	engine    *runtime.Engine
	parser    *compiler.Parser
	source    ports.GraphSource
	store     ports.ResultStore
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	weighting string
	workers   int
}

// Option defines a functional option for configuring the Analyzer.
type Option func(*Analyzer)

// WithLogger sets a custom structured logger for parsing and computation.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithWorkers spreads each round over n goroutines.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.workers = n
	}
}

// WithWeighting selects the weight strategy by name ("degree" or "matching").
func WithWeighting(name string) Option {
	return func(a *Analyzer) {
		a.weighting = name
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Analyzer) {
		a.hooks = hooks
	}
}

// WithSource injects the GraphSource used by Load. Defaults to the working directory.
func WithSource(s ports.GraphSource) Option {
	return func(a *Analyzer) {
		a.source = s
	}
}

// WithStore persists every computed run.
func WithStore(s ports.ResultStore) Option {
	return func(a *Analyzer) {
		a.store = s
	}
}

// New initializes an Analyzer. It fails only on an unknown weighting name.
func New(opts ...Option) (*Analyzer, error) {
	a := &Analyzer{weighting: runtime.WeightingDegree, workers: 1}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if a.source == nil {
		a.source = file.NewSource("")
	}

	strategy, err := runtime.StrategyByName(a.weighting)
	if err != nil {
		return nil, err
	}

	a.parser = compiler.NewParser(compiler.WithLogger(a.logger))
	a.engine = runtime.NewEngine(
		runtime.WithLogger(a.logger),
		runtime.WithWeighting(strategy),
		runtime.WithWorkers(a.workers),
		runtime.WithLifecycleHooks(a.hooks),
	)
	return a, nil
}

// Parse builds a graph from a JSON or YAML description.
func (a *Analyzer) Parse(data []byte) (*domain.Graph, error) {
	return a.parser.Parse(data)
}

// Load reads ref from the configured source and parses it.
// The file extension of ref, if any, selects the decoder.
func (a *Analyzer) Load(ctx context.Context, ref string) (*domain.Graph, error) {
	data, err := a.source.Read(ctx, ref)
	if err != nil {
		return nil, err
	}
	g, err := a.parser.ParseFormat(data, compiler.FormatFromPath(ref))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref, err)
	}
	return g, nil
}

// Validate reports whether data is a well-formed description of a linked graph.
func (a *Analyzer) Validate(data []byte) error {
	_, err := a.parser.Parse(data)
	return err
}

// Compute runs rounds 0 through rounds between g1 and g2.
// The run gets a fresh ID and is saved when a store is configured.
func (a *Analyzer) Compute(ctx context.Context, g1, g2 *domain.Graph, rounds int) (*domain.Run, error) {
	matrices, err := a.engine.Run(ctx, g1, g2, rounds)
	if err != nil {
		return nil, err
	}

	run := &domain.Run{
		ID:        uuid.NewString(),
		Graph1:    g1.Name(),
		Graph2:    g2.Name(),
		Rounds:    rounds,
		Weighting: a.engine.Weighting().Name(),
		CreatedAt: time.Now().UTC(),
		Matrices:  matrices,
	}

	if a.store != nil {
		if err := a.store.Save(ctx, run); err != nil {
			return run, fmt.Errorf("failed to save run %s: %w", run.ID, err)
		}
		a.logger.Info("run saved", "run_id", run.ID)
	}
	return run, nil
}

// Step computes the single matrix that follows prev. A nil prev yields the round-zero matrix.
func (a *Analyzer) Step(ctx context.Context, g1, g2 *domain.Graph, prev *matrix.Matrix) (*matrix.Matrix, error) {
	return a.engine.ComputeCompatibility(ctx, g1, g2, prev)
}

// Fetch loads a previously stored run.
func (a *Analyzer) Fetch(ctx context.Context, id string) (*domain.Run, error) {
	if a.store == nil {
		return nil, ErrNoStore
	}
	return a.store.Load(ctx, id)
}

// Store returns the configured ResultStore, or nil.
func (a *Analyzer) Store() ports.ResultStore { return a.store }
