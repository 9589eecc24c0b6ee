package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/aretw0/protocompat/pkg/matrix"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidRounds is returned by Run for a negative round count.
var ErrInvalidRounds = errors.New("round count must be >= 0")

// decimals is the precision of every stored score.
const decimals = 3

// Engine computes compatibility matrices between two protocol graphs.
// It holds no per-run state and is safe for concurrent use.
type Engine struct {
	logger    *slog.Logger
	weighting WeightStrategy
	hooks     domain.LifecycleHooks
	workers   int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. Pair derivations are logged at Debug.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithWeighting replaces the default degree weighting.
func WithWeighting(w WeightStrategy) EngineOption {
	return func(e *Engine) {
		if w != nil {
			e.weighting = w
		}
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithWorkers spreads the state pairs of a round over n goroutines.
// Values below 2 keep the computation sequential.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		e.workers = n
	}
}

// NewEngine creates an engine with degree weighting and a discarding logger.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		weighting: DegreeWeighting{},
		workers:   1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Weighting returns the active weight strategy.
func (e *Engine) Weighting() WeightStrategy { return e.weighting }

// Preflight rejects graphs the engine cannot handle before any round runs:
// unlinked graphs and graphs with tau transitions.
func (e *Engine) Preflight(g1, g2 *domain.Graph) error {
	for _, g := range []*domain.Graph{g1, g2} {
		if g == nil {
			return fmt.Errorf("preflight: nil graph")
		}
		if !g.Linked() {
			return fmt.Errorf("preflight: graph %q: %w", g.Name(), domain.ErrGraphNotLinked)
		}
		if taus := g.Taus(); len(taus) > 0 {
			t := taus[0]
			return fmt.Errorf("preflight: graph %q state %q transition %q (%d tau uses): %w",
				g.Name(), t.State, t.Transition, len(taus), domain.ErrUnsupportedFeature)
		}
	}
	return nil
}

// Run checks both graphs, then computes rounds 0 through rounds and returns
// the rounds+1 matrices. The first error aborts the whole run.
func (e *Engine) Run(ctx context.Context, g1, g2 *domain.Graph, rounds int) ([]*matrix.Matrix, error) {
	if rounds < 0 {
		return nil, fmt.Errorf("%d: %w", rounds, ErrInvalidRounds)
	}
	if err := e.Preflight(g1, g2); err != nil {
		e.fail(ctx, 0, err)
		return nil, err
	}

	e.logger.Info("compatibility run started",
		"graph1", g1.Name(), "graph2", g2.Name(),
		"rounds", rounds, "weighting", e.weighting.Name())

	results := make([]*matrix.Matrix, 0, rounds+1)
	var prev *matrix.Matrix
	for round := 0; round <= rounds; round++ {
		if err := ctx.Err(); err != nil {
			e.fail(ctx, round, err)
			return nil, err
		}
		m, err := e.computeRound(ctx, g1, g2, prev, round)
		if err != nil {
			e.fail(ctx, round, err)
			return nil, fmt.Errorf("round %d: %w", round, err)
		}
		results = append(results, m)
		prev = m
	}
	return results, nil
}

// ComputeCompatibility produces the matrix that follows prev. With a nil prev it
// returns the uniform round-zero matrix. Neither prev nor the graphs are modified.
// Both graphs go through Preflight first, as in Run.
func (e *Engine) ComputeCompatibility(ctx context.Context, g1, g2 *domain.Graph, prev *matrix.Matrix) (*matrix.Matrix, error) {
	if err := e.Preflight(g1, g2); err != nil {
		return nil, err
	}
	return e.computeRound(ctx, g1, g2, prev, -1)
}

func (e *Engine) computeRound(ctx context.Context, g1, g2 *domain.Graph, prev *matrix.Matrix, round int) (*matrix.Matrix, error) {
	rows, cols := g2.StateNames(), g1.StateNames()
	start := time.Now()
	pairs := len(rows) * len(cols)

	if e.hooks.OnRoundStart != nil {
		e.hooks.OnRoundStart(ctx, &domain.RoundEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventRoundStart},
			Round:     round,
			Pairs:     pairs,
		})
	}

	next, err := matrix.Uniform(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("graphs %q/%q: %w", g1.Name(), g2.Name(), err)
	}

	if prev == nil {
		e.logger.Info("initial matrix, every pair set to 1", "rows", len(rows), "cols", len(cols))
	} else {
		if err := prev.CheckAxes(rows, cols); err != nil {
			return nil, fmt.Errorf("previous matrix: %w", err)
		}
		if err := e.fillMatrix(ctx, g1, g2, prev, next, round); err != nil {
			return nil, err
		}
	}

	elapsed := time.Since(start)
	e.logger.Info("round complete", "round", round, "pairs", pairs, "duration", elapsed)
	if e.hooks.OnRoundEnd != nil {
		e.hooks.OnRoundEnd(ctx, &domain.RoundEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRoundEnd},
			Round:     round,
			Pairs:     pairs,
			Duration:  elapsed,
		})
	}
	return next, nil
}

// fillMatrix scores every (state1, state2) pair into next. Each graph-1 state
// owns one column, so workers never write the same cell.
func (e *Engine) fillMatrix(ctx context.Context, g1, g2 *domain.Graph, prev, next *matrix.Matrix, round int) error {
	states2 := g2.States()

	scoreColumn := func(ctx context.Context, s1 *domain.State) error {
		for _, s2 := range states2 {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := e.scorePair(ctx, s1, s2, prev, round)
			if err != nil {
				return err
			}
			if err := next.Set(s2.Name(), s1.Name(), v); err != nil {
				return err
			}
		}
		return nil
	}

	if e.workers < 2 {
		for _, s1 := range g1.States() {
			if err := scoreColumn(ctx, s1); err != nil {
				return err
			}
		}
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, s1 := range g1.States() {
		g.Go(func() error {
			return scoreColumn(gCtx, s1)
		})
	}
	return g.Wait()
}

// scorePair runs observation, propagation, weighting and round smoothing for one pair.
func (e *Engine) scorePair(ctx context.Context, s1, s2 *domain.State, prev *matrix.Matrix, round int) (float64, error) {
	obs, err := ObservationalCompatibility(s1, s2, prev)
	if err != nil {
		return 0, fmt.Errorf("obs_comp(%s,%s): %w", s1.Name(), s2.Name(), err)
	}
	fw, err := ForwardPropagation(s1, s2, obs)
	if err != nil {
		return 0, err
	}
	bw, err := BackwardPropagation(s1, s2, obs)
	if err != nil {
		return 0, err
	}
	w, err := e.weighting.Weights(s1, s2)
	if err != nil {
		return 0, err
	}
	nature := StateNature(s1, s2)
	stateComp := StateCompatibility(w, fw, bw, nature)

	last, err := prev.Pair(s1.Name(), s2.Name())
	if err != nil {
		return 0, err
	}
	value := round3((last + stateComp) / 2)

	e.logger.Debug("pair scored",
		"round", round,
		"state1", s1.Name(), "state2", s2.Name(),
		"obs_comp", obs, "fw", fw, "bw", bw,
		"w1", w.Forward, "w2", w.Backward, "w3", w.Nature,
		"nature", nature, "state_comp", stateComp, "value", value)

	if e.hooks.OnPairScored != nil {
		e.hooks.OnPairScored(ctx, &domain.PairEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventPairScored},
			Round:     round,
			State1:    s1.Name(),
			State2:    s2.Name(),
			ObsComp:   obs,
			StateComp: stateComp,
			Value:     value,
		})
	}
	return value, nil
}

func (e *Engine) fail(ctx context.Context, round int, err error) {
	e.logger.Error("compatibility run aborted", "round", round, "error", err)
	if e.hooks.OnRunFailed != nil {
		e.hooks.OnRunFailed(ctx, &domain.FailureEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunFailed},
			Round:     round,
			Err:       err,
		})
	}
}

// round3 rounds the exact binary value half-to-even, so 0.5625 becomes 0.562.
func round3(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return r
}
