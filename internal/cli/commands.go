package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/protocompat/internal/config"
	"github.com/aretw0/protocompat/internal/logging"
	"github.com/aretw0/protocompat/internal/presentation/graph"
	"github.com/aretw0/protocompat/internal/presentation/report"
	"github.com/aretw0/protocompat/internal/validator"
	"github.com/aretw0/protocompat/pkg/domain"
)

// ErrInvalidDescriptions is returned by Validate when at least one file is rejected.
var ErrInvalidDescriptions = errors.New("invalid graph descriptions")

// Validate parses every file and reports the outcome per file.
func Validate(ctx context.Context, files []string, w io.Writer) error {
	if len(files) == 0 {
		return fmt.Errorf("validate needs at least one file")
	}
	analyzer, err := createAnalyzer(config.Default(), logging.NewNop(), nil, domain.LifecycleHooks{})
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range files {
		g, err := analyzer.Load(ctx, path)
		if err != nil {
			failed++
			fmt.Fprintf(w, "❌ %s\n", path)
			details := validator.ValidationErrors(err)
			if len(details) == 0 {
				fmt.Fprintf(w, "   %v\n", err)
			}
			for _, d := range details {
				fmt.Fprintf(w, "   - %v\n", d)
			}
			continue
		}

		transitions := 0
		for _, s := range g.States() {
			transitions += s.NumOutgoing()
		}
		fmt.Fprintf(w, "✅ %s: graph %q (%d states, %d transitions)\n", path, g.Name(), g.Len(), transitions)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files: %w", failed, len(files), ErrInvalidDescriptions)
	}
	return nil
}

// GraphOptions configures the graph command.
type GraphOptions struct {
	File      string
	Against   string  // Optional second graph used to colour states by best score
	Threshold float64 // Score at or above which a state counts as matched
	Config    config.Config
	Logger    *slog.Logger
}

// RenderGraph writes the Mermaid flowchart of opts.File to w.
func RenderGraph(ctx context.Context, opts GraphOptions, w io.Writer) error {
	logger, err := resolveLogger(opts.Logger, opts.Config.LogLevel)
	if err != nil {
		return err
	}
	analyzer, err := createAnalyzer(opts.Config, logger, nil, domain.LifecycleHooks{})
	if err != nil {
		return err
	}

	g, err := analyzer.Load(ctx, opts.File)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if opts.Against != "" {
		other, err := analyzer.Load(ctx, opts.Against)
		if err != nil {
			return err
		}
		run, err := analyzer.Compute(ctx, g, other, opts.Config.Rounds)
		if err != nil {
			return err
		}
		overlay = &graph.GraphOverlay{
			Scores:    graph.BestScores(run.Final(), true),
			Threshold: opts.Threshold,
		}
	}

	_, err = io.WriteString(w, graph.GenerateMermaid(g, overlay))
	return err
}

// Show prints a stored run using the configured store.
func Show(ctx context.Context, cfg config.Config, id string, w io.Writer) error {
	logger, err := logging.FromLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()
	if store == nil {
		return fmt.Errorf("no store configured: set --store or store.driver")
	}

	run, err := store.Load(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "run %s: %s vs %s, %d rounds, %s weighting, created %s\n\n",
		run.ID, run.Graph1, run.Graph2, run.Rounds, run.Weighting, run.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	return writeReport(w, format, run.Matrices)
}

// ListRuns prints the IDs of every stored run, one per line.
func ListRuns(ctx context.Context, cfg config.Config, w io.Writer) error {
	store, closeStore, err := openStore(ctx, cfg.Store, logging.NewNop())
	if err != nil {
		return err
	}
	defer closeStore()
	if store == nil {
		return fmt.Errorf("no store configured: set --store or store.driver")
	}

	ids, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(w, id)
	}
	return nil
}
