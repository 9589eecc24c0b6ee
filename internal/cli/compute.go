package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/protocompat"
	"github.com/aretw0/protocompat/internal/config"
	"github.com/aretw0/protocompat/internal/logging"
	"github.com/aretw0/protocompat/internal/presentation/report"
	"github.com/aretw0/protocompat/internal/presentation/tui"
	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/aretw0/protocompat/pkg/matrix"
)

// ComputeOptions contains all the configuration for the compute command.
type ComputeOptions struct {
	Graphs []string // Exactly two description files: graph 1 then graph 2
	Config config.Config
	Stdout io.Writer
	Logger *slog.Logger // Overrides Config.LogLevel when set
}

// RunCompute loads both graphs, runs the engine and writes every round to Stdout
// and to the output file.
func RunCompute(ctx context.Context, opts ComputeOptions) error {
	if len(opts.Graphs) != 2 {
		return fmt.Errorf("compute needs exactly two graphs, got %d", len(opts.Graphs))
	}
	cfg := opts.Config
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	logger, err := resolveLogger(opts.Logger, cfg.LogLevel)
	if err != nil {
		return err
	}

	if cfg.Banner {
		tui.PrintBanner(out, strings.TrimSpace(protocompat.Version))
	}

	store, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("store close failed", "error", err)
		}
	}()

	analyzer, err := createAnalyzer(cfg, logger, store, createDebugHooks(logger))
	if err != nil {
		return err
	}

	graphs := make([]*domain.Graph, 0, 2)
	for _, path := range opts.Graphs {
		g, err := analyzer.Load(ctx, path)
		if err != nil {
			return err
		}
		graphs = append(graphs, g)
	}

	if err := report.WriteGenerationReport(out, graphs...); err != nil {
		return err
	}

	stored := store != nil
	run, err := analyzer.Compute(ctx, graphs[0], graphs[1], cfg.Rounds)
	if err != nil {
		if run == nil {
			if msg := interruption(ctx); msg != "" {
				printSystemMessage(out, "%s before round %d completed.", msg, cfg.Rounds)
			}
			return err
		}
		stored = false
		// The matrices are valid; only persistence failed.
		logger.Error("run not persisted", "error", err)
		printSystemMessage(out, "Warning: %v", err)
	}

	if err := writeResults(out, cfg.Output, format, run.Matrices); err != nil {
		return err
	}

	if stored {
		printSystemMessage(out, "Run stored with ID %s", run.ID)
	}
	return nil
}

// writeResults prints the rounds to out and, when path is set, replaces the file at path.
func writeResults(out io.Writer, path string, format report.Format, matrices []*matrix.Matrix) error {
	if err := writeReport(out, format, matrices); err != nil {
		return err
	}
	if path == "" {
		return nil
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove previous output %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output %s: %w", path, err)
	}
	if err := report.Write(f, format, matrices); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write output %s: %w", path, err)
	}
	return f.Close()
}

// writeReport renders markdown through glamour when out is a terminal.
func writeReport(out io.Writer, format report.Format, matrices []*matrix.Matrix) error {
	if format != report.FormatMarkdown || !tui.IsTerminal(out) {
		return report.Write(out, format, matrices)
	}

	var sb strings.Builder
	if err := report.WriteMarkdown(&sb, matrices); err != nil {
		return err
	}
	rendered, err := tui.NewRenderer(tui.Width(out))(sb.String())
	if err != nil {
		rendered = sb.String()
	}
	_, err = io.WriteString(out, rendered)
	return err
}

func resolveLogger(logger *slog.Logger, level string) (*slog.Logger, error) {
	if logger != nil {
		return logger, nil
	}
	return logging.FromLevel(level)
}
