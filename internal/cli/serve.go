package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/protocompat/internal/config"
	httpAdapter "github.com/aretw0/protocompat/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/protocompat/pkg/adapters/mcp"
	"github.com/aretw0/protocompat/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, cfg config.Config, out io.Writer) error {
	logger, err := resolveLogger(nil, cfg.LogLevel)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	metrics := observability.NewMetrics()
	hooks := observability.Chain(metrics.Hooks(), createDebugHooks(logger))
	analyzer, err := createAnalyzer(cfg, logger, store, hooks)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.Serve.Addr,
		Handler: httpAdapter.NewHandler(analyzer,
			httpAdapter.WithMetrics(metrics.Handler()),
			httpAdapter.WithLogger(logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		fmt.Fprintf(out, "Starting protocompat server on %s (store: %s)\n", srv.Addr, cfg.Store.Driver)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		fmt.Fprintln(out, "\nStart shutdown...")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		fmt.Fprintln(out, "protocompat server stopped gracefully")
		return nil
	}
}

// ServeMCP exposes the analyzer as MCP tools over stdio or SSE.
func ServeMCP(ctx context.Context, cfg config.Config, transport, addr string) error {
	logger, err := resolveLogger(nil, cfg.LogLevel)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	analyzer, err := createAnalyzer(cfg, logger, store, createDebugHooks(logger))
	if err != nil {
		return err
	}
	server := mcpAdapter.NewServer(analyzer, logger)

	switch transport {
	case "", "stdio":
		return server.ServeStdio()
	case "sse":
		return server.ServeSSE(ctx, addr)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or sse)", transport)
	}
}
