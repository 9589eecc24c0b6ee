package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/protocompat/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// interruption names the signal that cancelled ctx, or returns "" when ctx
// carries no signal.
func interruption(ctx context.Context) string {
	sc, ok := ctx.(interface{ Signal() os.Signal })
	if !ok {
		return ""
	}
	switch sig := sc.Signal(); sig {
	case nil:
		return ""
	case os.Interrupt:
		return "Interrupted"
	case syscall.SIGTERM:
		return "Terminated"
	default:
		return fmt.Sprintf("Stopped by %v", sig)
	}
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// createDebugHooks logs round boundaries at Debug level.
func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRoundStart: func(ctx context.Context, e *domain.RoundEvent) {
			logger.Debug("Round Start", "round", e.Round, "pairs", e.Pairs)
		},
		OnRoundEnd: func(ctx context.Context, e *domain.RoundEvent) {
			logger.Debug("Round End", "round", e.Round, "duration", e.Duration)
		},
		OnRunFailed: func(ctx context.Context, e *domain.FailureEvent) {
			logger.Debug("Run Failed", "round", e.Round, "err", e.Err)
		},
	}
}
