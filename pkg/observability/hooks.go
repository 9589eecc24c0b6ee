package observability

import (
	"context"

	"github.com/aretw0/protocompat/pkg/domain"
)

// Chain merges hook sets; each event is delivered to every non-nil callback in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		if h.OnRoundStart != nil {
			prev, next := out.OnRoundStart, h.OnRoundStart
			out.OnRoundStart = func(ctx context.Context, e *domain.RoundEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnRoundEnd != nil {
			prev, next := out.OnRoundEnd, h.OnRoundEnd
			out.OnRoundEnd = func(ctx context.Context, e *domain.RoundEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnPairScored != nil {
			prev, next := out.OnPairScored, h.OnPairScored
			out.OnPairScored = func(ctx context.Context, e *domain.PairEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnRunFailed != nil {
			prev, next := out.OnRunFailed, h.OnRunFailed
			out.OnRunFailed = func(ctx context.Context, e *domain.FailureEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
	}
	return out
}
