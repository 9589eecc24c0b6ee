package observability_test

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/aretw0/protocompat/pkg/observability"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnRoundEnd(ctx, &domain.RoundEvent{Round: 1, Pairs: 4, Duration: 3 * time.Millisecond})
	hooks.OnPairScored(ctx, &domain.PairEvent{})
	hooks.OnPairScored(ctx, &domain.PairEvent{})
	hooks.OnRunFailed(ctx, &domain.FailureEvent{Err: fmt.Errorf("wrapped: %w", domain.ErrUnsupportedFeature)})

	body := scrape(t, m)
	assert.Contains(t, body, "protocompat_rounds_total 1")
	assert.Contains(t, body, "protocompat_pairs_total 2")
	assert.Contains(t, body, `protocompat_runs_failed_total{reason="unsupported_feature"} 1`)
	assert.Contains(t, body, "protocompat_round_duration_seconds_count 1")
}

func scrape(t *testing.T, m *observability.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	return rec.Body.String()
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.Hooks().OnRoundEnd(context.Background(), &domain.RoundEvent{Duration: time.Millisecond})

	assert.True(t, strings.Contains(scrape(t, m), "protocompat_rounds_total 1"))
}

func TestReason(t *testing.T) {
	assert.Equal(t, observability.ReasonMalformed, observability.Reason(domain.ErrMalformedDescription))
	assert.Equal(t, observability.ReasonCanceled, observability.Reason(context.Canceled))
	assert.Equal(t, observability.ReasonOther, observability.Reason(errors.New("boom")))
}

func TestChain(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnRoundStart: func(context.Context, *domain.RoundEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnRoundStart: func(context.Context, *domain.RoundEvent) { calls = append(calls, "b") },
		OnRunFailed:  func(context.Context, *domain.FailureEvent) { calls = append(calls, "b-fail") },
	}

	hooks := observability.Chain(a, domain.LifecycleHooks{}, b)
	hooks.OnRoundStart(context.Background(), &domain.RoundEvent{})
	hooks.OnRunFailed(context.Background(), &domain.FailureEvent{})

	assert.Equal(t, []string{"a", "b", "b-fail"}, calls)
	assert.Nil(t, hooks.OnPairScored)
}
