package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRoundStart EventType = "round_start"
	EventRoundEnd   EventType = "round_end"
	EventPairScored EventType = "pair_scored"
	EventRunFailed  EventType = "run_failed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// RoundEvent marks the start or the end of one round of the engine.
type RoundEvent struct {
	EventBase
	Round    int           `json:"round"`
	Pairs    int           `json:"pairs"`
	Duration time.Duration `json:"duration,omitempty"`
}

// PairEvent carries the score of one state pair inside a round.
type PairEvent struct {
	EventBase
	Round     int     `json:"round"`
	State1    string  `json:"state1"`
	State2    string  `json:"state2"`
	ObsComp   float64 `json:"obs_comp"`
	StateComp float64 `json:"state_comp"`
	Value     float64 `json:"value"`
}

// FailureEvent reports why a run aborted.
type FailureEvent struct {
	EventBase
	Round int   `json:"round"`
	Err   error `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks may be called from several goroutines when the engine runs with workers.
type LifecycleHooks struct {
	OnRoundStart func(context.Context, *RoundEvent)
	OnRoundEnd   func(context.Context, *RoundEvent)
	OnPairScored func(context.Context, *PairEvent)
	OnRunFailed  func(context.Context, *FailureEvent)
}
