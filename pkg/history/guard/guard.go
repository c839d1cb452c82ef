// Package guard wraps a history.Store with a three-state circuit breaker
// (closed → open → half-open). When the backing store fails repeatedly,
// further calls fail fast with [ErrStoreUnavailable] instead of waiting on
// connection timeouts, so the turn loop degrades to context-free responses
// immediately. After a cooldown a limited number of probe calls decide
// whether the breaker closes again.
package guard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/havenchat/haven/pkg/history"
)

// ErrStoreUnavailable is returned while the breaker is open.
var ErrStoreUnavailable = errors.New("history store unavailable")

// State is the breaker's operating mode.
type State int

const (
	// StateClosed forwards all calls to the backing store.
	StateClosed State = iota

	// StateOpen rejects all calls until the cooldown elapses.
	StateOpen

	// StateHalfOpen lets a limited number of probe calls through.
	StateHalfOpen
)

// String returns the human-readable name of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config holds tuning knobs for a [Store]. Zero values select defaults.
type Config struct {
	// MaxFailures is the number of consecutive failures before the breaker
	// opens. Default: 5.
	MaxFailures int

	// Cooldown is how long the breaker stays open before probing again.
	// Default: 30s.
	Cooldown time.Duration

	// ProbeMax is the number of successful probes needed to close the
	// breaker from half-open. Default: 3.
	ProbeMax int

	// now overrides the clock in tests.
	now func() time.Time
}

// Store decorates a history.Store with breaker semantics. Safe for
// concurrent use.
type Store struct {
	inner history.Store

	maxFailures int
	cooldown    time.Duration
	probeMax    int
	now         func() time.Time

	mu          sync.Mutex
	state       State
	failures    int
	lastFailure time.Time
	probes      int
}

var _ history.Store = (*Store)(nil)

// Wrap decorates inner with a breaker configured by cfg.
func Wrap(inner history.Store, cfg Config) *Store {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	if cfg.ProbeMax <= 0 {
		cfg.ProbeMax = 3
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}
	return &Store{
		inner:       inner,
		maxFailures: cfg.MaxFailures,
		cooldown:    cfg.Cooldown,
		probeMax:    cfg.ProbeMax,
		now:         cfg.now,
	}
}

// State returns the breaker's current state. An open breaker whose cooldown
// has elapsed reports half-open; the transition itself happens on the next
// call.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateOpen && s.now().Sub(s.lastFailure) >= s.cooldown {
		return StateHalfOpen
	}
	return s.state
}

// call runs op through the breaker. Context cancellation counts against the
// caller, not the store, so it never trips the breaker.
func (s *Store) call(ctx context.Context, op func() error) error {
	s.mu.Lock()
	switch s.state {
	case StateOpen:
		if s.now().Sub(s.lastFailure) < s.cooldown {
			s.mu.Unlock()
			return ErrStoreUnavailable
		}
		s.state = StateHalfOpen
		s.probes = 0
		slog.Info("history store breaker probing", "state", s.state)
	case StateHalfOpen:
		if s.probes >= s.probeMax {
			s.mu.Unlock()
			return ErrStoreUnavailable
		}
	}
	probing := s.state == StateHalfOpen
	if probing {
		s.probes++
	}
	s.mu.Unlock()

	err := op()

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case err == nil:
		s.onSuccess(probing)
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil:
		// Caller gave up; the store may be healthy.
	default:
		s.onFailure(probing)
	}
	return err
}

// onSuccess must be called with s.mu held.
func (s *Store) onSuccess(probing bool) {
	if probing {
		if s.probes >= s.probeMax {
			s.state = StateClosed
			s.failures = 0
			s.probes = 0
			slog.Info("history store breaker closed")
		}
		return
	}
	s.failures = 0
}

// onFailure must be called with s.mu held.
func (s *Store) onFailure(probing bool) {
	s.lastFailure = s.now()
	if probing {
		s.state = StateOpen
		s.failures = s.maxFailures
		slog.Warn("history store breaker re-opened")
		return
	}
	s.failures++
	if s.failures >= s.maxFailures && s.state == StateClosed {
		s.state = StateOpen
		slog.Warn("history store breaker opened", "consecutive_failures", s.failures)
	}
}

// RecentExchanges forwards through the breaker.
func (s *Store) RecentExchanges(ctx context.Context, sessionID string, limit int) ([]history.Exchange, error) {
	var out []history.Exchange
	err := s.call(ctx, func() error {
		var innerErr error
		out, innerErr = s.inner.RecentExchanges(ctx, sessionID, limit)
		return innerErr
	})
	return out, err
}

// Append forwards through the breaker.
func (s *Store) Append(ctx context.Context, sessionID string, ex history.Exchange) error {
	return s.call(ctx, func() error {
		return s.inner.Append(ctx, sessionID, ex)
	})
}

// MoodHistory forwards through the breaker.
func (s *Store) MoodHistory(ctx context.Context, sessionID string, limit int) ([]history.MoodPoint, error) {
	var out []history.MoodPoint
	err := s.call(ctx, func() error {
		var innerErr error
		out, innerErr = s.inner.MoodHistory(ctx, sessionID, limit)
		return innerErr
	})
	return out, err
}

// ExchangeCount forwards through the breaker.
func (s *Store) ExchangeCount(ctx context.Context, sessionID string) (int, error) {
	var out int
	err := s.call(ctx, func() error {
		var innerErr error
		out, innerErr = s.inner.ExchangeCount(ctx, sessionID)
		return innerErr
	})
	return out, err
}
