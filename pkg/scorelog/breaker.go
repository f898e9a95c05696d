package scorelog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitOpenError reports circuit-open status with a concrete retry delay.
type CircuitOpenError struct {
	Name       string
	RetryAfter time.Duration
}

func (e *CircuitOpenError) Error() string {
	retryAfter := max(e.RetryAfter, 0)
	if e.Name == "" {
		return fmt.Sprintf("%v: retry in %s", ErrCircuitOpen, retryAfter)
	}
	return fmt.Sprintf("%v for %s: retry in %s", ErrCircuitOpen, e.Name, retryAfter)
}

func (e *CircuitOpenError) Is(target error) bool {
	return target == ErrCircuitOpen
}

type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half_open"
)

type BreakerConfig struct {
	Name             string
	FailureThreshold int
	OpenTimeout      time.Duration
	// Now overrides the wall clock, mainly for tests.
	Now func() time.Time
}

// Breaker stops calling a failing backend for OpenTimeout after
// FailureThreshold consecutive failures, then lets a single probe through.
type Breaker struct {
	mu  sync.Mutex
	cfg BreakerConfig

	state     BreakerState
	failures  int
	openUntil time.Time
	probing   bool
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 10 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Breaker{cfg: cfg, state: BreakerClosed}
}

func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refreshLocked(b.cfg.Now())
	return b.state
}

func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := b.before(); err != nil {
		return err
	}

	err := fn(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.probing = false

	switch {
	case errors.Is(err, context.Canceled):
		// Caller cancellation says nothing about the backend.
	case err != nil:
		b.failures++
		if b.state == BreakerHalfOpen || b.failures >= b.cfg.FailureThreshold {
			b.state = BreakerOpen
			b.openUntil = b.cfg.Now().Add(b.cfg.OpenTimeout)
			b.failures = 0
		}
	default:
		b.state = BreakerClosed
		b.failures = 0
	}
	return err
}

func (b *Breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.cfg.Now()
	b.refreshLocked(now)

	switch b.state {
	case BreakerOpen:
		return b.openErrLocked(now)
	case BreakerHalfOpen:
		if b.probing {
			return b.openErrLocked(now)
		}
		b.probing = true
	}
	return nil
}

func (b *Breaker) refreshLocked(now time.Time) {
	if b.state == BreakerOpen && !now.Before(b.openUntil) {
		b.state = BreakerHalfOpen
		b.failures = 0
		b.probing = false
	}
}

func (b *Breaker) openErrLocked(now time.Time) error {
	return &CircuitOpenError{
		Name:       b.cfg.Name,
		RetryAfter: max(b.openUntil.Sub(now), 0),
	}
}
