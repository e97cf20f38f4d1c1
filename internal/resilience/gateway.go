package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"

	"github.com/ideaforge/messaging-service/internal/model"
)

type Settings struct {
	// MaxRetries caps retries after the initial attempt.
	MaxRetries       int
	InitialBackoff   time.Duration
	FailureThreshold int
	CoolDown         time.Duration
}

// Observer receives the duration of every store call; used by the
// scalability monitor for slow-query alerting.
type Observer interface {
	TrackDatabasePerformance(op string, duration time.Duration)
}

// Gateway wraps message-store calls in retry-with-backoff plus a circuit
// breaker. Only transient errors are retried or counted toward the
// breaker; validation, capacity and not-found errors pass straight
// through to the caller.
type Gateway struct {
	cb             *gobreaker.CircuitBreaker[struct{}]
	maxRetries     uint64
	initialBackoff time.Duration
	observer       Observer
}

func New(s Settings, observer Observer) *Gateway {
	g := &Gateway{
		maxRetries:     uint64(s.MaxRetries),
		initialBackoff: s.InitialBackoff,
		observer:       observer,
	}

	g.cb = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "message-store",
		MaxRequests: 1,
		Timeout:     s.CoolDown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(s.FailureThreshold)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || callerCancelled(err) || !model.IsTransient(err)
		},
	})

	return g
}

// Do executes fn against the store through the breaker. While the breaker
// is open the store is never invoked and the call fails fast.
func (g *Gateway) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	_, err := g.cb.Execute(func() (struct{}, error) {
		return struct{}{}, g.withRetry(ctx, op, fn)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return model.NewCircuitOpenError(op)
	}

	return err
}

func (g *Gateway) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	start := time.Now()
	defer func() {
		if g.observer != nil {
			g.observer.TrackDatabasePerformance(op, time.Since(start))
		}
	}()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = g.initialBackoff
	bo.MaxElapsedTime = 0

	err := backoff.Retry(func() error {
		err := fn(ctx)
		if err != nil && (callerCancelled(err) || !model.IsTransient(err)) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(bo, g.maxRetries), ctx))

	if err == nil || callerCancelled(err) || !model.IsTransient(err) {
		return err
	}

	var typed *model.Error
	if errors.As(err, &typed) {
		return err
	}
	return model.NewTransientError(err)
}

// callerCancelled reports whether err stems from the caller's own context
// rather than store health. Such errors are returned verbatim: they are
// never retried and never count toward the breaker.
func callerCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
