package catalog

import (
	"context"
	"errors"
	"time"

	"movie-favorites/internal/data/entity"
	"movie-favorites/pkg/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// BreakerSettings tunes the circuit breaker around a Source.
type BreakerSettings struct {
	// ConsecutiveFailures opens the circuit.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the circuit stays open before a probe.
	OpenTimeout time.Duration
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		ConsecutiveFailures: 3,
		OpenTimeout:         time.Minute,
	}
}

// Breaker stops calling the catalog after repeated failures so a refresh run
// over many favorites fails fast once the catalog is down. Not-found and
// parse outcomes do not count as failures.
type Breaker struct {
	source Source
	cb     *gobreaker.CircuitBreaker[any]
	log    *zap.Logger
}

var _ Source = (*Breaker)(nil)

func NewBreaker(source Source, settings BreakerSettings, log *zap.Logger) *Breaker {
	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = DefaultBreakerSettings().ConsecutiveFailures
	}
	if settings.OpenTimeout <= 0 {
		settings.OpenTimeout = DefaultBreakerSettings().OpenTimeout
	}

	log = log.With(zap.String("client", "catalog-breaker"))
	metrics.CatalogBreakerState.Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "catalog",
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			switch KindOf(err) {
			case KindNotFound, KindParse:
				return true
			case KindTimeout, KindUnauthorized:
				return false
			}
			// the caller gave up, the catalog did not fail
			return errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CatalogBreakerState.Set(stateToFloat(to))
		},
	})

	return &Breaker{source: source, cb: cb, log: log}
}

func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func (b *Breaker) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.CatalogRequests.WithLabelValues("rejected").Inc()
		return nil, &Error{Kind: KindNetwork, Err: err}
	}
	return result, err
}

func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, &Error{Kind: KindParse, Err: errors.New("circuit breaker: unexpected result type")}
	}
	return typed, nil
}

func (b *Breaker) Popular(ctx context.Context, page int) (*MoviePage, error) {
	return castResult[*MoviePage](b.execute(func() (any, error) {
		return b.source.Popular(ctx, page)
	}))
}

func (b *Breaker) TopRated(ctx context.Context, page int) (*MoviePage, error) {
	return castResult[*MoviePage](b.execute(func() (any, error) {
		return b.source.TopRated(ctx, page)
	}))
}

func (b *Breaker) Movie(ctx context.Context, movieID int64) (*entity.Movie, error) {
	return castResult[*entity.Movie](b.execute(func() (any, error) {
		return b.source.Movie(ctx, movieID)
	}))
}

func (b *Breaker) Reviews(ctx context.Context, movieID int64) ([]entity.Review, error) {
	return castResult[[]entity.Review](b.execute(func() (any, error) {
		return b.source.Reviews(ctx, movieID)
	}))
}

func (b *Breaker) Trailers(ctx context.Context, movieID int64) ([]entity.Trailer, error) {
	return castResult[[]entity.Trailer](b.execute(func() (any, error) {
		return b.source.Trailers(ctx, movieID)
	}))
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
