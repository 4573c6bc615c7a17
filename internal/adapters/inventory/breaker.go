package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"

	"smart_travel/internal/adapters/observability"
	"smart_travel/internal/domain"
)

// BreakerSource guards a CandidateSource with a circuit breaker. While open,
// calls fail fast with ErrCandidateSourceUnavailable.
type BreakerSource struct {
	next domain.CandidateSource
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

type BreakerSettings struct {
	Name        string
	MaxRequests uint32        // allowed through while half-open
	Interval    time.Duration // closed-state count reset
	Timeout     time.Duration // open -> half-open
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:        "inventory",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
	}
}

func NewBreakerSource(next domain.CandidateSource, s BreakerSettings) *BreakerSource {
	observability.SetBreakerState(s.Name, stateToFloat(gobreaker.StateClosed))

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		// at least 10 requests, 60% of them failed
		ReadyToTrip: func(c gobreaker.Counts) bool {
			if c.Requests < 10 {
				return false
			}
			ratio := float64(c.TotalFailures) / float64(c.Requests)
			if ratio >= 0.6 {
				log.Warn().Uint32("failures", c.TotalFailures).Float64("failure_rate", ratio).Msg("inventory breaker opening")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("breaker state change")
			observability.SetBreakerState(name, stateToFloat(to))
		},
		// a caller giving up says nothing about the remote's health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return &BreakerSource{next: next, cb: cb, name: s.Name}
}

func (b *BreakerSource) State() gobreaker.State { return b.cb.State() }

func (b *BreakerSource) SearchFlights(ctx context.Context, q domain.FlightQuery) ([]domain.Flight, error) {
	return castResult[[]domain.Flight](b.execute(func() (any, error) {
		return b.next.SearchFlights(ctx, q)
	}))
}

func (b *BreakerSource) SearchHotels(ctx context.Context, q domain.HotelQuery) ([]domain.Hotel, error) {
	return castResult[[]domain.Hotel](b.execute(func() (any, error) {
		return b.next.SearchHotels(ctx, q)
	}))
}

func (b *BreakerSource) SearchActivities(ctx context.Context, q domain.ActivityQuery) ([]domain.Activity, error) {
	return castResult[[]domain.Activity](b.execute(func() (any, error) {
		return b.next.SearchActivities(ctx, q)
	}))
}

func (b *BreakerSource) execute(fn func() (any, error)) (any, error) {
	res, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		observability.ObserveBreakerRejection(b.name)
		return nil, fmt.Errorf("%w: %s breaker: %w", domain.ErrCandidateSourceUnavailable, b.name, err)
	}
	return res, err
}

func castResult[T any](res any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}
	typed, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("breaker: unexpected result type %T", res)
	}
	return typed, nil
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
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
