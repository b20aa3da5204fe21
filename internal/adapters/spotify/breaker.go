package spotify

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/ewilliams-labs/moodmix/internal/core/ports"
	"github.com/ewilliams-labs/moodmix/internal/logging"
	"github.com/ewilliams-labs/moodmix/internal/metrics"
)

// BreakerConfig configures the circuit breaker around the provider.
type BreakerConfig struct {
	Name         string
	Timeout      time.Duration // open -> half-open
	MinRequests  uint32
	FailureRatio float64
}

// Provider is what the breaker protects.
type Provider interface {
	ports.RecommendationProvider
	ports.ConnectivityChecker
}

// Breaker fails fast with ports.ErrProviderUnavailable while the Spotify API
// keeps failing. It makes no retries of its own.
type Breaker struct {
	next Provider
	cb   *gobreaker.CircuitBreaker[ports.RecommendationResponse]
	name string
}

var (
	_ ports.RecommendationProvider = (*Breaker)(nil)
	_ ports.ConnectivityChecker    = (*Breaker)(nil)
)

// NewBreaker wraps next with a circuit breaker.
func NewBreaker(next Provider, cfg BreakerConfig) *Breaker {
	name := cfg.Name
	if name == "" {
		name = "spotify-api"
	}
	minRequests := cfg.MinRequests
	if minRequests == 0 {
		minRequests = 5
	}
	ratio := cfg.FailureRatio
	if ratio <= 0 {
		ratio = 0.6
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[ports.RecommendationResponse](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= ratio
			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		// Caller cancellation says nothing about Spotify's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &Breaker{next: next, cb: cb, name: name}
}

// Recommendations forwards to the wrapped provider unless the circuit is open.
func (b *Breaker) Recommendations(ctx context.Context, req ports.RecommendationRequest) (ports.RecommendationResponse, error) {
	resp, err := b.cb.Execute(func() (ports.RecommendationResponse, error) {
		return b.next.Recommendations(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return ports.RecommendationResponse{}, fmt.Errorf("spotify adapter: %w: %w", ports.ErrProviderUnavailable, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return ports.RecommendationResponse{}, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return resp, nil
}

// TestConnection always probes the API so health reflects real reachability.
func (b *Breaker) TestConnection(ctx context.Context) bool {
	return b.next.TestConnection(ctx)
}

// State returns the current breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
