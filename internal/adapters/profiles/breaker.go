package profiles

import (
	"context"
	"errors"
	"time"

	perr "sitesearch/internal/platform/errors"
	"sitesearch/internal/platform/logger"

	"github.com/sony/gobreaker"
)

// BreakerOptions tunes the circuit breaker around a Source
type BreakerOptions struct {
	Name             string
	FailureThreshold uint32        // consecutive failures before opening, default 5
	OpenFor          time.Duration // time spent open before a probe, default 30s
	HalfOpenProbes   uint32        // requests allowed while half-open, default 1
}

// Breaker fails fast while the profile service is unhealthy
// only service-side failures trip it; a missing site or a malformed profile does not
type Breaker struct {
	src Source
	cb  *gobreaker.CircuitBreaker
}

// NewBreaker wraps src
func NewBreaker(src Source, o BreakerOptions) *Breaker {
	if o.Name == "" {
		o.Name = "profiles"
	}
	if o.FailureThreshold == 0 {
		o.FailureThreshold = 5
	}
	if o.OpenFor <= 0 {
		o.OpenFor = 30 * time.Second
	}
	if o.HalfOpenProbes == 0 {
		o.HalfOpenProbes = 1
	}
	log := logger.Named("profiles")
	threshold := o.FailureThreshold
	return &Breaker{
		src: src,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        o.Name,
			MaxRequests: o.HalfOpenProbes,
			Timeout:     o.OpenFor,
			ReadyToTrip: func(c gobreaker.Counts) bool { return c.ConsecutiveFailures >= threshold },
			IsSuccessful: func(err error) bool {
				return err == nil || !serviceFailure(err)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("profile breaker state change")
			},
		}),
	}
}

func serviceFailure(err error) bool {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeUnavailable, perr.ErrorCodeTooManyRequests, perr.ErrorCodeTimeout, perr.ErrorCodeUpstream:
		return true
	default:
		return false
	}
}

// SiteProfile delegates to the wrapped Source unless the breaker is open
func (b *Breaker) SiteProfile(ctx context.Context, siteID string) (Profile, error) {
	out, err := b.cb.Execute(func() (any, error) {
		return b.src.SiteProfile(ctx, siteID)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Profile{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "profile service circuit open")
		}
		return Profile{}, err
	}
	return out.(Profile), nil
}

// State reports the breaker state: closed, half-open or open
func (b *Breaker) State() string { return b.cb.State().String() }

// Ping delegates to the wrapped Source when it can be pinged
func (b *Breaker) Ping(ctx context.Context) error {
	if p, ok := b.src.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
