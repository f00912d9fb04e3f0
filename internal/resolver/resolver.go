// Package resolver converts between coordinates and human-readable
// addresses through an external mapping provider, degrading gracefully when
// the provider is slow, throttled, or unreachable. Callers always get a
// usable result; the Status field says how trustworthy it is.
package resolver

import (
	"context"
	"log"
	"time"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
)

// Status says how a result was produced.
type Status string

const (
	// StatusOK means the provider answered and the result is authoritative.
	StatusOK Status = "ok"
	// StatusDegraded means the provider failed and the result is a local
	// placeholder. Degraded results never carry invented coordinates.
	StatusDegraded Status = "degraded"
	// StatusFailed means no usable result could be produced at all.
	StatusFailed Status = "failed"
)

type ReverseResult struct {
	Status  Status
	Address Candidate
}

type ForwardResult struct {
	Status     Status
	Candidates []Candidate
}

type SuggestResult struct {
	Status      Status
	Suggestions []Suggestion
}

type DetailResult struct {
	Status Status
	Detail PlaceDetail
}

// Resolver wraps a Provider with a per-call timeout and placeholder
// fallbacks. Methods do not return errors; provider failures are logged and
// reported through the result Status.
type Resolver struct {
	provider Provider
	timeout  time.Duration
	region   string
}

func New(provider Provider, cfg *models.Config) *Resolver {
	return &Resolver{
		provider: provider,
		timeout:  cfg.ResolverTimeout,
		region:   cfg.MapRegionBias,
	}
}

// ReverseGeocode turns a point into a display address. On provider failure
// the formatted address is the raw coordinates, which is always correct if
// not pretty, and the original point is preserved.
func (r *Resolver) ReverseGeocode(ctx context.Context, point models.GeoPoint) ReverseResult {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cand, err := r.provider.ReverseGeocode(ctx, point)
	if err != nil {
		log.Printf("resolver: reverse geocode degraded for %s: %v", point, err)
		return ReverseResult{
			Status: StatusDegraded,
			Address: Candidate{
				FormattedAddress: point.String(),
				Point:            point,
			},
		}
	}
	return ReverseResult{Status: StatusOK, Address: cand}
}

// Geocode turns free text into location candidates. On provider failure, or
// when the provider has no match at all, the single degraded candidate
// echoes the query text with no coordinates, so a caller cannot mistake it
// for a real match.
func (r *Resolver) Geocode(ctx context.Context, query string) ForwardResult {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	candidates, err := r.provider.Geocode(ctx, query)
	if err != nil || len(candidates) == 0 {
		if err != nil {
			log.Printf("resolver: geocode degraded for %q: %v", query, err)
		}
		return ForwardResult{
			Status:     StatusDegraded,
			Candidates: []Candidate{{FormattedAddress: query}},
		}
	}
	return ForwardResult{Status: StatusOK, Candidates: candidates}
}

// Suggest returns autocomplete entries for a partial query, restricted to
// the configured region. The degraded fallback echoes the partial text as
// the only suggestion; it has no place ID and cannot be resolved further.
func (r *Resolver) Suggest(ctx context.Context, partial string) SuggestResult {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	suggestions, err := r.provider.Autocomplete(ctx, partial, r.region)
	if err != nil || len(suggestions) == 0 {
		if err != nil {
			log.Printf("resolver: autocomplete degraded for %q: %v", partial, err)
		}
		return SuggestResult{
			Status:      StatusDegraded,
			Suggestions: []Suggestion{{Description: partial}},
		}
	}
	return SuggestResult{Status: StatusOK, Suggestions: suggestions}
}

// ResolvePlace turns an autocomplete place ID into coordinates. There is no
// placeholder that makes sense here: a point cannot be invented, so provider
// failure reports StatusFailed. An empty place ID (from a degraded
// suggestion) fails immediately without a provider round trip.
func (r *Resolver) ResolvePlace(ctx context.Context, placeID string) DetailResult {
	if placeID == "" {
		return DetailResult{Status: StatusFailed}
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	detail, err := r.provider.PlaceDetails(ctx, placeID)
	if err != nil {
		log.Printf("resolver: place details failed for %q: %v", placeID, err)
		return DetailResult{Status: StatusFailed}
	}
	return DetailResult{Status: StatusOK, Detail: detail}
}

func (r *Resolver) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}
