package resolver

import (
	"context"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
)

// Candidate is a single forward- or reverse-geocoding match.
type Candidate struct {
	FormattedAddress string
	Point            models.GeoPoint
	City             string
	PostalCode       string
}

// Suggestion is one autocomplete entry. PlaceID is an opaque provider
// identifier usable with PlaceDetails; it is empty for degraded results.
type Suggestion struct {
	PlaceID     string
	Description string
}

// PlaceDetail resolves an opaque place identifier to a point.
type PlaceDetail struct {
	Point            models.GeoPoint
	FormattedAddress string
}

// Provider is the external mapping/geocoding collaborator. Every method is
// a fallible, quota-bounded network round trip.
type Provider interface {
	ReverseGeocode(ctx context.Context, point models.GeoPoint) (Candidate, error)
	Geocode(ctx context.Context, query string) ([]Candidate, error)
	Autocomplete(ctx context.Context, partial, countryFilter string) ([]Suggestion, error)
	PlaceDetails(ctx context.Context, placeID string) (PlaceDetail, error)
}
