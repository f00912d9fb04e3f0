package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	reverseCand Candidate
	geocodeOut  []Candidate
	suggestOut  []Suggestion
	detailOut   PlaceDetail
	err         error

	lastCountryFilter string
	detailCalls       int
}

func (s *stubProvider) ReverseGeocode(ctx context.Context, point models.GeoPoint) (Candidate, error) {
	if s.err != nil {
		return Candidate{}, s.err
	}
	return s.reverseCand, nil
}

func (s *stubProvider) Geocode(ctx context.Context, query string) ([]Candidate, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.geocodeOut, nil
}

func (s *stubProvider) Autocomplete(ctx context.Context, partial, countryFilter string) ([]Suggestion, error) {
	s.lastCountryFilter = countryFilter
	if s.err != nil {
		return nil, s.err
	}
	return s.suggestOut, nil
}

func (s *stubProvider) PlaceDetails(ctx context.Context, placeID string) (PlaceDetail, error) {
	s.detailCalls++
	if s.err != nil {
		return PlaceDetail{}, s.err
	}
	return s.detailOut, nil
}

func testConfig() *models.Config {
	return &models.Config{
		ResolverTimeout: 200 * time.Millisecond,
		MapRegionBias:   "lk",
	}
}

func TestReverseGeocodeOK(t *testing.T) {
	stub := &stubProvider{
		reverseCand: Candidate{
			FormattedAddress: "42 Galle Road, Colombo 03",
			Point:            models.GeoPoint{Lat: 6.9120, Lng: 79.8500},
			City:             "Colombo",
			PostalCode:       "00300",
		},
	}
	r := New(stub, testConfig())

	res := r.ReverseGeocode(context.Background(), models.GeoPoint{Lat: 6.9120, Lng: 79.8500})
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "42 Galle Road, Colombo 03", res.Address.FormattedAddress)
	assert.Equal(t, "Colombo", res.Address.City)
}

func TestReverseGeocodeDegradedKeepsCoordinates(t *testing.T) {
	stub := &stubProvider{err: &ProviderError{Type: ErrorTypeRateLimit, Message: "rate limit reached"}}
	r := New(stub, testConfig())

	point := models.GeoPoint{Lat: 6.9355, Lng: 79.8487}
	res := r.ReverseGeocode(context.Background(), point)

	assert.Equal(t, StatusDegraded, res.Status)
	assert.Equal(t, point, res.Address.Point, "degraded result keeps the real point")
	assert.Equal(t, point.String(), res.Address.FormattedAddress)
}

func TestGeocodeDegradedCarriesNoCoordinates(t *testing.T) {
	stub := &stubProvider{err: &ProviderError{Type: ErrorTypeNetworkError, Message: "request failed"}}
	r := New(stub, testConfig())

	res := r.Geocode(context.Background(), "Temple of the Tooth, Kandy")

	assert.Equal(t, StatusDegraded, res.Status)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "Temple of the Tooth, Kandy", res.Candidates[0].FormattedAddress)
	assert.Equal(t, models.GeoPoint{}, res.Candidates[0].Point, "a degraded candidate must not invent coordinates")
}

func TestGeocodeNoMatchesDegrades(t *testing.T) {
	stub := &stubProvider{geocodeOut: nil}
	r := New(stub, testConfig())

	res := r.Geocode(context.Background(), "nowhere at all")
	assert.Equal(t, StatusDegraded, res.Status)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "nowhere at all", res.Candidates[0].FormattedAddress)
}

func TestSuggestUsesRegionFilter(t *testing.T) {
	stub := &stubProvider{
		suggestOut: []Suggestion{
			{PlaceID: "pl-1", Description: "Galle Face Green, Colombo"},
			{PlaceID: "pl-2", Description: "Galle Fort, Galle"},
		},
	}
	r := New(stub, testConfig())

	res := r.Suggest(context.Background(), "Galle")
	assert.Equal(t, StatusOK, res.Status)
	assert.Len(t, res.Suggestions, 2)
	assert.Equal(t, "lk", stub.lastCountryFilter)
}

func TestSuggestDegradedEchoesPartial(t *testing.T) {
	stub := &stubProvider{err: &ProviderError{Type: ErrorTypeTimeout, Message: "request timed out"}}
	r := New(stub, testConfig())

	res := r.Suggest(context.Background(), "Galle")
	assert.Equal(t, StatusDegraded, res.Status)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, "Galle", res.Suggestions[0].Description)
	assert.Empty(t, res.Suggestions[0].PlaceID)
}

func TestResolvePlaceFailsWithoutFabricating(t *testing.T) {
	stub := &stubProvider{err: &ProviderError{Type: ErrorTypeNotFound, Message: "not found"}}
	r := New(stub, testConfig())

	res := r.ResolvePlace(context.Background(), "pl-missing")
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, models.GeoPoint{}, res.Detail.Point)
}

func TestResolvePlaceEmptyIDSkipsProvider(t *testing.T) {
	stub := &stubProvider{}
	r := New(stub, testConfig())

	res := r.ResolvePlace(context.Background(), "")
	assert.Equal(t, StatusFailed, res.Status)
	assert.Zero(t, stub.detailCalls)
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		typ    ErrorType
	}{
		{"too many requests", 429, ErrorTypeRateLimit},
		{"forbidden", 403, ErrorTypeQuotaExceeded},
		{"bad request", 400, ErrorTypeInvalidRequest},
		{"not found", 404, ErrorTypeNotFound},
		{"bad gateway", 502, ErrorTypeNetworkError},
		{"teapot", 418, ErrorTypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyHTTPError(tt.status)
			assert.Equal(t, tt.typ, err.Type)
		})
	}

	assert.True(t, IsRateLimitError(ClassifyHTTPError(429)))
	assert.True(t, IsQuotaExceededError(ClassifyHTTPError(403)))
	assert.True(t, IsTimeoutError(&ProviderError{Type: ErrorTypeTimeout, Message: "request timed out"}))
	assert.False(t, IsRateLimitError(ClassifyHTTPError(404)))
}
