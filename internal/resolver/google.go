package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
)

// GoogleProvider talks to the Google Maps Platform web services: the
// Geocoding API for forward/reverse lookups and the Places API for
// autocomplete and place details. Autocomplete results are restricted to
// the configured region so that a partial query like "Galle" does not
// surface matches on another continent.
type GoogleProvider struct {
	apiKey     string
	baseURL    string
	regionBias string
	httpClient *http.Client
}

func NewGoogleProvider(cfg *models.Config) *GoogleProvider {
	return &GoogleProvider{
		apiKey:     cfg.MapAPIKey,
		baseURL:    strings.TrimSuffix(cfg.MapAPIBaseURL, "/"),
		regionBias: cfg.MapRegionBias,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type googleGeometry struct {
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

type googleAddressComponent struct {
	LongName string   `json:"long_name"`
	Types    []string `json:"types"`
}

type googleGeocodeResult struct {
	FormattedAddress  string                   `json:"formatted_address"`
	Geometry          googleGeometry           `json:"geometry"`
	AddressComponents []googleAddressComponent `json:"address_components"`
}

type googleGeocodeResponse struct {
	Status       string                `json:"status"`
	ErrorMessage string                `json:"error_message"`
	Results      []googleGeocodeResult `json:"results"`
}

func (g *GoogleProvider) ReverseGeocode(ctx context.Context, point models.GeoPoint) (Candidate, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", point.Lat, point.Lng))
	params.Set("key", g.apiKey)

	var resp googleGeocodeResponse
	if err := g.getJSON(ctx, "/maps/api/geocode/json", params, &resp); err != nil {
		return Candidate{}, err
	}
	if err := classifyStatus(resp.Status, resp.ErrorMessage); err != nil {
		return Candidate{}, err
	}
	if len(resp.Results) == 0 {
		return Candidate{}, &ProviderError{Type: ErrorTypeNotFound, Message: "no address found for coordinates"}
	}
	return candidateFromResult(resp.Results[0]), nil
}

func (g *GoogleProvider) Geocode(ctx context.Context, query string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("address", query)
	params.Set("key", g.apiKey)
	if g.regionBias != "" {
		params.Set("region", g.regionBias)
	}

	var resp googleGeocodeResponse
	if err := g.getJSON(ctx, "/maps/api/geocode/json", params, &resp); err != nil {
		return nil, err
	}
	if err := classifyStatus(resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(resp.Results))
	for _, res := range resp.Results {
		candidates = append(candidates, candidateFromResult(res))
	}
	return candidates, nil
}

type googleAutocompleteResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Predictions  []struct {
		PlaceID     string `json:"place_id"`
		Description string `json:"description"`
	} `json:"predictions"`
}

func (g *GoogleProvider) Autocomplete(ctx context.Context, partial, countryFilter string) ([]Suggestion, error) {
	params := url.Values{}
	params.Set("input", partial)
	params.Set("key", g.apiKey)
	if countryFilter == "" {
		countryFilter = g.regionBias
	}
	if countryFilter != "" {
		params.Set("components", "country:"+countryFilter)
	}

	var resp googleAutocompleteResponse
	if err := g.getJSON(ctx, "/maps/api/place/autocomplete/json", params, &resp); err != nil {
		return nil, err
	}
	if err := classifyStatus(resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		suggestions = append(suggestions, Suggestion{PlaceID: p.PlaceID, Description: p.Description})
	}
	return suggestions, nil
}

type googleDetailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Result       struct {
		FormattedAddress string         `json:"formatted_address"`
		Geometry         googleGeometry `json:"geometry"`
	} `json:"result"`
}

func (g *GoogleProvider) PlaceDetails(ctx context.Context, placeID string) (PlaceDetail, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "geometry,formatted_address")
	params.Set("key", g.apiKey)

	var resp googleDetailsResponse
	if err := g.getJSON(ctx, "/maps/api/place/details/json", params, &resp); err != nil {
		return PlaceDetail{}, err
	}
	if err := classifyStatus(resp.Status, resp.ErrorMessage); err != nil {
		return PlaceDetail{}, err
	}
	return PlaceDetail{
		Point: models.GeoPoint{
			Lat: resp.Result.Geometry.Location.Lat,
			Lng: resp.Result.Geometry.Location.Lng,
		},
		FormattedAddress: resp.Result.FormattedAddress,
	}, nil
}

func (g *GoogleProvider) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s%s?%s", g.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &ProviderError{Type: ErrorTypeInvalidRequest, Message: "building request", Err: err}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return &ProviderError{Type: ErrorTypeTimeout, Message: "request timed out", Err: err}
		}
		return &ProviderError{Type: ErrorTypeNetworkError, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ClassifyHTTPError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ProviderError{Type: ErrorTypeNetworkError, Message: "reading response", Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ProviderError{Type: ErrorTypeUnknown, Message: "decoding response", Err: err}
	}
	return nil
}

// classifyStatus maps the Google status field to a ProviderError. The HTTP
// layer usually returns 200 even for application-level failures, so this is
// where most errors surface.
func classifyStatus(status, message string) error {
	switch status {
	case "OK", "ZERO_RESULTS":
		return nil
	case "OVER_QUERY_LIMIT":
		return &ProviderError{Type: ErrorTypeQuotaExceeded, Message: "over_query_limit: " + message}
	case "REQUEST_DENIED":
		return &ProviderError{Type: ErrorTypeQuotaExceeded, Message: "request denied: " + message}
	case "INVALID_REQUEST":
		return &ProviderError{Type: ErrorTypeInvalidRequest, Message: "invalid request: " + message}
	case "NOT_FOUND":
		return &ProviderError{Type: ErrorTypeNotFound, Message: "not found: " + message}
	default:
		return &ProviderError{Type: ErrorTypeUnknown, Message: fmt.Sprintf("status %s: %s", status, message)}
	}
}

func candidateFromResult(res googleGeocodeResult) Candidate {
	c := Candidate{
		FormattedAddress: res.FormattedAddress,
		Point: models.GeoPoint{
			Lat: res.Geometry.Location.Lat,
			Lng: res.Geometry.Location.Lng,
		},
	}
	for _, comp := range res.AddressComponents {
		for _, typ := range comp.Types {
			switch typ {
			case "locality":
				c.City = comp.LongName
			case "postal_code":
				c.PostalCode = comp.LongName
			}
		}
	}
	return c
}
