package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
)

// RouteClient obtains the authoritative road distance between two points
// from the order backend's routing service.
type RouteClient interface {
	QuoteRoute(ctx context.Context, origin, destination models.GeoPoint) (float64, error)
}

// HTTPRouteClient calls the order backend's route-quote endpoint. The
// backend runs the same road network the couriers are dispatched on, so its
// distance beats any straight-line estimate.
type HTTPRouteClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPRouteClient(cfg *models.Config) *HTTPRouteClient {
	return &HTTPRouteClient{
		baseURL:    strings.TrimSuffix(cfg.OrderAPIBaseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type routeQuoteRequest struct {
	OriginLat      float64 `json:"origin_lat"`
	OriginLng      float64 `json:"origin_lng"`
	DestinationLat float64 `json:"destination_lat"`
	DestinationLng float64 `json:"destination_lng"`
}

type routeQuoteResponse struct {
	DistanceKm float64 `json:"distance_km"`
}

func (c *HTTPRouteClient) QuoteRoute(ctx context.Context, origin, destination models.GeoPoint) (float64, error) {
	payload, err := json.Marshal(routeQuoteRequest{
		OriginLat:      origin.Lat,
		OriginLng:      origin.Lng,
		DestinationLat: destination.Lat,
		DestinationLng: destination.Lng,
	})
	if err != nil {
		return 0, fmt.Errorf("encoding route quote request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/delivery/route-quote", strings.NewReader(string(payload)))
	if err != nil {
		return 0, fmt.Errorf("building route quote request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("route quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("route quote returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("reading route quote response: %w", err)
	}

	var quote routeQuoteResponse
	if err := json.Unmarshal(body, &quote); err != nil {
		return 0, fmt.Errorf("decoding route quote response: %w", err)
	}
	if quote.DistanceKm < 0 {
		return 0, fmt.Errorf("route quote returned negative distance %f", quote.DistanceKm)
	}
	return quote.DistanceKm, nil
}
