// Package weather answers one question for the fee engine: is it raining at
// a point right now. Answers come from OpenWeatherMap and are cached per
// rounded coordinate so that route waypoint checks do not burn through the
// API quota.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
)

// Service reports current precipitation at a point.
type Service interface {
	IsRainy(ctx context.Context, point models.GeoPoint) (bool, error)
}

// Conditions that count as rain for surcharge purposes.
var rainyConditions = []string{
	"rain",
	"drizzle",
	"thunderstorm",
}

type cacheEntry struct {
	rainy   bool
	fetched time.Time
}

// OpenWeatherClient queries the OpenWeatherMap current-weather endpoint.
// Results are cached for the configured TTL, keyed by coordinates rounded
// to four decimals (roughly 11 m), so nearby waypoints share one lookup.
type OpenWeatherClient struct {
	apiKey     string
	baseURL    string
	ttl        time.Duration
	httpClient *http.Client
	now        func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewOpenWeatherClient(cfg *models.Config) *OpenWeatherClient {
	return &OpenWeatherClient{
		apiKey:     cfg.WeatherAPIKey,
		baseURL:    strings.TrimSuffix(cfg.WeatherAPIBaseURL, "/"),
		ttl:        cfg.WeatherCacheTTL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
		cache:      make(map[string]cacheEntry),
	}
}

type owmResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

func (c *OpenWeatherClient) IsRainy(ctx context.Context, point models.GeoPoint) (bool, error) {
	key := fmt.Sprintf("%.4f,%.4f", point.Lat, point.Lng)

	c.mu.Lock()
	if entry, ok := c.cache[key]; ok && c.now().Sub(entry.fetched) < c.ttl {
		c.mu.Unlock()
		return entry.rainy, nil
	}
	c.mu.Unlock()

	rainy, err := c.fetch(ctx, point)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	c.cache[key] = cacheEntry{rainy: rainy, fetched: c.now()}
	c.mu.Unlock()

	return rainy, nil
}

func (c *OpenWeatherClient) fetch(ctx context.Context, point models.GeoPoint) (bool, error) {
	reqURL := fmt.Sprintf("%s/data/2.5/weather?lat=%f&lon=%f&appid=%s",
		c.baseURL, point.Lat, point.Lng, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("building weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("weather service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("reading weather response: %w", err)
	}

	var parsed owmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return false, fmt.Errorf("decoding weather response: %w", err)
	}

	for _, w := range parsed.Weather {
		if isRainyCondition(w.Main) || isRainyCondition(w.Description) {
			return true, nil
		}
	}
	return false, nil
}

func isRainyCondition(condition string) bool {
	lowered := strings.ToLower(condition)
	for _, rc := range rainyConditions {
		if strings.Contains(lowered, rc) {
			return true
		}
	}
	return false
}
