// Package pricing computes delivery fee quotes. The authoritative distance
// comes from the order backend's routing service; when that is unreachable
// the engine falls back to a straight-line estimate and marks the quote
// accordingly.
package pricing

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/CroosRRAF/ChefSync-sub005/internal/geo"
	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
	"github.com/CroosRRAF/ChefSync-sub005/internal/weather"
)

// Number of intermediate points sampled for weather along the route.
const routeWeatherSamples = 3

// Engine turns a pickup/dropoff pair into a FeeBreakdown.
type Engine struct {
	cfg     *models.Config
	route   RouteClient
	weather weather.Service

	loc *time.Location
}

func NewEngine(cfg *models.Config, route RouteClient, weatherSvc weather.Service) (*Engine, error) {
	loc, err := time.LoadLocation(cfg.LocalTimezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", cfg.LocalTimezone, err)
	}
	return &Engine{cfg: cfg, route: route, weather: weatherSvc, loc: loc}, nil
}

// ComputeFee quotes the delivery fee from origin to destination for an order
// of the given class, evaluated at the given wall-clock time.
//
// The remote routing service is tried first; its road distance plus a
// weather check along the route produces an authoritative quote. If the
// backend cannot be reached the quote is rebuilt from the straight-line
// distance with no weather surcharge and Source set to fallback, so the
// caller can label it an estimate.
func (e *Engine) ComputeFee(ctx context.Context, origin, destination models.GeoPoint, class models.OrderClass, at time.Time) (models.FeeBreakdown, error) {
	if !class.Valid() {
		return models.FeeBreakdown{}, fmt.Errorf("unknown order class %q", class)
	}

	// Validates both endpoints and doubles as the fallback distance.
	lineDistance, err := geo.Distance(origin, destination)
	if err != nil {
		return models.FeeBreakdown{}, err
	}

	night := e.isNightWindow(at)

	routeCtx := ctx
	if e.cfg.RouteQuoteTimeout > 0 {
		var cancel context.CancelFunc
		routeCtx, cancel = context.WithTimeout(ctx, e.cfg.RouteQuoteTimeout)
		defer cancel()
	}

	roadDistance, routeErr := e.route.QuoteRoute(routeCtx, origin, destination)
	if routeErr != nil {
		log.Printf("pricing: route quote unavailable, falling back to straight-line distance: %v", routeErr)
		return e.compose(lineDistance, class, night, false, models.SourceFallback), nil
	}

	rainy := e.isRainyAlongRoute(ctx, origin, destination)
	return e.compose(roadDistance, class, night, rainy, models.SourceRemote), nil
}

// compose builds the breakdown from the pricing table. The base price
// covers the first free kilometres; every started kilometre beyond that is
// billed at a fixed per-km rate. Night and rain each add a percentage of
// the distance fee, computed independently so the two never compound.
func (e *Engine) compose(distanceKm float64, class models.OrderClass, night, rainy bool, source models.FeeSource) models.FeeBreakdown {
	base := e.cfg.BaseDeliveryPrice
	if class == models.OrderClassBulk {
		base = e.cfg.BaseDeliveryPrice * e.cfg.BulkBaseMultiplier
	}

	perKm := e.cfg.BaseDeliveryPrice * e.cfg.PerKmRateFactor

	extraKm := 0.0
	if distanceKm > e.cfg.FreeKm {
		extraKm = math.Ceil(distanceKm - e.cfg.FreeKm)
	}

	distanceFee := round2(base + extraKm*perKm)

	timeSurcharge := 0.0
	if night {
		timeSurcharge = round2(distanceFee * e.cfg.TimeSurchargeRate)
	}

	weatherSurcharge := 0.0
	if rainy {
		weatherSurcharge = round2(distanceFee * e.cfg.WeatherSurchargeRate)
	}

	return models.FeeBreakdown{
		BaseFee:          base,
		DistanceFee:      distanceFee,
		TimeSurcharge:    timeSurcharge,
		WeatherSurcharge: weatherSurcharge,
		Total:            round2(distanceFee + timeSurcharge + weatherSurcharge),
		Currency:         e.cfg.Currency,
		Source:           source,
		Factors: models.DeliveryFactors{
			DistanceKm:    distanceKm,
			IsNightWindow: night,
			IsRainy:       rainy,
			OrderClass:    class,
		},
	}
}

// isNightWindow checks the local hour against a window that wraps midnight,
// e.g. 18:00 through 05:00.
func (e *Engine) isNightWindow(at time.Time) bool {
	hour := at.In(e.loc).Hour()
	if e.cfg.NightStartHour > e.cfg.NightEndHour {
		return hour >= e.cfg.NightStartHour || hour < e.cfg.NightEndHour
	}
	return hour >= e.cfg.NightStartHour && hour < e.cfg.NightEndHour
}

// isRainyAlongRoute samples the endpoints plus a few interpolated waypoints
// and reports rain if any sample does. Weather failures downgrade to "not
// rainy" rather than failing the whole quote.
func (e *Engine) isRainyAlongRoute(ctx context.Context, origin, destination models.GeoPoint) bool {
	samples := make([]models.GeoPoint, 0, routeWeatherSamples+2)
	samples = append(samples, origin)
	samples = append(samples, geo.Waypoints(origin, destination, routeWeatherSamples)...)
	samples = append(samples, destination)

	for _, point := range samples {
		rainy, err := e.weather.IsRainy(ctx, point)
		if err != nil {
			log.Printf("pricing: weather check failed at %s, assuming dry: %v", point, err)
			continue
		}
		if rainy {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
