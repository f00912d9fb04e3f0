// Package replay drives the full location pipeline against a simulated
// device: raw readings flow through the debounced tracker, each change is
// reverse geocoded, the catalog is re-ranked, a fee is quoted, and every
// step is published to the configured output destination.
package replay

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/CroosRRAF/ChefSync-sub005/internal/events"
	"github.com/CroosRRAF/ChefSync-sub005/internal/factories"
	"github.com/CroosRRAF/ChefSync-sub005/internal/geo"
	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
	"github.com/CroosRRAF/ChefSync-sub005/internal/pricing"
	"github.com/CroosRRAF/ChefSync-sub005/internal/ranker"
	"github.com/CroosRRAF/ChefSync-sub005/internal/resolver"
	"github.com/CroosRRAF/ChefSync-sub005/internal/sensor"
	"github.com/CroosRRAF/ChefSync-sub005/internal/tracker"
	"github.com/CroosRRAF/ChefSync-sub005/internal/weather"
	"github.com/lucsky/cuid"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Colombo Fort, the default center for generated data.
var defaultCenter = models.GeoPoint{Lat: 6.9355, Lng: 79.8487}

type Options struct {
	Seed           int64
	Readings       int
	SensorInterval time.Duration
	SupplierCount  int
	CatalogSize    int
}

func DefaultOptions() Options {
	return Options{
		Seed:           42,
		Readings:       30,
		SensorInterval: 200 * time.Millisecond,
		SupplierCount:  12,
		CatalogSize:    20,
	}
}

type Session struct {
	cfg  *models.Config
	opts Options

	resolver *resolver.Resolver
	engine   *pricing.Engine
	ranker   *ranker.Ranker
	output   events.OutputDestination
}

func NewSession(cfg *models.Config, opts Options) (*Session, error) {
	output, err := events.NewOutputDestination(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating output destination: %w", err)
	}

	engine, err := pricing.NewEngine(cfg, pricing.NewHTTPRouteClient(cfg), weather.NewOpenWeatherClient(cfg))
	if err != nil {
		return nil, err
	}

	return &Session{
		cfg:      cfg,
		opts:     opts,
		resolver: resolver.New(resolver.NewGoogleProvider(cfg), cfg),
		engine:   engine,
		ranker:   ranker.New(cfg),
		output:   output,
	}, nil
}

// Run replays a generated track through the pipeline until the track is
// exhausted or the context is cancelled.
func (s *Session) Run(ctx context.Context) error {
	defer func() {
		if err := s.output.Close(); err != nil {
			log.Printf("Error closing output: %v", err)
		}
	}()

	factory := factories.New(defaultCenter, 8.0, s.opts.Seed)
	suppliers := factory.SupplierLocations(s.opts.SupplierCount)
	entries := factory.CatalogEntries(s.opts.CatalogSize, suppliers)
	userID := cuid.New()

	track := s.buildTrack()
	device := sensor.NewSimulatedDevice(track, s.opts.SensorInterval)

	trk := tracker.New(s.cfg)
	trk.Start()
	defer trk.Stop()

	sub, err := trk.AttachSensor(device, sensor.Config{
		HighAccuracy: s.cfg.SensorHighAccuracy,
		Timeout:      s.cfg.SensorTimeout,
		MaxCacheAge:  s.cfg.SensorMaxCacheAge,
	})
	if err != nil {
		return fmt.Errorf("attaching sensor: %w", err)
	}
	defer sub.Stop()

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(track),
			progressbar.OptionSetDescription("Replaying track"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	// The watch stops on its own once the track runs out; allow one more
	// debounce window for a pending change to flush.
	deadline := time.Duration(len(track)+2)*s.opts.SensorInterval + s.cfg.DebounceInterval
	timeout := time.After(deadline)

	changes := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout:
			log.Printf("Replay finished: %d readings, %d significant changes", len(track), changes)
			return nil
		case ev := <-trk.Events():
			changes++
			if bar != nil {
				bar.Add(1)
			}
			s.handleChange(ctx, userID, ev, entries)
		}
	}
}

// handleChange fans one debounced location change out to geocoding, catalog
// ranking, and fee computation, publishing an event for each step.
func (s *Session) handleChange(ctx context.Context, userID string, ev tracker.Event, entries []models.CatalogEntry) {
	base := events.BaseEvent{
		Timestamp: ev.At.Unix(),
		UserID:    userID,
	}

	base.EventType = events.TopicLocationChanged
	if err := events.Publish(s.output, events.TopicLocationChanged, events.LocationChangedEvent{
		BaseEvent: base,
		Lat:       ev.Point.Lat,
		Lng:       ev.Point.Lng,
		Mode:      string(ev.Mode),
	}); err != nil {
		log.Printf("Failed to publish location change: %v", err)
	}

	resolved := s.resolver.ReverseGeocode(ctx, ev.Point)
	base.EventType = events.TopicAddressResolved
	if err := events.Publish(s.output, events.TopicAddressResolved, events.AddressResolvedEvent{
		BaseEvent:        base,
		Lat:              ev.Point.Lat,
		Lng:              ev.Point.Lng,
		FormattedAddress: resolved.Address.FormattedAddress,
		Status:           string(resolved.Status),
	}); err != nil {
		log.Printf("Failed to publish address resolution: %v", err)
	}

	ranked := s.ranker.Rank(ev.Point, entries)
	if len(ranked) == 0 || len(ranked[0].SupplierLocations) == 0 {
		return
	}

	origin := ranked[0].SupplierLocations[0].Point
	fee, err := s.engine.ComputeFee(ctx, origin, ev.Point, models.OrderClassRegular, ev.At)
	if err != nil {
		log.Printf("Fee computation failed: %v", err)
		return
	}

	base.EventType = events.TopicFeeComputed
	if err := events.Publish(s.output, events.TopicFeeComputed, events.FeeComputedEvent{
		BaseEvent:        base,
		OriginLat:        origin.Lat,
		OriginLng:        origin.Lng,
		DestinationLat:   ev.Point.Lat,
		DestinationLng:   ev.Point.Lng,
		DistanceKm:       fee.Factors.DistanceKm,
		OrderClass:       string(fee.Factors.OrderClass),
		BaseFee:          fee.BaseFee,
		DistanceFee:      fee.DistanceFee,
		TimeSurcharge:    fee.TimeSurcharge,
		WeatherSurcharge: fee.WeatherSurcharge,
		Total:            fee.Total,
		Currency:         fee.Currency,
		Source:           string(fee.Source),
	}); err != nil {
		log.Printf("Failed to publish fee quote: %v", err)
	}
}

// buildTrack lays out a run from Colombo Fort south to Dehiwala and partway
// back, long enough to cross the significant-change threshold several times.
func (s *Session) buildTrack() []models.GeoPoint {
	start := defaultCenter
	turn := models.GeoPoint{Lat: 6.8565, Lng: 79.8682} // Dehiwala

	readings := s.opts.Readings
	if readings < 4 {
		readings = 4
	}
	outbound := readings * 2 / 3
	inbound := readings - outbound

	track := make([]models.GeoPoint, 0, s.opts.Readings)
	track = append(track, start)
	track = append(track, geo.Waypoints(start, turn, outbound-1)...)
	track = append(track, turn)
	track = append(track, geo.Waypoints(turn, start, inbound-1)...)
	return track
}
