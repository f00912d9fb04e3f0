package sensor

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
	"github.com/jaswdr/faker"
)

// SimulatedDevice replays a fixed track of coordinates as if they came from
// a GPS chip, with a little positional jitter per reading. It stands in for
// the host platform's sensor in demos and tests.
type SimulatedDevice struct {
	track    []models.GeoPoint
	interval time.Duration
	denied   bool

	promptOnce sync.Once

	jitterMu sync.Mutex
	fake     faker.Faker

	mu         sync.Mutex
	lastFix    *Reading
	lastFixIdx int
}

func NewSimulatedDevice(track []models.GeoPoint, interval time.Duration) *SimulatedDevice {
	return &SimulatedDevice{
		track:    track,
		interval: interval,
		fake:     faker.New(),
	}
}

// DenyPermission makes every subsequent call fail the way a real device does
// when the user rejects the location prompt.
func (d *SimulatedDevice) DenyPermission() {
	d.denied = true
}

func (d *SimulatedDevice) GetCurrentPosition(ctx context.Context, cfg Config) (Reading, error) {
	d.prompt()
	if d.denied {
		return Reading{}, &Error{Kind: ErrPermissionDenied, Message: "location permission denied"}
	}
	if len(d.track) == 0 {
		return Reading{}, &Error{Kind: ErrUnavailable, Message: "no position available"}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lastFix != nil && cfg.MaxCacheAge > 0 && time.Since(d.lastFix.Time) <= cfg.MaxCacheAge {
		return *d.lastFix, nil
	}

	select {
	case <-ctx.Done():
		return Reading{}, &Error{Kind: ErrTimeout, Message: "position request timed out", Err: ctx.Err()}
	default:
	}

	fix := d.readingAt(d.lastFixIdx, cfg.HighAccuracy)
	d.lastFix = &fix
	return fix, nil
}

func (d *SimulatedDevice) StartWatch(cfg Config, onUpdate func(Reading)) (Subscription, error) {
	d.prompt()
	if d.denied {
		return nil, &Error{Kind: ErrPermissionDenied, Message: "location permission denied"}
	}

	sub := &simulatedSubscription{stop: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()

		idx := 0
		for {
			select {
			case <-sub.stop:
				return
			case <-ticker.C:
				if idx >= len(d.track) {
					return
				}
				fix := d.readingAt(idx, cfg.HighAccuracy)

				d.mu.Lock()
				d.lastFix = &fix
				d.lastFixIdx = idx
				d.mu.Unlock()

				onUpdate(fix)
				idx++
			}
		}
	}()
	return sub, nil
}

func (d *SimulatedDevice) prompt() {
	d.promptOnce.Do(func() {
		log.Printf("simulated device: requesting location permission")
	})
}

// readingAt jitters the track point by up to ~20 m in each axis, scaled down
// when high accuracy is requested.
func (d *SimulatedDevice) readingAt(idx int, highAccuracy bool) Reading {
	point := d.track[idx]
	jitterDeg := 0.0002 // about 22 meters
	accuracy := 25.0
	if highAccuracy {
		jitterDeg = 0.00005
		accuracy = 8.0
	}

	d.jitterMu.Lock()
	point.Lat += (d.fake.Float64(6, -100, 100) / 100) * jitterDeg
	point.Lng += (d.fake.Float64(6, -100, 100) / 100) * jitterDeg
	d.jitterMu.Unlock()

	return Reading{Point: point, AccuracyM: accuracy, Time: time.Now()}
}

type simulatedSubscription struct {
	once sync.Once
	stop chan struct{}
}

func (s *simulatedSubscription) Stop() {
	s.once.Do(func() { close(s.stop) })
}
