// Package tracker turns the raw, noisy position stream from the device
// sensor into infrequent "location changed" events that are cheap enough to
// fan out to geocoding, catalog re-ranking, and fee refresh.
//
// All tracker state lives in a single goroutine; commands and timer fires
// arrive through one ordered loop, so no field needs its own lock and a
// late-firing timer can never race a point that was just superseded.
package tracker

import (
	"log"
	"time"

	"github.com/CroosRRAF/ChefSync-sub005/internal/geo"
	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
	"github.com/CroosRRAF/ChefSync-sub005/internal/sensor"
)

// Event is a debounced location change.
type Event struct {
	Point models.GeoPoint
	Mode  models.LocationMode
	At    time.Time
}

type command interface{ isCommand() }

type offerCmd struct {
	point models.GeoPoint
	at    time.Time
}

type setModeCmd struct {
	mode models.LocationMode
}

type setManualCmd struct {
	point models.GeoPoint
}

type currentCmd struct {
	reply chan models.TrackedLocation
}

func (offerCmd) isCommand()     {}
func (setModeCmd) isCommand()   {}
func (setManualCmd) isCommand() {}
func (currentCmd) isCommand()   {}

// Tracker debounces significant position changes. Create with New, then
// Start; feed raw readings with Offer or wire a sensor with AttachSensor.
type Tracker struct {
	significantChangeKm float64
	debounce            time.Duration
	now                 func() time.Time

	cmds   chan command
	events chan Event
	done   chan struct{}
}

func New(cfg *models.Config) *Tracker {
	return &Tracker{
		significantChangeKm: cfg.SignificantChangeKm,
		debounce:            cfg.DebounceInterval,
		now:                 time.Now,
		cmds:                make(chan command),
		events:              make(chan Event, 32),
		done:                make(chan struct{}),
	}
}

// Start launches the tracker loop. It must be called exactly once.
func (t *Tracker) Start() {
	go t.run()
}

// Events delivers debounced change events. The channel is closed on Stop.
// Events are dropped (with a log line) if the consumer falls far behind;
// downstream work is refresh-style, so a dropped event is superseded by the
// next one anyway.
func (t *Tracker) Events() <-chan Event {
	return t.events
}

// Offer feeds one raw sensor reading. Readings are processed strictly in
// arrival order. Safe to call from any goroutine; returns immediately after
// Stop.
func (t *Tracker) Offer(point models.GeoPoint, at time.Time) {
	t.send(offerCmd{point: point, at: at})
}

// SetMode switches between automatic and manual tracking. Switching to
// manual cancels any pending debounce and drops raw updates until automatic
// mode is restored; switching back re-arms from the current baseline without
// emitting.
func (t *Tracker) SetMode(mode models.LocationMode) {
	t.send(setModeCmd{mode: mode})
}

// SetManualLocation pins the customer's location. It switches to manual
// mode, cancels any pending debounce, and emits a change event immediately.
// Manual mode persists until explicitly cleared with SetMode.
func (t *Tracker) SetManualLocation(point models.GeoPoint) {
	t.send(setManualCmd{point: point})
}

// Current returns a snapshot of the tracked location.
func (t *Tracker) Current() models.TrackedLocation {
	reply := make(chan models.TrackedLocation, 1)
	select {
	case t.cmds <- currentCmd{reply: reply}:
		return <-reply
	case <-t.done:
		return models.TrackedLocation{}
	}
}

// Stop shuts the loop down, cancels any pending debounce timer, and closes
// the events channel. Idempotent; the loop owns the actual close.
func (t *Tracker) Stop() {
	select {
	case t.cmds <- stopCmd{}:
	case <-t.done:
	}
}

type stopCmd struct{}

func (stopCmd) isCommand() {}

// AttachSensor starts a continuous watch on the provider and feeds every
// reading into the tracker. The returned subscription stops the raw stream;
// the tracker itself keeps running until Stop.
func (t *Tracker) AttachSensor(provider sensor.PositionProvider, cfg sensor.Config) (sensor.Subscription, error) {
	return provider.StartWatch(cfg, func(r sensor.Reading) {
		t.Offer(r.Point, r.Time)
	})
}

func (t *Tracker) send(c command) {
	select {
	case t.cmds <- c:
	case <-t.done:
	}
}

func (t *Tracker) run() {
	var (
		mode      = models.ModeAutomatic
		lastKnown *models.GeoPoint
		updated   time.Time

		pending *models.GeoPoint
		timer   *time.Timer
		timerC  <-chan time.Time
	)

	disarm := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
		pending = nil
	}

	arm := func(point models.GeoPoint) {
		if timer != nil {
			timer.Stop()
		}
		p := point
		pending = &p
		timer = time.NewTimer(t.debounce)
		timerC = timer.C
	}

	emit := func(point models.GeoPoint) {
		p := point
		lastKnown = &p
		updated = t.now()
		ev := Event{Point: point, Mode: mode, At: updated}
		select {
		case t.events <- ev:
		default:
			log.Printf("tracker: dropping change event for %s, consumer not keeping up", point)
		}
	}

	for {
		select {
		case c := <-t.cmds:
			switch cmd := c.(type) {
			case offerCmd:
				if mode != models.ModeAutomatic {
					continue
				}
				if lastKnown == nil {
					// Very first reading: emit without debouncing.
					emit(cmd.point)
					continue
				}
				d, err := geo.Distance(*lastKnown, cmd.point)
				if err != nil {
					log.Printf("tracker: rejecting reading: %v", err)
					continue
				}
				if d >= t.significantChangeKm {
					// Supersede, not queue: the newest qualifying point
					// replaces the held one and the timer starts over.
					arm(cmd.point)
				}
			case setModeCmd:
				if cmd.mode == mode {
					continue
				}
				mode = cmd.mode
				if mode == models.ModeManual {
					disarm()
				}
				// Returning to automatic keeps the existing baseline; the
				// next raw update is evaluated against it normally.
			case setManualCmd:
				mode = models.ModeManual
				disarm()
				emit(cmd.point)
			case currentCmd:
				snap := models.TrackedLocation{Mode: mode, LastUpdated: updated}
				if lastKnown != nil {
					snap.Point = *lastKnown
				}
				cmd.reply <- snap
			case stopCmd:
				disarm()
				close(t.done)
				close(t.events)
				return
			}

		case <-timerC:
			if pending != nil {
				emit(*pending)
			}
			timer = nil
			timerC = nil
			pending = nil
		}
	}
}
