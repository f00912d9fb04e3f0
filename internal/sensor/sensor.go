package sensor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
)

// ErrorKind classifies device sensor failures.
type ErrorKind int

const (
	// ErrPermissionDenied means the user refused the location prompt.
	ErrPermissionDenied ErrorKind = iota
	// ErrUnavailable means no position source is usable right now.
	ErrUnavailable
	// ErrTimeout means no reading arrived within the configured timeout.
	ErrTimeout
)

// Error is a failure reported by the device location sensor. It is always
// surfaced to the caller, never silently suppressed.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsPermissionDenied reports whether err is a sensor permission failure.
func IsPermissionDenied(err error) bool {
	return errKind(err) == ErrPermissionDenied
}

// IsTimeout reports whether err is a sensor timeout.
func IsTimeout(err error) bool {
	return errKind(err) == ErrTimeout
}

func errKind(err error) ErrorKind {
	var sensorErr *Error
	if errors.As(err, &sensorErr) {
		return sensorErr.Kind
	}
	return ErrorKind(-1)
}

// Reading is a single position fix from the device.
type Reading struct {
	Point     models.GeoPoint
	AccuracyM float64
	Time      time.Time
}

// Config mirrors the host platform's position options.
type Config struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaxCacheAge  time.Duration
}

// Subscription is a handle to a running position watch. Stop is idempotent
// and cancels all future callbacks.
type Subscription interface {
	Stop()
}

// PositionProvider wraps the device's one-shot and continuous location
// sensing. The first use may trigger a permission prompt in the host
// environment. StartWatch never blocks the caller; updates are delivered
// from the provider's own goroutine.
type PositionProvider interface {
	GetCurrentPosition(ctx context.Context, cfg Config) (Reading, error)
	StartWatch(cfg Config, onUpdate func(Reading)) (Subscription, error)
}
