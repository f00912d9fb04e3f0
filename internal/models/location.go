package models

import (
	"fmt"
	"math"
	"time"
)

// GeoPoint is a sensed or geocoded coordinate.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsFinite reports whether both coordinates are finite and within the
// valid latitude/longitude ranges.
func (p GeoPoint) IsFinite() bool {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("%.5f, %.5f", p.Lat, p.Lng)
}

func (p *GeoPoint) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		_, err := fmt.Sscanf(string(v), "POINT(%f %f)", &p.Lng, &p.Lat)
		return err
	case string:
		_, err := fmt.Sscanf(v, "POINT(%f %f)", &p.Lng, &p.Lat)
		return err
	default:
		return fmt.Errorf("unsupported type for GeoPoint: %T", value)
	}
}

// LocationMode selects how the tracked location is maintained: fed by the
// device sensor, or pinned by the customer.
type LocationMode string

const (
	ModeAutomatic LocationMode = "automatic"
	ModeManual    LocationMode = "manual"
)

// TrackedLocation is the tracker's view of where the customer currently is.
// It is owned by the tracker and mutated only through its event loop.
type TrackedLocation struct {
	Point       GeoPoint     `json:"point"`
	Mode        LocationMode `json:"mode"`
	LastUpdated time.Time    `json:"last_updated"`
}
