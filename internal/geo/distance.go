package geo

import (
	"fmt"
	"math"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
)

const earthRadiusKm = 6371.0 // Earth's radius in kilometers

// ComputationError reports coordinates that cannot be used for distance
// arithmetic: NaN, infinite, or outside the valid lat/lng ranges.
type ComputationError struct {
	Point models.GeoPoint
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("invalid coordinates: lat=%v lng=%v", e.Point.Lat, e.Point.Lng)
}

// Distance returns the great-circle distance between a and b in kilometers,
// computed with the Haversine formula and rounded to 2 decimals. It is
// symmetric and reflexive; the only failure mode is non-finite input.
func Distance(a, b models.GeoPoint) (float64, error) {
	if !a.IsFinite() {
		return 0, &ComputationError{Point: a}
	}
	if !b.IsFinite() {
		return 0, &ComputationError{Point: b}
	}

	lat1 := degreesToRadians(a.Lat)
	lon1 := degreesToRadians(a.Lng)
	lat2 := degreesToRadians(b.Lat)
	lon2 := degreesToRadians(b.Lng)

	// Haversine formula
	dlat := lat2 - lat1
	dlon := lon2 - lon1
	h := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return roundKm(earthRadiusKm * c), nil
}

// Waypoints returns n evenly spaced points strictly between a and b, by
// linear interpolation. Used to sample weather along an approximate route.
func Waypoints(a, b models.GeoPoint, n int) []models.GeoPoint {
	points := make([]models.GeoPoint, 0, n)
	for i := 1; i <= n; i++ {
		fraction := float64(i) / float64(n+1)
		points = append(points, models.GeoPoint{
			Lat: a.Lat + (b.Lat-a.Lat)*fraction,
			Lng: a.Lng + (b.Lng-a.Lng)*fraction,
		})
	}
	return points
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func roundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
