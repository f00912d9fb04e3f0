package geo

import (
	"math"
	"testing"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	colomboFort   = models.GeoPoint{Lat: 6.9355, Lng: 79.8487}
	dehiwala      = models.GeoPoint{Lat: 6.8565, Lng: 79.8682}
	kandy         = models.GeoPoint{Lat: 7.2906, Lng: 80.6337}
	negativeWorld = models.GeoPoint{Lat: -33.8688, Lng: 151.2093} // Sydney
)

func TestDistanceKnownPairs(t *testing.T) {
	tests := []struct {
		name string
		a, b models.GeoPoint
		want float64
	}{
		{"colombo fort to dehiwala", colomboFort, dehiwala, 9.04},
		{"colombo fort to kandy", colomboFort, kandy, 95.21},
		{"same point", kandy, kandy, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Distance(tc.a, tc.b)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 0.5)
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][2]models.GeoPoint{
		{colomboFort, dehiwala},
		{colomboFort, kandy},
		{kandy, negativeWorld},
		{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 180}},
	}
	for _, pair := range pairs {
		ab, err := Distance(pair[0], pair[1])
		require.NoError(t, err)
		ba, err := Distance(pair[1], pair[0])
		require.NoError(t, err)
		assert.Equal(t, ab, ba)
	}
}

func TestDistanceReflexive(t *testing.T) {
	for _, p := range []models.GeoPoint{colomboFort, kandy, negativeWorld, {Lat: 90, Lng: 0}} {
		d, err := Distance(p, p)
		require.NoError(t, err)
		assert.Zero(t, d)
	}
}

func TestDistanceRoundedToTwoDecimals(t *testing.T) {
	d, err := Distance(colomboFort, dehiwala)
	require.NoError(t, err)
	assert.Equal(t, d, math.Round(d*100)/100)
}

func TestDistanceRejectsInvalidCoordinates(t *testing.T) {
	tests := []struct {
		name string
		a, b models.GeoPoint
	}{
		{"nan lat", models.GeoPoint{Lat: math.NaN(), Lng: 79.8}, dehiwala},
		{"inf lng", models.GeoPoint{Lat: 6.9, Lng: math.Inf(1)}, dehiwala},
		{"lat out of range", models.GeoPoint{Lat: 91, Lng: 0}, dehiwala},
		{"lng out of range", colomboFort, models.GeoPoint{Lat: 0, Lng: -181}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Distance(tc.a, tc.b)
			var compErr *ComputationError
			require.ErrorAs(t, err, &compErr)
		})
	}
}

func TestWaypoints(t *testing.T) {
	points := Waypoints(models.GeoPoint{Lat: 0, Lng: 0}, models.GeoPoint{Lat: 4, Lng: 8}, 3)
	require.Len(t, points, 3)
	assert.Equal(t, models.GeoPoint{Lat: 1, Lng: 2}, points[0])
	assert.Equal(t, models.GeoPoint{Lat: 2, Lng: 4}, points[1])
	assert.Equal(t, models.GeoPoint{Lat: 3, Lng: 6}, points[2])
}
