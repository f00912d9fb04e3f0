package sensor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTrack = []models.GeoPoint{
	{Lat: 6.9355, Lng: 79.8487},
	{Lat: 6.9200, Lng: 79.8520},
	{Lat: 6.9000, Lng: 79.8560},
}

func TestGetCurrentPositionReturnsFix(t *testing.T) {
	d := NewSimulatedDevice(testTrack, 10*time.Millisecond)

	fix, err := d.GetCurrentPosition(context.Background(), Config{HighAccuracy: true})
	require.NoError(t, err)
	assert.InDelta(t, testTrack[0].Lat, fix.Point.Lat, 0.001)
	assert.InDelta(t, testTrack[0].Lng, fix.Point.Lng, 0.001)
	assert.Greater(t, fix.AccuracyM, 0.0)
	assert.False(t, fix.Time.IsZero())
}

func TestGetCurrentPositionServesCachedFix(t *testing.T) {
	d := NewSimulatedDevice(testTrack, 10*time.Millisecond)

	first, err := d.GetCurrentPosition(context.Background(), Config{MaxCacheAge: time.Minute})
	require.NoError(t, err)

	second, err := d.GetCurrentPosition(context.Background(), Config{MaxCacheAge: time.Minute})
	require.NoError(t, err)
	assert.Equal(t, first, second, "a fresh enough fix is served from cache")
}

func TestPermissionDenied(t *testing.T) {
	d := NewSimulatedDevice(testTrack, 10*time.Millisecond)
	d.DenyPermission()

	_, err := d.GetCurrentPosition(context.Background(), Config{})
	require.Error(t, err)
	assert.True(t, IsPermissionDenied(err))

	_, err = d.StartWatch(Config{}, func(Reading) {})
	require.Error(t, err)
	assert.True(t, IsPermissionDenied(err))
}

func TestNoTrackIsUnavailable(t *testing.T) {
	d := NewSimulatedDevice(nil, 10*time.Millisecond)

	_, err := d.GetCurrentPosition(context.Background(), Config{})
	require.Error(t, err)

	var sensorErr *Error
	require.ErrorAs(t, err, &sensorErr)
	assert.Equal(t, ErrUnavailable, sensorErr.Kind)
}

func TestWatchDeliversTrackInOrder(t *testing.T) {
	d := NewSimulatedDevice(testTrack, 5*time.Millisecond)

	var mu sync.Mutex
	var got []Reading
	sub, err := d.StartWatch(Config{}, func(r Reading) {
		mu.Lock()
		got = append(got, r)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer sub.Stop()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == len(testTrack)
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for i, reading := range got {
		assert.InDelta(t, testTrack[i].Lat, reading.Point.Lat, 0.001, "reading %d", i)
	}
}

func TestSubscriptionStopIsIdempotent(t *testing.T) {
	d := NewSimulatedDevice(testTrack, 5*time.Millisecond)

	sub, err := d.StartWatch(Config{}, func(Reading) {})
	require.NoError(t, err)
	sub.Stop()
	sub.Stop()
}
