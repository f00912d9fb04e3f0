package ranker

import (
	"math"
	"testing"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const penaltyKm = 20037.5

var customer = models.GeoPoint{Lat: 6.9355, Lng: 79.8487} // Colombo Fort

func testRanker() *Ranker {
	return New(&models.Config{NoSupplierPenaltyKm: penaltyKm})
}

func entry(id string, points ...models.GeoPoint) models.CatalogEntry {
	e := models.CatalogEntry{ID: id}
	for i, p := range points {
		e.SupplierLocations = append(e.SupplierLocations, models.SupplierLocation{
			ID:    id + "-kitchen-" + string(rune('a'+i)),
			Point: p,
		})
	}
	return e
}

func TestRankAscendingByNearestSupplier(t *testing.T) {
	entries := []models.CatalogEntry{
		entry("kandy-kitchen", models.GeoPoint{Lat: 7.2906, Lng: 80.6337}),  // ~95 km
		entry("fort-kitchen", models.GeoPoint{Lat: 6.9340, Lng: 79.8500}),   // well under 1 km
		entry("dehiwala-kitchen", models.GeoPoint{Lat: 6.8565, Lng: 79.8682}), // ~9 km
	}

	ranked := testRanker().Rank(customer, entries)
	require.Len(t, ranked, 3)
	assert.Equal(t, "fort-kitchen", ranked[0].ID)
	assert.Equal(t, "dehiwala-kitchen", ranked[1].ID)
	assert.Equal(t, "kandy-kitchen", ranked[2].ID)

	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].Distance, ranked[i].Distance)
	}
}

func TestRankUsesClosestOfManySuppliers(t *testing.T) {
	multi := entry("multi-kitchen",
		models.GeoPoint{Lat: 7.2906, Lng: 80.6337}, // Kandy, far
		models.GeoPoint{Lat: 6.9340, Lng: 79.8500}, // Fort, near
	)
	single := entry("single-kitchen", models.GeoPoint{Lat: 6.8565, Lng: 79.8682})

	ranked := testRanker().Rank(customer, []models.CatalogEntry{single, multi})
	require.Len(t, ranked, 2)
	assert.Equal(t, "multi-kitchen", ranked[0].ID, "ranked by its nearest location, not its farthest")
	assert.Less(t, ranked[0].Distance, 1.0)
}

func TestEntriesWithoutSuppliersSinkToBottom(t *testing.T) {
	entries := []models.CatalogEntry{
		entry("no-locations"),
		entry("fort-kitchen", models.GeoPoint{Lat: 6.9340, Lng: 79.8500}),
		entry("broken-location", models.GeoPoint{Lat: math.NaN(), Lng: 79.85}),
	}

	ranked := testRanker().Rank(customer, entries)
	require.Len(t, ranked, 3)
	assert.Equal(t, "fort-kitchen", ranked[0].ID)
	assert.Equal(t, penaltyKm, ranked[1].Distance)
	assert.Equal(t, penaltyKm, ranked[2].Distance)
	// Penalized entries keep their relative input order.
	assert.Equal(t, "no-locations", ranked[1].ID)
	assert.Equal(t, "broken-location", ranked[2].ID)
}

func TestTiesPreserveInputOrder(t *testing.T) {
	samePoint := models.GeoPoint{Lat: 6.9340, Lng: 79.8500}
	entries := []models.CatalogEntry{
		entry("first", samePoint),
		entry("second", samePoint),
		entry("third", samePoint),
	}

	ranked := testRanker().Rank(customer, entries)
	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].ID)
	assert.Equal(t, "second", ranked[1].ID)
	assert.Equal(t, "third", ranked[2].ID)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	entries := []models.CatalogEntry{
		entry("kandy-kitchen", models.GeoPoint{Lat: 7.2906, Lng: 80.6337}),
		entry("fort-kitchen", models.GeoPoint{Lat: 6.9340, Lng: 79.8500}),
	}

	_ = testRanker().Rank(customer, entries)
	assert.Equal(t, "kandy-kitchen", entries[0].ID)
	assert.Zero(t, entries[0].Distance)
	assert.Zero(t, entries[1].Distance)
}

func TestRankEmptyInput(t *testing.T) {
	ranked := testRanker().Rank(customer, nil)
	assert.Empty(t, ranked)
}
