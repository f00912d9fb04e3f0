// Package factories generates plausible fake addresses and supplier
// locations for demos and database seeding.
package factories

import (
	"fmt"
	"math/rand"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

var addressLabels = []string{"Home", "Work", "Parents", "Other"}

type Factory struct {
	fake faker.Faker
	rng  *rand.Rand

	center   models.GeoPoint
	spreadKm float64
}

// New creates a factory that scatters generated points around center, up to
// roughly spreadKm away in each axis.
func New(center models.GeoPoint, spreadKm float64, seed int64) *Factory {
	return &Factory{
		fake:     faker.NewWithSeed(rand.NewSource(seed)),
		rng:      rand.New(rand.NewSource(seed)),
		center:   center,
		spreadKm: spreadKm,
	}
}

func (f *Factory) Address(userID string) *models.Address {
	return &models.Address{
		ID:           cuid.New(),
		UserID:       userID,
		Label:        addressLabels[f.rng.Intn(len(addressLabels))],
		AddressLine1: fmt.Sprintf("%d %s", f.rng.Intn(400)+1, f.fake.Address().StreetName()),
		City:         f.fake.Address().City(),
		PostalCode:   f.fake.Address().PostCode(),
		Point:        f.point(),
	}
}

func (f *Factory) SupplierLocation() *models.SupplierLocation {
	return &models.SupplierLocation{
		ID:    cuid.New(),
		Point: f.point(),
	}
}

func (f *Factory) SupplierLocations(n int) []*models.SupplierLocation {
	locations := make([]*models.SupplierLocation, 0, n)
	for i := 0; i < n; i++ {
		locations = append(locations, f.SupplierLocation())
	}
	return locations
}

// CatalogEntries builds n entries, each dispatchable from one to three of
// the given supplier locations.
func (f *Factory) CatalogEntries(n int, suppliers []*models.SupplierLocation) []models.CatalogEntry {
	entries := make([]models.CatalogEntry, 0, n)
	for i := 0; i < n; i++ {
		entry := models.CatalogEntry{ID: cuid.New()}
		if len(suppliers) > 0 {
			count := f.rng.Intn(3) + 1
			for j := 0; j < count; j++ {
				pick := suppliers[f.rng.Intn(len(suppliers))]
				entry.SupplierLocations = append(entry.SupplierLocations, *pick)
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// point jitters the center by up to spreadKm in each axis. One degree of
// latitude is close enough to 111 km for demo data.
func (f *Factory) point() models.GeoPoint {
	spreadDeg := f.spreadKm / 111.0
	return models.GeoPoint{
		Lat: f.center.Lat + (f.rng.Float64()*2-1)*spreadDeg,
		Lng: f.center.Lng + (f.rng.Float64()*2-1)*spreadDeg,
	}
}
