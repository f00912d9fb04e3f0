// Package ranker orders catalog entries by how close their nearest supplier
// is to the customer.
package ranker

import (
	"log"
	"sort"

	"github.com/CroosRRAF/ChefSync-sub005/internal/geo"
	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
)

// Ranker sorts catalog entries by proximity. Entries with no usable supplier
// location sink to the bottom via a distance penalty larger than any real
// distance on Earth.
type Ranker struct {
	noSupplierPenaltyKm float64
}

func New(cfg *models.Config) *Ranker {
	return &Ranker{noSupplierPenaltyKm: cfg.NoSupplierPenaltyKm}
}

// Rank returns a new slice sorted ascending by each entry's distance to the
// customer, with Distance filled in. The input slice is not modified. Ties
// keep their original relative order, so a stable upstream ordering (say,
// by rating) survives as the secondary sort.
func (r *Ranker) Rank(customer models.GeoPoint, entries []models.CatalogEntry) []models.CatalogEntry {
	ranked := make([]models.CatalogEntry, len(entries))
	copy(ranked, entries)

	for i := range ranked {
		ranked[i].Distance = r.nearestSupplierKm(customer, ranked[i])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})
	return ranked
}

// nearestSupplierKm finds the closest supplier for one entry. Suppliers with
// broken coordinates are skipped; if none remain the penalty applies.
func (r *Ranker) nearestSupplierKm(customer models.GeoPoint, entry models.CatalogEntry) float64 {
	nearest := r.noSupplierPenaltyKm
	found := false
	for _, supplier := range entry.SupplierLocations {
		d, err := geo.Distance(customer, supplier.Point)
		if err != nil {
			log.Printf("ranker: skipping supplier %s of entry %s: %v", supplier.ID, entry.ID, err)
			continue
		}
		if !found || d < nearest {
			nearest = d
			found = true
		}
	}
	return nearest
}
