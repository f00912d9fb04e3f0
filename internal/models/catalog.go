package models

// SupplierLocation is a fixed origin point (a chef's kitchen) that delivery
// fees and proximity ranking are computed against.
type SupplierLocation struct {
	ID    string   `json:"id"`
	Point GeoPoint `json:"point"`
}

// CatalogEntry is a listed item together with the supplier locations it can
// be dispatched from. Distance is derived, recomputed on each ranking pass.
type CatalogEntry struct {
	ID                string             `json:"id"`
	SupplierLocations []SupplierLocation `json:"supplier_locations"`
	Distance          float64            `json:"distance"`
}
