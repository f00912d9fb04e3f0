package postgres

import (
	"context"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucsky/cuid"
)

type SupplierLocationRepository struct {
	pool *pgxpool.Pool
}

func NewSupplierLocationRepository(pool *pgxpool.Pool) *SupplierLocationRepository {
	return &SupplierLocationRepository{pool: pool}
}

func (r *SupplierLocationRepository) BulkCreate(ctx context.Context, locations []*models.SupplierLocation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO supplier_locations (id, location)
        VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography)
    `

	for _, location := range locations {
		if location.ID == "" {
			location.ID = cuid.New()
		}
		if _, err = tx.Exec(ctx, query, location.ID, location.Point.Lng, location.Point.Lat); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *SupplierLocationRepository) GetAll(ctx context.Context) ([]*models.SupplierLocation, error) {
	query := `
        SELECT id,
            ST_X(location::geometry) as longitude,
            ST_Y(location::geometry) as latitude
        FROM supplier_locations
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*models.SupplierLocation
	for rows.Next() {
		var lon, lat float64
		location := &models.SupplierLocation{}
		if err := rows.Scan(&location.ID, &lon, &lat); err != nil {
			return nil, err
		}
		location.Point = models.GeoPoint{Lat: lat, Lng: lon}
		locations = append(locations, location)
	}
	return locations, rows.Err()
}

// FindNearby returns supplier locations within radiusMeters of the point,
// closest first. PostGIS does the geodesic math on the geography column.
func (r *SupplierLocationRepository) FindNearby(ctx context.Context, point models.GeoPoint, radiusMeters float64) ([]*models.SupplierLocation, error) {
	query := `
        SELECT id,
            ST_X(location::geometry) as longitude,
            ST_Y(location::geometry) as latitude,
            ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) as distance
        FROM supplier_locations
        WHERE ST_DWithin(
            location,
            ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
            $3
        )
        ORDER BY distance
    `

	rows, err := r.pool.Query(ctx, query, point.Lng, point.Lat, radiusMeters)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*models.SupplierLocation
	for rows.Next() {
		var lon, lat, distance float64
		location := &models.SupplierLocation{}
		if err := rows.Scan(&location.ID, &lon, &lat, &distance); err != nil {
			return nil, err
		}
		location.Point = models.GeoPoint{Lat: lat, Lng: lon}
		locations = append(locations, location)
	}
	return locations, rows.Err()
}

func (r *SupplierLocationRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM supplier_locations`).Scan(&count)
	return count, err
}

func (r *SupplierLocationRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `TRUNCATE TABLE supplier_locations CASCADE`)
	return err
}
