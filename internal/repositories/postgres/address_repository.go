package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucsky/cuid"
)

var ErrAddressNotFound = errors.New("address not found")

type AddressRepository struct {
	pool *pgxpool.Pool
}

func NewAddressRepository(pool *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{pool: pool}
}

func (r *AddressRepository) Create(ctx context.Context, address *models.Address) error {
	if address.ID == "" {
		address.ID = cuid.New()
	}
	now := time.Now().UTC()
	address.CreatedAt = now
	address.UpdatedAt = now

	query := `
        INSERT INTO addresses (
            id, user_id, label, address_line1, address_line2, city, postal_code,
            location, is_default, created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7,
            ST_SetSRID(ST_MakePoint($8, $9), 4326)::geography,
            $10, $11, $12
        )
    `

	_, err := r.pool.Exec(ctx, query,
		address.ID,
		address.UserID,
		address.Label,
		address.AddressLine1,
		address.AddressLine2,
		address.City,
		address.PostalCode,
		address.Point.Lng,
		address.Point.Lat,
		address.IsDefault,
		address.CreatedAt,
		address.UpdatedAt,
	)
	return err
}

func (r *AddressRepository) Update(ctx context.Context, address *models.Address) error {
	address.UpdatedAt = time.Now().UTC()

	query := `
        UPDATE addresses SET
            label = $2, address_line1 = $3, address_line2 = $4, city = $5,
            postal_code = $6,
            location = ST_SetSRID(ST_MakePoint($7, $8), 4326)::geography,
            updated_at = $9
        WHERE id = $1
    `

	tag, err := r.pool.Exec(ctx, query,
		address.ID,
		address.Label,
		address.AddressLine1,
		address.AddressLine2,
		address.City,
		address.PostalCode,
		address.Point.Lng,
		address.Point.Lat,
		address.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAddressNotFound
	}
	return nil
}

const addressColumns = `
    id, user_id, label, address_line1, address_line2, city, postal_code,
    ST_X(location::geometry) as longitude, ST_Y(location::geometry) as latitude,
    is_default, created_at, updated_at
`

func (r *AddressRepository) GetByID(ctx context.Context, id string) (*models.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	address, err := scanAddress(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return address, nil
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID string) ([]*models.Address, error) {
	query := `
        SELECT ` + addressColumns + `
        FROM addresses
        WHERE user_id = $1
        ORDER BY is_default DESC, created_at ASC
    `

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []*models.Address
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}
	return addresses, rows.Err()
}

// SetDefault flips the default flag to the given address. Clearing the old
// default and setting the new one happen in one transaction so a user can
// never end up with two defaults.
func (r *AddressRepository) SetDefault(ctx context.Context, userID, addressID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE addresses SET is_default = false, updated_at = $2 WHERE user_id = $1 AND is_default`,
		userID, time.Now().UTC())
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE addresses SET is_default = true, updated_at = $3 WHERE id = $1 AND user_id = $2`,
		addressID, userID, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %s for user %s", ErrAddressNotFound, addressID, userID)
	}

	return tx.Commit(ctx)
}

func (r *AddressRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM addresses`).Scan(&count)
	return count, err
}

func scanAddress(row pgx.Row) (*models.Address, error) {
	var lon, lat float64
	address := &models.Address{}
	err := row.Scan(
		&address.ID,
		&address.UserID,
		&address.Label,
		&address.AddressLine1,
		&address.AddressLine2,
		&address.City,
		&address.PostalCode,
		&lon,
		&lat,
		&address.IsDefault,
		&address.CreatedAt,
		&address.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	address.Point = models.GeoPoint{Lat: lat, Lng: lon}
	return address, nil
}
