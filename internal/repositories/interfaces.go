package repositories

import (
	"context"

	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
)

type AddressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Address, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Address, error)
	SetDefault(ctx context.Context, userID, addressID string) error
	Count(ctx context.Context) (int, error)
}

type SupplierLocationRepository interface {
	BulkCreate(ctx context.Context, locations []*models.SupplierLocation) error
	GetAll(ctx context.Context) ([]*models.SupplierLocation, error)
	FindNearby(ctx context.Context, point models.GeoPoint, radiusMeters float64) ([]*models.SupplierLocation, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
