package interfaces

import (
	"context"

	"fleetlink/internal/models"
	"fleetlink/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	GetByName(ctx context.Context, name string) (*models.Vehicle, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error

	// Availability candidates: active vehicles with at least the given
	// capacity. Order across calls is unspecified.
	ListActiveWithCapacity(ctx context.Context, minCapacityKg int) ([]*models.Vehicle, error)

	// Listing
	List(ctx context.Context, isActive *bool, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)
}
