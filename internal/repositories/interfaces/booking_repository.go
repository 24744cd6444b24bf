package interfaces

import (
	"context"
	"time"

	"fleetlink/internal/models"
	"fleetlink/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingFilter narrows booking listings. Zero values mean "no filter".
type BookingFilter struct {
	CustomerID string
	VehicleID  *primitive.ObjectID
	Status     models.BookingStatus
	StartFrom  *time.Time
	StartTo    *time.Time
}

type BookingRepository interface {
	// CreateIfNoConflict inserts the booking only if no non-cancelled
	// booking for the same vehicle overlaps its [start, end) window,
	// returning models.ErrBookingConflict otherwise. The check and the
	// insert are one atomic unit against the store.
	CreateIfNoConflict(ctx context.Context, booking *models.Booking) error

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	List(ctx context.Context, filter *BookingFilter, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error

	// FindConflictingVehicleIDs returns the subset of the given vehicles
	// that have a non-cancelled booking overlapping [start, end). This is
	// the read-side of the same predicate CreateIfNoConflict enforces.
	FindConflictingVehicleIDs(ctx context.Context, vehicleIDs []primitive.ObjectID, start, end time.Time) ([]primitive.ObjectID, error)
}
