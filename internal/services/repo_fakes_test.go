package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"fleetlink/internal/models"
	"fleetlink/internal/repositories/interfaces"
	"fleetlink/internal/utils"
	"fleetlink/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. Each fake guards its maps with a mutex and
// makes CreateIfNoConflict atomic, mirroring the store-level guarantee the
// real repository provides.

type memVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[primitive.ObjectID]*models.Vehicle
}

func newMemVehicleRepo() *memVehicleRepo {
	return &memVehicleRepo{vehicles: make(map[primitive.ObjectID]*models.Vehicle)}
}

func (r *memVehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.TrimSpace(vehicle.Name)
	for _, v := range r.vehicles {
		if v.Name == name {
			return models.ErrVehicleNameTaken
		}
	}

	vehicle.ID = primitive.NewObjectID()
	vehicle.Name = name
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()
	copied := *vehicle
	r.vehicles[vehicle.ID] = &copied
	return nil
}

func (r *memVehicleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vehicles[id]
	if !ok {
		return nil, models.ErrVehicleNotFound
	}
	copied := *v
	return &copied, nil
}

func (r *memVehicleRepo) GetByName(ctx context.Context, name string) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range r.vehicles {
		if v.Name == strings.TrimSpace(name) {
			copied := *v
			return &copied, nil
		}
	}
	return nil, models.ErrVehicleNotFound
}

func (r *memVehicleRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vehicles[id]
	if !ok {
		return models.ErrVehicleNotFound
	}
	v.IsActive = active
	v.UpdatedAt = time.Now()
	return nil
}

func (r *memVehicleRepo) ListActiveWithCapacity(ctx context.Context, minCapacityKg int) ([]*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Vehicle
	for _, v := range r.vehicles {
		if v.IsActive && v.CapacityKg >= minCapacityKg {
			copied := *v
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memVehicleRepo) List(ctx context.Context, isActive *bool, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Vehicle
	for _, v := range r.vehicles {
		if isActive != nil && v.IsActive != *isActive {
			continue
		}
		copied := *v
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, params), int64(len(out)), nil
}

type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[primitive.ObjectID]*models.Booking)}
}

func (r *memBookingRepo) CreateIfNoConflict(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.VehicleID == booking.VehicleID && b.BlocksVehicle() && b.Overlaps(booking.StartTime, booking.EndTime) {
			return models.ErrBookingConflict
		}
	}

	booking.ID = primitive.NewObjectID()
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *memBookingRepo) List(ctx context.Context, filter *interfaces.BookingFilter, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Booking
	for _, b := range r.bookings {
		if filter != nil {
			if filter.CustomerID != "" && b.CustomerID != filter.CustomerID {
				continue
			}
			if filter.VehicleID != nil && b.VehicleID != *filter.VehicleID {
				continue
			}
			if filter.Status != "" && b.Status != filter.Status {
				continue
			}
			if filter.StartFrom != nil && b.StartTime.Before(*filter.StartFrom) {
				continue
			}
			if filter.StartTo != nil && b.StartTime.After(*filter.StartTo) {
				continue
			}
		}
		copied := *b
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, params), int64(len(out)), nil
}

func (r *memBookingRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return models.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return nil
}

func (r *memBookingRepo) FindConflictingVehicleIDs(ctx context.Context, vehicleIDs []primitive.ObjectID, start, end time.Time) ([]primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[primitive.ObjectID]struct{}, len(vehicleIDs))
	for _, id := range vehicleIDs {
		wanted[id] = struct{}{}
	}

	seen := make(map[primitive.ObjectID]struct{})
	var out []primitive.ObjectID
	for _, b := range r.bookings {
		if _, ok := wanted[b.VehicleID]; !ok {
			continue
		}
		if !b.BlocksVehicle() || !b.Overlaps(start, end) {
			continue
		}
		if _, dup := seen[b.VehicleID]; dup {
			continue
		}
		seen[b.VehicleID] = struct{}{}
		out = append(out, b.VehicleID)
	}
	return out, nil
}

// seed inserts a booking directly, bypassing the conflict check.
func (r *memBookingRepo) seed(b *models.Booking) primitive.ObjectID {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	copied := *b
	r.bookings[b.ID] = &copied
	return b.ID
}

func paginate[T any](items []*T, params *utils.PaginationParams) []*T {
	if params == nil {
		return items
	}
	skip := params.GetSkip()
	if skip >= len(items) {
		return nil
	}
	end := skip + params.GetLimit()
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	return log
}

func defaultParams() *utils.PaginationParams {
	return &utils.PaginationParams{Page: 1, PageSize: utils.DefaultPageSize, Sort: "created_at", Order: "desc"}
}
