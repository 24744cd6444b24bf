package services

import (
	"context"
	"time"

	"fleetlink/internal/models"
	"fleetlink/internal/repositories/interfaces"
	"fleetlink/internal/utils"
	"fleetlink/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService interface {
	// Create books the vehicle for the window derived from the pincode
	// pair and start time. Exactly one of two concurrent calls with
	// overlapping windows on the same vehicle succeeds.
	Create(ctx context.Context, vehicleID primitive.ObjectID, customerID, fromPincode, toPincode string, startTime time.Time) (*models.Booking, error)

	Get(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	List(ctx context.Context, filter *interfaces.BookingFilter, params *utils.PaginationParams) ([]*models.Booking, int64, error)

	// Cancel moves a BOOKED booking to CANCELLED. Allowed only up to
	// one hour before the start time; terminal bookings are rejected.
	Cancel(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
}

type bookingService struct {
	bookingRepo  interfaces.BookingRepository
	vehicleRepo  interfaces.VehicleRepository
	vehicleLocks *keyedMutex
	logger       *logger.Logger
}

func NewBookingService(bookingRepo interfaces.BookingRepository, vehicleRepo interfaces.VehicleRepository, log *logger.Logger) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		vehicleLocks: newKeyedMutex(),
		logger:       log,
	}
}

func (s *bookingService) Create(ctx context.Context, vehicleID primitive.ObjectID, customerID, fromPincode, toPincode string, startTime time.Time) (*models.Booking, error) {
	if !startTime.After(time.Now()) {
		return nil, models.ErrInvalidTimeWindow
	}

	// Serialize the check-then-insert per vehicle. Creates for other
	// vehicles, reads, and cancels are not held up by this lock.
	unlock := s.vehicleLocks.Lock(vehicleID.Hex())
	defer unlock()

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.IsActive {
		// An inactive vehicle is not bookable; callers cannot tell it
		// apart from a missing one.
		return nil, models.ErrVehicleNotFound
	}

	duration := utils.EstimateTripDurationHours(fromPincode, toPincode)
	endTime := startTime.Add(time.Duration(duration) * time.Hour)

	booking := &models.Booking{
		VehicleID:                  vehicleID,
		CustomerID:                 customerID,
		FromPincode:                fromPincode,
		ToPincode:                  toPincode,
		StartTime:                  startTime,
		EndTime:                    endTime,
		EstimatedRideDurationHours: duration,
		Status:                     models.BookingStatusBooked,
	}

	if err := s.bookingRepo.CreateIfNoConflict(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.WithBookingID(booking.ID).WithVehicleID(vehicleID).WithFields(map[string]interface{}{
		"customer_id":    customerID,
		"start_time":     startTime,
		"duration_hours": duration,
	}).Info("booking created")

	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) List(ctx context.Context, filter *interfaces.BookingFilter, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.List(ctx, filter, params)
}

func (s *bookingService) Cancel(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case models.BookingStatusCancelled:
		return nil, models.ErrBookingAlreadyCancelled
	case models.BookingStatusCompleted:
		return nil, models.ErrBookingAlreadyCompleted
	}

	if !models.CanTransition(booking.Status, models.BookingStatusCancelled) {
		return nil, models.ErrBookingAlreadyCancelled
	}

	if time.Until(booking.StartTime) < utils.CancellationCutoff {
		return nil, models.ErrCancellationTooLate
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, models.BookingStatusCancelled); err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusCancelled
	booking.UpdatedAt = time.Now()

	s.logger.WithBookingID(id).WithVehicleID(booking.VehicleID).Info("booking cancelled")

	return booking, nil
}
