package services

import (
	"context"
	"errors"
	"time"

	"fleetlink/internal/models"
	"fleetlink/internal/repositories/interfaces"
	"fleetlink/internal/utils"
	"fleetlink/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AvailabilityResult is the outcome of an availability search: the
// conflict-free vehicles plus the duration the window was derived from.
// The duration is reported even when no vehicle qualifies.
type AvailabilityResult struct {
	Vehicles                   []*models.AvailableVehicle `json:"vehicles"`
	EstimatedRideDurationHours int                        `json:"estimated_ride_duration_hours"`
}

type VehicleService interface {
	Register(ctx context.Context, name string, capacityKg, tyres int) (*models.Vehicle, error)
	GetVehicle(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.Vehicle, error)
	List(ctx context.Context, isActive *bool, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)

	// SearchAvailable finds active vehicles with at least minCapacityKg
	// capacity and no booking overlapping the window derived from the
	// pincode pair and start time. startTime must be strictly in the
	// future.
	SearchAvailable(ctx context.Context, minCapacityKg int, fromPincode, toPincode string, startTime time.Time) (*AvailabilityResult, error)
}

type vehicleService struct {
	vehicleRepo interfaces.VehicleRepository
	bookingRepo interfaces.BookingRepository
	logger      *logger.Logger
}

func NewVehicleService(vehicleRepo interfaces.VehicleRepository, bookingRepo interfaces.BookingRepository, log *logger.Logger) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
		logger:      log,
	}
}

func (s *vehicleService) Register(ctx context.Context, name string, capacityKg, tyres int) (*models.Vehicle, error) {
	// Fast pre-check for a friendly error; the unique index on name is
	// the authoritative guard and the repository maps its duplicate-key
	// error to the same failure, so a race loser still gets it.
	_, err := s.vehicleRepo.GetByName(ctx, name)
	if err == nil {
		return nil, models.ErrVehicleNameTaken
	}
	if !errors.Is(err, models.ErrVehicleNotFound) {
		return nil, err
	}

	vehicle := &models.Vehicle{
		Name:       name,
		CapacityKg: capacityKg,
		Tyres:      tyres,
		IsActive:   true,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.logger.WithVehicleID(vehicle.ID).WithField("name", vehicle.Name).Info("vehicle registered")

	return vehicle, nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.Vehicle, error) {
	if err := s.vehicleRepo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}

	s.logger.WithVehicleID(id).WithField("is_active", active).Info("vehicle status updated")

	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) List(ctx context.Context, isActive *bool, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	return s.vehicleRepo.List(ctx, isActive, params)
}

func (s *vehicleService) SearchAvailable(ctx context.Context, minCapacityKg int, fromPincode, toPincode string, startTime time.Time) (*AvailabilityResult, error) {
	if !startTime.After(time.Now()) {
		return nil, models.ErrInvalidTimeWindow
	}

	duration := utils.EstimateTripDurationHours(fromPincode, toPincode)
	endTime := startTime.Add(time.Duration(duration) * time.Hour)

	result := &AvailabilityResult{
		Vehicles:                   []*models.AvailableVehicle{},
		EstimatedRideDurationHours: duration,
	}

	candidates, err := s.vehicleRepo.ListActiveWithCapacity(ctx, minCapacityKg)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return result, nil
	}

	candidateIDs := make([]primitive.ObjectID, 0, len(candidates))
	for _, v := range candidates {
		candidateIDs = append(candidateIDs, v.ID)
	}

	conflicted, err := s.bookingRepo.FindConflictingVehicleIDs(ctx, candidateIDs, startTime, endTime)
	if err != nil {
		return nil, err
	}

	conflictedSet := make(map[primitive.ObjectID]struct{}, len(conflicted))
	for _, id := range conflicted {
		conflictedSet[id] = struct{}{}
	}

	for _, v := range candidates {
		if _, busy := conflictedSet[v.ID]; busy {
			continue
		}
		result.Vehicles = append(result.Vehicles, &models.AvailableVehicle{
			Vehicle:                    *v,
			EstimatedRideDurationHours: duration,
		})
	}

	s.logger.WithFields(map[string]interface{}{
		"min_capacity_kg": minCapacityKg,
		"candidates":      len(candidates),
		"available":       len(result.Vehicles),
	}).Debug("availability search completed")

	return result, nil
}
