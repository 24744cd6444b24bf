package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleetlink/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newVehicleServiceForTest(t *testing.T) (VehicleService, *memVehicleRepo, *memBookingRepo) {
	t.Helper()
	vehicleRepo := newMemVehicleRepo()
	bookingRepo := newMemBookingRepo()
	return NewVehicleService(vehicleRepo, bookingRepo, newTestLogger(t)), vehicleRepo, bookingRepo
}

func TestRegisterVehicle(t *testing.T) {
	svc, _, _ := newVehicleServiceForTest(t)
	ctx := context.Background()

	vehicle, err := svc.Register(ctx, "Tata Ace", 1000, 4)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if vehicle.ID.IsZero() {
		t.Fatal("expected vehicle to be assigned an ID")
	}
	if !vehicle.IsActive {
		t.Fatal("newly registered vehicle must be active")
	}
	if vehicle.CapacityKg != 1000 || vehicle.Tyres != 4 {
		t.Fatalf("unexpected vehicle fields: %+v", vehicle)
	}
}

func TestRegisterVehicleDuplicateName(t *testing.T) {
	svc, _, _ := newVehicleServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Tata Ace", 1000, 4); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "Tata Ace", 2000, 6); !errors.Is(err, models.ErrVehicleNameTaken) {
		t.Fatalf("expected ErrVehicleNameTaken, got %v", err)
	}
	// Name uniqueness is case-sensitive.
	if _, err := svc.Register(ctx, "tata ace", 2000, 6); err != nil {
		t.Fatalf("differently-cased name should register: %v", err)
	}
}

func TestSearchAvailableRejectsPastStart(t *testing.T) {
	svc, _, _ := newVehicleServiceForTest(t)

	_, err := svc.SearchAvailable(context.Background(), 500, "110001", "110005", time.Now().Add(-time.Minute))
	if !errors.Is(err, models.ErrInvalidTimeWindow) {
		t.Fatalf("expected ErrInvalidTimeWindow, got %v", err)
	}
}

func TestSearchAvailableNoCandidates(t *testing.T) {
	svc, _, _ := newVehicleServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Small Van", 500, 4); err != nil {
		t.Fatalf("Register: %v", err)
	}

	result, err := svc.SearchAvailable(ctx, 10000, "110001", "110005", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("SearchAvailable: %v", err)
	}
	if len(result.Vehicles) != 0 {
		t.Fatalf("expected no vehicles, got %d", len(result.Vehicles))
	}
	if result.EstimatedRideDurationHours != 4 {
		t.Fatalf("duration must be reported even with no candidates, got %d", result.EstimatedRideDurationHours)
	}
}

func TestSearchAvailableFiltersCapacityAndActive(t *testing.T) {
	svc, vehicleRepo, _ := newVehicleServiceForTest(t)
	ctx := context.Background()

	big, err := svc.Register(ctx, "Big Truck", 5000, 10)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "Small Van", 500, 4); err != nil {
		t.Fatalf("Register: %v", err)
	}
	parked, err := svc.Register(ctx, "Parked Truck", 5000, 10)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := vehicleRepo.SetActive(ctx, parked.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	result, err := svc.SearchAvailable(ctx, 1000, "110001", "110005", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("SearchAvailable: %v", err)
	}
	if len(result.Vehicles) != 1 {
		t.Fatalf("expected exactly one vehicle, got %d", len(result.Vehicles))
	}
	if result.Vehicles[0].ID != big.ID {
		t.Fatalf("expected %s, got %s", big.ID.Hex(), result.Vehicles[0].ID.Hex())
	}
	if result.Vehicles[0].EstimatedRideDurationHours != 4 {
		t.Fatalf("vehicle annotation duration = %d, want 4", result.Vehicles[0].EstimatedRideDurationHours)
	}
}

func TestSearchAvailableExcludesConflictedVehicles(t *testing.T) {
	svc, _, bookingRepo := newVehicleServiceForTest(t)
	ctx := context.Background()

	free, err := svc.Register(ctx, "Free Truck", 2000, 6)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	busy, err := svc.Register(ctx, "Busy Truck", 2000, 6)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	start := time.Now().Add(2 * time.Hour)
	bookingRepo.seed(&models.Booking{
		VehicleID:  busy.ID,
		CustomerID: "customer-1",
		StartTime:  start,
		EndTime:    start.Add(4 * time.Hour),
		Status:     models.BookingStatusBooked,
	})

	result, err := svc.SearchAvailable(ctx, 1000, "110001", "110005", start.Add(time.Hour))
	if err != nil {
		t.Fatalf("SearchAvailable: %v", err)
	}
	if len(result.Vehicles) != 1 || result.Vehicles[0].ID != free.ID {
		t.Fatalf("expected only the free vehicle, got %+v", result.Vehicles)
	}
}

func TestSearchAvailableIgnoresCancelledBookings(t *testing.T) {
	svc, _, bookingRepo := newVehicleServiceForTest(t)
	ctx := context.Background()

	truck, err := svc.Register(ctx, "Truck", 2000, 6)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	start := time.Now().Add(2 * time.Hour)
	bookingRepo.seed(&models.Booking{
		VehicleID:  truck.ID,
		CustomerID: "customer-1",
		StartTime:  start,
		EndTime:    start.Add(4 * time.Hour),
		Status:     models.BookingStatusCancelled,
	})

	result, err := svc.SearchAvailable(ctx, 1000, "110001", "110005", start)
	if err != nil {
		t.Fatalf("SearchAvailable: %v", err)
	}
	if len(result.Vehicles) != 1 {
		t.Fatalf("cancelled booking must not block the vehicle, got %d vehicles", len(result.Vehicles))
	}
}

func TestSearchAvailableIdempotent(t *testing.T) {
	svc, _, bookingRepo := newVehicleServiceForTest(t)
	ctx := context.Background()

	v1, err := svc.Register(ctx, "Truck A", 2000, 6)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	v2, err := svc.Register(ctx, "Truck B", 2000, 6)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	start := time.Now().Add(3 * time.Hour)
	bookingRepo.seed(&models.Booking{
		VehicleID:  v2.ID,
		CustomerID: "customer-1",
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
		Status:     models.BookingStatusBooked,
	})

	first, err := svc.SearchAvailable(ctx, 500, "110001", "110009", start)
	if err != nil {
		t.Fatalf("SearchAvailable: %v", err)
	}
	second, err := svc.SearchAvailable(ctx, 500, "110001", "110009", start)
	if err != nil {
		t.Fatalf("SearchAvailable: %v", err)
	}

	toSet := func(vehicles []*models.AvailableVehicle) map[primitive.ObjectID]struct{} {
		set := make(map[primitive.ObjectID]struct{}, len(vehicles))
		for _, v := range vehicles {
			set[v.ID] = struct{}{}
		}
		return set
	}

	firstSet, secondSet := toSet(first.Vehicles), toSet(second.Vehicles)
	if len(firstSet) != len(secondSet) {
		t.Fatalf("result sets differ in size: %d vs %d", len(firstSet), len(secondSet))
	}
	for id := range firstSet {
		if _, ok := secondSet[id]; !ok {
			t.Fatalf("vehicle %s missing from second search", id.Hex())
		}
	}
	if _, ok := firstSet[v1.ID]; !ok {
		t.Fatal("unconflicted vehicle missing from search results")
	}
}

func TestListVehiclesFiltersActive(t *testing.T) {
	svc, vehicleRepo, _ := newVehicleServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Active Truck", 1000, 4); err != nil {
		t.Fatalf("Register: %v", err)
	}
	parked, err := svc.Register(ctx, "Parked Truck", 1000, 4)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := vehicleRepo.SetActive(ctx, parked.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	active := true
	vehicles, total, err := svc.List(ctx, &active, defaultParams())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(vehicles) != 1 {
		t.Fatalf("expected one active vehicle, got total=%d len=%d", total, len(vehicles))
	}
	if vehicles[0].Name != "Active Truck" {
		t.Fatalf("unexpected vehicle: %s", vehicles[0].Name)
	}

	vehicles, total, err = svc.List(ctx, nil, defaultParams())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(vehicles) != 2 {
		t.Fatalf("expected both vehicles, got total=%d len=%d", total, len(vehicles))
	}
}
