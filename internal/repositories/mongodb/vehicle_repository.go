package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleetlink/internal/models"
	"fleetlink/internal/repositories/interfaces"
	"fleetlink/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CacheService is the slice of the cache the repositories need.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type vehicleRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewVehicleRepository(db *mongo.Database, cache CacheService) interfaces.VehicleRepository {
	return &vehicleRepository{
		collection: db.Collection("vehicles"),
		cache:      cache,
	}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	vehicle.ID = primitive.NewObjectID()
	vehicle.Name = strings.TrimSpace(vehicle.Name)
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, vehicle)
	if err != nil {
		// The unique index on name is the authoritative duplicate guard;
		// the service pre-check only exists for a friendlier fast path.
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrVehicleNameTaken
		}
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	if vehicle.IsActive {
		r.cacheVehicle(ctx, vehicle)
	}

	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	// Try cache first
	if vehicle := r.getVehicleFromCache(ctx, id.Hex()); vehicle != nil {
		return vehicle, nil
	}

	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if vehicle.IsActive {
		r.cacheVehicle(ctx, &vehicle)
	}

	return &vehicle, nil
}

func (r *vehicleRepository) GetByName(ctx context.Context, name string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"name": strings.TrimSpace(name)}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle by name: %w", err)
	}

	return &vehicle, nil
}

func (r *vehicleRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_active": active, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle status: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrVehicleNotFound
	}

	r.invalidateVehicleCache(ctx, id.Hex())

	return nil
}

func (r *vehicleRepository) ListActiveWithCapacity(ctx context.Context, minCapacityKg int) ([]*models.Vehicle, error) {
	filter := bson.M{
		"is_active":   true,
		"capacity_kg": bson.M{"$gte": minCapacityKg},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicles by capacity: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []*models.Vehicle
	for cursor.Next(ctx) {
		var vehicle models.Vehicle
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, fmt.Errorf("failed to decode vehicle: %w", err)
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, cursor.Err()
}

func (r *vehicleRepository) List(ctx context.Context, isActive *bool, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	filter := bson.M{}
	if isActive != nil {
		filter["is_active"] = *isActive
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []*models.Vehicle
	for cursor.Next(ctx) {
		var vehicle models.Vehicle
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, 0, fmt.Errorf("failed to decode vehicle: %w", err)
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, total, cursor.Err()
}

// Cache operations
func (r *vehicleRepository) cacheVehicle(ctx context.Context, vehicle *models.Vehicle) {
	if r.cache == nil {
		return
	}
	cacheKey := fmt.Sprintf("vehicle:%s", vehicle.ID.Hex())
	r.cache.Set(ctx, cacheKey, vehicle, 15*time.Minute)
}

func (r *vehicleRepository) getVehicleFromCache(ctx context.Context, vehicleID string) *models.Vehicle {
	if r.cache == nil {
		return nil
	}

	cacheKey := fmt.Sprintf("vehicle:%s", vehicleID)
	var vehicle models.Vehicle
	if err := r.cache.Get(ctx, cacheKey, &vehicle); err != nil {
		return nil
	}

	return &vehicle
}

func (r *vehicleRepository) invalidateVehicleCache(ctx context.Context, vehicleID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, fmt.Sprintf("vehicle:%s", vehicleID))
	}
}
