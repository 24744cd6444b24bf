package mongodb

import (
	"context"
	"fmt"
	"time"

	"fleetlink/internal/models"
	"fleetlink/internal/repositories/interfaces"
	"fleetlink/internal/utils"
	"fleetlink/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type bookingRepository struct {
	db         *database.MongoDB
	collection *mongo.Collection
}

func NewBookingRepository(db *database.MongoDB) interfaces.BookingRepository {
	return &bookingRepository{
		db:         db,
		collection: db.Collection("bookings"),
	}
}

// conflictFilter is the overlap predicate for [start, end) against every
// non-cancelled booking: existing.start < end AND existing.end > start.
// FindConflictingVehicleIDs and CreateIfNoConflict must stay in lockstep
// on this filter.
func conflictFilter(start, end time.Time) bson.M {
	return bson.M{
		"status":     bson.M{"$ne": models.BookingStatusCancelled},
		"start_time": bson.M{"$lt": end},
		"end_time":   bson.M{"$gt": start},
	}
}

func (r *bookingRepository) CreateIfNoConflict(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	checkAndInsert := func(sessCtx context.Context) error {
		filter := conflictFilter(booking.StartTime, booking.EndTime)
		filter["vehicle_id"] = booking.VehicleID

		err := r.collection.FindOne(sessCtx, filter).Err()
		if err == nil {
			return models.ErrBookingConflict
		}
		if err != mongo.ErrNoDocuments {
			return fmt.Errorf("failed to check booking conflicts: %w", err)
		}

		if _, err := r.collection.InsertOne(sessCtx, booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	}

	if !r.db.TransactionsEnabled() {
		return checkAndInsert(ctx)
	}

	_, err := r.db.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, checkAndInsert(sessCtx)
	})
	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter *interfaces.BookingFilter, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	query := bson.M{}
	if filter != nil {
		if filter.CustomerID != "" {
			query["customer_id"] = filter.CustomerID
		}
		if filter.VehicleID != nil {
			query["vehicle_id"] = *filter.VehicleID
		}
		if filter.Status != "" {
			query["status"] = filter.Status
		}
		if filter.StartFrom != nil || filter.StartTo != nil {
			timeRange := bson.M{}
			if filter.StartFrom != nil {
				timeRange["$gte"] = *filter.StartFrom
			}
			if filter.StartTo != nil {
				timeRange["$lte"] = *filter.StartTo
			}
			query["start_time"] = timeRange
		}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	for cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, 0, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, total, cursor.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrBookingNotFound
	}

	return nil
}

func (r *bookingRepository) FindConflictingVehicleIDs(ctx context.Context, vehicleIDs []primitive.ObjectID, start, end time.Time) ([]primitive.ObjectID, error) {
	if len(vehicleIDs) == 0 {
		return nil, nil
	}

	filter := conflictFilter(start, end)
	filter["vehicle_id"] = bson.M{"$in": vehicleIDs}

	ids, err := r.collection.Distinct(ctx, "vehicle_id", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find conflicting bookings: %w", err)
	}

	conflicted := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := id.(primitive.ObjectID); ok {
			conflicted = append(conflicted, oid)
		}
	}

	return conflicted, nil
}
