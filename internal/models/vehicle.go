package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Vehicle struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name" validate:"required,min=2"`
	CapacityKg int                `json:"capacity_kg" bson:"capacity_kg" validate:"required,min=1"`
	Tyres      int                `json:"tyres" bson:"tyres" validate:"required,min=2"`
	IsActive   bool               `json:"is_active" bson:"is_active"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// AvailableVehicle is a vehicle returned by an availability search,
// annotated with the trip duration computed for the requested window.
type AvailableVehicle struct {
	Vehicle                    `bson:",inline"`
	EstimatedRideDurationHours int `json:"estimated_ride_duration_hours" bson:"-"`
}
