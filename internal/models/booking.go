package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "BOOKED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

type Booking struct {
	ID                         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID                  primitive.ObjectID `json:"vehicle_id" bson:"vehicle_id" validate:"required"`
	CustomerID                 string             `json:"customer_id" bson:"customer_id" validate:"required"`
	FromPincode                string             `json:"from_pincode" bson:"from_pincode" validate:"required,pincode"`
	ToPincode                  string             `json:"to_pincode" bson:"to_pincode" validate:"required,pincode"`
	StartTime                  time.Time          `json:"start_time" bson:"start_time"`
	EndTime                    time.Time          `json:"end_time" bson:"end_time"`
	EstimatedRideDurationHours int                `json:"estimated_ride_duration_hours" bson:"estimated_ride_duration_hours"`
	Status                     BookingStatus      `json:"status" bson:"status"`
	CreatedAt                  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt                  time.Time          `json:"updated_at" bson:"updated_at"`
}

// allowedTransitions is the booking status machine. CANCELLED and
// COMPLETED are terminal.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusBooked:    {BookingStatusCancelled, BookingStatusCompleted},
	BookingStatusCancelled: {},
	BookingStatusCompleted: {},
}

// CanTransition reports whether from -> to is an allowed status change.
func CanTransition(from, to BookingStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves the given status.
func (s BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// IntervalsOverlap reports whether two half-open [start, end) windows
// intersect. Both the availability search and the booking commit path
// must use this same predicate.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Overlaps reports whether the booking's window intersects [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return IntervalsOverlap(b.StartTime, b.EndTime, start, end)
}

// BlocksVehicle reports whether this booking counts against the vehicle's
// availability. Cancelled bookings release their window immediately.
func (b *Booking) BlocksVehicle() bool {
	return b.Status != BookingStatusCancelled
}
