package models

import "errors"

// Domain failures returned by the services. Handlers translate these to
// HTTP status codes; anything not in this list is an internal error.
var (
	ErrInvalidID         = errors.New("invalid ID format")
	ErrInvalidTimeWindow = errors.New("start time must be in the future")

	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrVehicleNameTaken = errors.New("vehicle with this name already exists")

	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingConflict         = errors.New("vehicle is already booked for this time window")
	ErrBookingAlreadyCancelled = errors.New("booking is already cancelled")
	ErrBookingAlreadyCompleted = errors.New("booking is already completed")
	ErrCancellationTooLate     = errors.New("cannot cancel booking less than 1 hour before start time")
)
