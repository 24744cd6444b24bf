package utils

import "time"

// Application Constants
const (
	AppName    = "FleetLink"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 10
	MaxPageSize     = 100
	MinPageSize     = 1

	// Booking Constants
	MinRideDurationHours = 1
	RideDurationModulo   = 24
	CancellationCutoff   = 1 * time.Hour

	// Vehicle Constants
	MinVehicleNameLength = 2
	MinVehicleCapacityKg = 1
	MinVehicleTyres      = 2

	// Response statuses
	StatusSuccess = "success"
	StatusError   = "error"

	// Common error messages
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
)
