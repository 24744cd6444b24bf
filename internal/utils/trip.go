package utils

import "strconv"

// EstimateTripDurationHours derives a trip duration from the two pincodes:
// the absolute numeric difference modulo 24, clamped to a minimum of 1 hour.
//
// This is a deterministic placeholder metric, NOT geographic distance.
// It is part of the product's contract (end times and availability windows
// are derived from it), so do not replace it with a real routing estimate.
func EstimateTripDurationHours(fromPincode, toPincode string) int {
	from, _ := strconv.Atoi(fromPincode)
	to, _ := strconv.Atoi(toPincode)

	duration := (to - from) % RideDurationModulo
	if duration < 0 {
		duration = -duration
	}
	if duration < MinRideDurationHours {
		duration = MinRideDurationHours
	}
	return duration
}
