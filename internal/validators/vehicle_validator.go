package validators

type VehicleCreateRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	CapacityKg int    `json:"capacityKg" validate:"required,min=1"`
	Tyres      int    `json:"tyres" validate:"required,min=2"`
}

type VehicleStatusUpdateRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// AvailabilityRequest carries the query parameters of an availability
// search. StartTime stays a string here; the handler parses it as ISO 8601
// before reaching the service.
type AvailabilityRequest struct {
	CapacityRequired int    `form:"capacityRequired" validate:"required,min=1"`
	FromPincode      string `form:"fromPincode" validate:"required,pincode"`
	ToPincode        string `form:"toPincode" validate:"required,pincode"`
	StartTime        string `form:"startTime" validate:"required"`
}

func ValidateVehicleCreate(req *VehicleCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateVehicleStatusUpdate(req *VehicleStatusUpdateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateAvailability(req *AvailabilityRequest) ValidationErrors {
	return ValidateStruct(req)
}
