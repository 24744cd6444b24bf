package validators

type BookingCreateRequest struct {
	VehicleID   string `json:"vehicleId" validate:"required,object_id"`
	CustomerID  string `json:"customerId" validate:"required,min=1"`
	FromPincode string `json:"fromPincode" validate:"required,pincode"`
	ToPincode   string `json:"toPincode" validate:"required,pincode"`
	StartTime   string `json:"startTime" validate:"required"`
}

func ValidateBookingCreate(req *BookingCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}
