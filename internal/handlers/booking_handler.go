package handlers

import (
	"errors"
	"time"

	"fleetlink/internal/models"
	"fleetlink/internal/repositories/interfaces"
	"fleetlink/internal/services"
	"fleetlink/internal/utils"
	"fleetlink/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// CreateBooking reserves a vehicle for the derived trip window
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var request validators.BookingCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateBookingCreate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	vehicleID, err := primitive.ObjectIDFromHex(request.VehicleID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle ID")
		return
	}

	startTime, err := time.Parse(time.RFC3339, request.StartTime)
	if err != nil {
		utils.BadRequestResponse(c, "Start time must be in ISO 8601 format")
		return
	}

	booking, err := h.bookingService.Create(
		c.Request.Context(),
		vehicleID,
		request.CustomerID,
		request.FromPincode,
		request.ToPincode,
		startTime,
	)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrVehicleNotFound):
			utils.NotFoundResponse(c, "Vehicle not found")
		case errors.Is(err, models.ErrBookingConflict), errors.Is(err, models.ErrInvalidTimeWindow):
			utils.BadRequestResponse(c, err.Error())
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.CreatedResponse(c, "Booking created successfully", booking)
}

// GetBooking retrieves a single booking by id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.Get(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, models.ErrBookingNotFound) {
			utils.NotFoundResponse(c, "Booking not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Booking fetched successfully", booking)
}

// ListBookings returns a paginated, filtered booking listing
func (h *BookingHandler) ListBookings(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := &interfaces.BookingFilter{
		CustomerID: c.Query("customerId"),
	}

	if raw := c.Query("vehicleId"); raw != "" {
		vehicleID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid vehicle ID")
			return
		}
		filter.VehicleID = &vehicleID
	}

	if raw := c.Query("status"); raw != "" {
		filter.Status = models.BookingStatus(raw)
	}

	if raw := c.Query("startDate"); raw != "" {
		startDate, err := parseDateParam(raw)
		if err != nil {
			utils.BadRequestResponse(c, "startDate must be an ISO 8601 date")
			return
		}
		filter.StartFrom = &startDate
	}

	if raw := c.Query("endDate"); raw != "" {
		endDate, err := parseDateParam(raw)
		if err != nil {
			utils.BadRequestResponse(c, "endDate must be an ISO 8601 date")
			return
		}
		filter.StartTo = &endDate
	}

	bookings, total, err := h.bookingService.List(c.Request.Context(), filter, params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings fetched successfully", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// CancelBooking cancels a booking, freeing the vehicle's window
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBookingNotFound):
			utils.NotFoundResponse(c, "Booking not found")
		case errors.Is(err, models.ErrBookingAlreadyCancelled),
			errors.Is(err, models.ErrBookingAlreadyCompleted),
			errors.Is(err, models.ErrCancellationTooLate):
			utils.BadRequestResponse(c, err.Error())
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Booking cancelled successfully", booking)
}

func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
