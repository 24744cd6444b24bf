package handlers

import (
	"errors"
	"strconv"
	"time"

	"fleetlink/internal/models"
	"fleetlink/internal/services"
	"fleetlink/internal/utils"
	"fleetlink/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleHandler struct {
	vehicleService services.VehicleService
}

func NewVehicleHandler(vehicleService services.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

// RegisterVehicle adds a new vehicle to the fleet
func (h *VehicleHandler) RegisterVehicle(c *gin.Context) {
	var request validators.VehicleCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateVehicleCreate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	vehicle, err := h.vehicleService.Register(c.Request.Context(), request.Name, request.CapacityKg, request.Tyres)
	if err != nil {
		if errors.Is(err, models.ErrVehicleNameTaken) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, "Vehicle registered successfully", vehicle)
}

// GetAvailableVehicles lists vehicles free for the requested trip window
func (h *VehicleHandler) GetAvailableVehicles(c *gin.Context) {
	var request validators.AvailabilityRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid query: "+err.Error())
		return
	}

	if errs := validators.ValidateAvailability(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	startTime, err := time.Parse(time.RFC3339, request.StartTime)
	if err != nil {
		utils.BadRequestResponse(c, "Start time must be in ISO 8601 format")
		return
	}

	result, err := h.vehicleService.SearchAvailable(
		c.Request.Context(),
		request.CapacityRequired,
		request.FromPincode,
		request.ToPincode,
		startTime,
	)
	if err != nil {
		if errors.Is(err, models.ErrInvalidTimeWindow) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Available vehicles fetched successfully", result)
}

// ListVehicles returns a paginated vehicle listing
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var isActive *bool
	if raw := c.Query("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			utils.BadRequestResponse(c, "isActive must be true or false")
			return
		}
		isActive = &active
	}

	vehicles, total, err := h.vehicleService.List(c.Request.Context(), isActive, params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Vehicles fetched successfully", vehicles, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// GetVehicle retrieves a single vehicle by id
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle ID")
		return
	}

	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, models.ErrVehicleNotFound) {
			utils.NotFoundResponse(c, "Vehicle not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Vehicle fetched successfully", vehicle)
}

// UpdateVehicleStatus toggles the active flag
func (h *VehicleHandler) UpdateVehicleStatus(c *gin.Context) {
	vehicleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle ID")
		return
	}

	var request validators.VehicleStatusUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateVehicleStatusUpdate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	vehicle, err := h.vehicleService.SetActive(c.Request.Context(), vehicleID, *request.IsActive)
	if err != nil {
		if errors.Is(err, models.ErrVehicleNotFound) {
			utils.NotFoundResponse(c, "Vehicle not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Vehicle status updated successfully", vehicle)
}
