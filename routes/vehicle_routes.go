package routes

import (
	"fleetlink/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupVehicleRoutes sets up routes for vehicle registration and search
func SetupVehicleRoutes(r *gin.RouterGroup, vehicleHandler *handlers.VehicleHandler) {
	vehicles := r.Group("/vehicles")
	{
		vehicles.POST("", vehicleHandler.RegisterVehicle)
		// /available must be registered before /:id
		vehicles.GET("/available", vehicleHandler.GetAvailableVehicles)
		vehicles.GET("", vehicleHandler.ListVehicles)
		vehicles.GET("/:id", vehicleHandler.GetVehicle)
		vehicles.PATCH("/:id/status", vehicleHandler.UpdateVehicleStatus)
	}
}
