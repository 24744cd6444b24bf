package routes

import (
	"fleetlink/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes sets up routes for booking lifecycle operations
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("", bookingHandler.ListBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.DELETE("/:id", bookingHandler.CancelBooking)
	}
}
