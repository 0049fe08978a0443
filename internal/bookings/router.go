package bookings

import (
	"stagebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth(), middleware.RequireRoles(middleware.RoleUser, middleware.RoleAdmin))
	{
		bookings.POST("", controller.CreateBooking)                        // POST /api/v1/bookings
		bookings.GET("/me", controller.GetMyBookings)                      // GET /api/v1/bookings/me
		bookings.GET("/me/cancellable", controller.GetCancellableBookings) // GET /api/v1/bookings/me/cancellable
		bookings.GET("/:id", controller.GetBooking)                        // GET /api/v1/bookings/:id
		bookings.POST("/:id/cancel", controller.CancelBooking)             // POST /api/v1/bookings/:id/cancel
	}

	admin := rg.Group("/admin/performances")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("/:id/bookings", controller.GetPerformanceBookings) // GET /api/v1/admin/performances/:id/bookings
	}
}

// Booking flow:
// 1. Client lists seats with GET /performances/:id/seats?status=available
// 2. POST /bookings { "performance_id": "...", "seat_id": "..." } confirms one seat
// 3. A booking.created event is published once the transaction commits
// 4. POST /bookings/:id/cancel frees the seat until 24h before the performance
