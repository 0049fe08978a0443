package statistics

import (
	"stagebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupStatisticsRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/performances/:id/statistics/seats", controller.GetSeatStatistics) // GET /api/v1/performances/:id/statistics/seats
	rg.GET("/venues/:id/statistics", controller.GetVenueStatistics)            // GET /api/v1/venues/:id/statistics

	admin := rg.Group("/admin/performances")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("/:id/statistics/bookings", controller.GetBookingStatistics) // GET /api/v1/admin/performances/:id/statistics/bookings
	}
}
