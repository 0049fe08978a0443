package seats

import (
	"github.com/gin-gonic/gin"
)

func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/performances/:id/seats", controller.ListPerformanceSeats) // GET /api/v1/performances/:id/seats?status=

	seats := rg.Group("/seats")
	{
		seats.GET("/:id", controller.GetSeat)                          // GET /api/v1/seats/:id
		seats.GET("/:id/availability", controller.GetSeatAvailability) // GET /api/v1/seats/:id/availability
	}
}
