package venues

import (
	"github.com/gin-gonic/gin"
)

func SetupVenueRoutes(rg *gin.RouterGroup, controller *Controller) {
	venues := rg.Group("/venues")
	{
		venues.GET("", controller.ListVenues)    // GET /api/v1/venues
		venues.GET("/:id", controller.GetVenue) // GET /api/v1/venues/:id
	}
}
