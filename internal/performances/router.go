package performances

import (
	"stagebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPerformanceRoutes(rg *gin.RouterGroup, controller *Controller) {
	performances := rg.Group("/performances")
	{
		performances.GET("", controller.ListPerformances)   // GET /api/v1/performances
		performances.GET("/:id", controller.GetPerformance) // GET /api/v1/performances/:id
	}

	admin := rg.Group("/admin/performances")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreatePerformance)       // POST /api/v1/admin/performances
		admin.PUT("/:id", controller.UpdatePerformance)    // PUT /api/v1/admin/performances/:id
		admin.DELETE("/:id", controller.DeletePerformance) // DELETE /api/v1/admin/performances/:id
	}
}
