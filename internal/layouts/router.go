package layouts

import (
	"stagebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupLayoutRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/templates", controller.ListTemplates) // GET /api/v1/templates

	venues := rg.Group("/venues")
	{
		venues.GET("/:id/layout", controller.GetLayout) // GET /api/v1/venues/:id/layout
	}

	admin := rg.Group("/admin/venues")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("/:id/layout/template", controller.ApplyTemplate)  // POST /api/v1/admin/venues/:id/layout/template
		admin.PUT("/:id/layout", controller.SaveLayout)               // PUT /api/v1/admin/venues/:id/layout
		admin.POST("/:id/layout/validate", controller.ValidateLayout) // POST /api/v1/admin/venues/:id/layout/validate
		admin.DELETE("/:id/layout", controller.ClearLayout)           // DELETE /api/v1/admin/venues/:id/layout
	}
}
