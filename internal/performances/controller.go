package performances

import (
	"net/http"

	"stagebook/internal/shared/middleware"
	"stagebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreatePerformance(ctx *gin.Context) {
	var req CreatePerformanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	performance, err := c.service.CreatePerformance(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.RespondError(ctx, "Failed to create performance", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Performance created successfully", performance, nil)
}

func (c *Controller) UpdatePerformance(ctx *gin.Context) {
	var req UpdatePerformanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	performance, err := c.service.UpdatePerformance(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.RespondError(ctx, "Failed to update performance", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Performance updated successfully", performance, nil)
}

func (c *Controller) DeletePerformance(ctx *gin.Context) {
	if err := c.service.DeletePerformance(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.RespondError(ctx, "Failed to delete performance", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Performance deleted successfully", nil, nil)
}

func (c *Controller) GetPerformance(ctx *gin.Context) {
	performance, err := c.service.GetPerformance(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to get performance", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Performance retrieved successfully", performance, nil)
}

func (c *Controller) ListPerformances(ctx *gin.Context) {
	var filters PerformanceFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	performances, err := c.service.ListPerformances(ctx.Request.Context(), filters)
	if err != nil {
		response.RespondError(ctx, "Failed to get performances", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Performances retrieved successfully", performances, nil)
}
