package layouts

import (
	"net/http"

	"stagebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) ListTemplates(ctx *gin.Context) {
	templates := c.service.ListTemplates(ctx.Request.Context())
	response.RespondJSON(ctx, "success", http.StatusOK, "Templates retrieved successfully",
		TemplateListResponse{Templates: templates, Total: len(templates)}, nil)
}

func (c *Controller) ApplyTemplate(ctx *gin.Context) {
	var req ApplyTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	rev, err := c.service.ApplyTemplate(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.RespondError(ctx, "Failed to apply template", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Template applied successfully", rev, nil)
}

func (c *Controller) SaveLayout(ctx *gin.Context) {
	var req SaveLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	result, err := c.service.SaveLayout(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.RespondError(ctx, "Failed to save layout", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout saved successfully", result, nil)
}

func (c *Controller) ValidateLayout(ctx *gin.Context) {
	var req SaveLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	result, err := c.service.ValidateLayout(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, "Layout is invalid", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout is valid", result, nil)
}

func (c *Controller) ClearLayout(ctx *gin.Context) {
	rev, err := c.service.ClearLayout(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to clear layout", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout cleared successfully", rev, nil)
}

func (c *Controller) GetLayout(ctx *gin.Context) {
	layout, err := c.service.GetLayout(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to get layout", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout retrieved successfully", layout, nil)
}
