package seats

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

func (c *Controller) ListPerformanceSeats(ctx *gin.Context) {
	seats, err := c.service.ListByPerformance(ctx.Request.Context(), ctx.Param("id"), ctx.Query("status"))
	if err != nil {
		response.RespondError(ctx, "Failed to get seats", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats retrieved successfully", seats, nil)
}

func (c *Controller) GetSeat(ctx *gin.Context) {
	seat, err := c.service.GetSeat(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to get seat", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat retrieved successfully", seat, nil)
}

func (c *Controller) GetSeatAvailability(ctx *gin.Context) {
	availability, err := c.service.IsSeatAvailable(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to check seat availability", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat availability retrieved successfully", availability, nil)
}
