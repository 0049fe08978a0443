package statistics

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

func (c *Controller) GetSeatStatistics(ctx *gin.Context) {
	stats, err := c.service.SeatStatistics(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to get seat statistics", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat statistics retrieved successfully", stats, nil)
}

func (c *Controller) GetBookingStatistics(ctx *gin.Context) {
	stats, err := c.service.BookingStatistics(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to get booking statistics", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking statistics retrieved successfully", stats, nil)
}

func (c *Controller) GetVenueStatistics(ctx *gin.Context) {
	stats, err := c.service.VenueLayoutStatistics(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to get venue statistics", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue statistics retrieved successfully", stats, nil)
}
