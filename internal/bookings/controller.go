package bookings

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

func (c *Controller) CreateBooking(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.RespondError(ctx, "Failed to create booking", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking confirmed successfully", booking, nil)
}

func (c *Controller) CancelBooking(ctx *gin.Context) {
	var req CancelBookingRequest
	// body is optional
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
			return
		}
	}

	booking, err := c.service.CancelBooking(ctx.Request.Context(), ctx.Param("id"), middleware.UserID(ctx), req)
	if err != nil {
		response.RespondError(ctx, "Failed to cancel booking", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled successfully", booking, nil)
}

func (c *Controller) GetBooking(ctx *gin.Context) {
	booking, err := c.service.GetBooking(ctx.Request.Context(), ctx.Param("id"), middleware.UserID(ctx), middleware.IsAdmin(ctx))
	if err != nil {
		response.RespondError(ctx, "Failed to get booking", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (c *Controller) GetMyBookings(ctx *gin.Context) {
	bookings, err := c.service.GetMyBookings(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		response.RespondError(ctx, "Failed to get bookings", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully",
		BookingListResponse{Bookings: bookings, Total: len(bookings)}, nil)
}

func (c *Controller) GetCancellableBookings(ctx *gin.Context) {
	bookings, err := c.service.GetCancellableBookings(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		response.RespondError(ctx, "Failed to get cancellable bookings", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cancellable bookings retrieved successfully",
		BookingListResponse{Bookings: bookings, Total: len(bookings)}, nil)
}

func (c *Controller) GetPerformanceBookings(ctx *gin.Context) {
	bookings, err := c.service.GetBookingsByPerformance(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to get performance bookings", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Performance bookings retrieved successfully",
		BookingListResponse{Bookings: bookings, Total: len(bookings)}, nil)
}
