package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mentorhub/models"
	"mentorhub/services/booking"
	"mentorhub/utils"
)

// BookingHandler exposes the allocation engine over HTTP.
type BookingHandler struct {
	Service booking.SessionBookingService
	Logger  *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc booking.SessionBookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// BookInterview handles POST /api/booking/interview.
func (h *BookingHandler) BookInterview(c *gin.Context) {
	userID := c.GetString("userID")

	var input models.InterviewBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Service.BookInterview(c.Request.Context(), userID, input)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// BookGuidance handles POST /api/booking/guidance.
func (h *BookingHandler) BookGuidance(c *gin.Context) {
	userID := c.GetString("userID")

	var input models.GuidanceBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Service.BookGuidance(c.Request.Context(), userID, input)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ListMyBookings handles GET /api/booking.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userID := c.GetString("userID")

	bookings, err := h.Service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBooking handles DELETE /api/booking/:bookingID.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID := c.GetString("userID")
	bookingID := c.Param("bookingID")

	if err := h.Service.CancelBooking(c.Request.Context(), userID, bookingID); err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found or not cancellable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// respondBookingError maps the allocator's typed rejections to HTTP responses.
// Only infrastructure failures fall through to a 500.
func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	var invalid *booking.InvalidInputError
	if errors.As(err, &invalid) {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", invalid.Reason)
		return
	}

	var limit *booking.LimitReachedError
	if errors.As(err, &limit) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "session quota reached for your plan",
			"quota": models.QuotaStatus{
				Kind:  limit.Kind,
				Used:  limit.Used,
				Limit: limit.Limit,
				Tier:  limit.Tier,
			},
		})
		return
	}

	switch {
	case errors.Is(err, booking.ErrNoEligibleProvider):
		utils.JSONError(c, http.StatusNotFound, "no eligible provider", "no provider matches the requested criteria and time")
	case errors.Is(err, booking.ErrNoAvailableSlot):
		utils.JSONError(c, http.StatusConflict, "slot no longer available", "the requested time is no longer available, try a different time")
	default:
		h.Logger.Error("booking failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "booking failed", "an unexpected error occurred, please retry")
	}
}
