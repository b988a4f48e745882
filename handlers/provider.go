package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "mentorhub/database/repository/booking"
	"mentorhub/models"
	"mentorhub/services/provider"
	"mentorhub/utils"
)

// ProviderHandler exposes availability management and the provider's upcoming
// schedule.
type ProviderHandler struct {
	Service  provider.ProviderService
	Bookings bookingRepo.BookingRepository
	Logger   *zap.Logger
}

// NewProviderHandler constructs a ProviderHandler.
func NewProviderHandler(svc provider.ProviderService, bookings bookingRepo.BookingRepository, logger *zap.Logger) *ProviderHandler {
	return &ProviderHandler{Service: svc, Bookings: bookings, Logger: logger}
}

// PublishWindows handles PUT /api/providers/availability.
func (h *ProviderHandler) PublishWindows(c *gin.Context) {
	providerID := c.GetString("providerID")

	var input struct {
		Windows []models.PublishWindowInput `json:"windows" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	windows, err := h.Service.PublishWindows(c.Request.Context(), providerID, input.Windows)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to publish availability", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"windows": windows})
}

// GetAvailability handles GET /api/providers/:providerID/availability. It is
// public so consumers can browse a mentor's free windows.
func (h *ProviderHandler) GetAvailability(c *gin.Context) {
	providerID := c.Param("providerID")

	windows, err := h.Service.GetAvailability(c.Request.Context(), providerID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"windows": windows})
}

// DeleteWindow handles DELETE /api/providers/availability/:windowID.
func (h *ProviderHandler) DeleteWindow(c *gin.Context) {
	providerID := c.GetString("providerID")
	windowID := c.Param("windowID")

	if err := h.Service.DeleteWindow(c.Request.Context(), providerID, windowID); err != nil {
		utils.JSONError(c, http.StatusNotFound, "window not found or already booked", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListUpcoming handles GET /api/providers/bookings/upcoming.
func (h *ProviderHandler) ListUpcoming(c *gin.Context) {
	providerID := c.GetString("providerID")

	bookings, err := h.Bookings.ListUpcomingByProvider(c.Request.Context(), providerID, time.Now())
	if err != nil {
		h.Logger.Error("failed to list upcoming bookings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list upcoming bookings", "please retry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
