package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	notificationRepo "mentorhub/database/repository/notification"
	"mentorhub/services/quota"
	"mentorhub/utils"
)

// UserHandler exposes the consumer's quota state and the plan-upgrade entry
// point the payments collaborator calls after a successful charge.
type UserHandler struct {
	Quota         *quota.Ledger
	Notifications notificationRepo.NotificationRepository
	Logger        *zap.Logger
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(ledger *quota.Ledger, notifications notificationRepo.NotificationRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{Quota: ledger, Notifications: notifications, Logger: logger}
}

// GetPlan handles GET /api/users/me/plan. Reading applies the lazy expiry reset.
func (h *UserHandler) GetPlan(c *gin.Context) {
	userID := c.GetString("userID")

	plan, err := h.Quota.CurrentState(c.Request.Context(), userID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "plan not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// UpgradePlan handles POST /api/users/me/plan/upgrade.
func (h *UserHandler) UpgradePlan(c *gin.Context) {
	userID := c.GetString("userID")

	plan, err := h.Quota.ApplyUpgrade(c.Request.Context(), userID)
	if err != nil {
		h.Logger.Error("plan upgrade failed", zap.String("userID", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "plan upgrade failed", "please retry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// ListNotifications handles GET /api/users/me/notifications.
func (h *UserHandler) ListNotifications(c *gin.Context) {
	userID := c.GetString("userID")

	notifications, err := h.Notifications.ListByRecipient(c.Request.Context(), userID, "user")
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list notifications", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
