package handlers

import (
	"net/http"

	"servicefinder/middleware"
	"servicefinder/services/notification"
	"servicefinder/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler exposes the in-app notification endpoints.
type NotificationHandler struct {
	Svc    notification.NotificationService
	Logger *zap.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc notification.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Logger: logger}
}

// ListNotificationsHandler handles GET /api/notifications.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	items, err := h.Svc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.Logger.Error("ListNotificationsHandler: failed to fetch notifications",
			zap.String("userID", userID), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

// UnreadCountHandler handles GET /api/notifications/unread-count.
func (h *NotificationHandler) UnreadCountHandler(c *gin.Context) {
	count, err := h.Svc.UnreadCount(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

// MarkNotificationReadHandler handles POST /api/notifications/:id/read.
func (h *NotificationHandler) MarkNotificationReadHandler(c *gin.Context) {
	if err := h.Svc.MarkRead(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteNotificationHandler handles DELETE /api/notifications/:id.
func (h *NotificationHandler) DeleteNotificationHandler(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
