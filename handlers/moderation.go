package handlers

import (
	"net/http"
	"strconv"

	"servicefinder/middleware"
	"servicefinder/services/moderation"
	"servicefinder/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ModerationHandler exposes the flag lifecycle endpoints.
type ModerationHandler struct {
	Svc    moderation.ModerationService
	Logger *zap.Logger
}

// NewModerationHandler creates a ModerationHandler.
func NewModerationHandler(svc moderation.ModerationService, logger *zap.Logger) *ModerationHandler {
	return &ModerationHandler{Svc: svc, Logger: logger}
}

// CreateFlagHandler handles POST /api/flags.
func (h *ModerationHandler) CreateFlagHandler(c *gin.Context) {
	var body struct {
		ContentType string `json:"contentType" binding:"required"`
		ObjectID    string `json:"objectId" binding:"required"`
		Reason      string `json:"reason" binding:"required"`
		Explanation string `json:"explanation"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	flag, err := h.Svc.CreateFlag(c.Request.Context(), moderation.CreateFlagInput{
		ContentType: body.ContentType,
		ObjectID:    body.ObjectID,
		Reason:      body.Reason,
		Explanation: body.Explanation,
		FlaggerID:   c.GetString(middleware.CtxUserID),
	})
	if err != nil {
		h.Logger.Warn("CreateFlagHandler: flag rejected", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Content has been flagged for review",
		"flag":    flag,
	})
}

// AdjudicateFlagHandler handles POST /api/admin/flags/:id.
func (h *ModerationHandler) AdjudicateFlagHandler(c *gin.Context) {
	flagID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid flag id", c.Param("id"))
		return
	}
	var body struct {
		Action string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	flag, err := h.Svc.Adjudicate(c.Request.Context(), flagID, c.GetString(middleware.CtxUserID), body.Action)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": flag.Status})
}

// CheckFlagStatusHandler handles GET /api/flags/status/:contentType/:objectId.
func (h *ModerationHandler) CheckFlagStatusHandler(c *gin.Context) {
	summary, err := h.Svc.CheckStatus(
		c.Request.Context(),
		c.Param("contentType"),
		c.Param("objectId"),
		c.GetString(middleware.CtxUserID),
	)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListPendingFlagsHandler handles GET /api/admin/flags.
func (h *ModerationHandler) ListPendingFlagsHandler(c *gin.Context) {
	flags, err := h.Svc.ListPending(c.Request.Context())
	if err != nil {
		h.Logger.Error("ListPendingFlagsHandler: failed to list flags", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flags": flags})
}
