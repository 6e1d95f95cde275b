package handlers

import (
	"net/http"

	"servicefinder/middleware"
	"servicefinder/services/bookmark"
	"servicefinder/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookmarkHandler exposes the bookmark endpoints.
type BookmarkHandler struct {
	Svc    bookmark.BookmarkService
	Logger *zap.Logger
}

// NewBookmarkHandler creates a BookmarkHandler.
func NewBookmarkHandler(svc bookmark.BookmarkService, logger *zap.Logger) *BookmarkHandler {
	return &BookmarkHandler{Svc: svc, Logger: logger}
}

// ToggleBookmarkHandler handles POST /api/bookmarks/toggle.
func (h *BookmarkHandler) ToggleBookmarkHandler(c *gin.Context) {
	var body struct {
		ServiceID string `json:"serviceId" binding:"required"`
		Action    string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	status, err := h.Svc.Toggle(c.Request.Context(), c.GetString(middleware.CtxUserID), body.ServiceID, body.Action)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// ListBookmarksHandler handles GET /api/bookmarks.
func (h *BookmarkHandler) ListBookmarksHandler(c *gin.Context) {
	services, err := h.Svc.ListForUser(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		h.Logger.Error("ListBookmarksHandler: failed to resolve bookmarks", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// IsBookmarkedHandler handles GET /api/bookmarks/status/:serviceId.
func (h *BookmarkHandler) IsBookmarkedHandler(c *gin.Context) {
	bookmarked, err := h.Svc.IsBookmarked(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("serviceId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}
