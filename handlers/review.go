package handlers

import (
	"net/http"
	"strconv"

	"servicefinder/middleware"
	"servicefinder/services/review"
	"servicefinder/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler exposes the review ledger endpoints.
type ReviewHandler struct {
	Svc    review.ReviewService
	Logger *zap.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc review.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{Svc: svc, Logger: logger}
}

// SubmitReviewHandler handles POST /api/reviews.
func (h *ReviewHandler) SubmitReviewHandler(c *gin.Context) {
	var body struct {
		ServiceID string `json:"serviceId" binding:"required"`
		Stars     int    `json:"stars" binding:"required"`
		Message   string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	created, err := h.Svc.Submit(c.Request.Context(), review.SubmitReviewInput{
		ServiceID: body.ServiceID,
		UserID:    c.GetString(middleware.CtxUserID),
		Username:  c.GetString(middleware.CtxUsername),
		Stars:     body.Stars,
		Message:   body.Message,
	})
	if err != nil {
		h.Logger.Warn("SubmitReviewHandler: submit failed", zap.String("serviceID", body.ServiceID), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// EditReviewHandler handles PUT /api/reviews/:id.
func (h *ReviewHandler) EditReviewHandler(c *gin.Context) {
	var body struct {
		Stars   int    `json:"stars" binding:"required"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	prev, err := h.Svc.Edit(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID), body.Stars, body.Message)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "previous": prev})
}

// DeleteReviewHandler handles DELETE /api/reviews/:id.
func (h *ReviewHandler) DeleteReviewHandler(c *gin.Context) {
	deleted, err := h.Svc.Delete(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}

// ListReviewsHandler handles GET /api/services/:id/reviews.
func (h *ReviewHandler) ListReviewsHandler(c *gin.Context) {
	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil {
		page = p
	}
	result, err := h.Svc.ListByService(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MyReviewsHandler handles GET /api/reviews/mine.
func (h *ReviewHandler) MyReviewsHandler(c *gin.Context) {
	reviews, err := h.Svc.ListByUser(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// RespondToReviewHandler handles POST /api/reviews/:id/respond.
func (h *ReviewHandler) RespondToReviewHandler(c *gin.Context) {
	var body struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.Svc.Respond(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID), body.Text); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
