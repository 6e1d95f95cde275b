package handlers

import (
	"net/http"
	"strconv"

	"servicefinder/middleware"
	"servicefinder/models"
	"servicefinder/services/catalog"
	"servicefinder/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler exposes the discovery and listing-management endpoints.
type CatalogHandler struct {
	Svc    catalog.CatalogService
	Logger *zap.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalog.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

// SearchHandler handles GET /api/services.
// Query params: search, type, radius, lat, lon, sort_by, page.
func (h *CatalogHandler) SearchHandler(c *gin.Context) {
	q := models.SearchQuery{
		Query:    c.Query("search"),
		Category: c.Query("type"),
		SortBy:   c.Query("sort_by"),
		RadiusKm: parseFloatParam(c.Query("radius")),
		Lat:      parseFloatParam(c.Query("lat")),
		Lon:      parseFloatParam(c.Query("lon")),
	}
	// A non-integer page clamps to 1, never errors.
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		q.Page = page
	} else {
		q.Page = 1
	}

	page, err := h.Svc.Search(c.Request.Context(), q)
	if err != nil {
		h.Logger.Error("SearchHandler: search failed", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// DetailsHandler handles GET /api/services/:id.
func (h *CatalogHandler) DetailsHandler(c *gin.Context) {
	details, err := h.Svc.Details(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// ListMineHandler handles GET /api/services/mine.
func (h *CatalogHandler) ListMineHandler(c *gin.Context) {
	providerID := c.GetString(middleware.CtxUserID)
	services, err := h.Svc.ListByProvider(c.Request.Context(), providerID)
	if err != nil {
		h.Logger.Error("ListMineHandler: failed to list services", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

type serviceRequest struct {
	Name        string         `json:"name" binding:"required"`
	Address     string         `json:"address" binding:"required"`
	Category    string         `json:"category" binding:"required"`
	Lat         *float64       `json:"lat"`
	Lon         *float64       `json:"lon"`
	Description map[string]any `json:"description"`
}

// CreateServiceHandler handles POST /api/services.
func (h *CatalogHandler) CreateServiceHandler(c *gin.Context) {
	var body serviceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	svc := &models.Service{
		Name:        body.Name,
		Address:     body.Address,
		Category:    body.Category,
		Lat:         body.Lat,
		Lon:         body.Lon,
		Description: body.Description,
	}
	created, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserID), svc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// UpdateServiceHandler handles PUT /api/services/:id.
func (h *CatalogHandler) UpdateServiceHandler(c *gin.Context) {
	var body serviceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	svc := &models.Service{
		ID:          c.Param("id"),
		Name:        body.Name,
		Address:     body.Address,
		Category:    body.Category,
		Lat:         body.Lat,
		Lon:         body.Lon,
		Description: body.Description,
	}
	updated, err := h.Svc.Update(c.Request.Context(), c.GetString(middleware.CtxUserID), svc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteServiceHandler handles DELETE /api/services/:id.
func (h *CatalogHandler) DeleteServiceHandler(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetStatusHandler handles PUT /api/admin/services/:id/status.
func (h *CatalogHandler) SetStatusHandler(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.Svc.SetStatus(c.Request.Context(), c.Param("id"), body.Status); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": body.Status})
}

// parseFloatParam converts an optional query param to a sanitized float;
// anything unparseable, NaN or infinite is treated as absent.
func parseFloatParam(raw string) *float64 {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return utils.SanitizeFloat(f)
}
