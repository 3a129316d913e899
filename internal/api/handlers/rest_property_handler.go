package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jhosasa/Real-State/internal/api/middleware"
	"github.com/jhosasa/Real-State/internal/models"
	"github.com/jhosasa/Real-State/internal/services"
	"github.com/jhosasa/Real-State/internal/utils"
)

// RestPropertyHandler handles REST requests for property listings.
type RestPropertyHandler struct {
	propertyService services.IPropertyService
	userService     services.IUserService
}

// NewRestPropertyHandler creates a new RestPropertyHandler.
func NewRestPropertyHandler(propertyService services.IPropertyService, userService services.IUserService) *RestPropertyHandler {
	return &RestPropertyHandler{
		propertyService: propertyService,
		userService:     userService,
	}
}

// parseSearchFilters builds a filter set from query parameters. Absent
// parameters stay nil so they impose no constraint.
func parseSearchFilters(c *gin.Context) models.SearchFilters {
	var filters models.SearchFilters

	if v := c.Query("query"); v != "" {
		filters.Query = &v
	}
	if v := c.Query("operation"); v != "" {
		op := models.OperationType(v)
		filters.Operation = &op
	}
	if v := c.Query("type"); v != "" {
		t := models.PropertyType(v)
		filters.Type = &t
	}
	if v := c.Query("city"); v != "" {
		filters.City = &v
	}
	if v := c.Query("zone"); v != "" {
		filters.Zone = &v
	}
	filters.MinPrice = parseFloatParam(c, "min_price")
	filters.MaxPrice = parseFloatParam(c, "max_price")
	filters.MinBedrooms = parseIntParam(c, "min_bedrooms")
	filters.MaxBedrooms = parseIntParam(c, "max_bedrooms")
	filters.MinBathrooms = parseIntParam(c, "min_bathrooms")
	filters.MaxBathrooms = parseIntParam(c, "max_bathrooms")
	filters.MinArea = parseFloatParam(c, "min_area")
	filters.MaxArea = parseFloatParam(c, "max_area")

	// Features come comma-separated, trim whitespace
	if featuresStr := c.Query("features"); featuresStr != "" {
		for _, f := range strings.Split(featuresStr, ",") {
			if trimmed := strings.TrimSpace(f); trimmed != "" {
				filters.Features = append(filters.Features, trimmed)
			}
		}
	}

	if v := c.Query("sort_by"); v != "" {
		key := models.SortKey(v)
		filters.SortBy = &key
	}
	if v := c.Query("sort_order"); v != "" {
		order := models.SortOrder(v)
		filters.SortOrder = &order
	}

	return filters
}

func parseFloatParam(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntParam(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// contextUserID extracts the authenticated user's ID when the auth or
// optional-auth middleware resolved one. Anonymous requests return false.
func contextUserID(c *gin.Context) (utils.SixID, bool) {
	raw, exists := c.Get(middleware.ContextKeyUserID)
	if !exists {
		return utils.SixID{}, false
	}
	id, err := utils.ParseSixID(raw.(string))
	if err != nil {
		return utils.SixID{}, false
	}
	return id, true
}

// ListProperties handles GET /v1/property. Without query parameters it
// returns the full catalog; with them it runs the filter and sort engines.
func (h *RestPropertyHandler) ListProperties(c *gin.Context) {
	filters := parseSearchFilters(c)

	properties, err := h.propertyService.GetProperties(c.Request.Context(), filters)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": properties})
}

// GetPropertyByID handles GET /v1/property/:id. Each successful fetch
// counts as one view.
func (h *RestPropertyHandler) GetPropertyByID(c *gin.Context) {
	id, err := utils.ParseSixID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID format"})
		return
	}

	property, err := h.propertyService.GetPropertyByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve property"})
		return
	}

	if userID, ok := contextUserID(c); ok {
		if err := h.userService.LogActivity(c.Request.Context(), userID, models.ActivityView, &id); err != nil {
			log.Printf("WARN: failed to log view activity for user %s: %v", userID.String(), err)
		}
	}

	c.JSON(http.StatusOK, property)
}

// GetFeaturedProperties handles GET /v1/property/featured.
func (h *RestPropertyHandler) GetFeaturedProperties(c *gin.Context) {
	properties, err := h.propertyService.GetFeaturedProperties(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve featured properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": properties})
}

// SearchProperties handles GET /v1/property/search: free-text search over
// titles, descriptions, locations and feature tags.
func (h *RestPropertyHandler) SearchProperties(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}

	properties, err := h.propertyService.SearchProperties(c.Request.Context(), query)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search properties"})
		return
	}

	if userID, ok := contextUserID(c); ok {
		if err := h.userService.LogActivity(c.Request.Context(), userID, models.ActivitySearch, nil); err != nil {
			log.Printf("WARN: failed to log search activity for user %s: %v", userID.String(), err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": properties})
}

// GetRecommendations handles GET /v1/property/recommendations and the
// authenticated variant. An optional subject_id anchors the content-based
// strategy; the user context comes from the JWT when present, otherwise
// recommendations run anonymously.
func (h *RestPropertyHandler) GetRecommendations(c *gin.Context) {
	var subjectID *utils.SixID
	if raw := c.Query("subject_id"); raw != "" {
		id, err := utils.ParseSixID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject_id format"})
			return
		}
		subjectID = &id
	}

	userCtx := models.UserContext{Favorites: map[utils.SixID]struct{}{}}
	if userID, ok := contextUserID(c); ok {
		loaded, ctxErr := h.userService.UserContext(c.Request.Context(), userID)
		if ctxErr != nil {
			_ = c.Error(ctxErr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user context"})
			return
		}
		userCtx = loaded
	}

	recommendations, err := h.propertyService.GetRecommendations(c.Request.Context(), userCtx, subjectID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": recommendations})
}

// setStatusRequest is the admin payload for a listing status change.
type setStatusRequest struct {
	Status models.PropertyStatus `json:"status" binding:"required"`
}

func validPropertyStatus(s models.PropertyStatus) bool {
	switch s {
	case models.StatusAvailable, models.StatusSold, models.StatusRented, models.StatusPending:
		return true
	}
	return false
}

// SetPropertyStatus handles PATCH /v1/admin/property/:id/status. Market
// events (a sale closing, a lease signing, a listing coming back) arrive
// through here; the route is admin-only.
func (h *RestPropertyHandler) SetPropertyStatus(c *gin.Context) {
	id, err := utils.ParseSixID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID format"})
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if !validPropertyStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown property status"})
		return
	}

	property, err := h.propertyService.SetPropertyStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property status"})
		return
	}

	c.JSON(http.StatusOK, property)
}
