package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	stockapp "github.com/stockflow/backend/internal/application/stock"
	"github.com/stockflow/backend/internal/interfaces/http/dto"
)

// LocationHandler handles stock location API endpoints
type LocationHandler struct {
	BaseHandler
	locationService *stockapp.LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationService *stockapp.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// RegisterRoutes registers the location routes
func (h *LocationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	locations := rg.Group("/stock/locations")
	{
		locations.POST("", h.Create)
		locations.GET("", h.List)
		locations.GET("/:id", h.GetByID)
	}
}

// Create creates a stock location
func (h *LocationHandler) Create(c *gin.Context) {
	var req stockapp.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	location, err := h.locationService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, location)
}

// List lists locations with pagination
func (h *LocationHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.locationService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID retrieves a location by its ID
func (h *LocationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	location, err := h.locationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, location)
}
