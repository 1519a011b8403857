package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/stockflow/backend/internal/application/partner"
	"github.com/stockflow/backend/internal/interfaces/http/dto"
)

// SalespersonHandler handles salesperson API endpoints
type SalespersonHandler struct {
	BaseHandler
	salespersonService *partnerapp.SalespersonService
}

// NewSalespersonHandler creates a new SalespersonHandler
func NewSalespersonHandler(salespersonService *partnerapp.SalespersonService) *SalespersonHandler {
	return &SalespersonHandler{salespersonService: salespersonService}
}

// RegisterRoutes registers the salesperson routes
func (h *SalespersonHandler) RegisterRoutes(rg *gin.RouterGroup) {
	salespersons := rg.Group("/partner/salespersons")
	{
		salespersons.POST("", h.Create)
		salespersons.GET("", h.List)
		salespersons.GET("/:id", h.GetByID)
		salespersons.PATCH("/:id/location-ref", h.UpdateLocationRef)
	}
}

// Create creates a salesperson
func (h *SalespersonHandler) Create(c *gin.Context) {
	var req partnerapp.CreateSalespersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sp, err := h.salespersonService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, sp)
}

// List lists salespersons with pagination
func (h *SalespersonHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.salespersonService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID retrieves a salesperson by their ID
func (h *SalespersonHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid salesperson ID")
		return
	}

	sp, err := h.salespersonService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sp)
}

// UpdateLocationRef updates the location reference code used by the
// dedicated stock resolver
func (h *SalespersonHandler) UpdateLocationRef(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid salesperson ID")
		return
	}

	var req partnerapp.UpdateLocationRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sp, err := h.salespersonService.UpdateLocationRef(c.Request.Context(), id, req.LocationRef)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sp)
}
