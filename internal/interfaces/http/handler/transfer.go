package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	stockapp "github.com/stockflow/backend/internal/application/stock"
	"github.com/stockflow/backend/internal/interfaces/http/dto"
)

// TransferHandler handles transfer document API endpoints
type TransferHandler struct {
	BaseHandler
	transferService *stockapp.TransferService
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(transferService *stockapp.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// RegisterRoutes registers the transfer routes
func (h *TransferHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transfers := rg.Group("/stock/transfers")
	{
		transfers.POST("/outgoing", h.CreateOutgoing)
		transfers.POST("/receipts", h.CreateReceipt)
		transfers.GET("", h.List)
		transfers.GET("/:id", h.GetByID)
		transfers.POST("/:id/confirm", h.Confirm)
		transfers.POST("/:id/assign", h.Assign)
		transfers.POST("/:id/validate", h.Validate)
		transfers.POST("/:id/cancel", h.Cancel)
		transfers.PATCH("/:id/partner-reference", h.UpdatePartnerReference)
	}
}

// CreateOutgoing creates an outgoing transfer for a sale order
func (h *TransferHandler) CreateOutgoing(c *gin.Context) {
	var req stockapp.CreateOutgoingTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transfer, err := h.transferService.CreateOutgoingTransfer(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, transfer)
}

// CreateReceipt creates an incoming transfer
func (h *TransferHandler) CreateReceipt(c *gin.Context) {
	var req stockapp.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transfer, err := h.transferService.CreateReceipt(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, transfer)
}

// List lists transfers with pagination
func (h *TransferHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.transferService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID retrieves a transfer by its ID
func (h *TransferHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	transfer, err := h.transferService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transfer)
}

// Confirm confirms a transfer
func (h *TransferHandler) Confirm(c *gin.Context) {
	h.transition(c, h.transferService.Confirm)
}

// Assign reserves a transfer. Refused while a chain predecessor is not done.
func (h *TransferHandler) Assign(c *gin.Context) {
	h.transition(c, h.transferService.Assign)
}

// Validate completes a transfer. Refused while a chain predecessor is not done.
func (h *TransferHandler) Validate(c *gin.Context) {
	h.transition(c, h.transferService.Validate)
}

// Cancel cancels a transfer with an optional reason
func (h *TransferHandler) Cancel(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req stockapp.CancelTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transfer, err := h.transferService.Cancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transfer)
}

// UpdatePartnerReference updates the external reference on a transfer
func (h *TransferHandler) UpdatePartnerReference(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req stockapp.UpdatePartnerReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transfer, err := h.transferService.UpdatePartnerReference(c.Request.Context(), id, req.PartnerReference)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transfer)
}

func (h *TransferHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *TransferHandler) transition(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*stockapp.TransferResponse, error)) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	transfer, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transfer)
}
