package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/domain/procurement"
	"github.com/stockflow/backend/internal/domain/shared"
)

// CreatePurchaseOrderRequest is the request to create a purchase order
type CreatePurchaseOrderRequest struct {
	OrderNumber     string    `json:"order_number" binding:"required"`
	SupplierID      uuid.UUID `json:"supplier_id" binding:"required"`
	SupplierName    string    `json:"supplier_name" binding:"required"`
	ManualReference string    `json:"manual_reference"`
}

// UpdateManualReferenceRequest updates the buyer-entered reference text
type UpdateManualReferenceRequest struct {
	ManualReference string `json:"manual_reference"`
}

// PurchaseOrderResponse is the API representation of a purchase order
type PurchaseOrderResponse struct {
	ID                    uuid.UUID  `json:"id"`
	OrderNumber           string     `json:"order_number"`
	SupplierID            uuid.UUID  `json:"supplier_id"`
	SupplierName          string     `json:"supplier_name"`
	Status                string     `json:"status"`
	ManualReference       string     `json:"manual_reference,omitempty"`
	ConsolidatedReference string     `json:"consolidated_reference,omitempty"`
	ConfirmedAt           *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt           *time.Time `json:"completed_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	Version               int        `json:"version"`
}

// ToPurchaseOrderResponse converts a purchase order to its API representation
func ToPurchaseOrderResponse(o *procurement.PurchaseOrder) *PurchaseOrderResponse {
	return &PurchaseOrderResponse{
		ID:                    o.ID,
		OrderNumber:           o.OrderNumber,
		SupplierID:            o.SupplierID,
		SupplierName:          o.SupplierName,
		Status:                string(o.Status),
		ManualReference:       o.ManualReference,
		ConsolidatedReference: o.ConsolidatedReference,
		ConfirmedAt:           o.ConfirmedAt,
		CompletedAt:           o.CompletedAt,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
		Version:               o.Version,
	}
}

// PurchaseOrderService handles purchase order operations for the host
// document workflow
type PurchaseOrderService struct {
	purchaseOrderRepo procurement.PurchaseOrderRepository
	eventPublisher    shared.EventPublisher
	logger            *zap.Logger
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(purchaseOrderRepo procurement.PurchaseOrderRepository, logger *zap.Logger) *PurchaseOrderService {
	return &PurchaseOrderService{
		purchaseOrderRepo: purchaseOrderRepo,
		logger:            logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *PurchaseOrderService) publishDomainEvents(ctx context.Context, o *procurement.PurchaseOrder) {
	if s.eventPublisher == nil {
		return
	}
	events := o.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	o.ClearDomainEvents()
}

// Create creates a purchase order
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := procurement.NewPurchaseOrder(req.OrderNumber, req.SupplierID, req.SupplierName)
	if err != nil {
		return nil, err
	}
	if req.ManualReference != "" {
		order.SetManualReference(req.ManualReference)
	}

	if err := s.purchaseOrderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("purchase order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("supplier", order.SupplierName))

	s.publishDomainEvents(ctx, order)

	return ToPurchaseOrderResponse(order), nil
}

// Confirm confirms a purchase order
func (s *PurchaseOrderService) Confirm(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.purchaseOrderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.Confirm(); err != nil {
		return nil, err
	}
	if err := s.purchaseOrderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)
	return ToPurchaseOrderResponse(order), nil
}

// Cancel cancels a purchase order
func (s *PurchaseOrderService) Cancel(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.purchaseOrderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.purchaseOrderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)
	return ToPurchaseOrderResponse(order), nil
}

// UpdateManualReference replaces the buyer-entered reference text and
// publishes the change so consolidation keeps up
func (s *PurchaseOrderService) UpdateManualReference(ctx context.Context, id uuid.UUID, value string) (*PurchaseOrderResponse, error) {
	order, err := s.purchaseOrderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.SetManualReference(value)

	if err := s.purchaseOrderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)
	return ToPurchaseOrderResponse(order), nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.purchaseOrderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(order), nil
}

// List retrieves purchase orders with pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*PurchaseOrderResponse], error) {
	orders, err := s.purchaseOrderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.purchaseOrderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToPurchaseOrderResponse(&orders[i]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}
