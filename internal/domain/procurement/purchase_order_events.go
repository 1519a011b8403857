package procurement

import (
	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// Event types for the procurement context
const (
	EventTypePurchaseOrderManualReferenceChanged = "procurement.purchase_order.manual_reference_changed"
	EventTypePurchaseOrderReferenceConsolidated  = "procurement.purchase_order.reference_consolidated"
)

const aggregateTypePurchaseOrder = "PurchaseOrder"

// PurchaseOrderManualReferenceChangedEvent is raised when a buyer edits the
// manual part of the partner reference
type PurchaseOrderManualReferenceChangedEvent struct {
	shared.BaseDomainEvent
	PurchaseOrderID uuid.UUID `json:"purchase_order_id"`
	OrderNumber     string    `json:"order_number"`
	ManualReference string    `json:"manual_reference"`
}

// NewPurchaseOrderManualReferenceChangedEvent creates a new PurchaseOrderManualReferenceChangedEvent
func NewPurchaseOrderManualReferenceChangedEvent(o *PurchaseOrder) *PurchaseOrderManualReferenceChangedEvent {
	return &PurchaseOrderManualReferenceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderManualReferenceChanged, aggregateTypePurchaseOrder, o.ID),
		PurchaseOrderID: o.ID,
		OrderNumber:     o.OrderNumber,
		ManualReference: o.ManualReference,
	}
}

// PurchaseOrderReferenceConsolidatedEvent is raised when the derived
// consolidated reference changes
type PurchaseOrderReferenceConsolidatedEvent struct {
	shared.BaseDomainEvent
	PurchaseOrderID       uuid.UUID `json:"purchase_order_id"`
	OrderNumber           string    `json:"order_number"`
	ConsolidatedReference string    `json:"consolidated_reference"`
}

// NewPurchaseOrderReferenceConsolidatedEvent creates a new PurchaseOrderReferenceConsolidatedEvent
func NewPurchaseOrderReferenceConsolidatedEvent(o *PurchaseOrder) *PurchaseOrderReferenceConsolidatedEvent {
	return &PurchaseOrderReferenceConsolidatedEvent{
		BaseDomainEvent:       shared.NewBaseDomainEvent(EventTypePurchaseOrderReferenceConsolidated, aggregateTypePurchaseOrder, o.ID),
		PurchaseOrderID:       o.ID,
		OrderNumber:           o.OrderNumber,
		ConsolidatedReference: o.ConsolidatedReference,
	}
}
