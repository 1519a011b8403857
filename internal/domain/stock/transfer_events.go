package stock

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
)

// Event types for the stock context
const (
	EventTypeOutgoingTransferCreated = "stock.outgoing_transfer.created"
	EventTypeTransferChained         = "stock.transfer.chained"
	EventTypeTransferValidated       = "stock.transfer.validated"
	EventTypeTransferReferenceEdited = "stock.transfer.reference_edited"
	EventTypeTransferCancelled       = "stock.transfer.cancelled"
	EventTypeReplenishmentRequested  = "stock.replenishment.requested"
)

const aggregateTypeTransfer = "TransferDocument"

// TransferLineInfo is a snapshot of a transfer line carried on events
type TransferLineInfo struct {
	LineID        uuid.UUID       `json:"line_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	ProcureMethod ProcureMethod   `json:"procure_method"`
}

func snapshotLines(lines []TransferLine) []TransferLineInfo {
	infos := make([]TransferLineInfo, 0, len(lines))
	for _, line := range lines {
		infos = append(infos, TransferLineInfo{
			LineID:        line.ID,
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			Quantity:      line.Quantity,
			ProcureMethod: line.ProcureMethod,
		})
	}
	return infos
}

// OutgoingTransferCreatedEvent is raised when an outgoing transfer is
// created for a sale order. Chaining automation reacts to this event.
type OutgoingTransferCreatedEvent struct {
	shared.BaseDomainEvent
	TransferID            uuid.UUID          `json:"transfer_id"`
	Reference             string             `json:"reference"`
	SourceLocationID      uuid.UUID          `json:"source_location_id"`
	DestinationLocationID uuid.UUID          `json:"destination_location_id"`
	Order                 SaleOrderInfo      `json:"order"`
	Lines                 []TransferLineInfo `json:"lines"`
}

// NewOutgoingTransferCreatedEvent creates a new OutgoingTransferCreatedEvent
func NewOutgoingTransferCreatedEvent(t *TransferDocument, order SaleOrderInfo) *OutgoingTransferCreatedEvent {
	return &OutgoingTransferCreatedEvent{
		BaseDomainEvent:       shared.NewBaseDomainEvent(EventTypeOutgoingTransferCreated, aggregateTypeTransfer, t.ID),
		TransferID:            t.ID,
		Reference:             t.Reference,
		SourceLocationID:      t.SourceLocationID,
		DestinationLocationID: t.DestinationLocationID,
		Order:                 order,
		Lines:                 snapshotLines(t.Lines),
	}
}

// TransferChainedEvent is raised when a transfer is linked behind a
// predecessor
type TransferChainedEvent struct {
	shared.BaseDomainEvent
	TransferID           uuid.UUID `json:"transfer_id"`
	Reference            string    `json:"reference"`
	PredecessorID        uuid.UUID `json:"predecessor_id"`
	PredecessorReference string    `json:"predecessor_reference"`
}

// NewTransferChainedEvent creates a new TransferChainedEvent
func NewTransferChainedEvent(t *TransferDocument, predecessor *TransferDocument) *TransferChainedEvent {
	return &TransferChainedEvent{
		BaseDomainEvent:      shared.NewBaseDomainEvent(EventTypeTransferChained, aggregateTypeTransfer, t.ID),
		TransferID:           t.ID,
		Reference:            t.Reference,
		PredecessorID:        predecessor.ID,
		PredecessorReference: predecessor.Reference,
	}
}

// TransferValidatedEvent is raised when a transfer is completed. Reference
// consolidation listens for validated receipts linked to a purchase order.
type TransferValidatedEvent struct {
	shared.BaseDomainEvent
	TransferID       uuid.UUID    `json:"transfer_id"`
	Reference        string       `json:"reference"`
	Kind             TransferKind `json:"kind"`
	PurchaseOrderID  *uuid.UUID   `json:"purchase_order_id,omitempty"`
	PartnerReference string       `json:"partner_reference"`
}

// NewTransferValidatedEvent creates a new TransferValidatedEvent
func NewTransferValidatedEvent(t *TransferDocument) *TransferValidatedEvent {
	return &TransferValidatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeTransferValidated, aggregateTypeTransfer, t.ID),
		TransferID:       t.ID,
		Reference:        t.Reference,
		Kind:             t.Kind,
		PurchaseOrderID:  t.PurchaseOrderID,
		PartnerReference: t.PartnerReference,
	}
}

// TransferReferenceEditedEvent is raised when the partner reference of a
// validated, order-linked receipt is edited after the fact
type TransferReferenceEditedEvent struct {
	shared.BaseDomainEvent
	TransferID       uuid.UUID  `json:"transfer_id"`
	Reference        string     `json:"reference"`
	PurchaseOrderID  *uuid.UUID `json:"purchase_order_id,omitempty"`
	PartnerReference string     `json:"partner_reference"`
}

// NewTransferReferenceEditedEvent creates a new TransferReferenceEditedEvent
func NewTransferReferenceEditedEvent(t *TransferDocument) *TransferReferenceEditedEvent {
	return &TransferReferenceEditedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeTransferReferenceEdited, aggregateTypeTransfer, t.ID),
		TransferID:       t.ID,
		Reference:        t.Reference,
		PurchaseOrderID:  t.PurchaseOrderID,
		PartnerReference: t.PartnerReference,
	}
}

// TransferCancelledEvent is raised when a transfer is cancelled
type TransferCancelledEvent struct {
	shared.BaseDomainEvent
	TransferID uuid.UUID `json:"transfer_id"`
	Reference  string    `json:"reference"`
	Reason     string    `json:"reason"`
}

// NewTransferCancelledEvent creates a new TransferCancelledEvent
func NewTransferCancelledEvent(t *TransferDocument) *TransferCancelledEvent {
	return &TransferCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransferCancelled, aggregateTypeTransfer, t.ID),
		TransferID:      t.ID,
		Reference:       t.Reference,
		Reason:          t.CancelReason,
	}
}

// ReplenishmentRequestedEvent is raised per make-to-order line when a
// transfer pulls stock that must be procured on demand
type ReplenishmentRequestedEvent struct {
	shared.BaseDomainEvent
	TransferID       uuid.UUID        `json:"transfer_id"`
	Reference        string           `json:"reference"`
	SourceLocationID uuid.UUID        `json:"source_location_id"`
	Line             TransferLineInfo `json:"line"`
}

// NewReplenishmentRequestedEvent creates a new ReplenishmentRequestedEvent
func NewReplenishmentRequestedEvent(t *TransferDocument, line TransferLine) *ReplenishmentRequestedEvent {
	return &ReplenishmentRequestedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeReplenishmentRequested, aggregateTypeTransfer, t.ID),
		TransferID:       t.ID,
		Reference:        t.Reference,
		SourceLocationID: t.SourceLocationID,
		Line: TransferLineInfo{
			LineID:        line.ID,
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			Quantity:      line.Quantity,
			ProcureMethod: line.ProcureMethod,
		},
	}
}
