package procurement

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/shared/valueobject"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusConfirmed PurchaseOrderStatus = "CONFIRMED"
	PurchaseOrderStatusCompleted PurchaseOrderStatus = "COMPLETED"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusConfirmed,
		PurchaseOrderStatusCompleted, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusConfirmed || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusConfirmed:
		return target == PurchaseOrderStatusCompleted || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusCompleted, PurchaseOrderStatusCancelled:
		return false
	}
	return false
}

// PurchaseOrder is a procurement document aggregate. Its partner reference
// is split in two: ManualReference holds what a buyer typed in by hand,
// ConsolidatedReference is derived from the manual part plus the partner
// references of all validated receipts. Only the derived field is ever
// recomputed; manual input is never overwritten.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber           string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID            uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName          string              `gorm:"type:varchar(200);not null"`
	Status                PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	ManualReference       string              `gorm:"type:varchar(500)"`
	ConsolidatedReference string              `gorm:"type:varchar(2000)"`
	ConfirmedAt           *time.Time
	CompletedAt           *time.Time
	CancelledAt           *time.Time
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order
func NewPurchaseOrder(orderNumber string, supplierID uuid.UUID, supplierName string) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier name cannot be empty")
	}

	return &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Status:            PurchaseOrderStatusDraft,
	}, nil
}

// Confirm transitions the order from DRAFT to CONFIRMED
func (o *PurchaseOrder) Confirm() error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Complete marks the order as fully received
func (o *PurchaseOrder) Complete() error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusCompleted) {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Cannot complete order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusCompleted
	o.CompletedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Cancel cancels the order
func (o *PurchaseOrder) Cancel() error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusCancelled
	o.CancelledAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// SetManualReference replaces the buyer-entered part of the partner
// reference. The consolidated reference becomes stale and is recomputed by
// the reference aggregation workflow.
func (o *PurchaseOrder) SetManualReference(value string) {
	value = strings.TrimSpace(value)
	if value == o.ManualReference {
		return
	}

	o.ManualReference = value
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderManualReferenceChangedEvent(o))
}

// BuildConsolidatedReference derives the consolidated reference from the
// manual part followed by the given receipt references, deduplicating
// tokens while preserving first-seen order.
func (o *PurchaseOrder) BuildConsolidatedReference(receiptReferences []string) string {
	set := valueobject.NewReferenceSet()
	set.Add(o.ManualReference)
	for _, ref := range receiptReferences {
		set.Add(ref)
	}
	return set.String()
}

// ApplyConsolidatedReference stores a newly derived consolidated reference.
// A value identical to the stored one is a no-op so repeated recomputation
// converges without churning versions or events.
func (o *PurchaseOrder) ApplyConsolidatedReference(value string) {
	if value == o.ConsolidatedReference {
		return
	}

	o.ConsolidatedReference = value
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderReferenceConsolidatedEvent(o))
}
