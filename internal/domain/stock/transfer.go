package stock

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
)

// TransferKind classifies a stock movement document
type TransferKind string

const (
	TransferKindIncoming TransferKind = "INCOMING"
	TransferKindInternal TransferKind = "INTERNAL"
	TransferKindOutgoing TransferKind = "OUTGOING"
)

// IsValid checks if the kind is a valid TransferKind
func (k TransferKind) IsValid() bool {
	switch k {
	case TransferKindIncoming, TransferKindInternal, TransferKindOutgoing:
		return true
	}
	return false
}

// String returns the string representation of TransferKind
func (k TransferKind) String() string {
	return string(k)
}

// TransferState represents the lifecycle state of a transfer document
type TransferState string

const (
	TransferStateDraft     TransferState = "DRAFT"
	TransferStateWaiting   TransferState = "WAITING"
	TransferStateConfirmed TransferState = "CONFIRMED"
	TransferStateAssigned  TransferState = "ASSIGNED"
	TransferStateDone      TransferState = "DONE"
	TransferStateCancelled TransferState = "CANCELLED"
)

// IsValid checks if the state is a valid TransferState
func (s TransferState) IsValid() bool {
	switch s {
	case TransferStateDraft, TransferStateWaiting, TransferStateConfirmed,
		TransferStateAssigned, TransferStateDone, TransferStateCancelled:
		return true
	}
	return false
}

// String returns the string representation of TransferState
func (s TransferState) String() string {
	return string(s)
}

// IsTerminal returns true for states that permit no further transition
func (s TransferState) IsTerminal() bool {
	return s == TransferStateDone || s == TransferStateCancelled
}

// CanTransitionTo checks if the state can transition to the target state
func (s TransferState) CanTransitionTo(target TransferState) bool {
	switch s {
	case TransferStateDraft:
		return target == TransferStateWaiting || target == TransferStateConfirmed || target == TransferStateCancelled
	case TransferStateWaiting:
		return target == TransferStateConfirmed || target == TransferStateAssigned || target == TransferStateCancelled
	case TransferStateConfirmed:
		return target == TransferStateAssigned || target == TransferStateCancelled
	case TransferStateAssigned:
		return target == TransferStateDone || target == TransferStateCancelled
	case TransferStateDone, TransferStateCancelled:
		return false
	}
	return false
}

// ProcureMethod describes how a line sources its stock
type ProcureMethod string

const (
	// ProcureMakeToStock reserves existing stock at the source location
	ProcureMakeToStock ProcureMethod = "MAKE_TO_STOCK"
	// ProcureMakeToOrder raises a pull requirement against the source
	// location instead of reserving existing stock
	ProcureMakeToOrder ProcureMethod = "MAKE_TO_ORDER"
)

// IsValid checks if the method is a valid ProcureMethod
func (m ProcureMethod) IsValid() bool {
	return m == ProcureMakeToStock || m == ProcureMakeToOrder
}

// TransferLine is a product-quantity-provenance tuple on a transfer document
type TransferLine struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TransferID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName   string          `gorm:"type:varchar(200);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ProcureMethod ProcureMethod   `gorm:"type:varchar(20);not null;default:'MAKE_TO_STOCK'"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TransferLine) TableName() string {
	return "transfer_lines"
}

// NewTransferLine creates a new transfer line
func NewTransferLine(transferID, productID uuid.UUID, productName string, quantity decimal.Decimal, method ProcureMethod) (*TransferLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PROCURE_METHOD", fmt.Sprintf("Unknown procure method %q", method))
	}

	now := time.Now()
	return &TransferLine{
		ID:            uuid.New(),
		TransferID:    transferID,
		ProductID:     productID,
		ProductName:   productName,
		Quantity:      quantity,
		ProcureMethod: method,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// OrderOrigin marks the flow an order came from
type OrderOrigin string

const (
	OrderOriginSale  OrderOrigin = "SALE"
	OrderOriginPOS   OrderOrigin = "POS"
	OrderOriginOther OrderOrigin = "OTHER"
)

// IsSaleFlow returns true for origins that participate in transfer chaining
func (o OrderOrigin) IsSaleFlow() bool {
	return o == OrderOriginSale || o == OrderOriginPOS
}

// SalespersonInfo carries the identity the location resolver needs. It is
// passed explicitly instead of being looked up from ambient context.
type SalespersonInfo struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	LocationRef string    `json:"location_ref"`
}

// SaleOrderInfo carries the order context an outgoing transfer was created
// from. The order itself is owned by the host document system.
type SaleOrderInfo struct {
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Origin      OrderOrigin     `json:"origin"`
	Salesperson SalespersonInfo `json:"salesperson"`
}

// TransferDocument is a stock movement document aggregate. An outgoing
// transfer may be chained behind an internal replenishment transfer; while
// the predecessor is not done the outgoing transfer cannot reach
// ASSIGNED or DONE.
type TransferDocument struct {
	shared.BaseAggregateRoot
	Reference             string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Kind                  TransferKind   `gorm:"type:varchar(20);not null;index"`
	State                 TransferState  `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	SourceLocationID      uuid.UUID      `gorm:"type:uuid;not null"`
	DestinationLocationID uuid.UUID      `gorm:"type:uuid;not null"`
	Lines                 []TransferLine `gorm:"foreignKey:TransferID;references:ID"`
	ChainPredecessorID    *uuid.UUID     `gorm:"type:uuid;index"`
	PurchaseOrderID       *uuid.UUID     `gorm:"type:uuid;index"`
	SaleOrderID           *uuid.UUID     `gorm:"type:uuid;index"`
	Origin                string         `gorm:"type:varchar(200)"`
	PartnerReference      string         `gorm:"type:varchar(200)"`
	DoneAt                *time.Time
	CancelledAt           *time.Time
	CancelReason          string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (TransferDocument) TableName() string {
	return "transfer_documents"
}

func newTransferDocument(reference string, kind TransferKind, sourceLocationID, destinationLocationID uuid.UUID) (*TransferDocument, error) {
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Transfer reference cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", fmt.Sprintf("Unknown transfer kind %q", kind))
	}
	if sourceLocationID == uuid.Nil || destinationLocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Source and destination locations are required")
	}
	if sourceLocationID == destinationLocationID {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Source and destination locations must differ")
	}

	return &TransferDocument{
		BaseAggregateRoot:     shared.NewBaseAggregateRoot(),
		Reference:             reference,
		Kind:                  kind,
		State:                 TransferStateDraft,
		SourceLocationID:      sourceLocationID,
		DestinationLocationID: destinationLocationID,
		Lines:                 make([]TransferLine, 0),
	}, nil
}

// NewOutgoingTransfer creates an outgoing (delivery) transfer for a sale
// order and raises OutgoingTransferCreated so chaining automation can react
func NewOutgoingTransfer(reference string, sourceLocationID, destinationLocationID uuid.UUID, order SaleOrderInfo) (*TransferDocument, error) {
	t, err := newTransferDocument(reference, TransferKindOutgoing, sourceLocationID, destinationLocationID)
	if err != nil {
		return nil, err
	}
	orderID := order.OrderID
	t.SaleOrderID = &orderID
	t.Origin = order.OrderNumber

	t.AddDomainEvent(NewOutgoingTransferCreatedEvent(t, order))

	return t, nil
}

// NewInternalTransfer creates an internal transfer between two locations
func NewInternalTransfer(reference string, sourceLocationID, destinationLocationID uuid.UUID, origin string) (*TransferDocument, error) {
	t, err := newTransferDocument(reference, TransferKindInternal, sourceLocationID, destinationLocationID)
	if err != nil {
		return nil, err
	}
	t.Origin = origin
	return t, nil
}

// NewReceipt creates an incoming transfer, optionally linked to a purchase
// order
func NewReceipt(reference string, sourceLocationID, destinationLocationID uuid.UUID, purchaseOrderID *uuid.UUID) (*TransferDocument, error) {
	t, err := newTransferDocument(reference, TransferKindIncoming, sourceLocationID, destinationLocationID)
	if err != nil {
		return nil, err
	}
	t.PurchaseOrderID = purchaseOrderID
	return t, nil
}

// AddLine adds a product line to the transfer. Only allowed in DRAFT state.
func (t *TransferDocument) AddLine(productID uuid.UUID, productName string, quantity decimal.Decimal, method ProcureMethod) (*TransferLine, error) {
	if t.State != TransferStateDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a non-draft transfer")
	}

	line, err := NewTransferLine(t.ID, productID, productName, quantity, method)
	if err != nil {
		return nil, err
	}

	t.Lines = append(t.Lines, *line)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return line, nil
}

// HasMakeToOrderLines reports whether any line procures make-to-order
func (t *TransferDocument) HasMakeToOrderLines() bool {
	for _, line := range t.Lines {
		if line.ProcureMethod == ProcureMakeToOrder {
			return true
		}
	}
	return false
}

// IsChained reports whether a chain predecessor has been linked
func (t *TransferDocument) IsChained() bool {
	return t.ChainPredecessorID != nil
}

// IsDone returns true if the transfer has been validated
func (t *TransferDocument) IsDone() bool {
	return t.State == TransferStateDone
}

// IsCancelled returns true if the transfer has been cancelled
func (t *TransferDocument) IsCancelled() bool {
	return t.State == TransferStateCancelled
}

// ChainTo links the transfer behind a predecessor. The edge is created once
// and never retargeted; a transfer already chained refuses a second link so
// duplicate chain attempts surface as no-ops at the caller. Chaining demotes
// the transfer to WAITING so the normal flow cannot progress it past the
// predecessor.
func (t *TransferDocument) ChainTo(predecessor *TransferDocument) error {
	if predecessor == nil {
		return shared.NewDomainError("INVALID_PREDECESSOR", "Chain predecessor cannot be nil")
	}
	if predecessor.ID == t.ID {
		return shared.NewDomainError("INVALID_PREDECESSOR", "Transfer cannot be chained to itself")
	}
	if t.IsChained() {
		return shared.NewDomainError("ALREADY_CHAINED", "Transfer already has a chain predecessor")
	}
	if t.State.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot chain a transfer in %s state", t.State))
	}

	predecessorID := predecessor.ID
	t.ChainPredecessorID = &predecessorID
	t.State = TransferStateWaiting
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTransferChainedEvent(t, predecessor))

	return nil
}

// requireChainSatisfied refuses progress while a chain predecessor exists
// and is not done. The caller loads the predecessor; nil means either no
// chain or a linkage the caller could not resolve.
func (t *TransferDocument) requireChainSatisfied(predecessor *TransferDocument) error {
	if !t.IsChained() {
		return nil
	}
	if predecessor == nil || predecessor.ID != *t.ChainPredecessorID {
		return shared.NewDomainError("CHAIN_PREDECESSOR_REQUIRED", "Chained transfer requires its predecessor to check completion order")
	}
	if !predecessor.IsDone() {
		return shared.NewDomainError("CHAIN_PREDECESSOR_NOT_DONE",
			fmt.Sprintf("Transfer %s is blocked until predecessor %s is done", t.Reference, predecessor.Reference))
	}
	return nil
}

// Confirm transitions the transfer from DRAFT or WAITING to CONFIRMED
func (t *TransferDocument) Confirm() error {
	if !t.State.CanTransitionTo(TransferStateConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm transfer in %s state", t.State))
	}
	if len(t.Lines) == 0 {
		return shared.NewDomainError("NO_LINES", "Cannot confirm transfer without lines")
	}

	t.State = TransferStateConfirmed
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// MarkWaiting transitions the transfer to WAITING (source not yet available)
func (t *TransferDocument) MarkWaiting() error {
	if t.State == TransferStateWaiting {
		return nil
	}
	if !t.State.CanTransitionTo(TransferStateWaiting) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark transfer waiting in %s state", t.State))
	}
	t.State = TransferStateWaiting
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Assign reserves the transfer. For a chained transfer the loaded
// predecessor must be passed and must be done; otherwise the transition is
// refused.
func (t *TransferDocument) Assign(predecessor *TransferDocument) error {
	if err := t.requireChainSatisfied(predecessor); err != nil {
		return err
	}
	if !t.State.CanTransitionTo(TransferStateAssigned) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot assign transfer in %s state", t.State))
	}

	t.State = TransferStateAssigned
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Validate completes the transfer. The same completion-order check as
// Assign applies; a receipt linked to a purchase order raises
// TransferValidated so reference consolidation can run.
func (t *TransferDocument) Validate(predecessor *TransferDocument) error {
	if err := t.requireChainSatisfied(predecessor); err != nil {
		return err
	}
	if !t.State.CanTransitionTo(TransferStateDone) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot validate transfer in %s state", t.State))
	}

	now := time.Now()
	t.State = TransferStateDone
	t.DoneAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTransferValidatedEvent(t))

	return nil
}

// Cancel cancels the transfer. Chained predecessors and successors are left
// untouched; the chain edge is retained for audit.
func (t *TransferDocument) Cancel(reason string) error {
	if !t.State.CanTransitionTo(TransferStateCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel transfer in %s state", t.State))
	}

	now := time.Now()
	t.State = TransferStateCancelled
	t.CancelledAt = &now
	t.CancelReason = reason
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTransferCancelledEvent(t))

	return nil
}

// SetPartnerReference updates the external reference on the transfer.
// Editing the reference of a validated, order-linked receipt raises
// TransferReferenceEdited so the purchase order's consolidated reference is
// recomputed.
func (t *TransferDocument) SetPartnerReference(value string) {
	value = strings.TrimSpace(value)
	if value == t.PartnerReference {
		return
	}

	t.PartnerReference = value
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	if t.Kind == TransferKindIncoming && t.State == TransferStateDone && t.PurchaseOrderID != nil {
		t.AddDomainEvent(NewTransferReferenceEditedEvent(t))
	}
}

// RequestReplenishment raises a pull requirement for every make-to-order
// line. Make-to-order stock is produced or procured on demand; reserving it
// would wait forever.
func (t *TransferDocument) RequestReplenishment() {
	for _, line := range t.Lines {
		if line.ProcureMethod != ProcureMakeToOrder {
			continue
		}
		t.AddDomainEvent(NewReplenishmentRequestedEvent(t, line))
	}
}
