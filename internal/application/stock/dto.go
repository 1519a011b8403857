package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/stock"
)

// TransferLineRequest describes one product line on a new transfer
type TransferLineRequest struct {
	ProductID     uuid.UUID       `json:"product_id" binding:"required"`
	ProductName   string          `json:"product_name" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	ProcureMethod string          `json:"procure_method"`
}

// CreateOutgoingTransferRequest is the request to create a delivery for a
// sale order
type CreateOutgoingTransferRequest struct {
	SourceLocationID      uuid.UUID             `json:"source_location_id" binding:"required"`
	DestinationLocationID uuid.UUID             `json:"destination_location_id" binding:"required"`
	Order                 stock.SaleOrderInfo   `json:"order" binding:"required"`
	Lines                 []TransferLineRequest `json:"lines" binding:"required"`
}

// CreateReceiptRequest is the request to create an incoming transfer
type CreateReceiptRequest struct {
	SourceLocationID      uuid.UUID             `json:"source_location_id" binding:"required"`
	DestinationLocationID uuid.UUID             `json:"destination_location_id" binding:"required"`
	PurchaseOrderID       *uuid.UUID            `json:"purchase_order_id"`
	PartnerReference      string                `json:"partner_reference"`
	Lines                 []TransferLineRequest `json:"lines" binding:"required"`
}

// UpdatePartnerReferenceRequest updates the external reference on a transfer
type UpdatePartnerReferenceRequest struct {
	PartnerReference string `json:"partner_reference"`
}

// CancelTransferRequest cancels a transfer with a reason
type CancelTransferRequest struct {
	Reason string `json:"reason"`
}

// TransferLineResponse is the API representation of a transfer line
type TransferLineResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	ProcureMethod string          `json:"procure_method"`
}

// TransferResponse is the API representation of a transfer document
type TransferResponse struct {
	ID                    uuid.UUID              `json:"id"`
	Reference             string                 `json:"reference"`
	Kind                  string                 `json:"kind"`
	State                 string                 `json:"state"`
	SourceLocationID      uuid.UUID              `json:"source_location_id"`
	DestinationLocationID uuid.UUID              `json:"destination_location_id"`
	ChainPredecessorID    *uuid.UUID             `json:"chain_predecessor_id,omitempty"`
	PurchaseOrderID       *uuid.UUID             `json:"purchase_order_id,omitempty"`
	SaleOrderID           *uuid.UUID             `json:"sale_order_id,omitempty"`
	Origin                string                 `json:"origin,omitempty"`
	PartnerReference      string                 `json:"partner_reference,omitempty"`
	Lines                 []TransferLineResponse `json:"lines"`
	DoneAt                *time.Time             `json:"done_at,omitempty"`
	CancelledAt           *time.Time             `json:"cancelled_at,omitempty"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
	Version               int                    `json:"version"`
}

// ToTransferResponse converts a transfer document to its API representation
func ToTransferResponse(t *stock.TransferDocument) *TransferResponse {
	lines := make([]TransferLineResponse, 0, len(t.Lines))
	for _, line := range t.Lines {
		lines = append(lines, TransferLineResponse{
			ID:            line.ID,
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			Quantity:      line.Quantity,
			ProcureMethod: string(line.ProcureMethod),
		})
	}

	return &TransferResponse{
		ID:                    t.ID,
		Reference:             t.Reference,
		Kind:                  string(t.Kind),
		State:                 string(t.State),
		SourceLocationID:      t.SourceLocationID,
		DestinationLocationID: t.DestinationLocationID,
		ChainPredecessorID:    t.ChainPredecessorID,
		PurchaseOrderID:       t.PurchaseOrderID,
		SaleOrderID:           t.SaleOrderID,
		Origin:                t.Origin,
		PartnerReference:      t.PartnerReference,
		Lines:                 lines,
		DoneAt:                t.DoneAt,
		CancelledAt:           t.CancelledAt,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
		Version:               t.Version,
	}
}

// CreateLocationRequest is the request to create a stock location
type CreateLocationRequest struct {
	Name     string     `json:"name" binding:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// LocationResponse is the API representation of a stock location
type LocationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	FullPath  string     `json:"full_path"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToLocationResponse converts a location to its API representation
func ToLocationResponse(l *stock.StockLocation) *LocationResponse {
	return &LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		FullPath:  l.FullPath,
		ParentID:  l.ParentID,
		CreatedAt: l.CreatedAt,
	}
}
