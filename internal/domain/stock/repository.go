package stock

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// LocationRepository defines the interface for stock location persistence
type LocationRepository interface {
	// FindByID finds a location by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockLocation, error)

	// FindByName finds all locations with the given name
	FindByName(ctx context.Context, name string) ([]StockLocation, error)

	// FindByPath finds a location by its unique full path
	FindByPath(ctx context.Context, path string) (*StockLocation, error)

	// FindAll finds all locations with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]StockLocation, error)

	// Save creates or updates a location
	Save(ctx context.Context, loc *StockLocation) error

	// Count counts locations
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// TransferRepository defines the interface for transfer document persistence
type TransferRepository interface {
	// FindByID finds a transfer by ID, including its lines
	FindByID(ctx context.Context, id uuid.UUID) (*TransferDocument, error)

	// FindByReference finds a transfer by its unique reference
	FindByReference(ctx context.Context, reference string) (*TransferDocument, error)

	// FindAll finds transfers with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]TransferDocument, error)

	// FindDoneReceiptsByPurchaseOrder finds all validated incoming transfers
	// linked to the purchase order, ordered by creation time then ID so the
	// result is stable across calls
	FindDoneReceiptsByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]TransferDocument, error)

	// FindBySaleOrder finds all transfers linked to the sale order
	FindBySaleOrder(ctx context.Context, saleOrderID uuid.UUID) ([]TransferDocument, error)

	// Save creates or updates a transfer and its lines
	Save(ctx context.Context, t *TransferDocument) error

	// SaveWithLock updates a transfer with optimistic locking, returning
	// shared.ErrConcurrencyConflict when the stored version has moved on
	SaveWithLock(ctx context.Context, t *TransferDocument, expectedVersion int) error

	// GenerateReference produces the next document reference for the kind,
	// e.g. OUT00042
	GenerateReference(ctx context.Context, kind TransferKind) (string, error)

	// Count counts transfers
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
