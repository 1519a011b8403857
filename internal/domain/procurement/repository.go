package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByOrderNumber finds a purchase order by its unique order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)

	// FindAll finds purchase orders with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)

	// Save creates or updates a purchase order
	Save(ctx context.Context, o *PurchaseOrder) error

	// SaveWithLock updates a purchase order with optimistic locking,
	// returning shared.ErrConcurrencyConflict when the stored version has
	// moved on
	SaveWithLock(ctx context.Context, o *PurchaseOrder, expectedVersion int) error

	// Count counts purchase orders
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
