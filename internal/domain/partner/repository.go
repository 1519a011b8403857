package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// SalespersonRepository defines the interface for salesperson persistence
type SalespersonRepository interface {
	// FindByID finds a salesperson by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Salesperson, error)

	// FindAll finds all salespersons with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Salesperson, error)

	// Save creates or updates a salesperson
	Save(ctx context.Context, sp *Salesperson) error

	// Delete deletes a salesperson
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts salespersons
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
