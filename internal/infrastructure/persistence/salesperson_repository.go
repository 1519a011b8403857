package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/partner"
	"github.com/stockflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSalespersonRepository implements partner.SalespersonRepository using GORM
type GormSalespersonRepository struct {
	db *gorm.DB
}

// NewGormSalespersonRepository creates a new GormSalespersonRepository
func NewGormSalespersonRepository(db *gorm.DB) *GormSalespersonRepository {
	return &GormSalespersonRepository{db: db}
}

// FindByID finds a salesperson by their ID
func (r *GormSalespersonRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Salesperson, error) {
	var sp partner.Salesperson
	if err := r.db.WithContext(ctx).First(&sp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sp, nil
}

// FindAll finds all salespersons matching the filter
func (r *GormSalespersonRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Salesperson, error) {
	var salespersons []partner.Salesperson
	query := applyFilter(r.db.WithContext(ctx).Model(&partner.Salesperson{}), filter, "name ASC")

	if err := query.Find(&salespersons).Error; err != nil {
		return nil, err
	}
	return salespersons, nil
}

// Save creates or updates a salesperson
func (r *GormSalespersonRepository) Save(ctx context.Context, sp *partner.Salesperson) error {
	return r.db.WithContext(ctx).Save(sp).Error
}

// Delete deletes a salesperson
func (r *GormSalespersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Salesperson{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts salespersons
func (r *GormSalespersonRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&partner.Salesperson{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormSalespersonRepository implements SalespersonRepository
var _ partner.SalespersonRepository = (*GormSalespersonRepository)(nil)
