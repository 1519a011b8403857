package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormLocationRepository implements stock.LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID finds a location by its ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.StockLocation, error) {
	var loc stock.StockLocation
	if err := r.db.WithContext(ctx).First(&loc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

// FindByName finds all locations carrying the given name. Names are not
// unique, so the caller decides what an ambiguous result means.
func (r *GormLocationRepository) FindByName(ctx context.Context, name string) ([]stock.StockLocation, error) {
	var locations []stock.StockLocation
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("full_path ASC").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// FindByPath finds a location by its unique full path
func (r *GormLocationRepository) FindByPath(ctx context.Context, path string) (*stock.StockLocation, error) {
	var loc stock.StockLocation
	if err := r.db.WithContext(ctx).First(&loc, "full_path = ?", path).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

// FindAll finds all locations matching the filter
func (r *GormLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.StockLocation, error) {
	var locations []stock.StockLocation
	query := applyFilter(r.db.WithContext(ctx).Model(&stock.StockLocation{}), filter, "full_path ASC")

	if err := query.Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Save creates or updates a location
func (r *GormLocationRepository) Save(ctx context.Context, loc *stock.StockLocation) error {
	return r.db.WithContext(ctx).Save(loc).Error
}

// Count counts locations
func (r *GormLocationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&stock.StockLocation{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies pagination and ordering shared by the repositories
func applyFilter(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order(defaultOrder)
	}

	return query
}

// Ensure GormLocationRepository implements LocationRepository
var _ stock.LocationRepository = (*GormLocationRepository)(nil)
