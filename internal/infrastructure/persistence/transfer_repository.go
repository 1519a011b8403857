package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormTransferRepository implements stock.TransferRepository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// FindByID finds a transfer by its ID, including its lines
func (r *GormTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.TransferDocument, error) {
	var t stock.TransferDocument
	if err := r.db.WithContext(ctx).Preload("Lines").First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByReference finds a transfer by its unique reference
func (r *GormTransferRepository) FindByReference(ctx context.Context, reference string) (*stock.TransferDocument, error) {
	var t stock.TransferDocument
	if err := r.db.WithContext(ctx).Preload("Lines").First(&t, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindAll finds transfers matching the filter
func (r *GormTransferRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.TransferDocument, error) {
	var transfers []stock.TransferDocument
	query := applyFilter(r.db.WithContext(ctx).Model(&stock.TransferDocument{}), filter, "created_at DESC")

	if err := query.Preload("Lines").Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// FindDoneReceiptsByPurchaseOrder finds all validated incoming transfers
// linked to the purchase order. Ordering by creation time then ID keeps the
// result stable across calls.
func (r *GormTransferRepository) FindDoneReceiptsByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]stock.TransferDocument, error) {
	var transfers []stock.TransferDocument
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND state = ? AND purchase_order_id = ?",
			stock.TransferKindIncoming, stock.TransferStateDone, purchaseOrderID).
		Order("created_at ASC, id ASC").
		Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// FindBySaleOrder finds all transfers linked to the sale order
func (r *GormTransferRepository) FindBySaleOrder(ctx context.Context, saleOrderID uuid.UUID) ([]stock.TransferDocument, error) {
	var transfers []stock.TransferDocument
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("sale_order_id = ?", saleOrderID).
		Order("created_at ASC, id ASC").
		Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// Save creates or updates a transfer and its lines
func (r *GormTransferRepository) Save(ctx context.Context, t *stock.TransferDocument) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(t).Error
}

// SaveWithLock updates a transfer with optimistic locking. The aggregate has
// already incremented its version; the row is only touched when the stored
// version still matches expectedVersion.
func (r *GormTransferRepository) SaveWithLock(ctx context.Context, t *stock.TransferDocument, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(&stock.TransferDocument{}).
		Where("id = ? AND version = ?", t.ID, expectedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(t)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// GenerateReference produces the next document reference for the kind.
// Format: <prefix>NNNNN (e.g., OUT00042)
func (r *GormTransferRepository) GenerateReference(ctx context.Context, kind stock.TransferKind) (string, error) {
	prefix := referencePrefix(kind)

	var last stock.TransferDocument
	err := r.db.WithContext(ctx).
		Model(&stock.TransferDocument{}).
		Where("kind = ? AND reference LIKE ?", kind, prefix+"%").
		Order("reference DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.Reference != "" {
		var num int64
		if _, parseErr := fmt.Sscanf(strings.TrimPrefix(last.Reference, prefix), "%d", &num); parseErr == nil {
			nextNum = num + 1
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

// Count counts transfers
func (r *GormTransferRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&stock.TransferDocument{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func referencePrefix(kind stock.TransferKind) string {
	switch kind {
	case stock.TransferKindIncoming:
		return "IN"
	case stock.TransferKindInternal:
		return "INT"
	default:
		return "OUT"
	}
}

// Ensure GormTransferRepository implements TransferRepository
var _ stock.TransferRepository = (*GormTransferRepository)(nil)
