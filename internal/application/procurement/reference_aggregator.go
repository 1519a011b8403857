package procurement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/domain/procurement"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/stock"
)

// ReferenceAggregator recomputes a purchase order's consolidated reference
// from the manual text plus the partner references of every validated
// receipt. It always recomputes from source data, never from the previous
// consolidated value, so redundant invocations converge on the same string.
type ReferenceAggregator struct {
	purchaseOrderRepo procurement.PurchaseOrderRepository
	transferRepo      stock.TransferRepository
	eventPublisher    shared.EventPublisher
	logger            *zap.Logger
}

// NewReferenceAggregator creates a new ReferenceAggregator
func NewReferenceAggregator(
	purchaseOrderRepo procurement.PurchaseOrderRepository,
	transferRepo stock.TransferRepository,
	logger *zap.Logger,
) *ReferenceAggregator {
	return &ReferenceAggregator{
		purchaseOrderRepo: purchaseOrderRepo,
		transferRepo:      transferRepo,
		logger:            logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (a *ReferenceAggregator) SetEventPublisher(publisher shared.EventPublisher) {
	a.eventPublisher = publisher
}

func (a *ReferenceAggregator) publishDomainEvents(ctx context.Context, o *procurement.PurchaseOrder) {
	if a.eventPublisher == nil {
		return
	}
	events := o.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = a.eventPublisher.Publish(ctx, events...)
	o.ClearDomainEvents()
}

// Consolidate recomputes the consolidated reference of the purchase order.
// A receipt whose order linkage no longer resolves is skipped without
// error. A concurrent write conflict is retried once from a fresh read;
// the second conflict is returned to the caller as transient.
func (a *ReferenceAggregator) Consolidate(ctx context.Context, purchaseOrderID uuid.UUID) error {
	if err := a.consolidateOnce(ctx, purchaseOrderID); err != nil {
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			return err
		}
		a.logger.Debug("write conflict during reference consolidation, retrying once",
			zap.String("purchase_order_id", purchaseOrderID.String()))
		return a.consolidateOnce(ctx, purchaseOrderID)
	}
	return nil
}

func (a *ReferenceAggregator) consolidateOnce(ctx context.Context, purchaseOrderID uuid.UUID) error {
	order, err := a.purchaseOrderRepo.FindByID(ctx, purchaseOrderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			a.logger.Debug("purchase order linkage does not resolve, skipping consolidation",
				zap.String("purchase_order_id", purchaseOrderID.String()))
			return nil
		}
		return err
	}

	receipts, err := a.transferRepo.FindDoneReceiptsByPurchaseOrder(ctx, order.ID)
	if err != nil {
		return err
	}

	references := make([]string, 0, len(receipts))
	for _, receipt := range receipts {
		references = append(references, receipt.PartnerReference)
	}

	consolidated := order.BuildConsolidatedReference(references)
	if consolidated == order.ConsolidatedReference {
		return nil
	}

	expectedVersion := order.Version
	order.ApplyConsolidatedReference(consolidated)

	if err := a.purchaseOrderRepo.SaveWithLock(ctx, order, expectedVersion); err != nil {
		return err
	}

	a.logger.Info("purchase order reference consolidated",
		zap.String("order_number", order.OrderNumber),
		zap.String("consolidated_reference", consolidated),
		zap.Int("receipts", len(receipts)))

	a.publishDomainEvents(ctx, order)

	return nil
}
