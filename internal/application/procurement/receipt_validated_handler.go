package procurement

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/stock"
)

// ReceiptValidatedHandler triggers reference consolidation when an
// incoming transfer linked to a purchase order is validated
type ReceiptValidatedHandler struct {
	aggregator *ReferenceAggregator
	logger     *zap.Logger
}

// NewReceiptValidatedHandler creates a new handler for transfer validated events
func NewReceiptValidatedHandler(aggregator *ReferenceAggregator, logger *zap.Logger) *ReceiptValidatedHandler {
	return &ReceiptValidatedHandler{
		aggregator: aggregator,
		logger:     logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ReceiptValidatedHandler) EventTypes() []string {
	return []string{stock.EventTypeTransferValidated}
}

// Handle processes a TransferValidatedEvent. Transfers that are not
// order-linked receipts are ignored.
func (h *ReceiptValidatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	validatedEvent, ok := event.(*stock.TransferValidatedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", stock.EventTypeTransferValidated),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			stock.EventTypeTransferValidated, event.EventType())
	}

	if validatedEvent.Kind != stock.TransferKindIncoming || validatedEvent.PurchaseOrderID == nil {
		return nil
	}

	h.logger.Debug("receipt validated, consolidating purchase order reference",
		zap.String("reference", validatedEvent.Reference),
		zap.String("purchase_order_id", validatedEvent.PurchaseOrderID.String()),
	)

	return h.aggregator.Consolidate(ctx, *validatedEvent.PurchaseOrderID)
}

// Ensure ReceiptValidatedHandler implements shared.EventHandler
var _ shared.EventHandler = (*ReceiptValidatedHandler)(nil)
