package procurement

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/stock"
)

// ReceiptReferenceEditedHandler re-runs reference consolidation when the
// partner reference of an already validated receipt is edited
type ReceiptReferenceEditedHandler struct {
	aggregator *ReferenceAggregator
	logger     *zap.Logger
}

// NewReceiptReferenceEditedHandler creates a new handler for reference edited events
func NewReceiptReferenceEditedHandler(aggregator *ReferenceAggregator, logger *zap.Logger) *ReceiptReferenceEditedHandler {
	return &ReceiptReferenceEditedHandler{
		aggregator: aggregator,
		logger:     logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ReceiptReferenceEditedHandler) EventTypes() []string {
	return []string{stock.EventTypeTransferReferenceEdited}
}

// Handle processes a TransferReferenceEditedEvent
func (h *ReceiptReferenceEditedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	editedEvent, ok := event.(*stock.TransferReferenceEditedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", stock.EventTypeTransferReferenceEdited),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			stock.EventTypeTransferReferenceEdited, event.EventType())
	}

	if editedEvent.PurchaseOrderID == nil {
		return nil
	}

	return h.aggregator.Consolidate(ctx, *editedEvent.PurchaseOrderID)
}

// Ensure ReceiptReferenceEditedHandler implements shared.EventHandler
var _ shared.EventHandler = (*ReceiptReferenceEditedHandler)(nil)
