package procurement

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/domain/procurement"
	"github.com/stockflow/backend/internal/domain/shared"
)

// ManualReferenceChangedHandler re-runs consolidation when a buyer edits
// the manual part of a purchase order's reference, so the derived string
// keeps tracking both sources
type ManualReferenceChangedHandler struct {
	aggregator *ReferenceAggregator
	logger     *zap.Logger
}

// NewManualReferenceChangedHandler creates a new handler for manual reference changed events
func NewManualReferenceChangedHandler(aggregator *ReferenceAggregator, logger *zap.Logger) *ManualReferenceChangedHandler {
	return &ManualReferenceChangedHandler{
		aggregator: aggregator,
		logger:     logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ManualReferenceChangedHandler) EventTypes() []string {
	return []string{procurement.EventTypePurchaseOrderManualReferenceChanged}
}

// Handle processes a PurchaseOrderManualReferenceChangedEvent
func (h *ManualReferenceChangedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changedEvent, ok := event.(*procurement.PurchaseOrderManualReferenceChangedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", procurement.EventTypePurchaseOrderManualReferenceChanged),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			procurement.EventTypePurchaseOrderManualReferenceChanged, event.EventType())
	}

	return h.aggregator.Consolidate(ctx, changedEvent.PurchaseOrderID)
}

// Ensure ManualReferenceChangedHandler implements shared.EventHandler
var _ shared.EventHandler = (*ManualReferenceChangedHandler)(nil)
