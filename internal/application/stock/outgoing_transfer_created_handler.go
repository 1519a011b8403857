package stock

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/stock"
)

// OutgoingTransferCreatedHandler routes outgoing-transfer creation events
// into the transfer chainer
type OutgoingTransferCreatedHandler struct {
	chainer *TransferChainer
	logger  *zap.Logger
}

// NewOutgoingTransferCreatedHandler creates a new handler for outgoing transfer created events
func NewOutgoingTransferCreatedHandler(chainer *TransferChainer, logger *zap.Logger) *OutgoingTransferCreatedHandler {
	return &OutgoingTransferCreatedHandler{
		chainer: chainer,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OutgoingTransferCreatedHandler) EventTypes() []string {
	return []string{stock.EventTypeOutgoingTransferCreated}
}

// Handle processes an OutgoingTransferCreatedEvent
func (h *OutgoingTransferCreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	createdEvent, ok := event.(*stock.OutgoingTransferCreatedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", stock.EventTypeOutgoingTransferCreated),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			stock.EventTypeOutgoingTransferCreated, event.EventType())
	}

	h.logger.Debug("processing outgoing transfer created event",
		zap.String("transfer_id", createdEvent.TransferID.String()),
		zap.String("reference", createdEvent.Reference),
		zap.String("order_number", createdEvent.Order.OrderNumber),
	)

	return h.chainer.ChainOutgoing(ctx, createdEvent.TransferID, createdEvent.Order)
}

// Ensure OutgoingTransferCreatedHandler implements shared.EventHandler
var _ shared.EventHandler = (*OutgoingTransferCreatedHandler)(nil)
