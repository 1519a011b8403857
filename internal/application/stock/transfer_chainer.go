package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/stock"
)

// ErrMainStockNotConfigured is returned when the canonical main-stock
// location path does not resolve to an existing location. The outgoing
// transfer is left unmodified; an operator has to fix the configuration.
var ErrMainStockNotConfigured = shared.NewDomainError("MAIN_STOCK_NOT_CONFIGURED",
	"Main stock location is not configured or does not exist")

// TransferChainer builds the replenishment step behind an outgoing
// transfer that ships from a salesperson's dedicated location. It creates
// an internal transfer moving the same quantities from the main stock
// location into the dedicated one and links the outgoing transfer behind
// it, so the delivery cannot complete before the replenishment does.
type TransferChainer struct {
	transferRepo   stock.TransferRepository
	locationRepo   stock.LocationRepository
	resolver       *stock.LocationResolver
	mainStockPath  string
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewTransferChainer creates a new TransferChainer. mainStockPath is the
// full path of the canonical main-stock location, e.g. "WH/Stock".
func NewTransferChainer(
	transferRepo stock.TransferRepository,
	locationRepo stock.LocationRepository,
	resolver *stock.LocationResolver,
	mainStockPath string,
	logger *zap.Logger,
) *TransferChainer {
	return &TransferChainer{
		transferRepo:  transferRepo,
		locationRepo:  locationRepo,
		resolver:      resolver,
		mainStockPath: mainStockPath,
		logger:        logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (c *TransferChainer) SetEventPublisher(publisher shared.EventPublisher) {
	c.eventPublisher = publisher
}

func (c *TransferChainer) publishDomainEvents(ctx context.Context, t *stock.TransferDocument) {
	if c.eventPublisher == nil {
		return
	}
	events := t.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = c.eventPublisher.Publish(ctx, events...)
	t.ClearDomainEvents()
}

// ChainOutgoing reacts to a newly created outgoing transfer. It is safe
// under duplicate delivery: a transfer that already has a chain
// predecessor is left alone, so at most one internal transfer exists per
// outgoing transfer.
func (c *TransferChainer) ChainOutgoing(ctx context.Context, transferID uuid.UUID, order stock.SaleOrderInfo) error {
	outgoing, err := c.transferRepo.FindByID(ctx, transferID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			c.logger.Warn("outgoing transfer no longer exists, skipping chaining",
				zap.String("transfer_id", transferID.String()))
			return nil
		}
		return err
	}

	if outgoing.Kind != stock.TransferKindOutgoing {
		return nil
	}
	if outgoing.IsChained() {
		c.logger.Debug("transfer already chained, skipping duplicate event",
			zap.String("reference", outgoing.Reference))
		return nil
	}
	if outgoing.State.IsTerminal() {
		return nil
	}
	if !order.Origin.IsSaleFlow() {
		return nil
	}

	dedicated, ok := c.resolver.Resolve(ctx, order.Salesperson)
	if !ok {
		// No dedicated location means the standard flow applies.
		return nil
	}

	mainStock, err := c.locationRepo.FindByPath(ctx, c.mainStockPath)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			c.logger.Error("main stock location missing, outgoing transfer left unchained",
				zap.String("main_stock_path", c.mainStockPath),
				zap.String("reference", outgoing.Reference))
			return ErrMainStockNotConfigured
		}
		return err
	}

	reference, err := c.transferRepo.GenerateReference(ctx, stock.TransferKindInternal)
	if err != nil {
		return err
	}

	internal, err := stock.NewInternalTransfer(reference, mainStock.ID, dedicated.ID, outgoing.Origin)
	if err != nil {
		return err
	}
	for _, line := range outgoing.Lines {
		if _, err := internal.AddLine(line.ProductID, line.ProductName, line.Quantity, line.ProcureMethod); err != nil {
			return err
		}
	}

	// A make-to-order line cannot be satisfied by reserving existing main
	// stock: the internal transfer waits and a pull requirement is raised
	// per such line. A purely stockable transfer is confirmed directly.
	if internal.HasMakeToOrderLines() {
		if err := internal.MarkWaiting(); err != nil {
			return err
		}
		internal.RequestReplenishment()
	} else if len(internal.Lines) > 0 {
		if err := internal.Confirm(); err != nil {
			return err
		}
	}

	if err := outgoing.ChainTo(internal); err != nil {
		return err
	}

	if err := c.transferRepo.Save(ctx, internal); err != nil {
		return err
	}
	if err := c.transferRepo.Save(ctx, outgoing); err != nil {
		return err
	}

	c.logger.Info("outgoing transfer chained behind replenishment",
		zap.String("outgoing", outgoing.Reference),
		zap.String("internal", internal.Reference),
		zap.String("dedicated_location", dedicated.FullPath),
		zap.Bool("make_to_order", internal.HasMakeToOrderLines()))

	c.publishDomainEvents(ctx, internal)
	c.publishDomainEvents(ctx, outgoing)

	return nil
}
