package stock

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/stock"
)

// TransferService handles transfer document operations for the host
// document workflow: creation, lifecycle transitions and reference edits.
// Chain creation itself is the TransferChainer's job; this service only
// enforces the completion-order constraint on transitions.
type TransferService struct {
	transferRepo   stock.TransferRepository
	locationRepo   stock.LocationRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewTransferService creates a new TransferService
func NewTransferService(
	transferRepo stock.TransferRepository,
	locationRepo stock.LocationRepository,
	logger *zap.Logger,
) *TransferService {
	return &TransferService{
		transferRepo: transferRepo,
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *TransferService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishDomainEvents publishes all pending events from the transfer
func (s *TransferService) publishDomainEvents(ctx context.Context, t *stock.TransferDocument) {
	if s.eventPublisher == nil {
		return
	}
	events := t.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Handler errors are logged by the event bus, never propagated into
	// the triggering document operation.
	_ = s.eventPublisher.Publish(ctx, events...)
	t.ClearDomainEvents()
}

func (s *TransferService) addRequestedLines(t *stock.TransferDocument, lines []TransferLineRequest) error {
	for _, line := range lines {
		method := stock.ProcureMethod(line.ProcureMethod)
		if line.ProcureMethod == "" {
			method = stock.ProcureMakeToStock
		}
		if _, err := t.AddLine(line.ProductID, line.ProductName, line.Quantity, method); err != nil {
			return err
		}
	}
	return nil
}

// CreateOutgoingTransfer creates a delivery for a sale order and publishes
// the creation event that drives chaining automation
func (s *TransferService) CreateOutgoingTransfer(ctx context.Context, req CreateOutgoingTransferRequest) (*TransferResponse, error) {
	reference, err := s.transferRepo.GenerateReference(ctx, stock.TransferKindOutgoing)
	if err != nil {
		return nil, err
	}

	t, err := stock.NewOutgoingTransfer(reference, req.SourceLocationID, req.DestinationLocationID, req.Order)
	if err != nil {
		return nil, err
	}
	if err := s.addRequestedLines(t, req.Lines); err != nil {
		return nil, err
	}

	if err := s.transferRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("outgoing transfer created",
		zap.String("reference", t.Reference),
		zap.String("order_number", req.Order.OrderNumber),
		zap.String("salesperson", req.Order.Salesperson.Name))

	s.publishDomainEvents(ctx, t)

	return ToTransferResponse(t), nil
}

// CreateReceipt creates an incoming transfer, optionally linked to a
// purchase order
func (s *TransferService) CreateReceipt(ctx context.Context, req CreateReceiptRequest) (*TransferResponse, error) {
	reference, err := s.transferRepo.GenerateReference(ctx, stock.TransferKindIncoming)
	if err != nil {
		return nil, err
	}

	t, err := stock.NewReceipt(reference, req.SourceLocationID, req.DestinationLocationID, req.PurchaseOrderID)
	if err != nil {
		return nil, err
	}
	if err := s.addRequestedLines(t, req.Lines); err != nil {
		return nil, err
	}
	t.SetPartnerReference(req.PartnerReference)

	if err := s.transferRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, t)

	return ToTransferResponse(t), nil
}

// loadChainPredecessor loads the predecessor of a chained transfer so the
// aggregate can check the completion-order constraint. Unchained transfers
// yield nil.
func (s *TransferService) loadChainPredecessor(ctx context.Context, t *stock.TransferDocument) (*stock.TransferDocument, error) {
	if !t.IsChained() {
		return nil, nil
	}
	return s.transferRepo.FindByID(ctx, *t.ChainPredecessorID)
}

// Confirm confirms a transfer
func (s *TransferService) Confirm(ctx context.Context, id uuid.UUID) (*TransferResponse, error) {
	t, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := t.Confirm(); err != nil {
		return nil, err
	}
	if err := s.transferRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, t)
	return ToTransferResponse(t), nil
}

// Assign reserves a transfer. A chained transfer is refused while its
// predecessor is not done.
func (s *TransferService) Assign(ctx context.Context, id uuid.UUID) (*TransferResponse, error) {
	t, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	predecessor, err := s.loadChainPredecessor(ctx, t)
	if err != nil {
		return nil, err
	}

	if err := t.Assign(predecessor); err != nil {
		return nil, err
	}
	if err := s.transferRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, t)
	return ToTransferResponse(t), nil
}

// Validate completes a transfer, subject to the same completion-order
// check as Assign. A validated receipt linked to a purchase order triggers
// reference consolidation through the published event.
func (s *TransferService) Validate(ctx context.Context, id uuid.UUID) (*TransferResponse, error) {
	t, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	predecessor, err := s.loadChainPredecessor(ctx, t)
	if err != nil {
		return nil, err
	}

	if err := t.Validate(predecessor); err != nil {
		return nil, err
	}
	if err := s.transferRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("transfer validated",
		zap.String("reference", t.Reference),
		zap.String("kind", t.Kind.String()))

	s.publishDomainEvents(ctx, t)
	return ToTransferResponse(t), nil
}

// Cancel cancels a transfer. A chained internal transfer whose successor
// was cancelled stays alive as an orphan; an operator decides its fate.
func (s *TransferService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*TransferResponse, error) {
	t, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := t.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.transferRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, t)
	return ToTransferResponse(t), nil
}

// UpdatePartnerReference updates the external reference on a transfer.
// Editing a validated, order-linked receipt re-triggers consolidation.
func (s *TransferService) UpdatePartnerReference(ctx context.Context, id uuid.UUID, value string) (*TransferResponse, error) {
	t, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	t.SetPartnerReference(value)

	if err := s.transferRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, t)
	return ToTransferResponse(t), nil
}

// GetByID retrieves a transfer by ID
func (s *TransferService) GetByID(ctx context.Context, id uuid.UUID) (*TransferResponse, error) {
	t, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToTransferResponse(t), nil
}

// List retrieves transfers with pagination
func (s *TransferService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*TransferResponse], error) {
	transfers, err := s.transferRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.transferRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*TransferResponse, 0, len(transfers))
	for i := range transfers {
		responses = append(responses, ToTransferResponse(&transfers[i]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}
