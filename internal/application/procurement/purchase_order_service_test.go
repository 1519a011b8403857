package procurement

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/domain/procurement"
	"github.com/stockflow/backend/internal/domain/shared"
)

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func newPurchaseOrderService() (*PurchaseOrderService, *MockPurchaseOrderRepository, *recordingPublisher) {
	repo := new(MockPurchaseOrderRepository)
	service := NewPurchaseOrderService(repo, zap.NewNop())
	publisher := &recordingPublisher{}
	service.SetEventPublisher(publisher)
	return service, repo, publisher
}

func TestPurchaseOrderService_Create(t *testing.T) {
	service, repo, publisher := newPurchaseOrderService()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.Create(context.Background(), CreatePurchaseOrderRequest{
		OrderNumber:     "PO00042",
		SupplierID:      uuid.New(),
		SupplierName:    "Acme Supplies",
		ManualReference: "FACT-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "PO00042", resp.OrderNumber)
	assert.Equal(t, "FACT-1", resp.ManualReference)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, procurement.EventTypePurchaseOrderManualReferenceChanged, publisher.events[0].EventType())
}

func TestPurchaseOrderService_Create_EmptyOrderNumberRejected(t *testing.T) {
	service, repo, _ := newPurchaseOrderService()

	_, err := service.Create(context.Background(), CreatePurchaseOrderRequest{
		OrderNumber:  "",
		SupplierID:   uuid.New(),
		SupplierName: "Acme Supplies",
	})

	require.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPurchaseOrderService_UpdateManualReference(t *testing.T) {
	service, repo, publisher := newPurchaseOrderService()

	order, err := procurement.NewPurchaseOrder("PO00001", uuid.New(), "Acme Supplies")
	require.NoError(t, err)
	order.ClearDomainEvents()

	repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	repo.On("Save", mock.Anything, order).Return(nil)

	resp, err := service.UpdateManualReference(context.Background(), order.ID, "FACT-2, FACT-3")
	require.NoError(t, err)
	assert.Equal(t, "FACT-2, FACT-3", resp.ManualReference)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, procurement.EventTypePurchaseOrderManualReferenceChanged, publisher.events[0].EventType())
}

func TestPurchaseOrderService_UpdateManualReference_NoChangeNoEvent(t *testing.T) {
	service, repo, publisher := newPurchaseOrderService()

	order, err := procurement.NewPurchaseOrder("PO00001", uuid.New(), "Acme Supplies")
	require.NoError(t, err)
	order.SetManualReference("FACT-1")
	order.ClearDomainEvents()

	repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	repo.On("Save", mock.Anything, order).Return(nil)

	_, err = service.UpdateManualReference(context.Background(), order.ID, "FACT-1")
	require.NoError(t, err)
	assert.Empty(t, publisher.events)
}

func TestPurchaseOrderService_Confirm(t *testing.T) {
	service, repo, _ := newPurchaseOrderService()

	order, err := procurement.NewPurchaseOrder("PO00001", uuid.New(), "Acme Supplies")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	repo.On("Save", mock.Anything, order).Return(nil)

	resp, err := service.Confirm(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, string(procurement.PurchaseOrderStatusConfirmed), resp.Status)
	assert.NotNil(t, resp.ConfirmedAt)
}

func TestPurchaseOrderService_Cancel_ConfirmedOrder(t *testing.T) {
	service, repo, _ := newPurchaseOrderService()

	order, err := procurement.NewPurchaseOrder("PO00001", uuid.New(), "Acme Supplies")
	require.NoError(t, err)
	require.NoError(t, order.Confirm())

	repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	repo.On("Save", mock.Anything, order).Return(nil)

	resp, err := service.Cancel(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, string(procurement.PurchaseOrderStatusCancelled), resp.Status)
}

func TestPurchaseOrderService_GetByID_NotFound(t *testing.T) {
	service, repo, _ := newPurchaseOrderService()
	missingID := uuid.New()

	repo.On("FindByID", mock.Anything, missingID).Return(nil, shared.ErrNotFound)

	_, err := service.GetByID(context.Background(), missingID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPurchaseOrderService_List(t *testing.T) {
	service, repo, _ := newPurchaseOrderService()

	order, err := procurement.NewPurchaseOrder("PO00001", uuid.New(), "Acme Supplies")
	require.NoError(t, err)

	filter := shared.DefaultFilter()
	repo.On("FindAll", mock.Anything, filter).Return([]procurement.PurchaseOrder{*order}, nil)
	repo.On("Count", mock.Anything, filter).Return(int64(1), nil)

	result, err := service.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Total)
}
