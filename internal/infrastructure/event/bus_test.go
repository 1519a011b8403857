package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/domain/shared"
)

type recordingHandler struct {
	eventTypes []string
	received   []shared.DomainEvent
	err        error
	panics     bool
}

func (h *recordingHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.received = append(h.received, event)
	return h.err
}

func newTestEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "Test", uuid.New())
	return &e
}

func TestInMemoryEventBus_DeliversToSubscribedHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{eventTypes: []string{"stock.transfer.validated"}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent("stock.transfer.validated"))
	require.NoError(t, err)

	assert.Len(t, handler.received, 1)
}

func TestInMemoryEventBus_IgnoresUnrelatedTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{eventTypes: []string{"stock.transfer.validated"}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent("stock.transfer.chained"))
	require.NoError(t, err)

	assert.Empty(t, handler.received)
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{eventTypes: []string{"stock.transfer.validated"}, err: errors.New("handler broken")}
	healthy := &recordingHandler{eventTypes: []string{"stock.transfer.validated"}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("stock.transfer.validated"))

	// The publishing operation never sees handler failures.
	assert.NoError(t, err)
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBus_PanicIsContained(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	panicking := &recordingHandler{eventTypes: []string{"stock.transfer.validated"}, panics: true}
	healthy := &recordingHandler{eventTypes: []string{"stock.transfer.validated"}}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	assert.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), newTestEvent("stock.transfer.validated"))
	})
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{eventTypes: []string{"stock.transfer.validated"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	_ = bus.Publish(context.Background(), newTestEvent("stock.transfer.validated"))

	assert.Empty(t, handler.received)
}

func TestHandlerRegistry_WildcardReceivesEverything(t *testing.T) {
	registry := NewHandlerRegistry()
	wildcard := &recordingHandler{}
	registry.Register(wildcard)

	handlers := registry.GetHandlers("any.event.type")
	assert.Len(t, handlers, 1)
}
