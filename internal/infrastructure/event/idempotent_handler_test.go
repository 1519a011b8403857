package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/infrastructure/cache"
)

func TestIdempotentHandler_ProcessesFirstDelivery(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	inner := &recordingHandler{eventTypes: []string{"stock.transfer.validated"}}
	handler := NewIdempotentHandler(inner, store, zap.NewNop())

	err := handler.Handle(context.Background(), newTestEvent("stock.transfer.validated"))
	require.NoError(t, err)

	assert.Len(t, inner.received, 1)
	assert.Equal(t, int64(1), handler.GetMetrics().Stats().EventsProcessed)
}

func TestIdempotentHandler_SkipsDuplicateDelivery(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	inner := &recordingHandler{eventTypes: []string{"stock.transfer.validated"}}
	handler := NewIdempotentHandler(inner, store, zap.NewNop())

	event := newTestEvent("stock.transfer.validated")
	require.NoError(t, handler.Handle(context.Background(), event))
	require.NoError(t, handler.Handle(context.Background(), event))

	assert.Len(t, inner.received, 1)
	assert.Equal(t, int64(1), handler.GetMetrics().Stats().EventsDuplicate)
}

func TestIdempotentHandler_FailureKeepsKeyForCooldown(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	inner := &recordingHandler{eventTypes: []string{"stock.transfer.validated"}, err: errors.New("downstream unavailable")}
	handler := NewIdempotentHandler(inner, store, zap.NewNop())

	event := newTestEvent("stock.transfer.validated")
	err := handler.Handle(context.Background(), event)
	assert.Error(t, err)

	// An immediate redelivery is suppressed until the TTL expires.
	inner.err = nil
	require.NoError(t, handler.Handle(context.Background(), event))
	assert.Len(t, inner.received, 1)
}

func TestIdempotentHandler_DisabledPassesThrough(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	inner := &recordingHandler{eventTypes: []string{"stock.transfer.validated"}}
	handler := NewIdempotentHandler(inner, store, zap.NewNop(),
		WithIdempotencyConfig(shared.IdempotencyConfig{TTL: time.Hour, Enabled: false}))

	event := newTestEvent("stock.transfer.validated")
	require.NoError(t, handler.Handle(context.Background(), event))
	require.NoError(t, handler.Handle(context.Background(), event))

	assert.Len(t, inner.received, 2)
}

func TestWrapHandlersWithIdempotency(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	handlers := []shared.EventHandler{
		&recordingHandler{eventTypes: []string{"a"}},
		&recordingHandler{eventTypes: []string{"b"}},
	}

	wrapped := WrapHandlersWithIdempotency(handlers, store, zap.NewNop())

	require.Len(t, wrapped, 2)
	assert.Equal(t, []string{"a"}, wrapped[0].EventTypes())
	assert.Equal(t, []string{"b"}, wrapped[1].EventTypes())
}
