package procurement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPurchaseOrder(t *testing.T) *PurchaseOrder {
	order, err := NewPurchaseOrder("PO-2026-001", uuid.New(), "Acme Supplies")
	require.NoError(t, err)
	return order
}

func TestPurchaseOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     PurchaseOrderStatus
		to       PurchaseOrderStatus
		canTrans bool
	}{
		{PurchaseOrderStatusDraft, PurchaseOrderStatusConfirmed, true},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusCompleted, false},
		{PurchaseOrderStatusConfirmed, PurchaseOrderStatusCompleted, true},
		{PurchaseOrderStatusConfirmed, PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatusConfirmed, PurchaseOrderStatusDraft, false},
		{PurchaseOrderStatusCompleted, PurchaseOrderStatusCancelled, false},
		{PurchaseOrderStatusCancelled, PurchaseOrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewPurchaseOrder(t *testing.T) {
	order := createTestPurchaseOrder(t)

	assert.Equal(t, PurchaseOrderStatusDraft, order.Status)
	assert.Empty(t, order.ManualReference)
	assert.Empty(t, order.ConsolidatedReference)

	_, err := NewPurchaseOrder("", uuid.New(), "Acme")
	assert.Error(t, err)
	_, err = NewPurchaseOrder("PO-1", uuid.Nil, "Acme")
	assert.Error(t, err)
}

func TestPurchaseOrder_Lifecycle(t *testing.T) {
	order := createTestPurchaseOrder(t)

	require.NoError(t, order.Confirm())
	assert.Equal(t, PurchaseOrderStatusConfirmed, order.Status)
	require.NotNil(t, order.ConfirmedAt)

	require.NoError(t, order.Complete())
	assert.Equal(t, PurchaseOrderStatusCompleted, order.Status)

	assert.Error(t, order.Cancel())
}

func TestSetManualReference(t *testing.T) {
	order := createTestPurchaseOrder(t)

	order.SetManualReference("  M1 M2  ")
	assert.Equal(t, "M1 M2", order.ManualReference)

	events := order.GetDomainEvents()
	require.Len(t, events, 1)
	changed, ok := events[0].(*PurchaseOrderManualReferenceChangedEvent)
	require.True(t, ok)
	assert.Equal(t, "M1 M2", changed.ManualReference)

	// Re-setting the same value is a no-op.
	order.ClearDomainEvents()
	version := order.Version
	order.SetManualReference("M1 M2")
	assert.Empty(t, order.GetDomainEvents())
	assert.Equal(t, version, order.Version)
}

func TestBuildConsolidatedReference(t *testing.T) {
	order := createTestPurchaseOrder(t)
	order.SetManualReference("M1")

	result := order.BuildConsolidatedReference([]string{"R1 R2", "R2 R3", ""})

	assert.Equal(t, "M1 R1 R2 R3", result)
}

func TestBuildConsolidatedReference_ManualTokensLeadAndDeduplicate(t *testing.T) {
	order := createTestPurchaseOrder(t)
	order.SetManualReference("R2 M1")

	result := order.BuildConsolidatedReference([]string{"R1 R2"})

	assert.Equal(t, "R2 M1 R1", result)
}

func TestBuildConsolidatedReference_NoReceipts(t *testing.T) {
	order := createTestPurchaseOrder(t)
	order.SetManualReference("M1")

	assert.Equal(t, "M1", order.BuildConsolidatedReference(nil))

	empty := createTestPurchaseOrder(t)
	assert.Equal(t, "", empty.BuildConsolidatedReference(nil))
}

func TestApplyConsolidatedReference(t *testing.T) {
	order := createTestPurchaseOrder(t)
	order.ClearDomainEvents()

	order.ApplyConsolidatedReference("M1 R1")
	assert.Equal(t, "M1 R1", order.ConsolidatedReference)

	events := order.GetDomainEvents()
	require.Len(t, events, 1)
	consolidated, ok := events[0].(*PurchaseOrderReferenceConsolidatedEvent)
	require.True(t, ok)
	assert.Equal(t, "M1 R1", consolidated.ConsolidatedReference)

	// Applying the same derived value again converges silently.
	order.ClearDomainEvents()
	version := order.Version
	order.ApplyConsolidatedReference("M1 R1")
	assert.Empty(t, order.GetDomainEvents())
	assert.Equal(t, version, order.Version)
}

func TestManualReferenceNeverOverwrittenByConsolidation(t *testing.T) {
	order := createTestPurchaseOrder(t)
	order.SetManualReference("M1")

	order.ApplyConsolidatedReference(order.BuildConsolidatedReference([]string{"R1"}))

	assert.Equal(t, "M1", order.ManualReference)
	assert.Equal(t, "M1 R1", order.ConsolidatedReference)
}
