package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockLocation_Root(t *testing.T) {
	loc, err := NewStockLocation("WH", nil)
	require.NoError(t, err)

	assert.Equal(t, "WH", loc.Name)
	assert.Equal(t, "WH", loc.FullPath)
	assert.True(t, loc.IsRoot())
}

func TestNewStockLocation_Nested(t *testing.T) {
	wh, err := NewStockLocation("WH", nil)
	require.NoError(t, err)
	commercials, err := NewStockLocation("Commercials", wh)
	require.NoError(t, err)
	alice, err := NewStockLocation("ALC", commercials)
	require.NoError(t, err)

	assert.Equal(t, "WH/Commercials/ALC", alice.FullPath)
	require.NotNil(t, alice.ParentID)
	assert.Equal(t, commercials.ID, *alice.ParentID)
	assert.False(t, alice.IsRoot())
}

func TestNewStockLocation_InvalidName(t *testing.T) {
	_, err := NewStockLocation("", nil)
	assert.Error(t, err)

	_, err = NewStockLocation("   ", nil)
	assert.Error(t, err)

	_, err = NewStockLocation("WH/Stock", nil)
	assert.Error(t, err)
}

func TestStockLocation_IsDescendantOf(t *testing.T) {
	wh, err := NewStockLocation("WH", nil)
	require.NoError(t, err)
	stock, err := NewStockLocation("Stock", wh)
	require.NoError(t, err)
	shelf, err := NewStockLocation("Shelf1", stock)
	require.NoError(t, err)

	assert.True(t, stock.IsDescendantOf("WH"))
	assert.True(t, shelf.IsDescendantOf("WH/Stock"))
	assert.False(t, wh.IsDescendantOf("WH"))
	// Prefix of a sibling name is not an ancestor.
	other, err := NewStockLocation("Stockroom", wh)
	require.NoError(t, err)
	assert.False(t, other.IsDescendantOf("WH/Stock"))
}
