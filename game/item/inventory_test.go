package item

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventory_AddStacks(t *testing.T) {
	var inv Inventory
	require.NoError(t, inv.Add(Potion, 2))
	require.NoError(t, inv.Grant(Sword))
	require.NoError(t, inv.Grant(Potion))

	assert.Equal(t, 3, inv.Count(Potion))
	assert.Equal(t, []Slot{{Potion, 3}, {Sword, 1}}, inv.List())
	assert.ErrorIs(t, inv.Add(Potion, 0), ErrInvalidQuantity)
}

func TestInventory_Remove(t *testing.T) {
	var inv Inventory
	require.NoError(t, inv.Add(Potion, 2))

	require.NoError(t, inv.Remove(Potion, 1))
	assert.True(t, inv.Has(Potion))
	require.NoError(t, inv.Remove(Potion, 1))
	assert.False(t, inv.Has(Potion))
	assert.Empty(t, inv.List())

	assert.ErrorIs(t, inv.Remove(Potion, 1), ErrNotEnoughItems)
	assert.ErrorIs(t, inv.Remove(Sword, -1), ErrInvalidQuantity)
}

func TestInventory_Full(t *testing.T) {
	var inv Inventory
	for i := 0; i < maxInventorySlots; i++ {
		require.NoError(t, inv.Grant(fmt.Sprintf("token-%d", i)))
	}
	assert.ErrorIs(t, inv.Grant("one-too-many"), ErrInventoryFull)
	// Existing stacks still grow.
	assert.NoError(t, inv.Grant("token-0"))
}

func TestInventory_ListIsCopy(t *testing.T) {
	var inv Inventory
	require.NoError(t, inv.Grant(Sword))
	list := inv.List()
	list[0].Qty = 50
	assert.Equal(t, 1, inv.Count(Sword))
}
