package cart

import (
	"testing"

	"github.com/razat249/tabletop-reboxing/internal/domain"
	"github.com/stretchr/testify/assert"
)

func meeple(qty int) domain.CartItem {
	return domain.CartItem{ProductID: "meeple-set", Name: "Meeple Set", Price: 450, Quantity: qty}
}

func diceTray(qty int) domain.CartItem {
	return domain.CartItem{ProductID: "dice-tray", Name: "Dice Tray", Price: 700, Quantity: qty}
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	store := NewStore()

	store.AddItem(meeple(1), 1)
	store.AddItem(meeple(1), 2)
	store.AddItem(meeple(1), 3)

	items := store.Items()
	assert.Len(t, items, 1)
	// Quantity equals the sum of deltas, never a duplicated row
	assert.Equal(t, 6, items[0].Quantity)
}

func TestAddItem_ClampsDelta(t *testing.T) {
	store := NewStore()

	store.AddItem(meeple(1), 0)
	assert.Equal(t, 1, store.Items()[0].Quantity)

	// A negative delta can never decrease the quantity
	store.AddItem(meeple(1), -5)
	assert.Equal(t, 2, store.Items()[0].Quantity)
}

func TestAddItem_KeepsInsertionOrder(t *testing.T) {
	store := NewStore()

	store.AddItem(diceTray(1), 1)
	store.AddItem(meeple(1), 1)
	store.AddItem(diceTray(1), 1) // merge must not move the line

	items := store.Items()
	assert.Equal(t, "dice-tray", items[0].ProductID)
	assert.Equal(t, "meeple-set", items[1].ProductID)
}

func TestSetQuantity_Absolute(t *testing.T) {
	store := NewStore()
	store.AddItem(meeple(1), 5)

	store.SetQuantity("meeple-set", 2)
	assert.Equal(t, 2, store.Items()[0].Quantity)
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	store := NewStore()
	store.AddItem(meeple(1), 3)

	store.SetQuantity("meeple-set", 0)
	assert.Empty(t, store.Items())
}

func TestSetQuantity_NegativeRemovesLine(t *testing.T) {
	store := NewStore()
	store.AddItem(meeple(1), 3)

	store.SetQuantity("meeple-set", -5)
	assert.Empty(t, store.Items())
}

func TestSetQuantity_UnknownProductIsNoop(t *testing.T) {
	store := NewStore()
	store.AddItem(meeple(1), 1)

	store.SetQuantity("unknown", 4)
	items := store.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	store := NewStore()
	store.AddItem(meeple(1), 2)
	store.AddItem(diceTray(1), 1)

	store.RemoveItem("meeple-set")
	items := store.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "dice-tray", items[0].ProductID)

	// Removing an absent id is not an error
	store.RemoveItem("meeple-set")
	assert.Len(t, store.Items(), 1)
}

func TestSubtotal_RecomputedAfterEveryMutation(t *testing.T) {
	store := NewStore()
	assert.Equal(t, float64(0), store.Subtotal())

	store.AddItem(meeple(1), 2) // 900
	assert.Equal(t, float64(900), store.Subtotal())

	store.AddItem(diceTray(1), 1) // +700
	assert.Equal(t, float64(1600), store.Subtotal())

	store.SetQuantity("meeple-set", 1) // -450
	assert.Equal(t, float64(1150), store.Subtotal())

	store.RemoveItem("dice-tray")
	assert.Equal(t, float64(450), store.Subtotal())

	store.Clear()
	assert.Equal(t, float64(0), store.Subtotal())
}

func TestItemCount_SumsQuantities(t *testing.T) {
	store := NewStore()
	store.AddItem(meeple(1), 3)
	store.AddItem(diceTray(1), 2)

	assert.Equal(t, 5, store.ItemCount())
	assert.Len(t, store.Items(), 2)
}

func TestItems_ReturnsCopy(t *testing.T) {
	store := NewStore()
	store.AddItem(meeple(1), 1)

	items := store.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, store.Items()[0].Quantity)
}

func TestRestore_DropsInvalidRows(t *testing.T) {
	store := Restore([]domain.CartItem{
		{ProductID: "a", Quantity: 2},
		{ProductID: "b", Quantity: 0},
		{ProductID: "c", Quantity: -1},
	})

	items := store.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ProductID)
}
