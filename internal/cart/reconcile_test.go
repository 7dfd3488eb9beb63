package cart

import (
	"testing"

	"github.com/rogerio-castellano/storefront-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestReconcileLeavesInputUntouched(t *testing.T) {
	items := []models.CartItem{{ProductID: "a", Quantity: 1}, {ProductID: "b", Quantity: 2}}

	added := addOne(items, "a")
	assert.Equal(t, 2, added[0].Quantity)

	set, ok := withQuantity(items, "b", 9)
	assert.True(t, ok)
	assert.Equal(t, 9, set[1].Quantity)

	removed, ok := without(items, "a")
	assert.True(t, ok)
	assert.Equal(t, []models.CartItem{{ProductID: "b", Quantity: 2}}, removed)

	assert.Equal(t, []models.CartItem{{ProductID: "a", Quantity: 1}, {ProductID: "b", Quantity: 2}}, items)
}

func TestReconcileMissingLine(t *testing.T) {
	_, ok := withQuantity(nil, "x", 2)
	assert.False(t, ok)
	_, ok = without([]models.CartItem{{ProductID: "a", Quantity: 1}}, "x")
	assert.False(t, ok)
	assert.Equal(t, []models.CartItem{{ProductID: "x", Quantity: 1}}, addOne(nil, "x"))
}
