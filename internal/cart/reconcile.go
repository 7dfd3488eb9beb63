package cart

import (
	"slices"

	"github.com/rogerio-castellano/storefront-api/internal/models"
)

// The functions below never modify their input; each returns a fresh list
// that the service commits in one write.

func indexOf(items []models.CartItem, productID string) int {
	return slices.IndexFunc(items, func(it models.CartItem) bool { return it.ProductID == productID })
}

func stripped(items []models.CartItem) []models.CartItem {
	return models.Cart{Items: items}.CloneItems()
}

// addOne increments the line for productID or appends a new line with
// quantity 1.
func addOne(items []models.CartItem, productID string) []models.CartItem {
	next := stripped(items)
	if i := indexOf(next, productID); i >= 0 {
		next[i].Quantity++
		return next
	}
	return append(next, models.CartItem{ProductID: productID, Quantity: 1})
}

func withQuantity(items []models.CartItem, productID string, qty int) ([]models.CartItem, bool) {
	i := indexOf(items, productID)
	if i < 0 {
		return nil, false
	}
	next := stripped(items)
	next[i].Quantity = qty
	return next, true
}

func without(items []models.CartItem, productID string) ([]models.CartItem, bool) {
	i := indexOf(items, productID)
	if i < 0 {
		return nil, false
	}
	return slices.Delete(stripped(items), i, i+1), true
}
