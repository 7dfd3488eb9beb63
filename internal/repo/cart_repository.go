package repo

import (
	"context"

	"github.com/rogerio-castellano/storefront-api/internal/models"
)

// FindOptions controls cart reads. With IncludeProductDetails every line
// carries the current product snapshot, or nil when the product is gone.
type FindOptions struct {
	IncludeProductDetails bool
}

type CartRepository interface {
	Create(ctx context.Context) (models.Cart, error)
	GetByID(ctx context.Context, id string, opts FindOptions) (models.Cart, error)
	// ReplaceItems commits the whole item list of a cart at once.
	ReplaceItems(ctx context.Context, id string, items []models.CartItem) (models.Cart, error)
	Delete(ctx context.Context, id string) error
}

// populateItems resolves every line's product through products.
func populateItems(ctx context.Context, products ProductRepository, items []models.CartItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ProductID
	}
	found, err := products.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range items {
		if p, ok := found[items[i].ProductID]; ok {
			items[i].Product = &p
		} else {
			items[i].Product = nil
		}
	}
	return nil
}
