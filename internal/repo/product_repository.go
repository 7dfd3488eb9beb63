package repo

import (
	"context"

	"github.com/rogerio-castellano/storefront-api/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	// GetByIDs returns the products that exist among ids, keyed by id.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Product, error)
	// Find returns the page selected by pf and the size of the whole
	// filtered set.
	Find(ctx context.Context, pf ProductFilter) ([]models.Product, int, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id string) error
}
