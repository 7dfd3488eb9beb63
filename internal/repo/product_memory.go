package repo

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/storefront-api/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	// persist, when set, is called with the full collection after every
	// write. A failing persist rolls the write back.
	persist func([]models.Product) error
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
	}
}

func cloneProduct(p models.Product) models.Product {
	p.Thumbnails = slices.Clone(p.Thumbnails)
	if p.Thumbnails == nil {
		p.Thumbnails = []string{}
	}
	return p
}

func (r *InMemoryProductRepository) commit(next []models.Product) error {
	if r.persist != nil {
		if err := r.persist(next); err != nil {
			return err
		}
	}
	r.products = next
	return nil
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if product.Code != "" && p.Code == product.Code {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}

	product = cloneProduct(product)
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	next := append(slices.Clone(r.products), product)
	if err := r.commit(next); err != nil {
		return models.Product{}, err
	}
	return cloneProduct(product), nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return cloneProduct(p), nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) GetByIDs(_ context.Context, ids []string) (map[string]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make(map[string]models.Product, len(ids))
	for _, p := range r.products {
		if slices.Contains(ids, p.ID) {
			found[p.ID] = cloneProduct(p)
		}
	}
	return found, nil
}

func (r *InMemoryProductRepository) Find(_ context.Context, pf ProductFilter) ([]models.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, total := applyFilter(r.products, pf)
	for i := range page {
		page[i] = cloneProduct(page[i])
	}
	return page, total, nil
}

// Update replaces an existing product. ID, Code and CreatedAt are kept from
// the stored record.
func (r *InMemoryProductRepository) Update(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID != product.ID {
			continue
		}
		product = cloneProduct(product)
		product.Code = p.Code
		product.CreatedAt = p.CreatedAt
		product.UpdatedAt = time.Now().UTC()

		next := slices.Clone(r.products)
		next[i] = product
		if err := r.commit(next); err != nil {
			return models.Product{}, err
		}
		return cloneProduct(product), nil
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			next := slices.Delete(slices.Clone(r.products), i, i+1)
			return r.commit(next)
		}
	}
	return ErrProductNotFound
}
