package repo

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/storefront-api/internal/models"
)

type InMemoryCartRepository struct {
	mu       sync.RWMutex
	carts    []models.Cart
	products ProductRepository
	persist  func([]models.Cart) error
}

func NewInMemoryCartRepository(products ProductRepository) *InMemoryCartRepository {
	return &InMemoryCartRepository{
		carts:    []models.Cart{},
		products: products,
	}
}

func cloneCart(c models.Cart) models.Cart {
	c.Items = c.CloneItems()
	return c
}

func (r *InMemoryCartRepository) commit(next []models.Cart) error {
	if r.persist != nil {
		if err := r.persist(next); err != nil {
			return err
		}
	}
	r.carts = next
	return nil
}

func (r *InMemoryCartRepository) Create(_ context.Context) (models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	cart := models.Cart{
		ID:        uuid.NewString(),
		Items:     []models.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.commit(append(slices.Clone(r.carts), cart)); err != nil {
		return models.Cart{}, err
	}
	return cloneCart(cart), nil
}

func (r *InMemoryCartRepository) find(id string) (models.Cart, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.carts {
		if c.ID == id {
			return cloneCart(c), true
		}
	}
	return models.Cart{}, false
}

func (r *InMemoryCartRepository) GetByID(ctx context.Context, id string, opts FindOptions) (models.Cart, error) {
	cart, ok := r.find(id)
	if !ok {
		return models.Cart{}, ErrCartNotFound
	}
	if opts.IncludeProductDetails {
		if err := populateItems(ctx, r.products, cart.Items); err != nil {
			return models.Cart{}, err
		}
	}
	return cart, nil
}

func (r *InMemoryCartRepository) ReplaceItems(_ context.Context, id string, items []models.CartItem) (models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.carts {
		if c.ID != id {
			continue
		}
		c.Items = models.Cart{Items: items}.CloneItems()
		c.UpdatedAt = time.Now().UTC()

		next := slices.Clone(r.carts)
		next[i] = c
		if err := r.commit(next); err != nil {
			return models.Cart{}, err
		}
		return cloneCart(c), nil
	}
	return models.Cart{}, ErrCartNotFound
}

func (r *InMemoryCartRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.carts {
		if c.ID == id {
			return r.commit(slices.Delete(slices.Clone(r.carts), i, i+1))
		}
	}
	return ErrCartNotFound
}
