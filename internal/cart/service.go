// Package cart reconciles cart item lists: adding, re-quantifying, removing,
// replacing and clearing lines. Every operation validates first, computes the
// next list and commits it in one store write, then returns the cart with
// product details resolved.
package cart

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/rogerio-castellano/storefront-api/internal/apperr"
	"github.com/rogerio-castellano/storefront-api/internal/models"
	"github.com/rogerio-castellano/storefront-api/internal/repo"
)

// Line is one requested entry of a wholesale replacement.
type Line struct {
	ProductID string
	Quantity  int
}

type Service struct {
	carts    repo.CartRepository
	products repo.ProductRepository
	log      *slog.Logger
}

func NewService(carts repo.CartRepository, products repo.ProductRepository, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{carts: carts, products: products, log: log}
}

func (s *Service) Create(ctx context.Context) (models.Cart, error) {
	c, err := s.carts.Create(ctx)
	if err != nil {
		return models.Cart{}, apperr.Internal(err, "failed to create cart")
	}
	s.log.Info("cart created", "cart_id", c.ID)
	return c, nil
}

// Get returns the cart with every line's product resolved. Lines whose
// product no longer exists come back with a nil Product.
func (s *Service) Get(ctx context.Context, cartID string) (models.Cart, error) {
	if err := requireID("cart", cartID); err != nil {
		return models.Cart{}, err
	}
	return s.load(ctx, cartID, true)
}

func (s *Service) AddItem(ctx context.Context, cartID, productID string) (models.Cart, error) {
	if err := requireIDs(cartID, productID); err != nil {
		return models.Cart{}, err
	}
	c, err := s.load(ctx, cartID, false)
	if err != nil {
		return models.Cart{}, err
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return models.Cart{}, err
	}
	return s.commit(ctx, cartID, addOne(c.Items, productID))
}

// SetQuantity sets the quantity of an existing line. Quantity must be at
// least 1; removing a line goes through RemoveItem.
func (s *Service) SetQuantity(ctx context.Context, cartID, productID string, qty int) (models.Cart, error) {
	if err := requireIDs(cartID, productID); err != nil {
		return models.Cart{}, err
	}
	if qty < 1 {
		return models.Cart{}, apperr.Invalid("quantity must be an integer greater than or equal to 1")
	}
	c, err := s.load(ctx, cartID, false)
	if err != nil {
		return models.Cart{}, err
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return models.Cart{}, err
	}
	next, ok := withQuantity(c.Items, productID, qty)
	if !ok {
		return models.Cart{}, itemNotFound(cartID, productID)
	}
	return s.commit(ctx, cartID, next)
}

// RemoveItem drops the line for productID. The product itself need not
// exist any more, so orphaned lines can be removed.
func (s *Service) RemoveItem(ctx context.Context, cartID, productID string) (models.Cart, error) {
	if err := requireIDs(cartID, productID); err != nil {
		return models.Cart{}, err
	}
	c, err := s.load(ctx, cartID, false)
	if err != nil {
		return models.Cart{}, err
	}
	next, ok := without(c.Items, productID)
	if !ok {
		return models.Cart{}, itemNotFound(cartID, productID)
	}
	return s.commit(ctx, cartID, next)
}

// ReplaceAll swaps the whole item list. Every line needs an existing product
// and a positive quantity, and a product may appear only once.
func (s *Service) ReplaceAll(ctx context.Context, cartID string, lines []Line) (models.Cart, error) {
	if err := requireID("cart", cartID); err != nil {
		return models.Cart{}, err
	}
	if lines == nil {
		return models.Cart{}, apperr.Invalid("products must be an array")
	}

	items := make([]models.CartItem, 0, len(lines))
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for i, l := range lines {
		pid := strings.TrimSpace(l.ProductID)
		if pid == "" {
			return models.Cart{}, apperr.Invalid("products[%d]: product is required", i)
		}
		if l.Quantity < 1 {
			return models.Cart{}, apperr.Invalid("products[%d]: quantity must be greater than 0", i)
		}
		if _, dup := seen[pid]; dup {
			return models.Cart{}, apperr.Invalid("products[%d]: product %s is listed more than once", i, pid)
		}
		seen[pid] = struct{}{}
		ids = append(ids, pid)
		items = append(items, models.CartItem{ProductID: pid, Quantity: l.Quantity})
	}

	if _, err := s.load(ctx, cartID, false); err != nil {
		return models.Cart{}, err
	}

	found, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return models.Cart{}, apperr.Internal(err, "failed to look up products")
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return models.Cart{}, apperr.NotFound("product %s not found", id)
		}
	}

	return s.commit(ctx, cartID, items)
}

// Clear empties the cart. Clearing an empty cart is a no-op.
func (s *Service) Clear(ctx context.Context, cartID string) (models.Cart, error) {
	if err := requireID("cart", cartID); err != nil {
		return models.Cart{}, err
	}
	c, err := s.load(ctx, cartID, false)
	if err != nil {
		return models.Cart{}, err
	}
	if len(c.Items) == 0 {
		return c, nil
	}
	return s.commit(ctx, cartID, []models.CartItem{})
}

// Delete removes the cart record itself.
func (s *Service) Delete(ctx context.Context, cartID string) error {
	if err := requireID("cart", cartID); err != nil {
		return err
	}
	if err := s.carts.Delete(ctx, cartID); err != nil {
		return cartError(err, cartID)
	}
	s.log.Info("cart deleted", "cart_id", cartID)
	return nil
}

func (s *Service) load(ctx context.Context, cartID string, populate bool) (models.Cart, error) {
	c, err := s.carts.GetByID(ctx, cartID, repo.FindOptions{IncludeProductDetails: populate})
	if err != nil {
		return models.Cart{}, cartError(err, cartID)
	}
	return c, nil
}

func (s *Service) commit(ctx context.Context, cartID string, items []models.CartItem) (models.Cart, error) {
	if _, err := s.carts.ReplaceItems(ctx, cartID, items); err != nil {
		return models.Cart{}, cartError(err, cartID)
	}
	s.log.Debug("cart items committed", "cart_id", cartID, "lines", len(items))
	return s.load(ctx, cartID, true)
}

func (s *Service) requireProduct(ctx context.Context, productID string) error {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			return apperr.NotFound("product %s not found", productID)
		}
		return apperr.Internal(err, "failed to look up product")
	}
	return nil
}

func requireID(what, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.Invalid("%s id is required", what)
	}
	return nil
}

func requireIDs(cartID, productID string) error {
	if err := requireID("cart", cartID); err != nil {
		return err
	}
	return requireID("product", productID)
}

func cartError(err error, cartID string) error {
	if errors.Is(err, repo.ErrCartNotFound) {
		return apperr.NotFound("cart %s not found", cartID)
	}
	return apperr.Internal(err, "cart store failure")
}

func itemNotFound(cartID, productID string) error {
	return apperr.NotFound("product %s is not in cart %s", productID, cartID)
}
