// Package catalog answers filtered, sorted and paginated product listings and
// owns the product lifecycle (create, update, delete).
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/rogerio-castellano/storefront-api/internal/apperr"
	"github.com/rogerio-castellano/storefront-api/internal/models"
	"github.com/rogerio-castellano/storefront-api/internal/repo"
	"golang.org/x/sync/singleflight"
)

type Service struct {
	products repo.ProductRepository
	baseURL  string
	cache    PageCache
	sfg      singleflight.Group
	log      *slog.Logger

	cacheMu  sync.Mutex
	cacheGen uint64
}

type Option func(*Service)

// WithCache enables the page cache. Product writes invalidate it.
func WithCache(c PageCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService builds a catalog over products. baseURL prefixes the prev/next
// links, e.g. "http://localhost:8080/api/products".
func NewService(products repo.ProductRepository, baseURL string, opts ...Option) *Service {
	s := &Service{
		products: products,
		baseURL:  strings.TrimRight(baseURL, "?"),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query runs one catalog page. Limit and Page must be at least 1; a limit
// above MaxLimit is clamped and an unknown sort key means store order.
func (s *Service) Query(ctx context.Context, p Params) (PagedResult, error) {
	if p.Limit < 1 {
		return PagedResult{}, apperr.Invalid("limit must be a positive integer")
	}
	if p.Page < 1 {
		return PagedResult{}, apperr.Invalid("page must be a positive integer")
	}
	p = p.normalized()

	if s.cache == nil {
		return s.query(ctx, p)
	}

	key := cacheKey(p)
	gen := s.generation()
	v, err, _ := s.sfg.Do(flightKey(key, gen), func() (any, error) {
		if res, ok := s.cachedPage(ctx, key); ok {
			return res, nil
		}
		res, err := s.query(ctx, p)
		if err != nil {
			return PagedResult{}, err
		}
		s.storePage(ctx, key, gen, res)
		return res, nil
	})
	if err != nil {
		return PagedResult{}, err
	}
	return v.(PagedResult), nil
}

func (s *Service) query(ctx context.Context, p Params) (PagedResult, error) {
	pf, inRange := p.filter()
	if !inRange {
		// The offset does not fit an int, so the page is past any store.
		// Only the count is needed.
		pf.Offset, pf.Limit = 0, 1
	}
	items, total, err := s.products.Find(ctx, pf)
	if err != nil {
		return PagedResult{}, apperr.Internal(err, "failed to query products")
	}
	if items == nil || !inRange {
		items = []models.Product{}
	}
	return s.newPagedResult(p, items, total), nil
}

// All returns the whole catalog in store order.
func (s *Service) All(ctx context.Context) ([]models.Product, error) {
	items, _, err := s.products.Find(ctx, repo.ProductFilter{})
	if err != nil {
		return nil, apperr.Internal(err, "failed to list products")
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Product, error) {
	if strings.TrimSpace(id) == "" {
		return models.Product{}, apperr.Invalid("product id is required")
	}
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, productError(err, id)
	}
	return p, nil
}

// ProductInput is the client-supplied form of a new product, shared by the
// REST and websocket paths. Status defaults to true when absent.
type ProductInput struct {
	Code        string   `json:"code" validate:"required,max=64"`
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required,max=2000"`
	Price       float64  `json:"price" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Category    string   `json:"category" validate:"required,max=100"`
	Status      *bool    `json:"status"`
	Thumbnails  []string `json:"thumbnails" validate:"omitempty,dive,required"`
}

func (in ProductInput) Product() models.Product {
	status := true
	if in.Status != nil {
		status = *in.Status
	}
	return models.Product{
		Code:        in.Code,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		Status:      status,
		Thumbnails:  in.Thumbnails,
	}
}

func (s *Service) Create(ctx context.Context, p models.Product) (models.Product, error) {
	p.ID = ""
	p.Code = strings.TrimSpace(p.Code)
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)
	if err := validateProduct(p); err != nil {
		return models.Product{}, err
	}

	created, err := s.products.Create(ctx, p)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			return models.Product{}, apperr.Conflict("a product with code %q already exists", p.Code)
		}
		return models.Product{}, apperr.Internal(err, "failed to create product")
	}
	s.invalidate()
	s.log.Info("product created", "product_id", created.ID, "code", created.Code)
	return created, nil
}

// ProductPatch carries the fields an update may change. Nil fields keep
// their stored value; ID and Code never change.
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *float64
	Stock       *int
	Category    *string
	Status      *bool
	Thumbnails  []string
}

func (pp ProductPatch) apply(p models.Product) models.Product {
	if pp.Title != nil {
		p.Title = strings.TrimSpace(*pp.Title)
	}
	if pp.Description != nil {
		p.Description = strings.TrimSpace(*pp.Description)
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
	if pp.Category != nil {
		p.Category = strings.TrimSpace(*pp.Category)
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	if pp.Thumbnails != nil {
		p.Thumbnails = pp.Thumbnails
	}
	return p
}

func (s *Service) Update(ctx context.Context, id string, patch ProductPatch) (models.Product, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	next := patch.apply(current)
	if err := validateProduct(next); err != nil {
		return models.Product{}, err
	}

	updated, err := s.products.Update(ctx, next)
	if err != nil {
		return models.Product{}, productError(err, id)
	}
	s.invalidate()
	s.log.Info("product updated", "product_id", id)
	return updated, nil
}

// Delete removes the product. Cart lines that reference it stay in place and
// read back without product details.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.Invalid("product id is required")
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return productError(err, id)
	}
	s.invalidate()
	s.log.Info("product deleted", "product_id", id)
	return nil
}

func validateProduct(p models.Product) error {
	switch {
	case p.Code == "":
		return apperr.Invalid("code is required")
	case p.Title == "":
		return apperr.Invalid("title is required")
	case p.Description == "":
		return apperr.Invalid("description is required")
	case p.Category == "":
		return apperr.Invalid("category is required")
	case p.Price < 0:
		return apperr.Invalid("price must not be negative")
	case p.Stock < 0:
		return apperr.Invalid("stock must not be negative")
	}
	return nil
}

func productError(err error, id string) error {
	if errors.Is(err, repo.ErrProductNotFound) {
		return apperr.NotFound("product %s not found", id)
	}
	return apperr.Internal(err, "product store failure")
}
