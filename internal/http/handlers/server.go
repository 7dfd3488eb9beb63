package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rogerio-castellano/storefront-api/internal/auth"
	"github.com/rogerio-castellano/storefront-api/internal/cart"
	"github.com/rogerio-castellano/storefront-api/internal/catalog"
	"github.com/rogerio-castellano/storefront-api/internal/realtime"
)

// Server holds the services the handlers call into.
type Server struct {
	catalog  *catalog.Service
	carts    *cart.Service
	auth     *auth.Service
	notifier realtime.Notifier
	validate *validator.Validate
	log      *slog.Logger
}

type Deps struct {
	Catalog *catalog.Service
	Carts   *cart.Service
	// Auth may be nil when authentication is disabled; the session routes
	// are then not mounted.
	Auth *auth.Service
	// Notifier is told about every successful product write.
	Notifier realtime.Notifier
	Logger   *slog.Logger
}

func NewServer(d Deps) *Server {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		catalog:  d.Catalog,
		carts:    d.Carts,
		auth:     d.Auth,
		notifier: d.Notifier,
		validate: newValidator(),
		log:      log,
	}
}

// productsChanged pushes the fresh product list to the notifier. Failures
// are logged; the write itself already succeeded.
func (s *Server) productsChanged(ctx context.Context) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	products, err := s.catalog.All(ctx)
	if err != nil {
		s.log.Warn("could not load products for broadcast", "error", err)
		return
	}
	if err := s.notifier.ProductsChanged(ctx, products); err != nil {
		s.log.Warn("product broadcast failed", "error", err)
	}
}
