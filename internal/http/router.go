package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/storefront-api/internal/auth"
	"github.com/rogerio-castellano/storefront-api/internal/http/handlers"
	rl "github.com/rogerio-castellano/storefront-api/internal/http/rate_limiter"
	"github.com/rogerio-castellano/storefront-api/internal/models"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/storefront-api/docs"
)

type RouterConfig struct {
	Server *handlers.Server
	// Realtime serves the websocket endpoint; nil leaves /ws unmounted. It
	// checks its own tokens since browsers cannot send headers on upgrade.
	Realtime http.Handler
	// Issuer verifies access tokens. When nil, product writes are open and
	// the session routes are not mounted.
	Issuer         *auth.Issuer
	Limiter        *rl.Limiter
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	s := cfg.Server

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	if cfg.Realtime != nil {
		r.Group(func(r chi.Router) {
			if cfg.Limiter != nil {
				r.Use(RateLimit(cfg.Limiter))
			}
			r.Handle("/ws", cfg.Realtime)
		})
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}
		if cfg.Limiter != nil {
			r.Use(RateLimit(cfg.Limiter))
		}

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.GetProductsHandler)
			r.Get("/{pid}", s.GetProductByIDHandler)

			r.Group(func(r chi.Router) {
				if cfg.Issuer != nil {
					r.Use(AuthMiddleware(cfg.Issuer))
					r.Use(RequireRole(models.RoleAdmin))
				}
				r.Post("/", s.CreateProductHandler)
				r.Put("/{pid}", s.UpdateProductHandler)
				r.Delete("/{pid}", s.DeleteProductHandler)
			})
		})

		r.Route("/carts", func(r chi.Router) {
			r.Post("/", s.CreateCartHandler)
			r.Get("/{cid}", s.GetCartHandler)
			r.Put("/{cid}", s.ReplaceCartHandler)
			r.Delete("/{cid}", s.ClearCartHandler)
			r.Post("/{cid}/products/{pid}", s.AddCartItemHandler)
			r.Put("/{cid}/products/{pid}", s.UpdateCartItemHandler)
			r.Delete("/{cid}/products/{pid}", s.RemoveCartItemHandler)
		})

		if cfg.Issuer != nil {
			r.Route("/sessions", func(r chi.Router) {
				r.Post("/register", s.RegisterHandler)
				r.Post("/login", s.LoginHandler)
				r.Post("/refresh", s.RefreshHandler)
				r.Post("/logout", s.LogoutHandler)
				r.With(AuthMiddleware(cfg.Issuer)).Get("/current", s.CurrentUserHandler)
			})
		}
	})

	return r
}
