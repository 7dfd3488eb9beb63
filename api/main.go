package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rogerio-castellano/storefront-api/internal/auth"
	"github.com/rogerio-castellano/storefront-api/internal/cart"
	"github.com/rogerio-castellano/storefront-api/internal/catalog"
	"github.com/rogerio-castellano/storefront-api/internal/config"
	"github.com/rogerio-castellano/storefront-api/internal/db"
	api "github.com/rogerio-castellano/storefront-api/internal/http"
	"github.com/rogerio-castellano/storefront-api/internal/http/handlers"
	rl "github.com/rogerio-castellano/storefront-api/internal/http/rate_limiter"
	"github.com/rogerio-castellano/storefront-api/internal/logger"
	"github.com/rogerio-castellano/storefront-api/internal/realtime"
	"github.com/rogerio-castellano/storefront-api/internal/redissvc"
	"github.com/rogerio-castellano/storefront-api/internal/repo"
)

type stores struct {
	products repo.ProductRepository
	carts    repo.CartRepository
	users    repo.UserRepository
	close    func()
}

func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (stores, error) {
	switch cfg.Storage.Driver {
	case "memory":
		products := repo.NewInMemoryProductRepository()
		return stores{
			products: products,
			carts:    repo.NewInMemoryCartRepository(products),
			users:    repo.NewInMemoryUserRepository(),
			close:    func() {},
		}, nil

	case "file":
		products, err := repo.NewJSONFileProductRepository(cfg.Storage.Dir)
		if err != nil {
			return stores{}, err
		}
		carts, err := repo.NewJSONFileCartRepository(cfg.Storage.Dir, products)
		if err != nil {
			return stores{}, err
		}
		users, err := repo.NewJSONFileUserRepository(cfg.Storage.Dir)
		if err != nil {
			return stores{}, err
		}
		return stores{products: products, carts: carts, users: users, close: func() {}}, nil

	case "postgres":
		database, err := db.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return stores{}, err
		}
		if err := db.Migrate(database); err != nil {
			database.Close()
			return stores{}, err
		}
		log.Info("postgres migrations applied")
		products := repo.NewPostgresProductRepository(database)
		return stores{
			products: products,
			carts:    repo.NewPostgresCartRepository(database, products),
			users:    repo.NewPostgresUserRepository(database),
			close:    func() { database.Close() },
		}, nil

	case "mongo":
		database, err := db.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return stores{}, err
		}
		if err := db.EnsureMongoIndexes(ctx, database); err != nil {
			_ = database.Client().Disconnect(ctx)
			return stores{}, err
		}
		products := repo.NewMongoProductRepository(database)
		return stores{
			products: products,
			carts:    repo.NewMongoCartRepository(database, products),
			users:    repo.NewMongoUserRepository(database),
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = database.Client().Disconnect(ctx)
			},
		}, nil
	}
	return stores{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// @title Storefront API
// @version 1.0
// @description Product catalog queries and shopping cart management.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.New(logger.Options{Service: "storefront-api", Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("could not open %s storage: %w", cfg.Storage.Driver, err)
	}
	defer st.close()
	log.Info("storage ready", "driver", cfg.Storage.Driver)

	g, ctx := errgroup.WithContext(ctx)

	catalogOpts := []catalog.Option{catalog.WithLogger(log)}
	var refresh auth.RefreshStore
	if cfg.Redis.Enabled {
		rdb, err := redissvc.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("could not connect to redis: %w", err)
		}
		defer rdb.Close()
		redisService := redissvc.NewRedisService(rdb, cfg.Redis.CacheTTL)
		catalogOpts = append(catalogOpts, catalog.WithCache(redisService))
		refresh = redisService
	} else {
		memRefresh := auth.NewMemoryRefreshStore()
		g.Go(func() error { return memRefresh.StartCleaner(ctx, 30*time.Minute) })
		refresh = memRefresh
	}

	catalogSvc := catalog.NewService(st.products, cfg.Catalog.BaseURL, catalogOpts...)
	cartSvc := cart.NewService(st.carts, st.products, log)

	var (
		authSvc *auth.Service
		issuer  *auth.Issuer
	)
	if cfg.Auth.Enabled {
		issuer = auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL)
		authSvc = auth.NewService(st.users, issuer, refresh, cfg.Auth.RefreshTTL, log)
		if cfg.Auth.AdminUsername != "" && cfg.Auth.AdminPassword != "" {
			if err := authSvc.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
				return fmt.Errorf("could not seed admin account: %w", err)
			}
		}
	}

	var hubOpts []realtime.HubOption
	if issuer != nil {
		hubOpts = append(hubOpts, realtime.WithIssuer(issuer))
	}
	hub := realtime.NewHub(catalogSvc, log, hubOpts...)
	notifier := realtime.Multi{hub}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := realtime.NewKafkaPublisher(cfg.Kafka.Topic, cfg.Kafka.Brokers...)
		defer publisher.Close()
		hub.OnChange(publisher)
		notifier = append(notifier, publisher)
		log.Info("publishing product changes to kafka", "topic", cfg.Kafka.Topic)
	}

	var limiter *rl.Limiter
	if cfg.RateLimit.Enabled {
		limiter = rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		g.Go(func() error { return limiter.StartVisitorCleanupLoop(ctx, time.Minute, 3*time.Minute) })
	}

	server := handlers.NewServer(handlers.Deps{
		Catalog:  catalogSvc,
		Carts:    cartSvc,
		Auth:     authSvc,
		Notifier: notifier,
		Logger:   log,
	})

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: api.NewRouter(api.RouterConfig{
			Server:         server,
			Realtime:       hub,
			Issuer:         issuer,
			Limiter:        limiter,
			RequestTimeout: cfg.HTTP.RequestTimeout,
			Logger:         log,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error { return hub.Run(ctx) })
	g.Go(func() error {
		log.Info("server running", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
