package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/storefrontlabs/storefront-api/api/controllers"
	"github.com/storefrontlabs/storefront-api/api/routes"
	cartsvc "github.com/storefrontlabs/storefront-api/internal/cart"
	"github.com/storefrontlabs/storefront-api/internal/catalog"
	checkoutsvc "github.com/storefrontlabs/storefront-api/internal/checkout"
	"github.com/storefrontlabs/storefront-api/internal/storage"
	userssvc "github.com/storefrontlabs/storefront-api/internal/users"
	"github.com/storefrontlabs/storefront-api/pkg/config"
	"github.com/storefrontlabs/storefront-api/pkg/logger"
	"github.com/storefrontlabs/storefront-api/pkg/metrics"
)

const shutdownGrace = 10 * time.Second

// sessionStore is the persistence surface main wires together: the cart and
// user stores plus the lifecycle methods the server owns.
type sessionStore interface {
	cartsvc.Store
	userssvc.Store
	Close() error
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, storePinger, err := buildStore(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap session store", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	catalogMetrics := metrics.NewCatalogMetrics(registry)

	catalogClient := catalog.NewClient(
		catalog.WithBaseURL(cfg.Catalog.BaseURL),
		catalog.WithTimeout(cfg.Catalog.Timeout),
		catalog.WithMetrics(catalogMetrics),
	)

	cartService, err := cartsvc.NewService(store, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	userService, err := userssvc.NewService(store)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(cartService, cfg.Checkout.ProcessingDelay)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			storePinger,
			catalogClient,
			cartService,
			checkoutService,
			userService,
			registry,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	closeErr := multierr.Combine(
		server.Shutdown(shutdownCtx),
		store.Close(),
	)
	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}

	logg.Info(ctx, "api server stopped")
}

// buildStore picks the persistence backend. With Redis configured carts
// survive restarts; without it the store runs disabled and every session
// starts empty, which mirrors a shopper with storage turned off.
func buildStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (sessionStore, controllers.Pinger, error) {
	if !cfg.Redis.Enabled() {
		logg.Warn(ctx, "redis not configured, session persistence disabled")
		return noopStore{}, nil, nil
	}

	redisStore, err := storage.NewRedis(ctx, cfg.Redis, cfg.Cart.TTL)
	if err != nil {
		return nil, nil, err
	}
	return redisStore, redisStore, nil
}

// noopStore wraps the disabled backend with the Close the server expects.
type noopStore struct {
	storage.Disabled
}

func (noopStore) Close() error { return nil }
