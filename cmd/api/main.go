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

	"github.com/RedaKaafarani1/ecomwebsite/api/routes"
	"github.com/RedaKaafarani1/ecomwebsite/internal/auth"
	"github.com/RedaKaafarani1/ecomwebsite/internal/cart"
	"github.com/RedaKaafarani1/ecomwebsite/internal/customers"
	"github.com/RedaKaafarani1/ecomwebsite/internal/orders"
	"github.com/RedaKaafarani1/ecomwebsite/internal/products"
	"github.com/RedaKaafarani1/ecomwebsite/internal/promo"
	"github.com/RedaKaafarani1/ecomwebsite/internal/reviews"
	"github.com/RedaKaafarani1/ecomwebsite/internal/saved"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/auth/session"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/config"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/db"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/email"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/logger"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/metrics"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/migrate"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	emailClient, err := email.NewClient(cfg.Email)
	if err != nil {
		logg.Error(context.Background(), "failed to create email client", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	productRepo := products.NewRepository(gormDB)
	cartRepo := cart.NewRepository(gormDB)
	promoRepo := promo.NewRepository(gormDB)
	reviewRepo := reviews.NewRepository(gormDB)
	savedRepo := saved.NewRepository(gormDB)
	customerRepo := customers.NewRepository(gormDB)
	orderRepo := orders.NewRepository(gormDB)
	userRepo := auth.NewRepository(gormDB)

	productService, err := products.NewService(productRepo)
	if err != nil {
		exitOnWireError(logg, "products", err)
	}

	promoService, err := promo.NewService(promoRepo, dbClient)
	if err != nil {
		exitOnWireError(logg, "promo", err)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		Discounts:   promoService,
	})
	if err != nil {
		exitOnWireError(logg, "cart", err)
	}

	reviewService, err := reviews.NewService(reviews.ServiceParams{
		ReviewRepo:  reviewRepo,
		ProductRepo: productRepo,
		Tx:          dbClient,
	})
	if err != nil {
		exitOnWireError(logg, "reviews", err)
	}

	savedService, err := saved.NewService(saved.ServiceParams{
		SavedRepo:   savedRepo,
		ProductRepo: productRepo,
	})
	if err != nil {
		exitOnWireError(logg, "saved", err)
	}

	customerService, err := customers.NewService(customerRepo)
	if err != nil {
		exitOnWireError(logg, "customers", err)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		CartRepo:  cartRepo,
		PromoRepo: promoRepo,
		OrderRepo: orderRepo,
		Sender:    emailClient,
		EmailCfg:  cfg.Email,
		Tx:        dbClient,
		Logger:    logg,
	})
	if err != nil {
		exitOnWireError(logg, "orders", err)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:    userRepo,
		Profiles:    customerRepo,
		Sessions:    sessionManager,
		RateLimiter: redisClient,
		ResetStore:  redisClient,
		Sender:      emailClient,
		JWT:         cfg.JWT,
		Password:    cfg.Password,
		RateLimits:  cfg.AuthRateLimit,
		EmailCfg:    cfg.Email,
		Tx:          dbClient,
		Logger:      logg,
	})
	if err != nil {
		exitOnWireError(logg, "auth", err)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	handler := routes.NewRouter(routes.Deps{
		Config:         cfg,
		Logger:         logg,
		SessionChecker: sessionManager,
		HTTPMetrics:    httpMetrics,
		Gatherer:       registry,
		DBPinger:       dbClient,
		RedisPinger:    redisClient,
		Products:       productService,
		Reviews:        reviewService,
		Cart:           cartService,
		Promo:          promoService,
		Saved:          savedService,
		Customers:      customerService,
		Orders:         orderService,
		Auth:           authService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	logg.Info(ctx, "api server shut down")
}

func exitOnWireError(logg *logger.Logger, component string, err error) {
	logg.Error(context.Background(), "failed to create "+component+" service", err)
	os.Exit(1)
}
