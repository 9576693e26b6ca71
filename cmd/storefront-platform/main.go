package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eliezer-r/storefront-platform/internal/api/handlers"
	"github.com/eliezer-r/storefront-platform/internal/api/middleware"
	"github.com/eliezer-r/storefront-platform/internal/cache"
	"github.com/eliezer-r/storefront-platform/internal/cart"
	"github.com/eliezer-r/storefront-platform/internal/config"
	"github.com/eliezer-r/storefront-platform/internal/health"
	"github.com/eliezer-r/storefront-platform/internal/metrics"
	repository "github.com/eliezer-r/storefront-platform/internal/repositories"
	service "github.com/eliezer-r/storefront-platform/internal/services"
	"github.com/eliezer-r/storefront-platform/internal/tracing"
	"github.com/eliezer-r/storefront-platform/pkg/catalog"
	"github.com/eliezer-r/storefront-platform/pkg/email"
	"github.com/eliezer-r/storefront-platform/pkg/payment"
)

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := tracing.Init(context.Background(), &cfg.Tracing)
	if err != nil {
		slog.Error("❌ Error initializing tracing", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Error("⚠️ Error shutting down tracing", slog.String("error", err.Error()))
		}
	}()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	jwtKey := []byte(cfg.Security.JWTKey)
	catalogClient := catalog.NewClient(cfg.Catalog, redisCache, logger)
	emailSender := email.NewSendGridSender(cfg.SendGrid)
	paymentProvider := payment.NewSimulator(cfg.Checkout.PaymentFailureRate)
	rates := cart.Rates{ShippingFee: cfg.Checkout.ShippingFee, TaxRate: cfg.Checkout.TaxRate}

	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey, cfg.Security.TokenTTL)
	userHandler := handlers.NewUserHandler(userService)
	cartService := service.NewCartService(repos.Cart)
	cartHandler := handlers.NewCartHandler(cartService)
	orderService := service.NewOrderService(repos.Order, repos.Cart, repos.User, paymentProvider, emailSender, rates)
	orderHandler := handlers.NewOrderHandler(orderService)
	productHandler := handlers.NewProductHandler(catalogClient)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("❌ Error building health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/auth/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/auth/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("PUT /api/v1/users/profile", authMiddleware.Authenticate(userHandler.UpdateProfile()))
	routerMux.HandleFunc("GET /api/v1/products", productHandler.List())
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.Get()))
	routerMux.HandleFunc("PUT /api/v1/cart", authMiddleware.Authenticate(cartHandler.Replace()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.Clear()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PATCH /api/v1/cart/items/{productId}", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{productId}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("POST /api/v1/orders", authMiddleware.Authenticate(orderHandler.Create()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.List()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.Get()))
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}/status", authMiddleware.Authenticate(orderHandler.UpdateStatus()))
	routerMux.HandleFunc("POST /api/v1/orders/{id}/cancel", authMiddleware.Authenticate(orderHandler.Cancel()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}
