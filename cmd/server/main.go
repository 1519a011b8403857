package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	partnerapp "github.com/stockflow/backend/internal/application/partner"
	procurementapp "github.com/stockflow/backend/internal/application/procurement"
	stockapp "github.com/stockflow/backend/internal/application/stock"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/stock"
	"github.com/stockflow/backend/internal/infrastructure/cache"
	"github.com/stockflow/backend/internal/infrastructure/config"
	"github.com/stockflow/backend/internal/infrastructure/event"
	"github.com/stockflow/backend/internal/infrastructure/logger"
	"github.com/stockflow/backend/internal/infrastructure/persistence"
	"github.com/stockflow/backend/internal/interfaces/http/handler"
	"github.com/stockflow/backend/internal/interfaces/http/middleware"
	"github.com/stockflow/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName))

	// Repositories
	transferRepo := persistence.NewGormTransferRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	salespersonRepo := persistence.NewGormSalespersonRepository(db.DB)

	// Domain services
	locationResolver := stock.NewLocationResolver(locationRepo, log)

	// Application services
	transferService := stockapp.NewTransferService(transferRepo, locationRepo, log)
	locationService := stockapp.NewLocationService(locationRepo, log)
	purchaseOrderService := procurementapp.NewPurchaseOrderService(purchaseOrderRepo, log)
	salespersonService := partnerapp.NewSalespersonService(salespersonRepo, log)

	transferChainer := stockapp.NewTransferChainer(
		transferRepo,
		locationRepo,
		locationResolver,
		cfg.Stock.MainStockLocationPath,
		log,
	)
	referenceAggregator := procurementapp.NewReferenceAggregator(purchaseOrderRepo, transferRepo, log)

	// Event wiring
	eventBus := event.NewInMemoryEventBus(log)

	idempotencyStore, err := newIdempotencyStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() { _ = idempotencyStore.Close() }()

	handlers := []shared.EventHandler{
		stockapp.NewOutgoingTransferCreatedHandler(transferChainer, log),
		procurementapp.NewReceiptValidatedHandler(referenceAggregator, log),
		procurementapp.NewReceiptReferenceEditedHandler(referenceAggregator, log),
		procurementapp.NewManualReferenceChangedHandler(referenceAggregator, log),
	}
	handlers = event.WrapHandlersWithIdempotency(handlers, idempotencyStore, log,
		event.WithIdempotencyConfig(shared.IdempotencyConfig{
			TTL:     cfg.Event.IdempotencyTTL,
			Enabled: cfg.Event.IdempotencyEnabled,
		}))
	for _, h := range handlers {
		eventBus.Subscribe(h, h.EventTypes()...)
		log.Info("Event handler subscribed", zap.Strings("event_types", h.EventTypes()))
	}

	transferService.SetEventPublisher(eventBus)
	transferChainer.SetEventPublisher(eventBus)
	purchaseOrderService.SetEventPublisher(eventBus)
	referenceAggregator.SetEventPublisher(eventBus)

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Secure(),
	)

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	router.NewRouter(engine).
		Register(handler.NewSystemHandler(db)).
		Register(handler.NewTransferHandler(transferService)).
		Register(handler.NewLocationHandler(locationService)).
		Register(handler.NewPurchaseOrderHandler(purchaseOrderService)).
		Register(handler.NewSalespersonHandler(salespersonService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}

// newIdempotencyStore returns the Redis-backed store when Redis is enabled,
// falling back to the in-process store otherwise.
func newIdempotencyStore(cfg *config.Config, log *zap.Logger) (shared.IdempotencyStore, error) {
	if cfg.Redis.Enabled {
		store, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		log.Info("Using Redis idempotency store",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port))
		return store, nil
	}
	log.Info("Using in-memory idempotency store")
	return cache.NewInMemoryIdempotencyStore(), nil
}
