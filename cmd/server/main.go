package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/swims/storefront/internal/api"
	"github.com/swims/storefront/internal/catalog"
	"github.com/swims/storefront/internal/commerce"
	"github.com/swims/storefront/internal/config"
	"github.com/swims/storefront/internal/events"
	"github.com/swims/storefront/internal/redisx"
	"github.com/swims/storefront/internal/repository/postgres"
	"github.com/swims/storefront/internal/service"
)

const eventBufferSize = 1024

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	repos := postgres.NewRepositories(db, logger)

	// Idempotency is skipped when Redis is unreachable at startup
	var idem service.IdempotencyStore
	rdb := redisx.New(cfg.Redis)
	defer rdb.Close()
	if err := redisx.Ping(ctx, rdb); err != nil {
		logger.Warn("Redis unavailable, checkout idempotency disabled",
			zap.String("addr", cfg.Redis.Addr),
			zap.Error(err),
		)
	} else {
		idem = redisx.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
	}

	var publisher events.Publisher = events.NewNoopPublisher(logger)
	var producer *events.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, eventBufferSize, logger)
		// outlives the signal so events from requests still draining are written
		producer.Start(context.Background())
		publisher = events.NewKafkaPublisher(producer, logger)
	}

	client := commerce.NewClient(cfg.Commerce, logger)
	engine := catalog.NewEngine(client, client, cfg.Catalog, logger)

	router := api.NewRouter(cfg, &api.Services{
		Users:    client,
		Catalog:  service.NewCatalogService(engine, catalog.NewTracker(), client, client, logger),
		Books:    service.NewBookService(client, client, logger),
		Members:  service.NewMemberService(client, client, logger),
		Cart:     service.NewCartService(client, logger),
		Coupons:  service.NewCouponService(client, logger),
		Checkout: service.NewCheckoutService(client, client, client, client, idem, repos, publisher, logger),
		Orders:   service.NewOrderService(client, client, repos, publisher, logger),
		Audit:    service.NewAuditService(repos, logger),
	}, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.WithCORS(cfg.API, router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("Server listening",
			zap.String("addr", srv.Addr),
			zap.String("commerce_api", client.BaseURL()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if producer != nil {
		producer.Close()
		producer.WaitClosed()
	}
	logger.Info("Server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zcfg = zap.NewProductionConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg.Level = level
	return zcfg.Build()
}
