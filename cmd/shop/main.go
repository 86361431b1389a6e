package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/snackforest/shop-service/internal/auth"
	"github.com/snackforest/shop-service/internal/config"
	"github.com/snackforest/shop-service/internal/events"
	"github.com/snackforest/shop-service/internal/handlers"
	"github.com/snackforest/shop-service/internal/repository"
	"github.com/snackforest/shop-service/internal/server"
	"github.com/snackforest/shop-service/internal/service"
	"github.com/snackforest/shop-service/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := initDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	productRepo := repository.NewProductRepository(db, logger)
	categoryRepo := repository.NewCategoryRepository(db, logger)
	methodRepo := repository.NewMethodRepository(db, logger)
	customerRepo := repository.NewCustomerRepository(db, logger)
	orderRepo := repository.NewOrderRepository(db, logger)
	siteConfigRepo := repository.NewSiteConfigRepository(db, logger)

	var productCache *repository.ProductCache
	if cfg.Features.EnableCatalogCaching {
		productCache = repository.NewProductCache(cfg.Redis, logger)
		if err := productCache.Ping(context.Background()); err != nil {
			logger.Warn("redis unavailable, catalog caching disabled", zap.Error(err))
			productCache = nil
		}
	}

	var publisher service.OrderEventPublisher
	var kafkaPublisher *events.KafkaPublisher
	if cfg.Features.EnableOrderEvents {
		kafkaPublisher = events.NewKafkaPublisher(cfg.Kafka, logger)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	images, err := storage.NewImageStore(cfg.Storage, logger)
	if err != nil {
		logger.Fatal("failed to connect to object storage", zap.Error(err))
	}
	if err := images.EnsureBucket(context.Background()); err != nil {
		logger.Warn("failed to ensure image bucket", zap.Error(err))
	}

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	catalogService := service.NewCatalogService(
		productRepo, categoryRepo, methodRepo,
		cacheOrNil(productCache), productCache != nil, logger,
	)
	orderService := service.NewOrderService(
		orderRepo, productRepo, customerRepo, publisher, cfg, logger,
	)
	authService := service.NewAuthService(customerRepo, tokens, cfg, logger)

	h := handlers.NewHandlers(
		catalogService, orderService, authService,
		siteConfigRepo, images, tokens, cfg, logger,
	)

	srv := server.New(h, db, cfg, logger)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

// cacheOrNil keeps a typed nil *ProductCache from sneaking into the service
// as a non-nil interface.
func cacheOrNil(cache *repository.ProductCache) service.CatalogCache {
	if cache == nil {
		return nil
	}
	return cache
}

func initDatabase(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("name", cfg.Database.Name),
	)
	return db, nil
}
