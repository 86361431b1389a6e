// Package handlers holds the gin HTTP layer. Handlers parse and normalize
// requests, delegate to the services and map taxonomy errors onto status
// codes; no business logic lives here.
package handlers

import (
	"go.uber.org/zap"

	"github.com/snackforest/shop-service/internal/auth"
	"github.com/snackforest/shop-service/internal/config"
	"github.com/snackforest/shop-service/internal/service"
	"github.com/snackforest/shop-service/internal/storage"
)

// Handlers holds all HTTP handlers for the shop service.
type Handlers struct {
	catalogService *service.CatalogService
	orderService   *service.OrderService
	authService    *service.AuthService
	siteConfig     SiteConfigStore
	images         *storage.ImageStore
	tokens         *auth.TokenIssuer
	config         *config.Config
	logger         *zap.Logger
}

func NewHandlers(
	catalogService *service.CatalogService,
	orderService *service.OrderService,
	authService *service.AuthService,
	siteConfig SiteConfigStore,
	images *storage.ImageStore,
	tokens *auth.TokenIssuer,
	cfg *config.Config,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		catalogService: catalogService,
		orderService:   orderService,
		authService:    authService,
		siteConfig:     siteConfig,
		images:         images,
		tokens:         tokens,
		config:         cfg,
		logger:         logger.With(zap.String("component", "handlers")),
	}
}
