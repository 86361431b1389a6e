// Package server assembles the gin router and the HTTP server around it.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/snackforest/shop-service/internal/config"
	"github.com/snackforest/shop-service/internal/handlers"
)

type Server struct {
	config *config.Config
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

func New(h *handlers.Handlers, db *sql.DB, cfg *config.Config, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(metricsMiddleware())

	// The storefront and admin UI are served from other origins.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Slug"}
	router.Use(cors.New(corsConfig))

	s := &Server{
		config: cfg,
		router: router,
		logger: logger.With(zap.String("component", "server")),
	}

	s.setupRoutes(h, db)

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes(h *handlers.Handlers, db *sql.DB) {
	s.router.GET("/health", h.Health)
	s.router.GET("/ready", handlers.NewReady(db))
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	{
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.POST("/products", h.CreateProduct)
		api.PUT("/products/:id", h.UpdateProduct)
		api.DELETE("/products/:id", h.DeleteProduct)

		api.GET("/categories", h.ListCategories)
		api.POST("/category", h.CreateCategory)
		api.PUT("/category", h.UpdateCategory)
		api.DELETE("/category/:id", h.DeleteCategory)

		api.GET("/shippingmethod", h.ListShippingMethods)
		api.GET("/paymentmethod", h.ListPaymentMethods)

		api.POST("/login", h.Login)
		api.POST("/register", h.Register)
		api.GET("/me", h.RequireAuth(), h.GetProfile)
		api.PUT("/me", h.RequireAuth(), h.UpdateProfile)

		api.POST("/order", h.CreateOrder)
		api.GET("/order", h.ListOrders)
		api.GET("/order/count", h.CountOrders)
		api.PUT("/order/:id/status", h.UpdateOrderStatus)

		api.POST("/upload/image", h.UploadImage)
		api.POST("/upload/image/delete", h.DeleteImage)

		api.GET("/site-config", h.GetSiteConfig)
		api.PUT("/site-config", h.PutSiteConfig)
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("server starting", zap.Int("port", s.config.Server.Port))
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
