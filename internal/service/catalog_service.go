package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/snackforest/shop-service/internal/errs"
	"github.com/snackforest/shop-service/internal/models"
)

// ProductStore is the catalog persistence surface the service depends on.
type ProductStore interface {
	List(ctx context.Context) ([]*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (int64, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id int64) error
}

// CategoryStore is the category persistence surface.
type CategoryStore interface {
	List(ctx context.Context) ([]*models.Category, error)
	Create(ctx context.Context, name string) (int64, error)
	Update(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

// MethodStore serves the shipping and payment method lookups.
type MethodStore interface {
	ListShippingMethods(ctx context.Context) ([]*models.Method, error)
	ListPaymentMethods(ctx context.Context) ([]*models.Method, error)
}

// CatalogCache is a best-effort read-through cache for catalog reads.
type CatalogCache interface {
	Get(ctx context.Context, id int64) (*models.Product, error)
	Set(ctx context.Context, product *models.Product) error
	GetList(ctx context.Context) ([]*models.Product, error)
	SetList(ctx context.Context, products []*models.Product) error
	Invalidate(ctx context.Context, id int64) error
}

// CatalogService covers products, categories and the static method lookups.
// The cache is optional; when nil or disabled every read goes to the database.
type CatalogService struct {
	products   ProductStore
	categories CategoryStore
	methods    MethodStore
	cache      CatalogCache
	useCache   bool
	logger     *zap.Logger
}

func NewCatalogService(
	products ProductStore,
	categories CategoryStore,
	methods MethodStore,
	cache CatalogCache,
	useCache bool,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		methods:    methods,
		cache:      cache,
		useCache:   useCache && cache != nil,
		logger:     logger.With(zap.String("component", "catalog-service")),
	}
}

// ListProducts returns the full catalog, served from cache when possible.
func (s *CatalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	if s.useCache {
		if products, err := s.cache.GetList(ctx); err == nil && products != nil {
			return products, nil
		}
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.useCache {
		if err := s.cache.SetList(ctx, products); err != nil {
			s.logger.Warn("failed to cache product list", zap.Error(err))
		}
	}
	return products, nil
}

// GetProduct returns a single product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if s.useCache {
		if product, err := s.cache.Get(ctx, id); err == nil && product != nil {
			return product, nil
		}
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.useCache {
		if err := s.cache.Set(ctx, product); err != nil {
			s.logger.Warn("failed to cache product", zap.Int64("product_id", id), zap.Error(err))
		}
	}
	return product, nil
}

// CreateProduct validates and inserts a catalog entry.
func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) (int64, error) {
	if err := validateProduct(p); err != nil {
		return 0, err
	}

	id, err := s.products.Create(ctx, p)
	if err != nil {
		return 0, err
	}
	p.ID = id

	s.invalidate(ctx, id)
	return id, nil
}

// UpdateProduct validates and replaces a catalog entry.
func (s *CatalogService) UpdateProduct(ctx context.Context, p *models.Product) error {
	if p.ID <= 0 {
		return errs.NewValidationError("id", "product id must be positive")
	}
	if err := validateProduct(p); err != nil {
		return err
	}

	if err := s.products.Update(ctx, p); err != nil {
		return err
	}

	s.invalidate(ctx, p.ID)
	return nil
}

// DeleteProduct removes a catalog entry.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, id int64) {
	if !s.useCache {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("failed to invalidate product cache", zap.Int64("product_id", id), zap.Error(err))
	}
}

func validateProduct(p *models.Product) error {
	if p.Name == "" {
		return errs.NewValidationError("name", "name is required")
	}
	if p.Price < 0 {
		return errs.NewValidationError("price", "price must not be negative")
	}
	return nil
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categories.List(ctx)
}

// CreateCategory inserts a category.
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, errs.NewValidationError("name", "name is required")
	}
	return s.categories.Create(ctx, name)
}

// UpdateCategory renames a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, name string) error {
	if name == "" {
		return errs.NewValidationError("name", "name is required")
	}
	return s.categories.Update(ctx, id, name)
}

// DeleteCategory removes a category. Products keep existing with an empty
// category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}

// ListShippingMethods returns the available shipping methods.
func (s *CatalogService) ListShippingMethods(ctx context.Context) ([]*models.Method, error) {
	return s.methods.ListShippingMethods(ctx)
}

// ListPaymentMethods returns the available payment methods.
func (s *CatalogService) ListPaymentMethods(ctx context.Context) ([]*models.Method, error) {
	return s.methods.ListPaymentMethods(ctx)
}
