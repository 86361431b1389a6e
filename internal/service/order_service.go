package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/snackforest/shop-service/internal/config"
	"github.com/snackforest/shop-service/internal/errs"
	"github.com/snackforest/shop-service/internal/models"
)

// ProductReader resolves authoritative product data from the catalog.
type ProductReader interface {
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}

// CustomerReader looks customers up for recipient fallback.
type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
}

// OrderStore persists and queries orders.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order, lines []models.ResolvedLine) (int64, error)
	List(ctx context.Context) ([]*models.Order, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// OrderEventPublisher announces order lifecycle events. Publishing is best
// effort and never fails the request.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	PublishOrderStatusChanged(ctx context.Context, orderID int64, status string) error
}

// OrderService implements the order placement workflow: structural cart
// validation, catalog price resolution, server-side total computation, and
// the atomic header+details write.
type OrderService struct {
	orderStore OrderStore
	products   ProductReader
	customers  CustomerReader
	publisher  OrderEventPublisher
	config     *config.Config
	logger     *zap.Logger
}

func NewOrderService(
	orderStore OrderStore,
	products ProductReader,
	customers CustomerReader,
	publisher OrderEventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderStore: orderStore,
		products:   products,
		customers:  customers,
		publisher:  publisher,
		config:     cfg,
		logger:     logger.With(zap.String("component", "order-service")),
	}
}

// CreateOrder validates the cart, resolves prices from the catalog, computes
// the total server-side and persists the order atomically. Client-declared
// unit prices and totals never influence the stored amounts.
func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (int64, error) {
	s.logger.Info("creating order",
		zap.Int64("customer_id", req.CustomerID),
		zap.Int("item_count", len(req.Items)),
	)

	if err := ValidateCreateOrderRequest(req); err != nil {
		return 0, err
	}

	customerID := req.CustomerID
	if customerID == 0 {
		customerID = s.config.Auth.DefaultCustomerID
	}

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errs.KindOf(err) == errs.KindNotFound {
			return 0, errs.NewValidationError("customerId", "customer not found")
		}
		return 0, err
	}

	lines, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return 0, err
	}

	total, err := ComputeOrderTotal(lines)
	if err != nil {
		return 0, err
	}

	order := &models.Order{
		CustomerID:       customerID,
		TotalAmount:      total,
		Status:           models.OrderStatusPending,
		ShippingMethod:   req.ShippingMethod,
		PaymentMethod:    req.PaymentMethod,
		RecipientName:    req.RecipientName,
		RecipientAddress: req.RecipientAddress,
		RecipientPhone:   req.RecipientPhone,
	}

	// Downstream order listings always need a human-readable recipient.
	if order.RecipientName == "" {
		order.RecipientName = customer.Name
	}

	orderID, err := s.orderStore.Create(ctx, order, lines)
	if err != nil {
		s.logger.Error("failed to persist order",
			zap.Int64("customer_id", customerID),
			zap.Error(err),
		)
		return 0, err
	}
	order.ID = orderID

	if s.config.Features.EnableOrderEvents && s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
			// Log but don't fail; the order is already committed.
			s.logger.Error("failed to publish order created event",
				zap.Int64("order_id", orderID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("order created",
		zap.Int64("order_id", orderID),
		zap.Int64("total_amount", total),
	)
	return orderID, nil
}

// resolveLines replaces client price hints with authoritative catalog prices.
// An unknown product fails the whole cart before anything is written.
func (s *OrderService) resolveLines(ctx context.Context, items []models.LineItem) ([]models.ResolvedLine, error) {
	lines := make([]models.ResolvedLine, 0, len(items))
	for _, item := range items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errs.KindOf(err) == errs.KindNotFound {
				return nil, errs.NewValidationError("items", "product not found: "+strconv.FormatInt(item.ProductID, 10))
			}
			return nil, err
		}

		lines = append(lines, models.ResolvedLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
		})
	}
	return lines, nil
}

// ListOrders returns all orders with nested details, most recent first.
func (s *OrderService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	return s.orderStore.List(ctx)
}

// CountOrders returns the total number of orders.
func (s *OrderService) CountOrders(ctx context.Context) (int64, error) {
	return s.orderStore.Count(ctx)
}

// UpdateOrderStatus sets the free-form status label on an order.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	if err := ValidateStatusUpdate(status); err != nil {
		return err
	}

	if err := s.orderStore.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	if s.config.Features.EnableOrderEvents && s.publisher != nil {
		if err := s.publisher.PublishOrderStatusChanged(ctx, id, status); err != nil {
			s.logger.Error("failed to publish status change event",
				zap.Int64("order_id", id),
				zap.Error(err),
			)
		}
	}

	return nil
}
