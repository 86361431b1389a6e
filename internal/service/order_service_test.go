package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/snackforest/shop-service/internal/config"
	"github.com/snackforest/shop-service/internal/errs"
	"github.com/snackforest/shop-service/internal/models"
)

type fakeProductReader struct {
	products map[int64]*models.Product
}

func (f *fakeProductReader) GetByID(_ context.Context, id int64) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, errs.NewNotFoundError("product")
}

type fakeCustomerReader struct {
	customers map[int64]*models.Customer
}

func (f *fakeCustomerReader) GetByID(_ context.Context, id int64) (*models.Customer, error) {
	if c, ok := f.customers[id]; ok {
		return c, nil
	}
	return nil, errs.NewNotFoundError("customer")
}

type fakeOrderStore struct {
	created     *models.Order
	lines       []models.ResolvedLine
	nextID      int64
	statusCalls map[int64]string
	failCreate  error
}

func (f *fakeOrderStore) Create(_ context.Context, order *models.Order, lines []models.ResolvedLine) (int64, error) {
	if f.failCreate != nil {
		return 0, f.failCreate
	}
	f.created = order
	f.lines = lines
	if f.nextID == 0 {
		f.nextID = 1
	}
	return f.nextID, nil
}

func (f *fakeOrderStore) List(_ context.Context) ([]*models.Order, error) {
	if f.created == nil {
		return []*models.Order{}, nil
	}
	return []*models.Order{f.created}, nil
}

func (f *fakeOrderStore) Count(_ context.Context) (int64, error) {
	if f.created == nil {
		return 0, nil
	}
	return 1, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, id int64, status string) error {
	if f.statusCalls == nil {
		f.statusCalls = make(map[int64]string)
	}
	if f.created == nil || f.created.ID != id {
		return errs.NewNotFoundError("order")
	}
	f.statusCalls[id] = status
	return nil
}

type fakePublisher struct {
	created []int64
	status  []string
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, order *models.Order) error {
	f.created = append(f.created, order.ID)
	return nil
}

func (f *fakePublisher) PublishOrderStatusChanged(_ context.Context, orderID int64, status string) error {
	f.status = append(f.status, status)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret",
			TokenTTL:          time.Hour,
			AdminUsername:     "admin",
			AdminPassword:     "000000",
			DefaultCustomerID: 1,
		},
		Features: config.FeatureFlags{EnableOrderEvents: true},
	}
}

func newTestOrderService(store *fakeOrderStore, publisher *fakePublisher) *OrderService {
	products := &fakeProductReader{products: map[int64]*models.Product{
		10: {ID: 10, Name: "Dried Mango", Price: 1500},
		11: {ID: 11, Name: "Seaweed Crisps", Price: 300},
	}}
	customers := &fakeCustomerReader{customers: map[int64]*models.Customer{
		1: {ID: 1, Name: "Walk-in Customer"},
		7: {ID: 7, Name: "Alex Chen"},
	}}
	return NewOrderService(store, products, customers, publisher, testConfig(), zap.NewNop())
}

func TestCreateOrder_ComputesTotalFromCatalog(t *testing.T) {
	store := &fakeOrderStore{nextID: 42}
	publisher := &fakePublisher{}
	svc := newTestOrderService(store, publisher)

	req := &models.CreateOrderRequest{
		CustomerID: 7,
		Items: []models.LineItem{
			// Client-declared prices are lies and must be ignored.
			{ProductID: 10, Quantity: 2, UnitPrice: 1},
			{ProductID: 11, Quantity: 3, UnitPrice: 99999},
		},
		RecipientName:    "Alex Chen",
		RecipientAddress: "12 Harbor Rd",
		RecipientPhone:   "555-0101",
	}

	orderID, err := svc.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)

	require.NotNil(t, store.created)
	assert.Equal(t, int64(2*1500+3*300), store.created.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, store.created.Status)

	require.Len(t, store.lines, 2)
	assert.Equal(t, int64(1500), store.lines[0].UnitPrice)
	assert.Equal(t, "Dried Mango", store.lines[0].ProductName)
	assert.Equal(t, int64(300), store.lines[1].UnitPrice)

	require.Len(t, publisher.created, 1)
	assert.Equal(t, int64(42), publisher.created[0])
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	store := &fakeOrderStore{}
	svc := newTestOrderService(store, &fakePublisher{})

	req := &models.CreateOrderRequest{
		CustomerID: 7,
		Items:      []models.LineItem{{ProductID: 999, Quantity: 1}},
	}

	_, err := svc.CreateOrder(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Nil(t, store.created, "nothing may be written for an invalid cart")
}

func TestCreateOrder_DefaultsCustomerID(t *testing.T) {
	store := &fakeOrderStore{}
	svc := newTestOrderService(store, &fakePublisher{})

	req := &models.CreateOrderRequest{
		Items: []models.LineItem{{ProductID: 10, Quantity: 1}},
	}

	_, err := svc.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), store.created.CustomerID)
}

func TestCreateOrder_RecipientFallsBackToProfileName(t *testing.T) {
	store := &fakeOrderStore{}
	svc := newTestOrderService(store, &fakePublisher{})

	req := &models.CreateOrderRequest{
		CustomerID: 7,
		Items:      []models.LineItem{{ProductID: 10, Quantity: 1}},
	}

	_, err := svc.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Alex Chen", store.created.RecipientName)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	store := &fakeOrderStore{}
	svc := newTestOrderService(store, &fakePublisher{})

	_, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{CustomerID: 7})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestCreateOrder_PersistenceFailure(t *testing.T) {
	store := &fakeOrderStore{failCreate: errs.NewPersistenceError("failed to insert order", assert.AnError)}
	publisher := &fakePublisher{}
	svc := newTestOrderService(store, publisher)

	req := &models.CreateOrderRequest{
		CustomerID: 7,
		Items:      []models.LineItem{{ProductID: 10, Quantity: 1}},
	}

	_, err := svc.CreateOrder(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, errs.KindPersistence, errs.KindOf(err))
	assert.Empty(t, publisher.created, "no event for a failed order")
}

func TestUpdateOrderStatus(t *testing.T) {
	store := &fakeOrderStore{}
	publisher := &fakePublisher{}
	svc := newTestOrderService(store, publisher)

	req := &models.CreateOrderRequest{
		CustomerID: 7,
		Items:      []models.LineItem{{ProductID: 10, Quantity: 1}},
	}
	orderID, err := svc.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	store.created.ID = orderID

	require.NoError(t, svc.UpdateOrderStatus(context.Background(), orderID, "Shipped"))
	assert.Equal(t, "Shipped", store.statusCalls[orderID])
	assert.Equal(t, []string{"Shipped"}, publisher.status)

	err = svc.UpdateOrderStatus(context.Background(), orderID, "")
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	err = svc.UpdateOrderStatus(context.Background(), orderID+5, "Shipped")
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
