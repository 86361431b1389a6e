package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/snackforest/shop-service/internal/auth"
	"github.com/snackforest/shop-service/internal/config"
	"github.com/snackforest/shop-service/internal/errs"
	"github.com/snackforest/shop-service/internal/models"
	"github.com/snackforest/shop-service/internal/service"
)

type stubProducts struct {
	products map[int64]*models.Product
}

func (s *stubProducts) GetByID(_ context.Context, id int64) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, errs.NewNotFoundError("product")
}

type stubCustomers struct{}

func (s *stubCustomers) GetByAccount(_ context.Context, account string) (*models.Customer, error) {
	return nil, errs.NewNotFoundError("customer")
}

func (s *stubCustomers) GetByID(_ context.Context, id int64) (*models.Customer, error) {
	return &models.Customer{ID: id, Name: "Walk-in Customer"}, nil
}

func (s *stubCustomers) Create(_ context.Context, customer *models.Customer) (int64, error) {
	return 0, errs.NewConflictError("account", "account already exists")
}

func (s *stubCustomers) Update(_ context.Context, customer *models.Customer) error {
	return nil
}

type stubOrders struct {
	lastOrder *models.Order
	lastLines []models.ResolvedLine
}

func (s *stubOrders) Create(_ context.Context, order *models.Order, lines []models.ResolvedLine) (int64, error) {
	s.lastOrder = order
	s.lastLines = lines
	return 99, nil
}

func (s *stubOrders) List(_ context.Context) ([]*models.Order, error) {
	return []*models.Order{}, nil
}

func (s *stubOrders) Count(_ context.Context) (int64, error) { return 3, nil }

func (s *stubOrders) UpdateStatus(_ context.Context, id int64, status string) error {
	return nil
}

func testHandlers(orders *stubOrders) *Handlers {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret",
			TokenTTL:          time.Hour,
			AdminUsername:     "admin",
			AdminPassword:     "000000",
			DefaultCustomerID: 1,
		},
		Features: config.FeatureFlags{},
	}
	logger := zap.NewNop()
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	products := &stubProducts{products: map[int64]*models.Product{
		10: {ID: 10, Name: "Dried Mango", Price: 1500},
	}}
	customers := &stubCustomers{}

	orderService := service.NewOrderService(orders, products, customers, nil, cfg, logger)
	authService := service.NewAuthService(customers, tokens, cfg, logger)

	return &Handlers{
		orderService: orderService,
		authService:  authService,
		tokens:       tokens,
		config:       cfg,
		logger:       logger,
	}
}

func postJSON(handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)
	return w
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &Handlers{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	h.Health(c)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "shop-service", resp["service"])
}

func TestCreateOrderHandler(t *testing.T) {
	orders := &stubOrders{}
	h := testHandlers(orders)

	w := postJSON(h.CreateOrder, `{
		"customerId": 1,
		"items": [{"id": 10, "qty": 2, "price": 1}]
	}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(99), resp["orderId"])

	require.NotNil(t, orders.lastOrder)
	assert.Equal(t, int64(3000), orders.lastOrder.TotalAmount, "total comes from the catalog, not the client price")
}

func TestCreateOrderHandler_EmptyCart(t *testing.T) {
	h := testHandlers(&stubOrders{})

	w := postJSON(h.CreateOrder, `{"customerId": 1, "items": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderHandler_MalformedBody(t *testing.T) {
	h := testHandlers(&stubOrders{})

	w := postJSON(h.CreateOrder, `{"items": [`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderHandler_UnknownProduct(t *testing.T) {
	h := testHandlers(&stubOrders{})

	w := postJSON(h.CreateOrder, `{"customerId": 1, "items": [{"id": 999}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginHandler_Admin(t *testing.T) {
	h := testHandlers(&stubOrders{})

	w := postJSON(h.Login, `{"username": "admin", "password": "000000"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "admin", resp["role"])
	assert.NotEmpty(t, resp["token"])
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	h := testHandlers(&stubOrders{})

	w := postJSON(h.Login, `{"username": "admin", "password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(h.Login, `{"username": "ghost", "password": "whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterHandler_Duplicate(t *testing.T) {
	h := testHandlers(&stubOrders{})

	w := postJSON(h.Register, `{"account": "alex", "password": "hunter22"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := testHandlers(&stubOrders{})

	router := gin.New()
	router.GET("/me", h.RequireAuth(), h.GetProfile)

	// No token.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid customer token.
	token, err := h.tokens.Issue(auth.RoleCustomer, 7)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Walk-in Customer", resp["name"])

	// Admin tokens are not customer sessions.
	token, err = h.tokens.Issue(auth.RoleAdmin, 0)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateOrderStatusHandler_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := testHandlers(&stubOrders{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest(http.MethodPut, "/", bytes.NewBufferString(`{"status":"Shipped"}`))

	h.UpdateOrderStatus(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
