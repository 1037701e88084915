package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	checkoutapp "github.com/mercado/backend/internal/application/checkout"
	"github.com/mercado/backend/internal/domain/order"
	"github.com/mercado/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCheckoutRouter(handler *CheckoutHandler, auth gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.POST("/api/v1/checkout", auth, handler.PlaceOrder)
	return r
}

func newCheckoutHandlerForTest(productRepo *MockProductRepository, cartRepo *MockCartRepository, orderRepo *MockOrderRepository) *CheckoutHandler {
	scope := checkoutapp.NewNoOpTransactionScope(productRepo, cartRepo, orderRepo)
	return NewCheckoutHandler(checkoutapp.NewCheckoutService(scope))
}

func TestCheckoutHandler_PlaceOrder_Success(t *testing.T) {
	productRepo := new(MockProductRepository)
	cartRepo := new(MockCartRepository)
	orderRepo := new(MockOrderRepository)
	customerID := uuid.New()

	product := createTestProduct(t, uuid.New(), "Cafetera", 85000, 5)
	c := createTestCart(t, customerID)
	require.NoError(t, c.AddItem(product.ID, 2))

	cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(c, nil)
	productRepo.On("FindByIDForUpdate", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("Save", mock.Anything, product).Return(nil)
	orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	cartRepo.On("DeleteItems", mock.Anything, c.ID).Return(nil)

	handler := newCheckoutHandlerForTest(productRepo, cartRepo, orderRepo)
	router := setupCheckoutRouter(handler, authContext(uuid.New(), &customerID, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "170000", data["total"])

	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, "Cafetera", line["product_name"])
	assert.Equal(t, float64(2), line["quantity"])

	// stock was decremented under the same transaction
	assert.Equal(t, 3, product.Stock)
	cartRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCheckoutHandler_PlaceOrder_EmptyCart(t *testing.T) {
	cartRepo := new(MockCartRepository)
	customerID := uuid.New()

	cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(nil, shared.ErrNotFound)

	handler := newCheckoutHandlerForTest(new(MockProductRepository), cartRepo, new(MockOrderRepository))
	router := setupCheckoutRouter(handler, authContext(uuid.New(), &customerID, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ERR_EMPTY_CART", resp.Error.Code)
}

func TestCheckoutHandler_PlaceOrder_InsufficientStock(t *testing.T) {
	productRepo := new(MockProductRepository)
	cartRepo := new(MockCartRepository)
	orderRepo := new(MockOrderRepository)
	customerID := uuid.New()

	product := createTestProduct(t, uuid.New(), "Cafetera", 85000, 1)
	c := createTestCart(t, customerID)
	require.NoError(t, c.AddItem(product.ID, 2))

	cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(c, nil)
	productRepo.On("FindByIDForUpdate", mock.Anything, product.ID).Return(product, nil)

	handler := newCheckoutHandlerForTest(productRepo, cartRepo, orderRepo)
	router := setupCheckoutRouter(handler, authContext(uuid.New(), &customerID, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ERR_INSUFFICIENT_STOCK", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "Cafetera")

	// nothing was persisted
	assert.Equal(t, 1, product.Stock)
	orderRepo.AssertNotCalled(t, "Save")
	cartRepo.AssertNotCalled(t, "DeleteItems")
}

func TestCheckoutHandler_PlaceOrder_RequiresCustomerProfile(t *testing.T) {
	sellerID := uuid.New()
	handler := newCheckoutHandlerForTest(new(MockProductRepository), new(MockCartRepository), new(MockOrderRepository))
	router := setupCheckoutRouter(handler, authContext(uuid.New(), nil, &sellerID))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// snapshot semantics: the order keeps the price and name captured at
// checkout even if the catalog changes afterwards
func TestCheckoutHandler_PlaceOrder_SnapshotsPrice(t *testing.T) {
	productRepo := new(MockProductRepository)
	cartRepo := new(MockCartRepository)
	orderRepo := new(MockOrderRepository)
	customerID := uuid.New()

	product := createTestProduct(t, uuid.New(), "Cafetera", 85000, 5)
	c := createTestCart(t, customerID)
	require.NoError(t, c.AddItem(product.ID, 1))

	var placed *order.Order
	cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(c, nil)
	productRepo.On("FindByIDForUpdate", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
	orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
		placed = args.Get(1).(*order.Order)
	}).Return(nil)
	cartRepo.On("DeleteItems", mock.Anything, c.ID).Return(nil)

	handler := newCheckoutHandlerForTest(productRepo, cartRepo, orderRepo)
	router := setupCheckoutRouter(handler, authContext(uuid.New(), &customerID, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, placed)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, "Cafetera", placed.Items[0].ProductName)
	assert.True(t, placed.Items[0].UnitPrice.Equal(product.Price))

	// later catalog edits must not touch the snapshot
	require.NoError(t, product.Update("Cafetera Premium", "", decimal.NewFromInt(100000), 5, "hogar"))
	assert.Equal(t, "Cafetera", placed.Items[0].ProductName)
	assert.Equal(t, "85000", placed.Items[0].UnitPrice.String())
}
