package order

import (
	"context"
	"testing"

	"github.com/mercado/backend/internal/application/comprobante"
	"github.com/mercado/backend/internal/domain/account"
	"github.com/mercado/backend/internal/domain/order"
	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[order.Order], error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[order.Order]), args.Error(1)
}

func (m *MockOrderRepository) HasCompletedPurchase(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, customerID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of account.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*account.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *account.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of account.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*account.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*account.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *account.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type stubGenerator struct {
	kind   string
	output []byte
	data   comprobante.Data
}

func (g *stubGenerator) Type() string { return g.kind }

func (g *stubGenerator) Generate(_ context.Context, data comprobante.Data) ([]byte, error) {
	g.data = data
	return g.output, nil
}

func newTestOrder(t *testing.T, customerID uuid.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(customerID, []order.Line{
		{ProductID: uuid.New(), ProductName: "Café", Quantity: 2, UnitPrice: decimal.NewFromInt(4500)},
	})
	require.NoError(t, err)
	return o
}

func newTestService() (*OrderService, *MockOrderRepository, *MockCustomerRepository, *MockUserRepository, *stubGenerator, *stubGenerator) {
	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	userRepo := new(MockUserRepository)
	factura := &stubGenerator{kind: comprobante.TypeFactura, output: []byte("factura-pdf")}
	cheque := &stubGenerator{kind: comprobante.TypeCheque, output: []byte("cheque-pdf")}
	service := NewOrderService(orderRepo, customerRepo, userRepo, comprobante.NewService(factura, cheque))
	return service, orderRepo, customerRepo, userRepo, factura, cheque
}

func TestOrderService_GetByID(t *testing.T) {
	t.Run("returns the customer's order", func(t *testing.T) {
		service, orderRepo, _, _, _, _ := newTestService()

		customerID := uuid.New()
		o := newTestOrder(t, customerID)
		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		resp, err := service.GetByID(context.Background(), customerID, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, resp.ID)
	})

	t.Run("hides other customers' orders", func(t *testing.T) {
		service, orderRepo, _, _, _, _ := newTestService()

		o := newTestOrder(t, uuid.New())
		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := service.GetByID(context.Background(), uuid.New(), o.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestOrderService_Lifecycle(t *testing.T) {
	t.Run("completes a pending order", func(t *testing.T) {
		service, orderRepo, _, _, _, _ := newTestService()

		customerID := uuid.New()
		o := newTestOrder(t, customerID)
		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		orderRepo.On("Save", mock.Anything, o).Return(nil)

		resp, err := service.Complete(context.Background(), customerID, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCompleted, resp.Status)
	})

	t.Run("cancels a pending order", func(t *testing.T) {
		service, orderRepo, _, _, _, _ := newTestService()

		customerID := uuid.New()
		o := newTestOrder(t, customerID)
		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		orderRepo.On("Save", mock.Anything, o).Return(nil)

		resp, err := service.Cancel(context.Background(), customerID, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, resp.Status)
	})

	t.Run("cannot cancel a completed order", func(t *testing.T) {
		service, orderRepo, _, _, _, _ := newTestService()

		customerID := uuid.New()
		o := newTestOrder(t, customerID)
		require.NoError(t, o.Complete())
		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := service.Cancel(context.Background(), customerID, o.ID)
		assert.Error(t, err)
		orderRepo.AssertNotCalled(t, "Save")
	})
}

func TestOrderService_Comprobante(t *testing.T) {
	t.Run("renders the factura with the customer's name", func(t *testing.T) {
		service, orderRepo, customerRepo, userRepo, factura, _ := newTestService()

		user, err := account.NewUser("maria", "maria@example.com", "supersecreto")
		require.NoError(t, err)
		user.FirstName = "María"
		user.LastName = "Gómez"
		customer, err := account.NewCustomer(user.ID, "Calle 1")
		require.NoError(t, err)

		o := newTestOrder(t, customer.ID)
		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		name, pdf, err := service.Comprobante(context.Background(), customer.ID, o.ID, "factura")
		require.NoError(t, err)
		assert.Equal(t, "factura_pedido_"+o.ID.String()+".pdf", name)
		assert.Equal(t, []byte("factura-pdf"), pdf)
		assert.Equal(t, "María Gómez", factura.data.CustomerName)
		assert.Equal(t, "9000.00", factura.data.Total.StringFixed(2))
		require.Len(t, factura.data.Items, 1)
	})

	t.Run("refuses other customers' orders", func(t *testing.T) {
		service, orderRepo, _, _, _, _ := newTestService()

		o := newTestOrder(t, uuid.New())
		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, _, err := service.Comprobante(context.Background(), uuid.New(), o.ID, "factura")
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}
