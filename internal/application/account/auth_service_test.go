package account

import (
	"context"
	"testing"
	"time"

	"github.com/mercado/backend/internal/domain/account"
	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

// MockSellerRepository is a mock implementation of account.SellerRepository
type MockSellerRepository struct {
	mock.Mock
}

func (m *MockSellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Seller), args.Error(1)
}

func (m *MockSellerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*account.Seller, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Seller), args.Error(1)
}

func (m *MockSellerRepository) Save(ctx context.Context, seller *account.Seller) error {
	args := m.Called(ctx, seller)
	return args.Error(0)
}

func (m *MockSellerRepository) SaveLocation(ctx context.Context, location *account.SellerLocation) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockSellerRepository) FindLocations(ctx context.Context, sellerID uuid.UUID) ([]account.SellerLocation, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]account.SellerLocation), args.Error(1)
}

type stubTokenIssuer struct{}

func (stubTokenIssuer) Issue(_ uuid.UUID, _ string, _, _ *uuid.UUID) (string, time.Time, error) {
	return "signed-token", time.Now().Add(time.Hour), nil
}

func newTestService() (*AuthService, *MockUserRepository, *MockCustomerRepository, *MockSellerRepository) {
	userRepo := new(MockUserRepository)
	customerRepo := new(MockCustomerRepository)
	sellerRepo := new(MockSellerRepository)
	service := NewAuthService(userRepo, customerRepo, sellerRepo, stubTokenIssuer{})
	return service, userRepo, customerRepo, sellerRepo
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates a customer account", func(t *testing.T) {
		service, userRepo, customerRepo, sellerRepo := newTestService()

		userRepo.On("ExistsByUsername", mock.Anything, "maria").Return(false, nil)
		userRepo.On("FindByEmail", mock.Anything, "maria@example.com").Return(nil, shared.ErrNotFound)
		userRepo.On("Save", mock.Anything, mock.AnythingOfType("*account.User")).Return(nil)
		customerRepo.On("Save", mock.Anything, mock.AnythingOfType("*account.Customer")).Return(nil)

		resp, err := service.Register(context.Background(), RegisterRequest{
			Username: "maria",
			Email:    "maria@example.com",
			Password: "supersecreto",
			Address:  "Calle 1 # 2-3",
		})
		require.NoError(t, err)
		assert.Equal(t, "signed-token", resp.Token)
		assert.True(t, resp.User.IsCustomer)
		assert.False(t, resp.User.IsSeller)
		assert.NotNil(t, resp.User.CustomerID)
		sellerRepo.AssertNotCalled(t, "Save")
	})

	t.Run("creates a seller profile on request", func(t *testing.T) {
		service, userRepo, customerRepo, sellerRepo := newTestService()

		userRepo.On("ExistsByUsername", mock.Anything, "pedro").Return(false, nil)
		userRepo.On("FindByEmail", mock.Anything, "pedro@example.com").Return(nil, shared.ErrNotFound)
		userRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		customerRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		sellerRepo.On("Save", mock.Anything, mock.AnythingOfType("*account.Seller")).Return(nil)

		resp, err := service.Register(context.Background(), RegisterRequest{
			Username:  "pedro",
			Email:     "pedro@example.com",
			Password:  "supersecreto",
			AsSeller:  true,
			StoreName: "Finca La Esperanza",
		})
		require.NoError(t, err)
		assert.True(t, resp.User.IsSeller)
		assert.NotNil(t, resp.User.SellerID)
	})

	t.Run("rejects taken usernames", func(t *testing.T) {
		service, userRepo, _, _ := newTestService()

		userRepo.On("ExistsByUsername", mock.Anything, "maria").Return(true, nil)

		_, err := service.Register(context.Background(), RegisterRequest{
			Username: "maria",
			Email:    "otra@example.com",
			Password: "supersecreto",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	newUser := func(t *testing.T) *account.User {
		u, err := account.NewUser("maria", "maria@example.com", "supersecreto")
		require.NoError(t, err)
		u.EnableCustomer()
		return u
	}

	t.Run("signs in with valid credentials", func(t *testing.T) {
		service, userRepo, customerRepo, _ := newTestService()

		user := newUser(t)
		customer, err := account.NewCustomer(user.ID, "")
		require.NoError(t, err)

		userRepo.On("FindByUsername", mock.Anything, "maria").Return(user, nil)
		customerRepo.On("FindByUserID", mock.Anything, user.ID).Return(customer, nil)

		resp, err := service.Login(context.Background(), LoginRequest{Username: "maria", Password: "supersecreto"})
		require.NoError(t, err)
		assert.Equal(t, "signed-token", resp.Token)
		assert.Equal(t, customer.ID, *resp.User.CustomerID)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		service, userRepo, _, _ := newTestService()

		userRepo.On("FindByUsername", mock.Anything, "maria").Return(newUser(t), nil)

		_, err := service.Login(context.Background(), LoginRequest{Username: "maria", Password: "incorrecta"})
		assert.ErrorIs(t, err, errInvalidCredentials)
	})

	t.Run("unknown users get the same error as wrong passwords", func(t *testing.T) {
		service, userRepo, _, _ := newTestService()

		userRepo.On("FindByUsername", mock.Anything, "nadie").Return(nil, shared.ErrNotFound)

		_, err := service.Login(context.Background(), LoginRequest{Username: "nadie", Password: "loquesea"})
		assert.ErrorIs(t, err, errInvalidCredentials)
	})

	t.Run("rejects disabled accounts", func(t *testing.T) {
		service, userRepo, _, _ := newTestService()

		user := newUser(t)
		user.IsActive = false
		userRepo.On("FindByUsername", mock.Anything, "maria").Return(user, nil)

		_, err := service.Login(context.Background(), LoginRequest{Username: "maria", Password: "supersecreto"})
		assert.ErrorIs(t, err, errInvalidCredentials)
	})
}
