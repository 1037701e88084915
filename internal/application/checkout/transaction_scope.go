package checkout

import (
	"context"

	"github.com/mercado/backend/internal/domain/cart"
	"github.com/mercado/backend/internal/domain/catalog"
	"github.com/mercado/backend/internal/domain/order"
)

// TransactionScope provides transactional access to the repositories used by
// checkout. All repository operations inside Execute share one database
// transaction; any error rolls back every change.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories scoped to the current
// transaction. Product reads use FindByIDForUpdate so the stock check and the
// decrement happen under the same row lock.
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	CartRepo() cart.Repository
	OrderRepo() order.Repository
}

// NoOpTransactionScope runs the function without a real transaction,
// for testing.
type NoOpTransactionScope struct {
	productRepo catalog.ProductRepository
	cartRepo    cart.Repository
	orderRepo   order.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	cartRepo cart.Repository,
	orderRepo order.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo: productRepo,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// CartRepo returns the cart repository
func (s *NoOpTransactionScope) CartRepo() cart.Repository {
	return s.cartRepo
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() order.Repository {
	return s.orderRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
