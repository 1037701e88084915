package persistence

import (
	"context"

	appcheckout "github.com/mercado/backend/internal/application/checkout"
	"github.com/mercado/backend/internal/domain/cart"
	"github.com/mercado/backend/internal/domain/catalog"
	"github.com/mercado/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormTransactionScope executes checkout work inside a database transaction.
// Repositories handed to the callback are bound to the transaction, so a
// returned error rolls back every stock decrement and the order itself.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appcheckout.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides repositories bound to a transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) CartRepo() cart.Repository {
	return NewGormCartRepository(r.tx)
}

func (r *gormTransactionalRepositories) OrderRepo() order.Repository {
	return NewGormOrderRepository(r.tx)
}

var (
	_ appcheckout.TransactionScope          = (*GormTransactionScope)(nil)
	_ appcheckout.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
