package persistence

import (
	"context"
	"errors"

	"github.com/mercado/backend/internal/domain/catalog"
	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDForUpdate finds a product holding a row lock until the surrounding
// transaction ends. SQLite has no row locks and serializes writers on its
// own, so the clause is only added on PostgreSQL.
func (r *GormProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var product catalog.Product
	if err := query.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds products matching the filter with pagination
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Product], error) {
	query := r.db.WithContext(ctx).Model(&catalog.Product{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}
	if min, ok := filter.Filters["price_min"]; ok {
		query = query.Where("price >= ?", min)
	}
	if max, ok := filter.Filters["price_max"]; ok {
		query = query.Where("price <= ?", max)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var products []catalog.Product
	err := query.
		Order(orderClause(filter, map[string]bool{"name": true, "price": true, "stock": true, "created_at": true})).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(products, total, filter.Page, filter.PageSize)
	return &page, nil
}

// FindBySeller finds all products of a seller
func (r *GormProductRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]*catalog.Product, error) {
	var products []*catalog.Product
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FindByCategory finds products in a category, excluding one product
func (r *GormProductRepository) FindByCategory(ctx context.Context, category string, excludeID uuid.UUID, limit int) ([]*catalog.Product, error) {
	var products []*catalog.Product
	err := r.db.WithContext(ctx).
		Where("category = ? AND id <> ? AND stock > 0", category, excludeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FindAvailable finds every product with stock
func (r *GormProductRepository) FindAvailable(ctx context.Context) ([]*catalog.Product, error) {
	var products []*catalog.Product
	err := r.db.WithContext(ctx).
		Where("stock > 0").
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete removes a product by its ID
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// orderClause builds a safe ORDER BY from the filter, restricted to the
// given column whitelist
func orderClause(filter shared.Filter, allowed map[string]bool) string {
	column := filter.OrderBy
	if !allowed[column] {
		column = "created_at"
	}
	direction := "DESC"
	if filter.OrderDir == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}
