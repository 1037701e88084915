package persistence

import (
	"context"
	"testing"

	"github.com/mercado/backend/internal/domain/catalog"
	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&catalog.Product{})
	require.NoError(t, err)

	return db
}

func mustProduct(t *testing.T, sellerID uuid.UUID, name, category string, price string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(sellerID, name, "", decimal.RequireFromString(price), stock, category)
	require.NoError(t, err)
	return p
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	sellerID := uuid.New()
	product := mustProduct(t, sellerID, "Café de origen", "alimentos", "45000", 10)
	require.NoError(t, repo.Save(ctx, product))

	t.Run("finds saved product by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, product.ID)

		require.NoError(t, err)
		assert.Equal(t, product.ID, found.ID)
		assert.Equal(t, "Café de origen", found.Name)
		assert.True(t, found.Price.Equal(decimal.RequireFromString("45000")))
		assert.Equal(t, 10, found.Stock)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("persists stock updates", func(t *testing.T) {
		require.NoError(t, product.DecrementStock(3))
		require.NoError(t, repo.Save(ctx, product))

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, found.Stock)
	})
}

func TestGormProductRepository_FindAll(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	sellerID := uuid.New()
	names := []string{"Arepa", "Bandeja", "Chocolate", "Dulce", "Empanada"}
	for _, name := range names {
		p := mustProduct(t, sellerID, name, "alimentos", "5000", 5)
		require.NoError(t, repo.Save(ctx, p))
	}
	other := mustProduct(t, sellerID, "Ruana", "ropa", "80000", 2)
	require.NoError(t, repo.Save(ctx, other))

	t.Run("paginates results", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Page = 1
		filter.PageSize = 4
		filter.OrderBy = "name"
		filter.OrderDir = "asc"

		page, err := repo.FindAll(ctx, filter)

		require.NoError(t, err)
		assert.Equal(t, int64(6), page.Total)
		assert.Len(t, page.Items, 4)
		assert.Equal(t, 2, page.TotalPages)
		assert.Equal(t, "Arepa", page.Items[0].Name)
	})

	t.Run("filters by category", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["category"] = "ropa"

		page, err := repo.FindAll(ctx, filter)

		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Ruana", page.Items[0].Name)
	})

	t.Run("filters by price range", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["price_min"] = 10000.0

		page, err := repo.FindAll(ctx, filter)

		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Ruana", page.Items[0].Name)

		filter.Filters["price_max"] = 9000.0
		page, err = repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.Total)
	})

	t.Run("ignores unknown order column", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "drop table products"

		page, err := repo.FindAll(ctx, filter)

		require.NoError(t, err)
		assert.Equal(t, int64(6), page.Total)
	})
}

func TestGormProductRepository_FindBySeller(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	sellerA := uuid.New()
	sellerB := uuid.New()
	require.NoError(t, repo.Save(ctx, mustProduct(t, sellerA, "Mochila", "artesanías", "120000", 3)))
	require.NoError(t, repo.Save(ctx, mustProduct(t, sellerA, "Sombrero", "artesanías", "95000", 4)))
	require.NoError(t, repo.Save(ctx, mustProduct(t, sellerB, "Hamaca", "hogar", "150000", 2)))

	products, err := repo.FindBySeller(ctx, sellerA)

	require.NoError(t, err)
	assert.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, sellerA, p.SellerID)
	}
}

func TestGormProductRepository_FindByCategory(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	sellerID := uuid.New()
	base := mustProduct(t, sellerID, "Camiseta", "ropa", "30000", 5)
	related := mustProduct(t, sellerID, "Pantalón", "ropa", "60000", 5)
	soldOut := mustProduct(t, sellerID, "Chaqueta", "ropa", "90000", 1)
	otherCategory := mustProduct(t, sellerID, "Taza", "hogar", "15000", 5)
	require.NoError(t, repo.Save(ctx, base))
	require.NoError(t, repo.Save(ctx, related))
	require.NoError(t, repo.Save(ctx, soldOut))
	require.NoError(t, repo.Save(ctx, otherCategory))

	require.NoError(t, soldOut.DecrementStock(1))
	require.NoError(t, repo.Save(ctx, soldOut))

	products, err := repo.FindByCategory(ctx, "ropa", base.ID, 4)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, related.ID, products[0].ID)
}

func TestGormProductRepository_FindAvailable(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	sellerID := uuid.New()
	inStock := mustProduct(t, sellerID, "Bolso", "artesanías", "70000", 2)
	soldOut := mustProduct(t, sellerID, "Aretes", "artesanías", "25000", 1)
	require.NoError(t, repo.Save(ctx, inStock))
	require.NoError(t, repo.Save(ctx, soldOut))

	require.NoError(t, soldOut.DecrementStock(1))
	require.NoError(t, repo.Save(ctx, soldOut))

	products, err := repo.FindAvailable(ctx)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, inStock.ID, products[0].ID)
}

func TestGormProductRepository_Delete(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := mustProduct(t, uuid.New(), "Miel", "alimentos", "20000", 8)
	require.NoError(t, repo.Save(ctx, product))

	t.Run("deletes existing product", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, product.ID))

		_, err := repo.FindByID(ctx, product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
