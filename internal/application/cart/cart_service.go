package cart

import (
	"context"
	"errors"

	"github.com/mercado/backend/internal/domain/cart"
	"github.com/mercado/backend/internal/domain/catalog"
	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartService handles shopping cart operations. Stock is validated against
// the catalog on every mutation, but the authoritative check happens again
// under lock at checkout.
type CartService struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.Repository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Get returns the customer's cart, creating an empty one on first use
func (s *CartService) Get(ctx context.Context, customerID uuid.UUID) (*CartResponse, error) {
	c, err := s.findOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c)
}

// AddItem adds a product to the customer's cart
func (s *CartService) AddItem(ctx context.Context, customerID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	c, err := s.findOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	requested := req.Quantity
	for _, item := range c.Items {
		if item.ProductID == req.ProductID {
			requested += item.Quantity
		}
	}
	if !product.HasStock(requested) {
		return nil, shared.NewInsufficientStockError(product.Name, product.Stock)
	}

	if err := c.AddItem(req.ProductID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c)
}

// UpdateItem replaces the quantity of a cart line
func (s *CartService) UpdateItem(ctx context.Context, customerID, productID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Quantity > 0 {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if !product.HasStock(req.Quantity) {
			return nil, shared.NewInsufficientStockError(product.Name, product.Stock)
		}
	}

	if err := c.UpdateItemQuantity(productID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c)
}

// RemoveItem deletes a line from the customer's cart
func (s *CartService) RemoveItem(ctx context.Context, customerID, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := c.RemoveItem(productID); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c)
}

// Clear empties the customer's cart
func (s *CartService) Clear(ctx context.Context, customerID uuid.UUID) error {
	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	c.Clear()
	if err := s.cartRepo.DeleteItems(ctx, c.ID); err != nil {
		return err
	}
	return s.cartRepo.Save(ctx, c)
}

// Badge returns the total quantity across cart lines, for the header counter
func (s *CartService) Badge(ctx context.Context, customerID uuid.UUID) (int, error) {
	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return c.TotalQuantity(), nil
}

func (s *CartService) findOrCreate(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	c, err = cart.NewCart(customerID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// toResponse enriches cart lines with current product data. Lines whose
// product disappeared from the catalog are skipped rather than failing the
// whole cart.
func (s *CartService) toResponse(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	response := &CartResponse{
		ID:            c.ID,
		Items:         make([]CartItemResponse, 0, len(c.Items)),
		Total:         decimal.Zero,
		TotalQuantity: 0,
	}

	for _, item := range c.Items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		response.Items = append(response.Items, CartItemResponse{
			ProductID:   product.ID,
			ProductName: product.Name,
			ImageURL:    product.ImageURL,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
			Subtotal:    subtotal,
			Stock:       product.Stock,
		})
		response.Total = response.Total.Add(subtotal)
		response.TotalQuantity += item.Quantity
	}
	response.Total = response.Total.Round(2)
	return response, nil
}
