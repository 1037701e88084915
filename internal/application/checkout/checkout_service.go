package checkout

import (
	"context"
	"sort"

	apporder "github.com/mercado/backend/internal/application/order"
	"github.com/mercado/backend/internal/domain/cart"
	"github.com/mercado/backend/internal/domain/order"
	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CheckoutService turns a cart into an order. The whole placement runs in a
// single transaction: stock is re-checked under row locks against the live
// catalog, prices and names are snapshotted into the order, stock is
// decremented and the cart is emptied. Any failure leaves everything
// untouched.
type CheckoutService struct {
	scope TransactionScope
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(scope TransactionScope) *CheckoutService {
	return &CheckoutService{scope: scope}
}

// PlaceOrder converts the customer's cart into a pending order
func (s *CheckoutService) PlaceOrder(ctx context.Context, customerID uuid.UUID) (*apporder.OrderResponse, error) {
	var response *apporder.OrderResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := repos.CartRepo().FindByCustomer(ctx, customerID)
		if err != nil {
			if err == shared.ErrNotFound {
				return shared.ErrEmptyCart
			}
			return err
		}
		if c.IsEmpty() {
			return shared.ErrEmptyCart
		}

		// Lock products in a stable order so two concurrent checkouts
		// sharing products cannot deadlock.
		items := make([]cart.CartItem, len(c.Items))
		copy(items, c.Items)
		sort.Slice(items, func(i, j int) bool {
			return items[i].ProductID.String() < items[j].ProductID.String()
		})

		lines := make([]order.Line, 0, len(items))
		for _, item := range items {
			product, err := repos.ProductRepo().FindByIDForUpdate(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if !product.HasStock(item.Quantity) {
				return shared.NewInsufficientStockError(product.Name, product.Stock)
			}
			lines = append(lines, order.Line{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   product.Price,
			})
			if err := product.DecrementStock(item.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return err
			}
		}

		o, err := order.NewOrder(customerID, lines)
		if err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return err
		}

		if err := repos.CartRepo().DeleteItems(ctx, c.ID); err != nil {
			return err
		}

		resp := apporder.ToOrderResponse(o)
		response = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
