package order

import (
	"context"
	"strings"

	"github.com/mercado/backend/internal/application/comprobante"
	"github.com/mercado/backend/internal/domain/account"
	"github.com/mercado/backend/internal/domain/order"
	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderService handles order history and lifecycle operations
type OrderService struct {
	orderRepo    order.Repository
	customerRepo account.CustomerRepository
	userRepo     account.UserRepository
	comprobantes *comprobante.Service
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.Repository,
	customerRepo account.CustomerRepository,
	userRepo account.UserRepository,
	comprobantes *comprobante.Service,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		comprobantes: comprobantes,
	}
}

// List retrieves the customer's order history
func (s *OrderService) List(ctx context.Context, customerID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	page, err := s.orderRepo.FindByCustomer(ctx, customerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, ToOrderResponse(&page.Items[i]))
	}
	return responses, page.Total, nil
}

// GetByID retrieves one of the customer's orders
func (s *OrderService) GetByID(ctx context.Context, customerID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.findOwned(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// Complete marks one of the customer's pending orders as completed
func (s *OrderService) Complete(ctx context.Context, customerID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.findOwned(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Complete(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// Cancel marks one of the customer's pending orders as cancelled
func (s *OrderService) Cancel(ctx context.Context, customerID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.findOwned(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// Comprobante renders the requested comprobante variant for one of the
// customer's orders and returns the download filename with the PDF bytes.
func (s *OrderService) Comprobante(ctx context.Context, customerID, orderID uuid.UUID, tipo string) (string, []byte, error) {
	o, err := s.findOwned(ctx, customerID, orderID)
	if err != nil {
		return "", nil, err
	}

	data := comprobante.Data{
		OrderID:      o.ID,
		OrderDate:    o.CreatedAt,
		CustomerName: s.customerName(ctx, customerID),
		Total:        o.Total,
	}
	for _, item := range o.Items {
		data.Items = append(data.Items, comprobante.Item{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}

	return s.comprobantes.Generate(ctx, tipo, data)
}

func (s *OrderService) findOwned(ctx context.Context, customerID, orderID uuid.UUID) (*order.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.BelongsTo(customerID) {
		return nil, shared.ErrForbidden
	}
	return o, nil
}

// customerName resolves a printable name for the comprobante. Falling back to
// an empty name never blocks the download.
func (s *OrderService) customerName(ctx context.Context, customerID uuid.UUID) string {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return ""
	}
	user, err := s.userRepo.FindByID(ctx, customer.UserID)
	if err != nil {
		return ""
	}
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		name = user.Username
	}
	return name
}
