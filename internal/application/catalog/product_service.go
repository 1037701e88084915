package catalog

import (
	"context"

	"github.com/mercado/backend/internal/domain/catalog"
	"github.com/mercado/backend/internal/domain/review"
	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// relatedLimit caps the "other products in this category" strip on the
// product detail page.
const relatedLimit = 4

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	reviewRepo  review.Repository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, reviewRepo review.Repository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
	}
}

// Create creates a new product listing for a seller
func (s *ProductService) Create(ctx context.Context, sellerID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(sellerID, req.Name, req.Description, req.Price, req.Stock, req.Category)
	if err != nil {
		return nil, err
	}
	if req.ImageURL != "" {
		product.SetImage(req.ImageURL)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Update updates a product owned by the seller
func (s *ProductService) Update(ctx context.Context, sellerID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsOwnedBy(sellerID) {
		return nil, shared.ErrForbidden
	}

	if err := product.Update(req.Name, req.Description, req.Price, req.Stock, req.Category); err != nil {
		return nil, err
	}
	if req.ImageURL != "" {
		product.SetImage(req.ImageURL)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product owned by the seller
func (s *ProductService) Delete(ctx context.Context, sellerID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.IsOwnedBy(sellerID) {
		return shared.ErrForbidden
	}
	return s.productRepo.Delete(ctx, productID)
}

// GetByID retrieves a product with its average rating
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	if avg, err := s.reviewRepo.AverageRating(ctx, productID); err == nil {
		response.AverageRating = avg
	}
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.PriceMin > 0 {
		domainFilter.Filters["price_min"] = filter.PriceMin
	}
	if filter.PriceMax > 0 {
		domainFilter.Filters["price_max"] = filter.PriceMax
	}

	page, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, ToProductResponse(&page.Items[i]))
	}
	return responses, page.Total, nil
}

// ListBySeller retrieves all products of a seller
func (s *ProductService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]ProductResponse, error) {
	products, err := s.productRepo.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// ListRelated retrieves other products in the same category as the given one
func (s *ProductService) ListRelated(ctx context.Context, productID uuid.UUID) ([]ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	related, err := s.productRepo.FindByCategory(ctx, product.Category, product.ID, relatedLimit)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(related), nil
}

// ListAvailable retrieves every product with stock, in compact form. The URL
// of each entry points at the public product detail page on the storefront.
func (s *ProductService) ListAvailable(ctx context.Context, baseURL string) ([]AvailableProductResponse, error) {
	products, err := s.productRepo.FindAvailable(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]AvailableProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, AvailableProductResponse{
			ID:    p.ID,
			Name:  p.Name,
			Stock: p.Stock,
			URL:   baseURL + "/producto/" + p.ID.String() + "/",
		})
	}
	return responses, nil
}
