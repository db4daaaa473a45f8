package catalog

import (
	"context"

	"github.com/shopsync/backend/internal/domain/catalog"
	"github.com/shopsync/backend/internal/domain/shared"
)

// ProductService serves read access to the locally mirrored catalog
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// GetByID returns a single product by its local ID
func (s *ProductService) GetByID(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product)
}

// GetByShopifyID returns a single product by its external identifier
func (s *ProductService) GetByShopifyID(ctx context.Context, shopifyID string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByShopifyID(ctx, shopifyID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product)
}

// List returns the page of products matching the filter
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductListResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "updated_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Vendor != "" {
		domainFilter.Filters["vendor"] = filter.Vendor
	}

	products, total, err := s.productRepo.List(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductListResponse, 0, len(products))
	for i := range products {
		responses = append(responses, toProductListResponse(&products[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Stats returns aggregate counts over the mirrored catalog
func (s *ProductService) Stats(ctx context.Context) (*catalog.Stats, error) {
	return s.productRepo.Stats(ctx)
}
