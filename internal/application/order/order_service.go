package order

import (
	"context"

	"github.com/shopsync/backend/internal/domain/order"
	"github.com/shopsync/backend/internal/domain/shared"
)

// OrderService serves read access to locally mirrored orders
type OrderService struct {
	orderRepo order.OrderRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// GetByID returns a single order by its local ID
func (s *OrderService) GetByID(ctx context.Context, id int64) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o)
}

// GetByShopifyID returns a single order by its external identifier
func (s *OrderService) GetByShopifyID(ctx context.Context, shopifyID string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByShopifyID(ctx, shopifyID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o)
}

// List returns the page of orders matching the filter
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderListResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "processed_at"
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
		domainFilter.Filters["order_status"] = filter.Status
	}
	if filter.FinancialStatus != "" {
		domainFilter.Filters["financial_status"] = filter.FinancialStatus
	}

	orders, total, err := s.orderRepo.List(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderListResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, toOrderListResponse(&orders[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Stats returns aggregate revenue and volume figures over mirrored orders
func (s *OrderService) Stats(ctx context.Context) (*order.Stats, error) {
	return s.orderRepo.Stats(ctx)
}
