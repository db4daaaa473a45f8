package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopsync/backend/internal/domain/order"
	"github.com/shopsync/backend/internal/domain/shared"
)

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

var _ order.OrderRepository = (*GormOrderRepository)(nil)

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Upsert writes the order keyed by its shopify_id. Conflicting inserts
// affect zero rows and fall through to a single UPDATE.
func (r *GormOrderRepository) Upsert(ctx context.Context, o *order.Order) (bool, error) {
	if o.ShopifyID == "" {
		return false, shared.NewDomainError("INVALID_SHOPIFY_ID", "Order shopify_id cannot be empty")
	}
	now := time.Now()
	o.SyncedAt = &now

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shopify_id"}},
			DoNothing: true,
		}).
		Create(o)
	if res.Error != nil {
		return false, fmt.Errorf("upsert order %s: %w", o.ShopifyID, res.Error)
	}
	if res.RowsAffected == 1 {
		return true, nil
	}

	updates := map[string]any{
		"order_number":       o.OrderNumber,
		"email":              o.Email,
		"phone":              o.Phone,
		"customer_name":      o.CustomerName,
		"shipping_address":   o.ShippingAddress,
		"billing_address":    o.BillingAddress,
		"line_items":         o.LineItems,
		"subtotal_price":     o.SubtotalPrice,
		"total_tax":          o.TotalTax,
		"total_price":        o.TotalPrice,
		"currency":           o.Currency,
		"financial_status":   o.FinancialStatus,
		"fulfillment_status": o.FulfillmentStatus,
		"order_status":       o.OrderStatus,
		"processed_at":       o.ProcessedAt,
		"synced_at":          o.SyncedAt,
		"updated_at":         now,
	}
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("shopify_id = ?", o.ShopifyID).
		Updates(updates).Error; err != nil {
		return false, fmt.Errorf("upsert order %s: %w", o.ShopifyID, err)
	}
	return false, nil
}

// FindByID finds an order by its local ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByShopifyID finds an order by its platform identifier
func (r *GormOrderRepository) FindByShopifyID(ctx context.Context, shopifyID string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Where("shopify_id = ?", shopifyID).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// List returns a filtered page of orders plus the total count
func (r *GormOrderRepository) List(ctx context.Context, filter shared.Filter) ([]order.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&order.Order{})

	if status, ok := filter.Filters["order_status"]; ok && status != "" {
		query = query.Where("order_status = ?", status)
	}
	if financial, ok := filter.Filters["financial_status"]; ok && financial != "" {
		query = query.Where("financial_status = ?", financial)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("order_number LIKE ? OR email LIKE ? OR customer_name LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.OrderBy, OrderSortFields, "processed_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)

	var orders []order.Order
	if err := query.
		Order(fmt.Sprintf("%s %s", sortField, sortOrder)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Stats computes aggregate figures over the order mirror. Revenue only
// counts orders that are not cancelled.
func (r *GormOrderRepository) Stats(ctx context.Context) (*order.Stats, error) {
	stats := &order.Stats{
		TotalRevenue: decimal.Zero,
		AverageValue: decimal.Zero,
	}
	base := r.db.WithContext(ctx).Model(&order.Order{})

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("order_status = ?", order.OrderStatusOpen).Count(&stats.Open).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("order_status = ?", order.OrderStatusCancelled).Count(&stats.Cancelled).Error; err != nil {
		return nil, err
	}

	var revenue struct {
		Total decimal.Decimal
		Count int64
	}
	if err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total_price), 0) AS total, COUNT(*) AS count").
		Where("order_status <> ?", order.OrderStatusCancelled).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue.Total
	if revenue.Count > 0 {
		stats.AverageValue = revenue.Total.Div(decimal.NewFromInt(revenue.Count)).Round(2)
	}

	since := time.Now().AddDate(0, 0, -30)
	if err := base.Session(&gorm.Session{}).
		Select("DATE(processed_at) AS date, COUNT(*) AS count").
		Where("processed_at >= ?", since).
		Group("DATE(processed_at)").
		Order("date DESC").
		Scan(&stats.RecentDaily).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
