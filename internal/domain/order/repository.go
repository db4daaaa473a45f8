package order

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/shared"
)

// DailyCount is the number of orders processed on a single calendar day
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Stats holds aggregate figures over the local order mirror
type Stats struct {
	Total        int64           `json:"total"`
	Open         int64           `json:"open"`
	Cancelled    int64           `json:"cancelled"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	AverageValue decimal.Decimal `json:"average_value"`
	RecentDaily  []DailyCount    `json:"recent_daily"`
}

// OrderRepository defines the persistence port for orders
type OrderRepository interface {
	// Upsert writes the order keyed by its ShopifyID and reports whether a
	// new row was created.
	Upsert(ctx context.Context, o *Order) (created bool, err error)
	// FindByID retrieves an order by local identifier
	FindByID(ctx context.Context, id int64) (*Order, error)
	// FindByShopifyID retrieves an order by its platform identifier
	FindByShopifyID(ctx context.Context, shopifyID string) (*Order, error)
	// List returns a filtered page of orders plus the unfiltered total
	List(ctx context.Context, filter shared.Filter) ([]Order, int64, error)
	// Stats computes aggregate figures over the mirror
	Stats(ctx context.Context) (*Stats, error)
}
