package catalog

import (
	"context"

	"github.com/shopsync/backend/internal/domain/shared"
)

// VendorCount is one row of the per-vendor product breakdown
type VendorCount struct {
	Vendor string `json:"vendor"`
	Count  int64  `json:"count"`
}

// Stats summarizes the locally mirrored catalog
type Stats struct {
	Total          int64         `json:"total"`
	Active         int64         `json:"active"`
	Draft          int64         `json:"draft"`
	Archived       int64         `json:"archived"`
	TotalInventory int64         `json:"total_inventory"`
	TopVendors     []VendorCount `json:"top_vendors"`
}

// ProductRepository is the persistence port for mirrored catalog records.
// Upsert must be atomic per ShopifyID: concurrent callers for the same
// external identifier never produce more than one row.
type ProductRepository interface {
	// Upsert creates the product or overwrites the existing row with the same
	// ShopifyID. Returns true when a new row was inserted.
	Upsert(ctx context.Context, product *Product) (created bool, err error)

	// FindByID finds a product by its local ID
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindByShopifyID finds a product by its external identifier
	FindByShopifyID(ctx context.Context, shopifyID string) (*Product, error)

	// List returns products matching the filter plus the unpaginated total
	List(ctx context.Context, filter shared.Filter) ([]Product, int64, error)

	// Stats returns aggregate counts over the mirrored catalog
	Stats(ctx context.Context) (*Stats, error)
}
