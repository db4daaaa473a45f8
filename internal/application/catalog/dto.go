package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/catalog"
)

// ProductListFilter represents filters for listing products
type ProductListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active draft archived"`
	Vendor   string `form:"vendor"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                int64               `json:"id"`
	ShopifyID         string              `json:"shopify_id"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Vendor            string              `json:"vendor"`
	ProductType       string              `json:"product_type"`
	Handle            string              `json:"handle"`
	Status            string              `json:"status"`
	Tags              string              `json:"tags"`
	Price             decimal.Decimal     `json:"price"`
	CompareAtPrice    decimal.NullDecimal `json:"compare_at_price"`
	SKU               string              `json:"sku"`
	Barcode           string              `json:"barcode"`
	InventoryQuantity int64               `json:"inventory_quantity"`
	Weight            decimal.Decimal     `json:"weight"`
	WeightUnit        string              `json:"weight_unit"`
	RequiresShipping  bool                `json:"requires_shipping"`
	Taxable           bool                `json:"taxable"`
	Images            catalog.ImageList   `json:"images"`
	Variants          catalog.VariantList `json:"variants"`
	Options           catalog.OptionList  `json:"options"`
	SyncedAt          *time.Time          `json:"synced_at"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// ProductListResponse represents a list item for products
type ProductListResponse struct {
	ID                int64           `json:"id"`
	ShopifyID         string          `json:"shopify_id"`
	Title             string          `json:"title"`
	Vendor            string          `json:"vendor"`
	ProductType       string          `json:"product_type"`
	Status            string          `json:"status"`
	Price             decimal.Decimal `json:"price"`
	SKU               string          `json:"sku"`
	InventoryQuantity int64           `json:"inventory_quantity"`
	SyncedAt          *time.Time      `json:"synced_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func toProductResponse(p *catalog.Product) (*ProductResponse, error) {
	images, err := p.DecodeImages()
	if err != nil {
		return nil, err
	}
	variants, err := p.DecodeVariants()
	if err != nil {
		return nil, err
	}
	options, err := p.DecodeOptions()
	if err != nil {
		return nil, err
	}

	return &ProductResponse{
		ID:                p.ID,
		ShopifyID:         p.ShopifyID,
		Title:             p.Title,
		Description:       p.Description,
		Vendor:            p.Vendor,
		ProductType:       p.ProductType,
		Handle:            p.Handle,
		Status:            string(p.Status),
		Tags:              p.Tags,
		Price:             p.Price,
		CompareAtPrice:    p.CompareAtPrice,
		SKU:               p.SKU,
		Barcode:           p.Barcode,
		InventoryQuantity: p.InventoryQuantity,
		Weight:            p.Weight,
		WeightUnit:        p.WeightUnit,
		RequiresShipping:  p.RequiresShipping,
		Taxable:           p.Taxable,
		Images:            images,
		Variants:          variants,
		Options:           options,
		SyncedAt:          p.SyncedAt,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}, nil
}

func toProductListResponse(p *catalog.Product) ProductListResponse {
	return ProductListResponse{
		ID:                p.ID,
		ShopifyID:         p.ShopifyID,
		Title:             p.Title,
		Vendor:            p.Vendor,
		ProductType:       p.ProductType,
		Status:            string(p.Status),
		Price:             p.Price,
		SKU:               p.SKU,
		InventoryQuantity: p.InventoryQuantity,
		SyncedAt:          p.SyncedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
