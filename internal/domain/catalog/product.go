package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/shared"
)

// ProductStatus represents the listing status of a product on the platform
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusArchived ProductStatus = "archived"
)

// Product is a local mirror of a remote catalog record. It is identified by
// the platform-assigned ShopifyID; the local ID only exists for row identity.
// The structured sub-documents (images, variants, options) are persisted as
// serialized JSON and decoded through the codecs in valueobject.go.
type Product struct {
	shared.BaseEntity
	ShopifyID   string        `gorm:"type:varchar(64);not null;uniqueIndex" json:"shopify_id"`
	Title       string        `gorm:"type:varchar(255);not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Vendor      string        `gorm:"type:varchar(255);index" json:"vendor"`
	ProductType string        `gorm:"type:varchar(255)" json:"product_type"`
	Handle      string        `gorm:"type:varchar(255)" json:"handle"`
	Status      ProductStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Tags        string        `gorm:"type:text" json:"tags"`

	// Pricing and inventory fields derived from the record's primary variant.
	Price             decimal.Decimal     `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	CompareAtPrice    decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"compare_at_price"`
	SKU               string              `gorm:"type:varchar(255)" json:"sku"`
	Barcode           string              `gorm:"type:varchar(255)" json:"barcode"`
	InventoryQuantity int64               `gorm:"not null;default:0" json:"inventory_quantity"`
	Weight            decimal.Decimal     `gorm:"type:decimal(8,2);not null;default:0" json:"weight"`
	WeightUnit        string              `gorm:"type:varchar(10);not null;default:'kg'" json:"weight_unit"`
	RequiresShipping  bool                `gorm:"not null;default:true" json:"requires_shipping"`
	Taxable           bool                `gorm:"not null;default:true" json:"taxable"`

	// Serialized sub-documents; opaque to the storage layer.
	Images   string `gorm:"type:text" json:"-"`
	Variants string `gorm:"type:text" json:"-"`
	Options  string `gorm:"type:text" json:"-"`

	// SyncedAt is only advanced by a successful upsert.
	SyncedAt *time.Time `json:"synced_at"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// ExternalID returns the platform-assigned identifier used as the natural key
func (p *Product) ExternalID() string {
	return p.ShopifyID
}

// ApplyPrimaryVariant fills the variant-derived fields from the record's first
// variant. A nil variant (record with no variants) falls back to zero price
// and inventory with shipping-required and taxable both enabled.
func (p *Product) ApplyPrimaryVariant(v *Variant) {
	if v == nil {
		p.Price = decimal.Zero
		p.CompareAtPrice = decimal.NullDecimal{}
		p.SKU = ""
		p.Barcode = ""
		p.InventoryQuantity = 0
		p.Weight = decimal.Zero
		p.WeightUnit = "kg"
		p.RequiresShipping = true
		p.Taxable = true
		return
	}
	p.Price = v.Price
	p.CompareAtPrice = v.CompareAtPrice
	p.SKU = v.SKU
	p.Barcode = v.Barcode
	p.InventoryQuantity = v.InventoryQuantity
	p.Weight = v.Weight
	if v.WeightUnit != "" {
		p.WeightUnit = v.WeightUnit
	} else {
		p.WeightUnit = "kg"
	}
	p.RequiresShipping = v.RequiresShipping
	p.Taxable = v.Taxable
}

// DecodeImages decodes the serialized image sub-document
func (p *Product) DecodeImages() (ImageList, error) {
	return DecodeImageList(p.Images)
}

// DecodeVariants decodes the serialized variant sub-document
func (p *Product) DecodeVariants() (VariantList, error) {
	return DecodeVariantList(p.Variants)
}

// DecodeOptions decodes the serialized option sub-document
func (p *Product) DecodeOptions() (OptionList, error) {
	return DecodeOptionList(p.Options)
}

// SetImages encodes and stores the image sub-document
func (p *Product) SetImages(images ImageList) error {
	encoded, err := images.Encode()
	if err != nil {
		return err
	}
	p.Images = encoded
	return nil
}

// SetVariants encodes and stores the variant sub-document
func (p *Product) SetVariants(variants VariantList) error {
	encoded, err := variants.Encode()
	if err != nil {
		return err
	}
	p.Variants = encoded
	return nil
}

// SetOptions encodes and stores the option sub-document
func (p *Product) SetOptions(options OptionList) error {
	encoded, err := options.Encode()
	if err != nil {
		return err
	}
	p.Options = encoded
	return nil
}
