package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopsync/backend/internal/domain/catalog"
	"github.com/shopsync/backend/internal/domain/shared"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Upsert writes the product keyed by its shopify_id. The insert races are
// resolved by the unique index: a conflicting insert affects zero rows and
// falls through to a single UPDATE, so concurrent writers cannot duplicate
// a product and the loser simply overwrites with its own payload.
func (r *GormProductRepository) Upsert(ctx context.Context, p *catalog.Product) (bool, error) {
	if p.ShopifyID == "" {
		return false, shared.NewDomainError("INVALID_SHOPIFY_ID", "Product shopify_id cannot be empty")
	}
	now := time.Now()
	p.SyncedAt = &now

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shopify_id"}},
			DoNothing: true,
		}).
		Create(p)
	if res.Error != nil {
		return false, fmt.Errorf("upsert product %s: %w", p.ShopifyID, res.Error)
	}
	if res.RowsAffected == 1 {
		return true, nil
	}

	updates := map[string]any{
		"title":              p.Title,
		"description":        p.Description,
		"vendor":             p.Vendor,
		"product_type":       p.ProductType,
		"handle":             p.Handle,
		"status":             p.Status,
		"tags":               p.Tags,
		"price":              p.Price,
		"compare_at_price":   p.CompareAtPrice,
		"sku":                p.SKU,
		"barcode":            p.Barcode,
		"inventory_quantity": p.InventoryQuantity,
		"weight":             p.Weight,
		"weight_unit":        p.WeightUnit,
		"requires_shipping":  p.RequiresShipping,
		"taxable":            p.Taxable,
		"images":             p.Images,
		"variants":           p.Variants,
		"options":            p.Options,
		"synced_at":          p.SyncedAt,
		"updated_at":         now,
	}
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("shopify_id = ?", p.ShopifyID).
		Updates(updates).Error; err != nil {
		return false, fmt.Errorf("upsert product %s: %w", p.ShopifyID, err)
	}
	return false, nil
}

// FindByID finds a product by its local ID
func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	var p catalog.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByShopifyID finds a product by its platform identifier
func (r *GormProductRepository) FindByShopifyID(ctx context.Context, shopifyID string) (*catalog.Product, error) {
	var p catalog.Product
	if err := r.db.WithContext(ctx).
		Where("shopify_id = ?", shopifyID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns a filtered page of products plus the total count
func (r *GormProductRepository) List(ctx context.Context, filter shared.Filter) ([]catalog.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Product{})

	if status, ok := filter.Filters["status"]; ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if vendor, ok := filter.Filters["vendor"]; ok && vendor != "" {
		query = query.Where("vendor = ?", vendor)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR sku LIKE ? OR vendor LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.OrderBy, ProductSortFields, "updated_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)

	var products []catalog.Product
	if err := query.
		Order(fmt.Sprintf("%s %s", sortField, sortOrder)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Stats computes aggregate figures over the product mirror
func (r *GormProductRepository) Stats(ctx context.Context) (*catalog.Stats, error) {
	stats := &catalog.Stats{}
	base := r.db.WithContext(ctx).Model(&catalog.Product{})

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", catalog.ProductStatusActive).Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", catalog.ProductStatusDraft).Count(&stats.Draft).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", catalog.ProductStatusArchived).Count(&stats.Archived).Error; err != nil {
		return nil, err
	}

	var inventory struct {
		Total int64
	}
	if err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(inventory_quantity), 0) AS total").
		Scan(&inventory).Error; err != nil {
		return nil, err
	}
	stats.TotalInventory = inventory.Total

	if err := base.Session(&gorm.Session{}).
		Select("vendor, COUNT(*) AS count").
		Where("vendor <> ''").
		Group("vendor").
		Order("count DESC").
		Limit(10).
		Scan(&stats.TopVendors).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
