package shopify

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/catalog"
	"github.com/shopsync/backend/internal/domain/order"
)

// MapProduct converts a raw Admin API product into the domain entity.
// Variant, image and option collections are serialized onto the entity and
// the first variant drives the flattened price and inventory fields.
func MapProduct(raw *RawProduct) (*catalog.Product, error) {
	p := &catalog.Product{
		ShopifyID:   strconv.FormatInt(raw.ID, 10),
		Title:       raw.Title,
		Description: raw.BodyHTML,
		Vendor:      raw.Vendor,
		ProductType: raw.ProductType,
		Handle:      raw.Handle,
		Status:      mapProductStatus(raw.Status),
		Tags:        raw.Tags,
	}

	variants := make(catalog.VariantList, 0, len(raw.Variants))
	for _, rv := range raw.Variants {
		v, err := mapVariant(&rv)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", raw.ID, err)
		}
		variants = append(variants, *v)
	}
	images := make(catalog.ImageList, 0, len(raw.Images))
	for _, ri := range raw.Images {
		images = append(images, catalog.Image{
			ID:       ri.ID,
			Src:      ri.Src,
			Alt:      ri.Alt,
			Position: ri.Position,
		})
	}
	options := make(catalog.OptionList, 0, len(raw.Options))
	for _, ro := range raw.Options {
		options = append(options, catalog.Option{
			ID:     ro.ID,
			Name:   ro.Name,
			Values: ro.Values,
		})
	}

	if err := p.SetVariants(variants); err != nil {
		return nil, err
	}
	if err := p.SetImages(images); err != nil {
		return nil, err
	}
	if err := p.SetOptions(options); err != nil {
		return nil, err
	}

	p.ApplyPrimaryVariant(variants.Primary())
	return p, nil
}

// MapOrder converts a raw Admin API order into the domain entity
func MapOrder(raw *RawOrder) (*order.Order, error) {
	subtotal, err := parsePrice(raw.SubtotalPrice)
	if err != nil {
		return nil, fmt.Errorf("order %d: subtotal: %w", raw.ID, err)
	}
	tax, err := parsePrice(raw.TotalTax)
	if err != nil {
		return nil, fmt.Errorf("order %d: tax: %w", raw.ID, err)
	}
	total, err := parsePrice(raw.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("order %d: total: %w", raw.ID, err)
	}

	o := &order.Order{
		ShopifyID:       strconv.FormatInt(raw.ID, 10),
		OrderNumber:     orderNumber(raw),
		Email:           raw.Email,
		Phone:           raw.Phone,
		SubtotalPrice:   subtotal,
		TotalTax:        tax,
		TotalPrice:      total,
		Currency:        currencyOrDefault(raw.Currency),
		FinancialStatus: raw.FinancialStatus,
		OrderStatus:     order.DeriveStatus(raw.CancelledAt),
		ProcessedAt:     raw.ProcessedAt,
	}
	if raw.FulfillmentStatus != nil {
		o.FulfillmentStatus = *raw.FulfillmentStatus
	}
	if raw.Customer != nil {
		o.CustomerName = order.CustomerFullName(raw.Customer.FirstName, raw.Customer.LastName)
	}

	if err := o.SetShippingAddress(mapAddress(raw.ShippingAddress)); err != nil {
		return nil, err
	}
	if err := o.SetBillingAddress(mapAddress(raw.BillingAddress)); err != nil {
		return nil, err
	}

	items := make(order.LineItemList, 0, len(raw.LineItems))
	for _, rl := range raw.LineItems {
		price, err := parsePrice(rl.Price)
		if err != nil {
			return nil, fmt.Errorf("order %d: line item %d: %w", raw.ID, rl.ID, err)
		}
		item := order.LineItem{
			ShopifyID: strconv.FormatInt(rl.ID, 10),
			Title:     rl.Title,
			SKU:       rl.SKU,
			Quantity:  rl.Quantity,
			Price:     price,
		}
		if rl.ProductID != nil {
			item.ProductID = strconv.FormatInt(*rl.ProductID, 10)
		}
		if rl.VariantID != nil {
			item.VariantID = strconv.FormatInt(*rl.VariantID, 10)
		}
		items = append(items, item)
	}
	if err := o.SetLineItems(items); err != nil {
		return nil, err
	}

	return o, nil
}

func mapVariant(raw *RawVariant) (*catalog.Variant, error) {
	price, err := parsePrice(raw.Price)
	if err != nil {
		return nil, fmt.Errorf("variant %d: %w", raw.ID, err)
	}
	v := &catalog.Variant{
		ID:                raw.ID,
		Title:             raw.Title,
		Price:             price,
		SKU:               raw.SKU,
		Barcode:           raw.Barcode,
		InventoryQuantity: raw.InventoryQuantity,
		Weight:            decimal.NewFromFloat(raw.Weight),
		WeightUnit:        raw.WeightUnit,
		RequiresShipping:  raw.RequiresShipping,
		Taxable:           raw.Taxable,
	}
	if raw.CompareAtPrice != nil && *raw.CompareAtPrice != "" {
		compareAt, err := decimal.NewFromString(*raw.CompareAtPrice)
		if err != nil {
			return nil, fmt.Errorf("variant %d: compare_at_price: %w", raw.ID, err)
		}
		v.CompareAtPrice = decimal.NewNullDecimal(compareAt)
	}
	return v, nil
}

func mapAddress(raw *RawAddress) *order.Address {
	if raw == nil {
		return nil
	}
	return &order.Address{
		Name:     raw.Name,
		Company:  raw.Company,
		Address1: raw.Address1,
		Address2: raw.Address2,
		City:     raw.City,
		Province: raw.Province,
		Country:  raw.Country,
		Zip:      raw.Zip,
		Phone:    raw.Phone,
	}
}

func mapProductStatus(status string) catalog.ProductStatus {
	switch status {
	case "active":
		return catalog.ProductStatusActive
	case "archived":
		return catalog.ProductStatusArchived
	default:
		return catalog.ProductStatusDraft
	}
}

// orderNumber prefers the display name (e.g. "#1001") with the hash
// stripped, falling back to the numeric order number.
func orderNumber(raw *RawOrder) string {
	if raw.Name != "" {
		if raw.Name[0] == '#' {
			return raw.Name[1:]
		}
		return raw.Name
	}
	return strconv.FormatInt(raw.OrderNumber, 10)
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return "USD"
	}
	return currency
}

func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
