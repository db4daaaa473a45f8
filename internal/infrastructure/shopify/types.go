package shopify

import "time"

// Raw payload structs mirror the Admin API JSON. Prices arrive as strings
// and are parsed into decimals by the mapper.

// RawVariant is a product variant as returned by the Admin API
type RawVariant struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	Price             string  `json:"price"`
	CompareAtPrice    *string `json:"compare_at_price"`
	SKU               string  `json:"sku"`
	Barcode           string  `json:"barcode"`
	InventoryQuantity int64   `json:"inventory_quantity"`
	Weight            float64 `json:"weight"`
	WeightUnit        string  `json:"weight_unit"`
	RequiresShipping  bool    `json:"requires_shipping"`
	Taxable           bool    `json:"taxable"`
}

// RawImage is a product image as returned by the Admin API
type RawImage struct {
	ID       int64  `json:"id"`
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Position int    `json:"position"`
}

// RawOption is a product option as returned by the Admin API
type RawOption struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// RawProduct is a product as returned by the Admin API
type RawProduct struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	BodyHTML    string       `json:"body_html"`
	Vendor      string       `json:"vendor"`
	ProductType string       `json:"product_type"`
	Handle      string       `json:"handle"`
	Status      string       `json:"status"`
	Tags        string       `json:"tags"`
	Variants    []RawVariant `json:"variants"`
	Images      []RawImage   `json:"images"`
	Options     []RawOption  `json:"options"`
}

// RawAddress is a postal address as returned by the Admin API
type RawAddress struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Zip      string `json:"zip"`
	Phone    string `json:"phone"`
}

// RawCustomer is the customer stub embedded in an order payload
type RawCustomer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// RawLineItem is an order line as returned by the Admin API
type RawLineItem struct {
	ID        int64  `json:"id"`
	ProductID *int64 `json:"product_id"`
	VariantID *int64 `json:"variant_id"`
	Title     string `json:"title"`
	SKU       string `json:"sku"`
	Quantity  int64  `json:"quantity"`
	Price     string `json:"price"`
}

// RawOrder is an order as returned by the Admin API
type RawOrder struct {
	ID                int64         `json:"id"`
	Name              string        `json:"name"`
	OrderNumber       int64         `json:"order_number"`
	Email             string        `json:"email"`
	Phone             string        `json:"phone"`
	Customer          *RawCustomer  `json:"customer"`
	ShippingAddress   *RawAddress   `json:"shipping_address"`
	BillingAddress    *RawAddress   `json:"billing_address"`
	LineItems         []RawLineItem `json:"line_items"`
	SubtotalPrice     string        `json:"subtotal_price"`
	TotalTax          string        `json:"total_tax"`
	TotalPrice        string        `json:"total_price"`
	Currency          string        `json:"currency"`
	FinancialStatus   string        `json:"financial_status"`
	FulfillmentStatus *string       `json:"fulfillment_status"`
	CancelledAt       *time.Time    `json:"cancelled_at"`
	ProcessedAt       *time.Time    `json:"processed_at"`
}

type productsEnvelope struct {
	Products []RawProduct `json:"products"`
}

type ordersEnvelope struct {
	Orders []RawOrder `json:"orders"`
}

type webhooksEnvelope struct {
	Webhooks []RawWebhook `json:"webhooks"`
}

type webhookEnvelope struct {
	Webhook RawWebhook `json:"webhook"`
}

// RawWebhook is a webhook subscription as returned by the Admin API
type RawWebhook struct {
	ID      int64  `json:"id"`
	Topic   string `json:"topic"`
	Address string `json:"address"`
	Format  string `json:"format"`
}
