package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/shared"
)

// OrderStatus is the locally derived lifecycle status of an order
type OrderStatus string

const (
	// OrderStatusOpen indicates the remote record carries no cancellation timestamp
	OrderStatusOpen OrderStatus = "open"
	// OrderStatusCancelled indicates the remote record was cancelled
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a local mirror of a remote order record, keyed by the
// platform-assigned ShopifyID. Addresses and line items are persisted as
// serialized JSON and decoded through the codecs in valueobject.go.
type Order struct {
	shared.BaseEntity
	ShopifyID    string `gorm:"type:varchar(64);not null;uniqueIndex" json:"shopify_id"`
	OrderNumber  string `gorm:"type:varchar(64);index" json:"order_number"`
	Email        string `gorm:"type:varchar(255)" json:"email"`
	Phone        string `gorm:"type:varchar(64)" json:"phone"`
	CustomerName string `gorm:"type:varchar(255)" json:"customer_name"`

	// Serialized sub-documents; opaque to the storage layer.
	ShippingAddress string `gorm:"type:text" json:"-"`
	BillingAddress  string `gorm:"type:text" json:"-"`
	LineItems       string `gorm:"type:text" json:"-"`

	SubtotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"subtotal_price"`
	TotalTax      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_tax"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_price"`
	Currency      string          `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`

	FinancialStatus   string      `gorm:"type:varchar(32)" json:"financial_status"`
	FulfillmentStatus string      `gorm:"type:varchar(32)" json:"fulfillment_status"`
	OrderStatus       OrderStatus `gorm:"type:varchar(20);not null;default:'open'" json:"order_status"`

	ProcessedAt *time.Time `json:"processed_at"`
	// SyncedAt is only advanced by a successful upsert.
	SyncedAt *time.Time `json:"synced_at"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// ExternalID returns the platform-assigned identifier used as the natural key
func (o *Order) ExternalID() string {
	return o.ShopifyID
}

// DeriveStatus computes the order status from the remote cancellation
// timestamp: cancelled when present, open otherwise. Other status fields do
// not participate in the derivation.
func DeriveStatus(cancelledAt *time.Time) OrderStatus {
	if cancelledAt != nil {
		return OrderStatusCancelled
	}
	return OrderStatusOpen
}

// CustomerFullName joins the customer's first and last name. Both parts are
// optional on the remote record; an absent customer yields an empty name.
func CustomerFullName(firstName, lastName string) string {
	return strings.TrimSpace(firstName + " " + lastName)
}

// DecodeShippingAddress decodes the serialized shipping address
func (o *Order) DecodeShippingAddress() (*Address, error) {
	return DecodeAddress(o.ShippingAddress)
}

// DecodeBillingAddress decodes the serialized billing address
func (o *Order) DecodeBillingAddress() (*Address, error) {
	return DecodeAddress(o.BillingAddress)
}

// DecodeLineItems decodes the serialized line-item collection
func (o *Order) DecodeLineItems() (LineItemList, error) {
	return DecodeLineItemList(o.LineItems)
}

// SetShippingAddress encodes and stores the shipping address
func (o *Order) SetShippingAddress(addr *Address) error {
	encoded, err := addr.Encode()
	if err != nil {
		return err
	}
	o.ShippingAddress = encoded
	return nil
}

// SetBillingAddress encodes and stores the billing address
func (o *Order) SetBillingAddress(addr *Address) error {
	encoded, err := addr.Encode()
	if err != nil {
		return err
	}
	o.BillingAddress = encoded
	return nil
}

// SetLineItems encodes and stores the line-item collection
func (o *Order) SetLineItems(items LineItemList) error {
	encoded, err := items.Encode()
	if err != nil {
		return err
	}
	o.LineItems = encoded
	return nil
}
