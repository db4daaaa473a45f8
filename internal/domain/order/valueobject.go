package order

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Address is a postal address attached to an order
type Address struct {
	Name     string `json:"name,omitempty"`
	Company  string `json:"company,omitempty"`
	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
	Country  string `json:"country,omitempty"`
	Zip      string `json:"zip,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// LineItem is a single purchasable line on an order
type LineItem struct {
	ShopifyID string          `json:"shopify_id,omitempty"`
	ProductID string          `json:"product_id,omitempty"`
	VariantID string          `json:"variant_id,omitempty"`
	Title     string          `json:"title"`
	SKU       string          `json:"sku,omitempty"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// LineItemList is an ordered collection of line items
type LineItemList []LineItem

// TotalQuantity sums the quantities of all line items
func (l LineItemList) TotalQuantity() int64 {
	var total int64
	for _, item := range l {
		total += item.Quantity
	}
	return total
}

// DecodeAddress decodes a serialized address. An empty payload decodes to nil.
func DecodeAddress(raw string) (*Address, error) {
	if raw == "" {
		return nil, nil
	}
	var addr Address
	if err := json.Unmarshal([]byte(raw), &addr); err != nil {
		return nil, err
	}
	return &addr, nil
}

// Encode serializes the address. A nil address encodes to the empty string.
func (a *Address) Encode() (string, error) {
	if a == nil {
		return "", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeLineItemList decodes a serialized line-item collection. An empty
// payload decodes to an empty list.
func DecodeLineItemList(raw string) (LineItemList, error) {
	if raw == "" {
		return LineItemList{}, nil
	}
	var items LineItemList
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Encode serializes the line-item collection
func (l LineItemList) Encode() (string, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
