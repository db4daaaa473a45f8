package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/order"
)

// OrderListFilter represents filters for listing orders
type OrderListFilter struct {
	Page            int    `form:"page"`
	PageSize        int    `form:"page_size"`
	OrderBy         string `form:"order_by"`
	OrderDir        string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search          string `form:"search"`
	Status          string `form:"status" binding:"omitempty,oneof=open cancelled"`
	FinancialStatus string `form:"financial_status"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                int64              `json:"id"`
	ShopifyID         string             `json:"shopify_id"`
	OrderNumber       string             `json:"order_number"`
	Email             string             `json:"email"`
	Phone             string             `json:"phone"`
	CustomerName      string             `json:"customer_name"`
	ShippingAddress   *order.Address     `json:"shipping_address"`
	BillingAddress    *order.Address     `json:"billing_address"`
	LineItems         order.LineItemList `json:"line_items"`
	TotalQuantity     int64              `json:"total_quantity"`
	SubtotalPrice     decimal.Decimal    `json:"subtotal_price"`
	TotalTax          decimal.Decimal    `json:"total_tax"`
	TotalPrice        decimal.Decimal    `json:"total_price"`
	Currency          string             `json:"currency"`
	FinancialStatus   string             `json:"financial_status"`
	FulfillmentStatus string             `json:"fulfillment_status"`
	OrderStatus       string             `json:"order_status"`
	ProcessedAt       *time.Time         `json:"processed_at"`
	SyncedAt          *time.Time         `json:"synced_at"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// OrderListResponse represents a list item for orders
type OrderListResponse struct {
	ID              int64           `json:"id"`
	ShopifyID       string          `json:"shopify_id"`
	OrderNumber     string          `json:"order_number"`
	Email           string          `json:"email"`
	CustomerName    string          `json:"customer_name"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Currency        string          `json:"currency"`
	FinancialStatus string          `json:"financial_status"`
	OrderStatus     string          `json:"order_status"`
	ProcessedAt     *time.Time      `json:"processed_at"`
	SyncedAt        *time.Time      `json:"synced_at"`
}

func toOrderResponse(o *order.Order) (*OrderResponse, error) {
	shipping, err := o.DecodeShippingAddress()
	if err != nil {
		return nil, err
	}
	billing, err := o.DecodeBillingAddress()
	if err != nil {
		return nil, err
	}
	items, err := o.DecodeLineItems()
	if err != nil {
		return nil, err
	}

	return &OrderResponse{
		ID:                o.ID,
		ShopifyID:         o.ShopifyID,
		OrderNumber:       o.OrderNumber,
		Email:             o.Email,
		Phone:             o.Phone,
		CustomerName:      o.CustomerName,
		ShippingAddress:   shipping,
		BillingAddress:    billing,
		LineItems:         items,
		TotalQuantity:     items.TotalQuantity(),
		SubtotalPrice:     o.SubtotalPrice,
		TotalTax:          o.TotalTax,
		TotalPrice:        o.TotalPrice,
		Currency:          o.Currency,
		FinancialStatus:   o.FinancialStatus,
		FulfillmentStatus: o.FulfillmentStatus,
		OrderStatus:       string(o.OrderStatus),
		ProcessedAt:       o.ProcessedAt,
		SyncedAt:          o.SyncedAt,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}, nil
}

func toOrderListResponse(o *order.Order) OrderListResponse {
	return OrderListResponse{
		ID:              o.ID,
		ShopifyID:       o.ShopifyID,
		OrderNumber:     o.OrderNumber,
		Email:           o.Email,
		CustomerName:    o.CustomerName,
		TotalPrice:      o.TotalPrice,
		Currency:        o.Currency,
		FinancialStatus: o.FinancialStatus,
		OrderStatus:     string(o.OrderStatus),
		ProcessedAt:     o.ProcessedAt,
		SyncedAt:        o.SyncedAt,
	}
}
