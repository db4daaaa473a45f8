package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"shopify_id":         true,
	"title":              true,
	"vendor":             true,
	"product_type":       true,
	"status":             true,
	"price":              true,
	"inventory_quantity": true,
	"synced_at":          true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"shopify_id":   true,
	"order_number": true,
	"email":        true,
	"total_price":  true,
	"order_status": true,
	"processed_at": true,
	"synced_at":    true,
}

// SyncRunSortFields contains allowed sort fields for sync runs
var SyncRunSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"entity_type":  true,
	"status":       true,
	"started_at":   true,
	"completed_at": true,
}
