package persistence

import (
	"context"
	"fmt"

	"github.com/shopsync/backend/internal/domain/catalog"
	"github.com/shopsync/backend/internal/domain/order"
	"github.com/shopsync/backend/internal/domain/sync"
)

// RecordStore routes records to their repository based on concrete type.
// The polling engine and the webhook path both write through this single
// surface, so a record lands identically regardless of how it arrived.
type RecordStore struct {
	products catalog.ProductRepository
	orders   order.OrderRepository
}

var _ sync.RecordStore = (*RecordStore)(nil)

// NewRecordStore creates a RecordStore over the entity repositories
func NewRecordStore(products catalog.ProductRepository, orders order.OrderRepository) *RecordStore {
	return &RecordStore{products: products, orders: orders}
}

// Upsert persists the record keyed by its external identifier
func (s *RecordStore) Upsert(ctx context.Context, record sync.Record) (bool, error) {
	switch rec := record.(type) {
	case *catalog.Product:
		return s.products.Upsert(ctx, rec)
	case *order.Order:
		return s.orders.Upsert(ctx, rec)
	default:
		return false, fmt.Errorf("%w: unsupported record type %T", sync.ErrRecordUpsert, record)
	}
}
