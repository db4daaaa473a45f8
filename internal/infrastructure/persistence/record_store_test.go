package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsync/backend/internal/domain/catalog"
	"github.com/shopsync/backend/internal/domain/order"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/sync"
)

type fakeProductRepo struct {
	upserted []*catalog.Product
}

func (f *fakeProductRepo) Upsert(ctx context.Context, p *catalog.Product) (bool, error) {
	f.upserted = append(f.upserted, p)
	return true, nil
}
func (f *fakeProductRepo) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeProductRepo) FindByShopifyID(ctx context.Context, shopifyID string) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeProductRepo) List(ctx context.Context, filter shared.Filter) ([]catalog.Product, int64, error) {
	return nil, 0, nil
}
func (f *fakeProductRepo) Stats(ctx context.Context) (*catalog.Stats, error) {
	return &catalog.Stats{}, nil
}

type fakeOrderRepo struct {
	upserted []*order.Order
}

func (f *fakeOrderRepo) Upsert(ctx context.Context, o *order.Order) (bool, error) {
	f.upserted = append(f.upserted, o)
	return false, nil
}
func (f *fakeOrderRepo) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeOrderRepo) FindByShopifyID(ctx context.Context, shopifyID string) (*order.Order, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeOrderRepo) List(ctx context.Context, filter shared.Filter) ([]order.Order, int64, error) {
	return nil, 0, nil
}
func (f *fakeOrderRepo) Stats(ctx context.Context) (*order.Stats, error) {
	return &order.Stats{}, nil
}

type unknownRecord struct{}

func (unknownRecord) ExternalID() string { return "x" }

func TestRecordStoreDispatch(t *testing.T) {
	products := &fakeProductRepo{}
	orders := &fakeOrderRepo{}
	store := NewRecordStore(products, orders)

	t.Run("routes products", func(t *testing.T) {
		created, err := store.Upsert(context.Background(), &catalog.Product{ShopifyID: "1"})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Len(t, products.upserted, 1)
	})

	t.Run("routes orders", func(t *testing.T) {
		created, err := store.Upsert(context.Background(), &order.Order{ShopifyID: "2"})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Len(t, orders.upserted, 1)
	})

	t.Run("rejects unknown record type", func(t *testing.T) {
		_, err := store.Upsert(context.Background(), unknownRecord{})
		assert.ErrorIs(t, err, sync.ErrRecordUpsert)
	})
}
