package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/catalog"
	domainsync "github.com/shopsync/backend/internal/domain/sync"
)

type fakeVerifier struct {
	accept bool
	calls  int
}

func (f *fakeVerifier) Verify(body []byte, signature string) bool {
	f.calls++
	return f.accept
}

type fakeDecoder struct {
	record domainsync.Record
	err    error
	calls  int
}

func (f *fakeDecoder) Decode(topic string, body []byte) (domainsync.Record, error) {
	f.calls++
	return f.record, f.err
}

func TestWebhookServiceHandle(t *testing.T) {
	t.Run("verified payload reaches the store", func(t *testing.T) {
		store := newFakeStore()
		decoder := &fakeDecoder{record: &catalog.Product{ShopifyID: "42"}}
		svc := NewWebhookService(&fakeVerifier{accept: true}, decoder, store, zap.NewNop())

		err := svc.Handle(context.Background(), "products/update", []byte(`{}`), "sig")

		require.NoError(t, err)
		assert.Equal(t, 1, store.upserts)
	})

	t.Run("invalid signature rejected before decode", func(t *testing.T) {
		store := newFakeStore()
		decoder := &fakeDecoder{record: &catalog.Product{ShopifyID: "42"}}
		svc := NewWebhookService(&fakeVerifier{accept: false}, decoder, store, zap.NewNop())

		err := svc.Handle(context.Background(), "products/update", []byte(`{}`), "bad")

		assert.ErrorIs(t, err, domainsync.ErrSignatureInvalid)
		assert.Equal(t, 0, decoder.calls)
		assert.Equal(t, 0, store.upserts)
	})

	t.Run("unknown topic acknowledged without mutation", func(t *testing.T) {
		store := newFakeStore()
		decoder := &fakeDecoder{err: domainsync.ErrUnknownTopic}
		svc := NewWebhookService(&fakeVerifier{accept: true}, decoder, store, zap.NewNop())

		err := svc.Handle(context.Background(), "customers/create", []byte(`{}`), "sig")

		assert.NoError(t, err)
		assert.Equal(t, 0, store.upserts)
	})

	t.Run("upsert failure surfaces record error", func(t *testing.T) {
		store := newFakeStore()
		store.failIDs["42"] = true
		decoder := &fakeDecoder{record: &catalog.Product{ShopifyID: "42"}}
		svc := NewWebhookService(&fakeVerifier{accept: true}, decoder, store, zap.NewNop())

		err := svc.Handle(context.Background(), "products/update", []byte(`{}`), "sig")
		assert.ErrorIs(t, err, domainsync.ErrRecordUpsert)
	})
}
