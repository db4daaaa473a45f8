package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/catalog"
	"github.com/shopsync/backend/internal/domain/sync"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&Config{
		StoreURL:      "test-store.myshopify.com",
		AccessToken:   "shpat_test",
		PageSize:      250,
		WebhookSecret: "secret",
	}, zap.NewNop())
	require.NoError(t, err)
	client.baseURL = server.URL
	return client, server
}

func TestClientFetchPage(t *testing.T) {
	t.Run("fetches products and advances cursor", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products.json", r.URL.Path)
			assert.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))
			assert.Equal(t, "2", r.URL.Query().Get("limit"))
			assert.Equal(t, "100", r.URL.Query().Get("since_id"))

			json.NewEncoder(w).Encode(productsEnvelope{Products: []RawProduct{
				{ID: 101, Title: "A"},
				{ID: 102, Title: "B"},
			}})
		}))

		records, cursor, err := client.FetchPage(context.Background(), sync.EntityProducts, "100", 2)

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "102", cursor)
		p, ok := records[0].(*catalog.Product)
		require.True(t, ok)
		assert.Equal(t, "101", p.ShopifyID)
	})

	t.Run("orders request includes status any", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/orders.json", r.URL.Path)
			assert.Equal(t, "any", r.URL.Query().Get("status"))
			json.NewEncoder(w).Encode(ordersEnvelope{})
		}))

		records, cursor, err := client.FetchPage(context.Background(), sync.EntityOrders, "", 250)

		require.NoError(t, err)
		assert.Empty(t, records)
		assert.Equal(t, "", cursor)
	})

	t.Run("non-200 wraps remote fetch error", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))

		_, _, err := client.FetchPage(context.Background(), sync.EntityProducts, "", 10)
		assert.ErrorIs(t, err, sync.ErrRemoteFetch)
	})

	t.Run("unknown entity type rejected", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("request should not be sent")
		}))

		_, _, err := client.FetchPage(context.Background(), sync.EntityType("customers"), "", 10)
		assert.ErrorIs(t, err, sync.ErrUnknownEntity)
	})
}

func TestClientRegisterWebhooks(t *testing.T) {
	t.Run("creates missing subscriptions only", func(t *testing.T) {
		var created []string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodGet && r.URL.Path == "/webhooks.json":
				json.NewEncoder(w).Encode(webhooksEnvelope{Webhooks: []RawWebhook{
					{ID: 1, Topic: "products/create", Address: "https://sync.example.com/api/webhooks/products"},
				}})
			case r.Method == http.MethodPost && r.URL.Path == "/webhooks.json":
				var envelope webhookEnvelope
				require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
				created = append(created, envelope.Webhook.Topic)
				w.WriteHeader(http.StatusCreated)
				fmt.Fprint(w, `{"webhook":{"id":99}}`)
			default:
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
		}))
		client.config.WebhookBaseURL = "https://sync.example.com"

		results, err := client.RegisterWebhooks(context.Background())

		require.NoError(t, err)
		assert.Len(t, results, 4)
		assert.Len(t, created, 3)
		assert.NotContains(t, created, "products/create")
	})

	t.Run("requires webhook base URL", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		_, err := client.RegisterWebhooks(context.Background())
		assert.Error(t, err)
	})
}
