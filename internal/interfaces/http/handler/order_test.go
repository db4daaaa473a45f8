package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderapp "github.com/shopsync/backend/internal/application/order"
	"github.com/shopsync/backend/internal/domain/order"
	"github.com/shopsync/backend/internal/domain/shared"
)

type mockOrderRepository struct {
	orders []order.Order
	stats  *order.Stats
	err    error
}

func (m *mockOrderRepository) Upsert(ctx context.Context, o *order.Order) (bool, error) {
	return false, m.err
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.orders {
		if m.orders[i].ID == id {
			return &m.orders[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockOrderRepository) FindByShopifyID(ctx context.Context, shopifyID string) (*order.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.orders {
		if m.orders[i].ShopifyID == shopifyID {
			return &m.orders[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockOrderRepository) List(ctx context.Context, filter shared.Filter) ([]order.Order, int64, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.orders, int64(len(m.orders)), nil
}

func (m *mockOrderRepository) Stats(ctx context.Context) (*order.Stats, error) {
	return m.stats, m.err
}

func newOrderRouter(repo order.OrderRepository) *gin.Engine {
	h := NewOrderHandler(orderapp.NewOrderService(repo))

	engine := gin.New()
	engine.GET("/api/orders", h.List)
	engine.GET("/api/orders/stats/overview", h.Stats)
	engine.GET("/api/orders/:id", h.Get)
	engine.GET("/api/orders/shopify/:shopify_id", h.GetByShopifyID)
	return engine
}

func testOrder(id int64, shopifyID, number string) order.Order {
	o := order.Order{
		ShopifyID:    shopifyID,
		OrderNumber:  number,
		Email:        "bob@example.com",
		CustomerName: "Bob Norman",
		TotalPrice:   decimal.RequireFromString("238.47"),
		Currency:     "USD",
		OrderStatus:  order.OrderStatusOpen,
	}
	o.ID = id
	return o
}

func TestOrderHandler_List(t *testing.T) {
	repo := &mockOrderRepository{orders: []order.Order{
		testOrder(1, "450789469", "1001"),
		testOrder(2, "450789470", "1002"),
	}}
	engine := newOrderRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []orderapp.OrderListResponse `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "1001", resp.Data[0].OrderNumber)
	assert.Equal(t, int64(2), resp.Meta.Total)
}

func TestOrderHandler_ListRejectsBadStatus(t *testing.T) {
	engine := newOrderRouter(&mockOrderRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders?status=pending", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_Get(t *testing.T) {
	o := testOrder(1, "450789469", "1001")
	require.NoError(t, o.SetLineItems(order.LineItemList{
		{ShopifyID: "466157049", Title: "IPod Nano - 8gb", Quantity: 1, Price: decimal.RequireFromString("199.00")},
	}))
	repo := &mockOrderRepository{orders: []order.Order{o}}
	engine := newOrderRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/1", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data orderapp.OrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "450789469", resp.Data.ShopifyID)
	require.Len(t, resp.Data.LineItems, 1)
	assert.Equal(t, int64(1), resp.Data.TotalQuantity)
}

func TestOrderHandler_GetNotFound(t *testing.T) {
	engine := newOrderRouter(&mockOrderRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/9", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_Stats(t *testing.T) {
	repo := &mockOrderRepository{stats: &order.Stats{
		Total:        4,
		Open:         3,
		Cancelled:    1,
		TotalRevenue: decimal.RequireFromString("715.41"),
		AverageValue: decimal.RequireFromString("238.47"),
	}}
	engine := newOrderRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/stats/overview", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data order.Stats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(4), resp.Data.Total)
	assert.True(t, resp.Data.TotalRevenue.Equal(decimal.RequireFromString("715.41")))
}
