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

	catalogapp "github.com/shopsync/backend/internal/application/catalog"
	"github.com/shopsync/backend/internal/domain/catalog"
	"github.com/shopsync/backend/internal/domain/shared"
)

type mockProductRepository struct {
	products []catalog.Product
	stats    *catalog.Stats
	err      error
}

func (m *mockProductRepository) Upsert(ctx context.Context, product *catalog.Product) (bool, error) {
	return false, m.err
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].ID == id {
			return &m.products[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockProductRepository) FindByShopifyID(ctx context.Context, shopifyID string) (*catalog.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].ShopifyID == shopifyID {
			return &m.products[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockProductRepository) List(ctx context.Context, filter shared.Filter) ([]catalog.Product, int64, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.products, int64(len(m.products)), nil
}

func (m *mockProductRepository) Stats(ctx context.Context) (*catalog.Stats, error) {
	return m.stats, m.err
}

func newProductRouter(repo catalog.ProductRepository) *gin.Engine {
	h := NewProductHandler(catalogapp.NewProductService(repo))

	engine := gin.New()
	engine.GET("/api/products", h.List)
	engine.GET("/api/products/stats/overview", h.Stats)
	engine.GET("/api/products/:id", h.Get)
	engine.GET("/api/products/shopify/:shopify_id", h.GetByShopifyID)
	return engine
}

func testProduct(id int64, shopifyID, title string) catalog.Product {
	p := catalog.Product{
		ShopifyID: shopifyID,
		Title:     title,
		Vendor:    "Apple",
		Status:    catalog.ProductStatusActive,
		Price:     decimal.RequireFromString("199.00"),
	}
	p.ID = id
	return p
}

func TestProductHandler_List(t *testing.T) {
	repo := &mockProductRepository{products: []catalog.Product{
		testProduct(1, "101", "iPod Nano"),
		testProduct(2, "102", "iPod Touch"),
	}}
	engine := newProductRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products?page=1&page_size=20", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                             `json:"success"`
		Data    []catalogapp.ProductListResponse `json:"data"`
		Meta    struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "iPod Nano", resp.Data[0].Title)
	assert.Equal(t, int64(2), resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.TotalPages)
}

func TestProductHandler_ListRejectsBadStatus(t *testing.T) {
	engine := newProductRouter(&mockProductRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products?status=bogus", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
	assert.Contains(t, w.Body.String(), `"field":"status"`)
}

func TestProductHandler_Get(t *testing.T) {
	repo := &mockProductRepository{products: []catalog.Product{
		testProduct(1, "101", "iPod Nano"),
	}}
	engine := newProductRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/1", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data catalogapp.ProductResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "101", resp.Data.ShopifyID)
	assert.Equal(t, "iPod Nano", resp.Data.Title)
}

func TestProductHandler_GetNotFound(t *testing.T) {
	engine := newProductRouter(&mockProductRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/42", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ERR_NOT_FOUND", resp.Error.Code)
}

func TestProductHandler_GetInvalidID(t *testing.T) {
	engine := newProductRouter(&mockProductRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/abc", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_GetByShopifyID(t *testing.T) {
	repo := &mockProductRepository{products: []catalog.Product{
		testProduct(3, "632910392", "iPod Nano"),
	}}
	engine := newProductRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/shopify/632910392", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data catalogapp.ProductResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Data.ID)
}

func TestProductHandler_Stats(t *testing.T) {
	repo := &mockProductRepository{stats: &catalog.Stats{
		Total:          12,
		Active:         10,
		Draft:          2,
		TotalInventory: 480,
	}}
	engine := newProductRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/stats/overview", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data catalog.Stats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp.Data.Total)
	assert.Equal(t, int64(480), resp.Data.TotalInventory)
}
