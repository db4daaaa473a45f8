package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/sync"
)

// maxResponseSize is the maximum allowed response size from the Admin API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Client talks to the Shopify Admin API for one store. It implements
// sync.RemoteSource over since_id cursor pagination.
type Client struct {
	config     *Config
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ sync.RemoteSource = (*Client)(nil)

// NewClient creates a new Admin API client with the given configuration
func NewClient(config *Config, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		config:  config,
		baseURL: config.BaseURL(),
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger.Named("shopify"),
	}, nil
}

// FetchPage retrieves one page of records for the entity type. The cursor is
// the shopify_id of the last record of the previous page; an empty cursor
// requests the first page. The returned cursor points past the returned
// records, it is empty only when the page itself is empty.
func (c *Client) FetchPage(ctx context.Context, entityType sync.EntityType, cursor string, pageSize int) ([]sync.Record, string, error) {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = c.config.PageSize
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(pageSize))
	if cursor != "" {
		params.Set("since_id", cursor)
	}

	switch entityType {
	case sync.EntityProducts:
		return c.fetchProducts(ctx, params)
	case sync.EntityOrders:
		params.Set("status", "any")
		return c.fetchOrders(ctx, params)
	default:
		return nil, "", fmt.Errorf("%w: %s", sync.ErrUnknownEntity, entityType)
	}
}

func (c *Client) fetchProducts(ctx context.Context, params url.Values) ([]sync.Record, string, error) {
	body, err := c.get(ctx, "/products.json", params)
	if err != nil {
		return nil, "", err
	}

	var envelope productsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, "", fmt.Errorf("%w: decode products: %v", sync.ErrRemoteFetch, err)
	}

	records := make([]sync.Record, 0, len(envelope.Products))
	cursor := ""
	for i := range envelope.Products {
		p, err := MapProduct(&envelope.Products[i])
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", sync.ErrRemoteFetch, err)
		}
		records = append(records, p)
		cursor = p.ShopifyID
	}
	return records, cursor, nil
}

func (c *Client) fetchOrders(ctx context.Context, params url.Values) ([]sync.Record, string, error) {
	body, err := c.get(ctx, "/orders.json", params)
	if err != nil {
		return nil, "", err
	}

	var envelope ordersEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, "", fmt.Errorf("%w: decode orders: %v", sync.ErrRemoteFetch, err)
	}

	records := make([]sync.Record, 0, len(envelope.Orders))
	cursor := ""
	for i := range envelope.Orders {
		o, err := MapOrder(&envelope.Orders[i])
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", sync.ErrRemoteFetch, err)
		}
		records = append(records, o)
		cursor = o.ShopifyID
	}
	return records, cursor, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sync.ErrRemoteFetch, err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.config.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sync.ErrRemoteFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", sync.ErrRemoteFetch, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("admin API request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: %s returned status %d", sync.ErrRemoteFetch, path, resp.StatusCode)
	}
	return body, nil
}

// ---------------------------------------------------------------------------
// Webhook registration
// ---------------------------------------------------------------------------

// webhookTopics maps each subscribed topic to its delivery path
var webhookTopics = map[string]string{
	"products/create": "/api/webhooks/products",
	"products/update": "/api/webhooks/products",
	"orders/create":   "/api/webhooks/orders",
	"orders/updated":  "/api/webhooks/orders",
}

// WebhookRegistration reports the outcome for one topic
type WebhookRegistration struct {
	Topic   string `json:"topic"`
	Address string `json:"address"`
	Created bool   `json:"created"`
}

// RegisterWebhooks subscribes the store to the product and order topics,
// skipping subscriptions that already point at the right address. It needs
// WebhookBaseURL configured.
func (c *Client) RegisterWebhooks(ctx context.Context) ([]WebhookRegistration, error) {
	if c.config.WebhookBaseURL == "" {
		return nil, fmt.Errorf("shopify: webhook base URL is not configured")
	}

	existing, err := c.listWebhooks(ctx)
	if err != nil {
		return nil, err
	}
	registered := make(map[string]bool, len(existing))
	for _, wh := range existing {
		registered[wh.Topic+" "+wh.Address] = true
	}

	results := make([]WebhookRegistration, 0, len(webhookTopics))
	for topic, path := range webhookTopics {
		address := c.config.WebhookBaseURL + path
		reg := WebhookRegistration{Topic: topic, Address: address}
		if !registered[topic+" "+address] {
			if err := c.createWebhook(ctx, topic, address); err != nil {
				return nil, err
			}
			reg.Created = true
		}
		results = append(results, reg)
	}
	return results, nil
}

func (c *Client) listWebhooks(ctx context.Context) ([]RawWebhook, error) {
	body, err := c.get(ctx, "/webhooks.json", nil)
	if err != nil {
		return nil, err
	}
	var envelope webhooksEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode webhooks: %v", sync.ErrRemoteFetch, err)
	}
	return envelope.Webhooks, nil
}

func (c *Client) createWebhook(ctx context.Context, topic, address string) error {
	payload, err := json.Marshal(webhookEnvelope{
		Webhook: RawWebhook{Topic: topic, Address: address, Format: "json"},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/webhooks.json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", sync.ErrRemoteFetch, err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.config.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", sync.ErrRemoteFetch, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: create webhook %s returned status %d", sync.ErrRemoteFetch, topic, resp.StatusCode)
	}
	c.logger.Info("webhook registered", zap.String("topic", topic), zap.String("address", address))
	return nil
}
