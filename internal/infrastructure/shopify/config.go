package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultAPIVersion is the Admin API version requests are pinned to
const DefaultAPIVersion = "2023-10"

// MaxPageSize is the largest page the Admin API will serve
const MaxPageSize = 250

// Errors for Shopify configuration
var (
	ErrConfigMissingStoreURL    = errors.New("shopify: store URL is required")
	ErrConfigMissingAccessToken = errors.New("shopify: access token is required")
)

// Config holds credentials and API settings for one Shopify store
type Config struct {
	// StoreURL is the store domain, e.g. my-store.myshopify.com
	StoreURL string
	// AccessToken is the Admin API access token
	AccessToken string
	// APIVersion pins the Admin API version
	APIVersion string
	// PageSize is the number of records requested per page
	PageSize int
	// WebhookSecret signs webhook payloads
	WebhookSecret string
	// WebhookBaseURL is the public base URL webhooks are delivered to
	WebhookBaseURL string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.StoreURL == "" {
		return ErrConfigMissingStoreURL
	}
	if c.AccessToken == "" {
		return ErrConfigMissingAccessToken
	}
	c.StoreURL = strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(c.StoreURL, "https://"), "http://"), "/")
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.PageSize <= 0 || c.PageSize > MaxPageSize {
		c.PageSize = MaxPageSize
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}

// BaseURL returns the versioned Admin API base URL
func (c *Config) BaseURL() string {
	return fmt.Sprintf("https://%s/admin/api/%s", c.StoreURL, c.APIVersion)
}

// VerifyWebhook checks a raw webhook body against the base64-encoded
// HMAC-SHA256 signature Shopify sends in X-Shopify-Hmac-Sha256. The
// comparison is constant time.
func (c *Config) VerifyWebhook(body []byte, signature string) bool {
	if c.WebhookSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.WebhookSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
