package shopify

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopsync/backend/internal/domain/sync"
)

// PayloadDecoder turns raw webhook bodies into domain records. Webhook
// payloads carry the bare resource JSON, without the list envelope the
// Admin API uses.
type PayloadDecoder struct{}

var _ sync.PayloadDecoder = (*PayloadDecoder)(nil)

// NewPayloadDecoder creates a PayloadDecoder
func NewPayloadDecoder() *PayloadDecoder {
	return &PayloadDecoder{}
}

// Decode maps the webhook topic to its record type and decodes the body
func (d *PayloadDecoder) Decode(topic string, body []byte) (sync.Record, error) {
	switch {
	case strings.HasPrefix(topic, "products/"):
		var raw RawProduct
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("shopify: decode product payload: %w", err)
		}
		return MapProduct(&raw)
	case strings.HasPrefix(topic, "orders/"):
		var raw RawOrder
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("shopify: decode order payload: %w", err)
		}
		return MapOrder(&raw)
	default:
		return nil, fmt.Errorf("%w: %s", sync.ErrUnknownTopic, topic)
	}
}

// Verifier adapts Config webhook verification to the sync port
type Verifier struct {
	config *Config
}

var _ sync.SignatureVerifier = (*Verifier)(nil)

// NewVerifier creates a Verifier over the store configuration
func NewVerifier(config *Config) *Verifier {
	return &Verifier{config: config}
}

// Verify checks the raw body against the signature header
func (v *Verifier) Verify(body []byte, signature string) bool {
	return v.config.VerifyWebhook(body, signature)
}
