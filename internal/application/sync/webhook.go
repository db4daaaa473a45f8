package sync

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	domainsync "github.com/shopsync/backend/internal/domain/sync"
)

// WebhookService ingests signed webhook deliveries. Verification happens on
// the raw body before any decoding, and verified payloads take the same
// upsert path as polled records.
type WebhookService struct {
	verifier domainsync.SignatureVerifier
	decoder  domainsync.PayloadDecoder
	store    domainsync.RecordStore
	logger   *zap.Logger
}

// NewWebhookService creates a WebhookService
func NewWebhookService(
	verifier domainsync.SignatureVerifier,
	decoder domainsync.PayloadDecoder,
	store domainsync.RecordStore,
	logger *zap.Logger,
) *WebhookService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookService{
		verifier: verifier,
		decoder:  decoder,
		store:    store,
		logger:   logger.Named("webhook"),
	}
}

// Handle verifies and applies one webhook delivery. An unknown topic is
// acknowledged without mutation so the platform does not retry it.
func (s *WebhookService) Handle(ctx context.Context, topic string, body []byte, signature string) error {
	if !s.verifier.Verify(body, signature) {
		s.logger.Warn("webhook rejected", zap.String("topic", topic))
		return domainsync.ErrSignatureInvalid
	}

	record, err := s.decoder.Decode(topic, body)
	if err != nil {
		if errors.Is(err, domainsync.ErrUnknownTopic) {
			s.logger.Debug("webhook topic ignored", zap.String("topic", topic))
			return nil
		}
		return err
	}

	created, err := s.store.Upsert(ctx, record)
	if err != nil {
		return fmt.Errorf("%w: topic %s record %s: %v", domainsync.ErrRecordUpsert, topic, record.ExternalID(), err)
	}

	s.logger.Info("webhook applied",
		zap.String("topic", topic),
		zap.String("external_id", record.ExternalID()),
		zap.Bool("created", created),
	)
	return nil
}
