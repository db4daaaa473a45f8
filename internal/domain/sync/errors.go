package sync

import "errors"

var (
	// ErrRemoteFetch indicates a page could not be retrieved from the remote platform
	ErrRemoteFetch = errors.New("sync: remote fetch failed")
	// ErrRecordUpsert indicates a single record could not be written locally
	ErrRecordUpsert = errors.New("sync: record upsert failed")
	// ErrSignatureInvalid indicates a webhook payload failed signature verification
	ErrSignatureInvalid = errors.New("sync: webhook signature invalid")
	// ErrTrackerWrite indicates sync-run bookkeeping could not be persisted
	ErrTrackerWrite = errors.New("sync: run tracker write failed")
	// ErrUnknownEntity indicates an entity type the engine does not sync
	ErrUnknownEntity = errors.New("sync: unknown entity type")
	// ErrUnknownTopic indicates a webhook topic with no registered decoder
	ErrUnknownTopic = errors.New("sync: unknown webhook topic")
)
