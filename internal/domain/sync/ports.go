package sync

import (
	"context"

	"github.com/shopsync/backend/internal/domain/shared"
)

// Record is a remote record mapped into its local domain entity. The
// concrete type behind the interface decides which table it lands in.
type Record interface {
	// ExternalID returns the platform-assigned identifier used as the
	// natural key for upserts.
	ExternalID() string
}

// RemoteSource fetches pages of records from the remote platform using an
// opaque cursor. The first page is requested with an empty cursor; the
// cursor for the next page is derived from the last record of the current
// one by the implementation.
type RemoteSource interface {
	FetchPage(ctx context.Context, entityType EntityType, cursor string, pageSize int) ([]Record, string, error)
}

// RecordStore writes records into local storage. Both the polling engine and
// the webhook path share this single write surface.
type RecordStore interface {
	// Upsert persists the record keyed by its external identifier and
	// reports whether a new row was created.
	Upsert(ctx context.Context, record Record) (created bool, err error)
}

// PayloadDecoder turns a raw webhook body into a domain record based on the
// webhook topic.
type PayloadDecoder interface {
	Decode(topic string, body []byte) (Record, error)
}

// SignatureVerifier checks the authenticity of a raw webhook body against
// the signature header supplied by the platform.
type SignatureVerifier interface {
	Verify(body []byte, signature string) bool
}

// RunRepository defines the persistence port for sync-run bookkeeping
type RunRepository interface {
	// Create persists a new run in the started state
	Create(ctx context.Context, run *Run) error
	// Update persists a status transition with final counters
	Update(ctx context.Context, run *Run) error
	// List returns a filtered page of runs plus the unfiltered total
	List(ctx context.Context, filter shared.Filter) ([]Run, int64, error)
	// LatestPerType returns the most recent run for each entity type
	LatestPerType(ctx context.Context) (map[EntityType]*Run, error)
}
