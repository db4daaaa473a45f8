package sync

import (
	"fmt"
	"time"

	"github.com/shopsync/backend/internal/domain/shared"
)

// EntityType names a remote collection that can be synchronized
type EntityType string

const (
	EntityProducts EntityType = "products"
	EntityOrders   EntityType = "orders"
)

// Valid reports whether the entity type is one the engine knows how to sync
func (t EntityType) Valid() bool {
	return t == EntityProducts || t == EntityOrders
}

// RunStatus is the lifecycle state of a sync run
type RunStatus string

const (
	RunStarted   RunStatus = "started"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Run records a single synchronization attempt for one entity type. A run
// moves from started to exactly one of completed or failed and never back.
type Run struct {
	shared.BaseEntity
	EntityType     EntityType `gorm:"type:varchar(20);not null;index" json:"entity_type"`
	Status         RunStatus  `gorm:"type:varchar(20);not null;default:'started'" json:"status"`
	RecordsTotal   int64      `gorm:"not null;default:0" json:"records_total"`
	RecordsNew     int64      `gorm:"not null;default:0" json:"records_new"`
	RecordsUpdated int64      `gorm:"not null;default:0" json:"records_updated"`
	ErrorMessage   string     `gorm:"type:text" json:"error_message,omitempty"`
	StartedAt      time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// TableName returns the table name for GORM
func (Run) TableName() string {
	return "sync_runs"
}

// NewRun constructs a run in the started state
func NewRun(entityType EntityType) *Run {
	return &Run{
		EntityType: entityType,
		Status:     RunStarted,
		StartedAt:  time.Now(),
	}
}

// Complete transitions the run to completed with its final counters. The
// transition is rejected once the run has left the started state.
func (r *Run) Complete(total, created, updated int64) error {
	if r.Status != RunStarted {
		return fmt.Errorf("sync: run %d already %s", r.ID, r.Status)
	}
	now := time.Now()
	r.Status = RunCompleted
	r.RecordsTotal = total
	r.RecordsNew = created
	r.RecordsUpdated = updated
	r.CompletedAt = &now
	return nil
}

// Fail transitions the run to failed, keeping whatever counters were reached
func (r *Run) Fail(total, created, updated int64, cause error) error {
	if r.Status != RunStarted {
		return fmt.Errorf("sync: run %d already %s", r.ID, r.Status)
	}
	now := time.Now()
	r.Status = RunFailed
	r.RecordsTotal = total
	r.RecordsNew = created
	r.RecordsUpdated = updated
	if cause != nil {
		r.ErrorMessage = cause.Error()
	}
	r.CompletedAt = &now
	return nil
}

// Duration returns the elapsed time of a finished run, or the time since
// start for a run still in flight.
func (r *Run) Duration() time.Duration {
	if r.CompletedAt != nil {
		return r.CompletedAt.Sub(r.StartedAt)
	}
	return time.Since(r.StartedAt)
}
