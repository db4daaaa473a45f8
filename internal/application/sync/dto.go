package sync

import (
	"time"

	domainsync "github.com/shopsync/backend/internal/domain/sync"
)

// Result summarizes one synchronization run
type Result struct {
	EntityType domainsync.EntityType `json:"entity_type"`
	Processed  int64                 `json:"processed"`
	Created    int64                 `json:"created"`
	Updated    int64                 `json:"updated"`
	Failed     int64                 `json:"failed"`
	Duration   time.Duration         `json:"duration"`
}

// RunResponse is the API view of a persisted sync run
type RunResponse struct {
	ID             int64      `json:"id"`
	EntityType     string     `json:"entity_type"`
	Status         string     `json:"status"`
	RecordsTotal   int64      `json:"records_total"`
	RecordsNew     int64      `json:"records_new"`
	RecordsUpdated int64      `json:"records_updated"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// ToRunResponse maps a run entity to its API view
func ToRunResponse(run *domainsync.Run) RunResponse {
	return RunResponse{
		ID:             run.ID,
		EntityType:     string(run.EntityType),
		Status:         string(run.Status),
		RecordsTotal:   run.RecordsTotal,
		RecordsNew:     run.RecordsNew,
		RecordsUpdated: run.RecordsUpdated,
		ErrorMessage:   run.ErrorMessage,
		StartedAt:      run.StartedAt,
		CompletedAt:    run.CompletedAt,
	}
}
