package scheduler

import "errors"

var (
	// ErrSchedulerNotRunning is returned when querying a stopped scheduler
	ErrSchedulerNotRunning = errors.New("scheduler is not running")

	// ErrSyncInProgress is returned when a run for the entity type is already in flight
	ErrSyncInProgress = errors.New("sync already in progress for this entity type")
)
