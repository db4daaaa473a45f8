package sync

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/shared"
	domainsync "github.com/shopsync/backend/internal/domain/sync"
)

// ServiceConfig tunes the orchestration loop
type ServiceConfig struct {
	// PageSize is the number of records requested per fetch
	PageSize int
	// StrictTracking propagates run bookkeeping failures to the caller.
	// When false a tracker failure is logged and the data sync proceeds.
	StrictTracking bool
}

// Service orchestrates full pulls from the remote platform into local
// storage, one entity type at a time.
type Service struct {
	source domainsync.RemoteSource
	store  domainsync.RecordStore
	runs   domainsync.RunRepository
	logger *zap.Logger
	pageSz int
	strict bool
}

// NewService creates a sync Service
func NewService(
	source domainsync.RemoteSource,
	store domainsync.RecordStore,
	runs domainsync.RunRepository,
	logger *zap.Logger,
	cfg ServiceConfig,
) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 250
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source: source,
		store:  store,
		runs:   runs,
		logger: logger.Named("sync"),
		pageSz: cfg.PageSize,
		strict: cfg.StrictTracking,
	}
}

// SyncEntity pulls every record of the entity type through cursor
// pagination and upserts each one. A record that fails to persist is
// logged and skipped; a failed page fetch aborts the run. The run record
// moves started -> completed/failed exactly once.
func (s *Service) SyncEntity(ctx context.Context, entityType domainsync.EntityType) (*Result, error) {
	if !entityType.Valid() {
		return nil, fmt.Errorf("%w: %s", domainsync.ErrUnknownEntity, entityType)
	}

	start := time.Now()
	run := domainsync.NewRun(entityType)
	tracked := true
	if err := s.runs.Create(ctx, run); err != nil {
		if s.strict {
			return nil, err
		}
		tracked = false
		s.logger.Warn("sync run not tracked", zap.String("entity_type", string(entityType)), zap.Error(err))
	}

	result := &Result{EntityType: entityType}
	cursor := ""
	for {
		records, nextCursor, err := s.source.FetchPage(ctx, entityType, cursor, s.pageSz)
		if err != nil {
			s.logger.Error("page fetch failed",
				zap.String("entity_type", string(entityType)),
				zap.String("cursor", cursor),
				zap.Error(err),
			)
			s.finishRun(ctx, run, tracked, result, err)
			return nil, err
		}

		for _, record := range records {
			created, err := s.store.Upsert(ctx, record)
			if err != nil {
				result.Failed++
				s.logger.Warn("record skipped",
					zap.String("entity_type", string(entityType)),
					zap.String("external_id", record.ExternalID()),
					zap.Error(err),
				)
				continue
			}
			result.Processed++
			if created {
				result.Created++
			}
		}

		// A short or empty page means the collection is exhausted. A
		// full page always triggers one more fetch.
		if len(records) < s.pageSz {
			break
		}
		cursor = nextCursor
	}

	result.Updated = result.Processed - result.Created
	result.Duration = time.Since(start)

	if err := s.completeRun(ctx, run, tracked, result); err != nil {
		return result, err
	}

	s.logger.Info("sync completed",
		zap.String("entity_type", string(entityType)),
		zap.Int64("processed", result.Processed),
		zap.Int64("created", result.Created),
		zap.Int64("failed", result.Failed),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

// SyncAll runs a full sync of every entity type. Each type gets its own
// run record; the first failure stops the remaining types.
func (s *Service) SyncAll(ctx context.Context) (map[domainsync.EntityType]*Result, error) {
	results := make(map[domainsync.EntityType]*Result)
	for _, entityType := range []domainsync.EntityType{domainsync.EntityProducts, domainsync.EntityOrders} {
		result, err := s.SyncEntity(ctx, entityType)
		if result != nil {
			results[entityType] = result
		}
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// History returns a page of past runs, newest first
func (s *Service) History(ctx context.Context, filter shared.Filter) (*shared.Paginated[RunResponse], error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "started_at"
		filter.OrderDir = "desc"
	}
	runs, total, err := s.runs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]RunResponse, len(runs))
	for i := range runs {
		responses[i] = ToRunResponse(&runs[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Status returns the latest run per entity type
func (s *Service) Status(ctx context.Context) (map[string]RunResponse, error) {
	latest, err := s.runs.LatestPerType(ctx)
	if err != nil {
		return nil, err
	}
	status := make(map[string]RunResponse, len(latest))
	for entityType, run := range latest {
		status[string(entityType)] = ToRunResponse(run)
	}
	return status, nil
}

func (s *Service) finishRun(ctx context.Context, run *domainsync.Run, tracked bool, result *Result, cause error) {
	if !tracked {
		return
	}
	if err := run.Fail(result.Processed, result.Created, result.Updated, cause); err != nil {
		s.logger.Warn("run transition rejected", zap.Int64("run_id", run.ID), zap.Error(err))
		return
	}
	if err := s.runs.Update(ctx, run); err != nil {
		s.logger.Warn("failed run not recorded", zap.Int64("run_id", run.ID), zap.Error(err))
	}
}

func (s *Service) completeRun(ctx context.Context, run *domainsync.Run, tracked bool, result *Result) error {
	if !tracked {
		return nil
	}
	if err := run.Complete(result.Processed, result.Created, result.Updated); err != nil {
		return err
	}
	if err := s.runs.Update(ctx, run); err != nil {
		if s.strict {
			return err
		}
		s.logger.Warn("completed run not recorded", zap.Int64("run_id", run.ID), zap.Error(err))
	}
	return nil
}
