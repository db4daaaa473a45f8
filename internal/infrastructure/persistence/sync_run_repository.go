package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/sync"
)

// GormSyncRunRepository implements sync.RunRepository using GORM
type GormSyncRunRepository struct {
	db *gorm.DB
}

var _ sync.RunRepository = (*GormSyncRunRepository)(nil)

// NewGormSyncRunRepository creates a new GormSyncRunRepository
func NewGormSyncRunRepository(db *gorm.DB) *GormSyncRunRepository {
	return &GormSyncRunRepository{db: db}
}

// Create persists a new run in the started state
func (r *GormSyncRunRepository) Create(ctx context.Context, run *sync.Run) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("%w: %v", sync.ErrTrackerWrite, err)
	}
	return nil
}

// Update persists a status transition with final counters
func (r *GormSyncRunRepository) Update(ctx context.Context, run *sync.Run) error {
	res := r.db.WithContext(ctx).
		Model(&sync.Run{}).
		Where("id = ?", run.ID).
		Updates(map[string]any{
			"status":          run.Status,
			"records_total":   run.RecordsTotal,
			"records_new":     run.RecordsNew,
			"records_updated": run.RecordsUpdated,
			"error_message":   run.ErrorMessage,
			"completed_at":    run.CompletedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("%w: %v", sync.ErrTrackerWrite, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: run %d not found", sync.ErrTrackerWrite, run.ID)
	}
	return nil
}

// List returns a filtered page of runs plus the total count
func (r *GormSyncRunRepository) List(ctx context.Context, filter shared.Filter) ([]sync.Run, int64, error) {
	query := r.db.WithContext(ctx).Model(&sync.Run{})

	if entityType, ok := filter.Filters["entity_type"]; ok && entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if status, ok := filter.Filters["status"]; ok && status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.OrderBy, SyncRunSortFields, "started_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)

	var runs []sync.Run
	if err := query.
		Order(fmt.Sprintf("%s %s", sortField, sortOrder)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&runs).Error; err != nil {
		return nil, 0, err
	}
	return runs, total, nil
}

// LatestPerType returns the most recent run for each entity type
func (r *GormSyncRunRepository) LatestPerType(ctx context.Context) (map[sync.EntityType]*sync.Run, error) {
	result := make(map[sync.EntityType]*sync.Run)
	for _, entityType := range []sync.EntityType{sync.EntityProducts, sync.EntityOrders} {
		var run sync.Run
		err := r.db.WithContext(ctx).
			Where("entity_type = ?", entityType).
			Order("started_at DESC").
			First(&run).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		result[entityType] = &run
	}
	return result, nil
}
