package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	domainsync "github.com/shopsync/backend/internal/domain/sync"
)

// Runner triggers sync runs
type Runner interface {
	SyncEntity(ctx context.Context, entityType domainsync.EntityType) error
}

// RunnerFunc adapts a function to the Runner interface
type RunnerFunc func(ctx context.Context, entityType domainsync.EntityType) error

// SyncEntity implements Runner
func (f RunnerFunc) SyncEntity(ctx context.Context, entityType domainsync.EntityType) error {
	return f(ctx, entityType)
}

// Config holds scheduling intervals
type Config struct {
	// ProductsInterval is the period between product syncs
	ProductsInterval time.Duration
	// OrdersInterval is the period between order syncs
	OrdersInterval time.Duration
	// DailyFullHour is the local hour for the daily full sync
	DailyFullHour int
	// CheckInterval is how often the daily trigger checks the clock
	CheckInterval time.Duration
}

// DefaultConfig returns the default scheduling intervals
func DefaultConfig() Config {
	return Config{
		ProductsInterval: 2 * time.Hour,
		OrdersInterval:   15 * time.Minute,
		DailyFullHour:    2,
		CheckInterval:    time.Minute,
	}
}

// EntityStatus is the scheduler's view of one entity type
type EntityStatus struct {
	Interval  time.Duration `json:"interval"`
	InFlight  bool          `json:"in_flight"`
	LastRunAt *time.Time    `json:"last_run_at,omitempty"`
}

// Status is a snapshot of the scheduler state
type Status struct {
	Running     bool                    `json:"running"`
	Entities    map[string]EntityStatus `json:"entities"`
	LastFullRun string                  `json:"last_full_run,omitempty"`
}

// SyncScheduler fires interval syncs per entity type plus a daily full run
// at a fixed hour. A firing that overlaps an in-flight run of the same
// entity type is skipped, never queued.
type SyncScheduler struct {
	config Config
	runner Runner
	logger *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	inFlight    map[domainsync.EntityType]bool
	lastRunAt   map[domainsync.EntityType]time.Time
	lastFullRun string // date of the last daily full run
}

// NewSyncScheduler creates a new sync scheduler
func NewSyncScheduler(config Config, runner Runner, logger *zap.Logger) *SyncScheduler {
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncScheduler{
		config:    config,
		runner:    runner,
		logger:    logger.Named("scheduler"),
		inFlight:  make(map[domainsync.EntityType]bool),
		lastRunAt: make(map[domainsync.EntityType]time.Time),
	}
}

// Start launches the interval loops. Calling Start on a running scheduler
// is a no-op.
func (s *SyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(3)
	go s.intervalLoop(ctx, domainsync.EntityProducts, s.config.ProductsInterval)
	go s.intervalLoop(ctx, domainsync.EntityOrders, s.config.OrdersInterval)
	go s.dailyLoop(ctx)

	s.logger.Info("Sync scheduler started",
		zap.Duration("products_interval", s.config.ProductsInterval),
		zap.Duration("orders_interval", s.config.OrdersInterval),
		zap.Int("daily_full_hour", s.config.DailyFullHour),
	)
	return nil
}

// Stop cancels future firings and waits for loops to exit. An in-flight
// run keeps its context and finishes on its own.
func (s *SyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Sync scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns a snapshot of the scheduler state
func (s *SyncScheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	entities := map[string]EntityStatus{
		string(domainsync.EntityProducts): s.entityStatusLocked(domainsync.EntityProducts, s.config.ProductsInterval),
		string(domainsync.EntityOrders):   s.entityStatusLocked(domainsync.EntityOrders, s.config.OrdersInterval),
	}
	return Status{
		Running:     s.isRunning,
		Entities:    entities,
		LastFullRun: s.lastFullRun,
	}
}

func (s *SyncScheduler) entityStatusLocked(entityType domainsync.EntityType, interval time.Duration) EntityStatus {
	status := EntityStatus{
		Interval: interval,
		InFlight: s.inFlight[entityType],
	}
	if last, ok := s.lastRunAt[entityType]; ok {
		status.LastRunAt = &last
	}
	return status
}

func (s *SyncScheduler) intervalLoop(ctx context.Context, entityType domainsync.EntityType, interval time.Duration) {
	defer s.wg.Done()

	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runEntity(ctx, entityType)
		}
	}
}

func (s *SyncScheduler) dailyLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkDaily(ctx)
		}
	}
}

func (s *SyncScheduler) checkDaily(ctx context.Context) {
	now := time.Now()
	currentDate := now.Format("2006-01-02")

	s.mu.Lock()
	alreadyRan := s.lastFullRun == currentDate
	s.mu.Unlock()
	if alreadyRan || now.Hour() != s.config.DailyFullHour {
		return
	}

	s.mu.Lock()
	s.lastFullRun = currentDate
	s.mu.Unlock()

	s.logger.Info("Triggering daily full sync", zap.String("date", currentDate))
	s.runEntity(ctx, domainsync.EntityProducts)
	s.runEntity(ctx, domainsync.EntityOrders)
}

// runEntity runs one sync, skipping when a run for the same entity type is
// already in flight.
func (s *SyncScheduler) runEntity(ctx context.Context, entityType domainsync.EntityType) {
	s.mu.Lock()
	if s.inFlight[entityType] {
		s.mu.Unlock()
		s.logger.Info("Sync firing skipped, previous run still in flight",
			zap.String("entity_type", string(entityType)),
		)
		return
	}
	s.inFlight[entityType] = true
	s.lastRunAt[entityType] = time.Now()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight[entityType] = false
		s.mu.Unlock()
	}()

	// Stop cancels the loops, not a run already started. The firing gets a
	// context detached from the loop's cancellation so it finishes on its own.
	runCtx := context.WithoutCancel(ctx)
	if err := s.runner.SyncEntity(runCtx, entityType); err != nil {
		// The firing failed but the job stays scheduled.
		s.logger.Error("Scheduled sync failed",
			zap.String("entity_type", string(entityType)),
			zap.Error(err),
		)
	}
}
