package sync

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/catalog"
	"github.com/shopsync/backend/internal/domain/shared"
	domainsync "github.com/shopsync/backend/internal/domain/sync"
)

// fakeSource serves a fixed set of product records through since_id pagination
type fakeSource struct {
	records    []domainsync.Record
	fetchCalls int
	failAtCall int // 1-based call index that returns an error, 0 disables
}

func (f *fakeSource) FetchPage(ctx context.Context, entityType domainsync.EntityType, cursor string, pageSize int) ([]domainsync.Record, string, error) {
	f.fetchCalls++
	if f.failAtCall != 0 && f.fetchCalls == f.failAtCall {
		return nil, "", fmt.Errorf("%w: simulated outage", domainsync.ErrRemoteFetch)
	}

	start := 0
	if cursor != "" {
		for i, r := range f.records {
			if r.ExternalID() == cursor {
				start = i + 1
				break
			}
		}
	}
	end := start + pageSize
	if end > len(f.records) {
		end = len(f.records)
	}
	page := f.records[start:end]
	next := ""
	if len(page) > 0 {
		next = page[len(page)-1].ExternalID()
	}
	return page, next, nil
}

// fakeStore persists records in memory keyed by external ID
type fakeStore struct {
	seen    map[string]int
	failIDs map[string]bool
	upserts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{seen: map[string]int{}, failIDs: map[string]bool{}}
}

func (f *fakeStore) Upsert(ctx context.Context, record domainsync.Record) (bool, error) {
	f.upserts++
	id := record.ExternalID()
	if f.failIDs[id] {
		return false, fmt.Errorf("%w: %s", domainsync.ErrRecordUpsert, id)
	}
	f.seen[id]++
	return f.seen[id] == 1, nil
}

// fakeRunRepo tracks runs in memory
type fakeRunRepo struct {
	runs      []*domainsync.Run
	createErr error
	updateErr error
	nextID    int64
}

func (f *fakeRunRepo) Create(ctx context.Context, run *domainsync.Run) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	run.ID = f.nextID
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRunRepo) Update(ctx context.Context, run *domainsync.Run) error {
	return f.updateErr
}

func (f *fakeRunRepo) List(ctx context.Context, filter shared.Filter) ([]domainsync.Run, int64, error) {
	runs := make([]domainsync.Run, len(f.runs))
	for i, r := range f.runs {
		runs[i] = *r
	}
	return runs, int64(len(runs)), nil
}

func (f *fakeRunRepo) LatestPerType(ctx context.Context) (map[domainsync.EntityType]*domainsync.Run, error) {
	latest := make(map[domainsync.EntityType]*domainsync.Run)
	for _, r := range f.runs {
		latest[r.EntityType] = r
	}
	return latest, nil
}

func makeProducts(n int) []domainsync.Record {
	records := make([]domainsync.Record, n)
	for i := 0; i < n; i++ {
		records[i] = &catalog.Product{ShopifyID: strconv.Itoa(i + 1)}
	}
	return records
}

func newService(source *fakeSource, store *fakeStore, runs *fakeRunRepo, pageSize int, strict bool) *Service {
	return NewService(source, store, runs, zap.NewNop(), ServiceConfig{PageSize: pageSize, StrictTracking: strict})
}

func TestServiceSyncEntity(t *testing.T) {
	t.Run("paginates until short page", func(t *testing.T) {
		source := &fakeSource{records: makeProducts(25)}
		store := newFakeStore()
		runs := &fakeRunRepo{}

		result, err := newService(source, store, runs, 10, true).SyncEntity(context.Background(), domainsync.EntityProducts)

		require.NoError(t, err)
		// 10 + 10 + 5: the short third page terminates the loop
		assert.Equal(t, 3, source.fetchCalls)
		assert.Equal(t, int64(25), result.Processed)
		assert.Equal(t, int64(25), result.Created)
		assert.Equal(t, int64(0), result.Updated)
	})

	t.Run("full last page costs one extra fetch", func(t *testing.T) {
		source := &fakeSource{records: makeProducts(20)}
		store := newFakeStore()

		result, err := newService(source, store, &fakeRunRepo{}, 10, true).SyncEntity(context.Background(), domainsync.EntityProducts)

		require.NoError(t, err)
		assert.Equal(t, 3, source.fetchCalls)
		assert.Equal(t, int64(20), result.Processed)
	})

	t.Run("empty collection still fetches once", func(t *testing.T) {
		source := &fakeSource{}
		result, err := newService(source, newFakeStore(), &fakeRunRepo{}, 10, true).SyncEntity(context.Background(), domainsync.EntityProducts)

		require.NoError(t, err)
		assert.Equal(t, 1, source.fetchCalls)
		assert.Equal(t, int64(0), result.Processed)
	})

	t.Run("record failure is skipped not fatal", func(t *testing.T) {
		source := &fakeSource{records: makeProducts(10)}
		store := newFakeStore()
		store.failIDs["3"] = true
		runs := &fakeRunRepo{}

		result, err := newService(source, store, runs, 250, true).SyncEntity(context.Background(), domainsync.EntityProducts)

		require.NoError(t, err)
		assert.Equal(t, int64(9), result.Processed)
		assert.Equal(t, int64(1), result.Failed)
		require.Len(t, runs.runs, 1)
		assert.Equal(t, domainsync.RunCompleted, runs.runs[0].Status)
		assert.Equal(t, int64(9), runs.runs[0].RecordsTotal)
	})

	t.Run("fetch failure marks run failed", func(t *testing.T) {
		source := &fakeSource{records: makeProducts(25), failAtCall: 2}
		runs := &fakeRunRepo{}

		_, err := newService(source, newFakeStore(), runs, 10, true).SyncEntity(context.Background(), domainsync.EntityProducts)

		require.ErrorIs(t, err, domainsync.ErrRemoteFetch)
		require.Len(t, runs.runs, 1)
		run := runs.runs[0]
		assert.Equal(t, domainsync.RunFailed, run.Status)
		assert.Equal(t, int64(10), run.RecordsTotal)
		assert.Contains(t, run.ErrorMessage, "simulated outage")
	})

	t.Run("re-sync reports updates not creates", func(t *testing.T) {
		source := &fakeSource{records: makeProducts(5)}
		store := newFakeStore()
		runs := &fakeRunRepo{}
		svc := newService(source, store, runs, 250, true)

		_, err := svc.SyncEntity(context.Background(), domainsync.EntityProducts)
		require.NoError(t, err)
		result, err := svc.SyncEntity(context.Background(), domainsync.EntityProducts)
		require.NoError(t, err)

		assert.Equal(t, int64(5), result.Processed)
		assert.Equal(t, int64(0), result.Created)
		assert.Equal(t, int64(5), result.Updated)

		// The second run's row carries all three counters.
		require.Len(t, runs.runs, 2)
		assert.Equal(t, int64(5), runs.runs[1].RecordsTotal)
		assert.Equal(t, int64(0), runs.runs[1].RecordsNew)
		assert.Equal(t, int64(5), runs.runs[1].RecordsUpdated)
	})

	t.Run("unknown entity type rejected", func(t *testing.T) {
		_, err := newService(&fakeSource{}, newFakeStore(), &fakeRunRepo{}, 10, true).
			SyncEntity(context.Background(), domainsync.EntityType("customers"))
		assert.ErrorIs(t, err, domainsync.ErrUnknownEntity)
	})
}

func TestServiceTrackerFailures(t *testing.T) {
	t.Run("strict mode propagates create failure", func(t *testing.T) {
		runs := &fakeRunRepo{createErr: domainsync.ErrTrackerWrite}
		source := &fakeSource{records: makeProducts(3)}

		_, err := newService(source, newFakeStore(), runs, 10, true).SyncEntity(context.Background(), domainsync.EntityProducts)

		require.ErrorIs(t, err, domainsync.ErrTrackerWrite)
		assert.Equal(t, 0, source.fetchCalls)
	})

	t.Run("lenient mode syncs without tracking", func(t *testing.T) {
		runs := &fakeRunRepo{createErr: domainsync.ErrTrackerWrite}
		store := newFakeStore()

		result, err := newService(&fakeSource{records: makeProducts(3)}, store, runs, 10, false).
			SyncEntity(context.Background(), domainsync.EntityProducts)

		require.NoError(t, err)
		assert.Equal(t, int64(3), result.Processed)
		assert.Equal(t, 3, store.upserts)
	})

	t.Run("strict mode propagates completion update failure", func(t *testing.T) {
		runs := &fakeRunRepo{updateErr: errors.New("db gone")}

		result, err := newService(&fakeSource{records: makeProducts(3)}, newFakeStore(), runs, 10, true).
			SyncEntity(context.Background(), domainsync.EntityProducts)

		require.Error(t, err)
		// Data sync itself succeeded; the result is still returned.
		require.NotNil(t, result)
		assert.Equal(t, int64(3), result.Processed)
	})
}

func TestServiceSyncAll(t *testing.T) {
	source := &fakeSource{records: makeProducts(4)}
	runs := &fakeRunRepo{}

	results, err := newService(source, newFakeStore(), runs, 250, true).SyncAll(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Contains(t, results, domainsync.EntityProducts)
	assert.Contains(t, results, domainsync.EntityOrders)
	assert.Len(t, runs.runs, 2)
}

func TestServiceStatus(t *testing.T) {
	runs := &fakeRunRepo{}
	svc := newService(&fakeSource{records: makeProducts(2)}, newFakeStore(), runs, 250, true)

	_, err := svc.SyncEntity(context.Background(), domainsync.EntityProducts)
	require.NoError(t, err)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	require.Contains(t, status, "products")
	assert.Equal(t, "completed", status["products"].Status)
}
