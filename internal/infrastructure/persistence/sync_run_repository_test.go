package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shopsync/backend/internal/domain/sync"
)

func newMockSyncRunRepository(t *testing.T) (*GormSyncRunRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSyncRunRepository(gormDB), mock, mockDB
}

func TestGormSyncRunRepository_Create(t *testing.T) {
	repo, mock, mockDB := newMockSyncRunRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`INSERT INTO "sync_runs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	run := sync.NewRun(sync.EntityProducts)
	require.NoError(t, repo.Create(context.Background(), run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSyncRunRepository_Update(t *testing.T) {
	t.Run("persists transition", func(t *testing.T) {
		repo, mock, mockDB := newMockSyncRunRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "sync_runs" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		run := sync.NewRun(sync.EntityOrders)
		run.ID = 3
		require.NoError(t, run.Complete(40, 5, 35))

		require.NoError(t, repo.Update(context.Background(), run))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing run surfaces tracker error", func(t *testing.T) {
		repo, mock, mockDB := newMockSyncRunRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "sync_runs" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		run := sync.NewRun(sync.EntityOrders)
		run.ID = 99
		require.NoError(t, run.Complete(1, 0, 1))

		err := repo.Update(context.Background(), run)
		assert.ErrorIs(t, err, sync.ErrTrackerWrite)
	})
}

func TestGormSyncRunRepository_LatestPerType(t *testing.T) {
	repo, mock, mockDB := newMockSyncRunRepository(t)
	defer mockDB.Close()

	now := time.Now()
	productRows := sqlmock.NewRows([]string{"id", "entity_type", "status", "started_at"}).
		AddRow(int64(5), "products", "completed", now)
	mock.ExpectQuery(`SELECT \* FROM "sync_runs" WHERE entity_type = \$1 ORDER BY started_at DESC`).
		WithArgs("products", 1).
		WillReturnRows(productRows)
	mock.ExpectQuery(`SELECT \* FROM "sync_runs" WHERE entity_type = \$1 ORDER BY started_at DESC`).
		WithArgs("orders", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	latest, err := repo.LatestPerType(context.Background())

	require.NoError(t, err)
	require.Contains(t, latest, sync.EntityProducts)
	assert.Equal(t, sync.RunCompleted, latest[sync.EntityProducts].Status)
	assert.NotContains(t, latest, sync.EntityOrders)
	assert.NoError(t, mock.ExpectationsWereMet())
}
