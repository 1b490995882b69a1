package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/order"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/report"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/config"
)

func newSQLiteDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "history.db"),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func record(id, user string, at time.Time) *report.ExportRecord {
	return &report.ExportRecord{
		ID:         id,
		UserID:     user,
		UserName:   "Asha",
		Format:     "csv",
		FileName:   "orders-report.csv",
		Filters:    report.FilterSet{Parties: []string{"Sharma"}, Status: order.StatusPending},
		OrderCount: 3,
		RowCount:   7,
		SizeBytes:  512,
		CreatedAt:  at,
	}
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	_, err := NewDatabase(config.DatabaseConfig{Driver: "mysql"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestExportRecordRepository_SaveAndList(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormExportRecordRepository(db.DB)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, record("a", "u1", base)))
	require.NoError(t, repo.Save(ctx, record("b", "u1", base.Add(time.Hour))))
	require.NoError(t, repo.Save(ctx, record("c", "u2", base.Add(2*time.Hour))))

	got, err := repo.ListByUser(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID, "newest first")
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, []string{"Sharma"}, got[0].Filters.Parties)
	assert.Equal(t, order.StatusPending, got[0].Filters.Status)
	assert.Equal(t, 7, got[0].RowCount)
	assert.False(t, got[0].IsArchived())

	limited, err := repo.ListByUser(ctx, "u1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := repo.ListByUser(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestExportRecordRepository_DuplicateID(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormExportRecordRepository(db.DB)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, record("dup", "u1", time.Now())))
	assert.Error(t, repo.Save(ctx, record("dup", "u1", time.Now())))
}

func TestDatabase_TracingAndPing(t *testing.T) {
	db := newSQLiteDatabase(t)
	require.NoError(t, db.EnableTracing())
	assert.Equal(t, "sqlite", db.Driver())
	assert.NoError(t, db.Ping(context.Background()))

	repo := NewGormExportRecordRepository(db.DB)
	assert.NoError(t, repo.Save(context.Background(), record("traced", "u1", time.Now())))
}
