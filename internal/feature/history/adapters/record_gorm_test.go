package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shelf_backend/internal/feature/history/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&ScanRecordModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// record creates a scan record entity for testing.
func record(startedAt time.Time, changes map[string]int) entity.ScanRecord {
	return entity.ScanRecord{
		StartedAt:   startedAt,
		FinishedAt:  startedAt.Add(10 * time.Second),
		Changes:     changes,
		BeforeCount: len(changes),
		AfterCount:  len(changes),
		Summary:     "",
	}
}

func TestScanRecordGorm_Create(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewScanRecordRepository(db)
	ctx := context.Background()

	rec := record(time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC), map[string]int{"snickers": -1})
	err := repo.Create(ctx, &rec)

	require.NoError(t, err)
	assert.NotZero(t, rec.ID, "ID should be assigned after create")

	var m ScanRecordModel
	require.NoError(t, db.First(&m, rec.ID).Error)
	assert.JSONEq(t, `{"snickers": -1}`, m.Changes)
}

func TestScanRecordGorm_FindRecent(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewScanRecordRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := record(base.Add(time.Duration(i)*time.Minute), map[string]int{"skittles": -1})
		require.NoError(t, repo.Create(ctx, &rec))
	}

	got, err := repo.FindRecent(ctx, 3)

	require.NoError(t, err)
	require.Len(t, got, 3)
	// 新しい順に返る
	assert.True(t, got[0].StartedAt.After(got[1].StartedAt))
	assert.True(t, got[1].StartedAt.After(got[2].StartedAt))
	assert.Equal(t, map[string]int{"skittles": -1}, got[0].Changes)
}

func TestScanRecordGorm_FindRecent_Empty(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewScanRecordRepository(db)

	got, err := repo.FindRecent(context.Background(), 10)

	require.NoError(t, err)
	assert.Empty(t, got)
}
