package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"shelf_backend/internal/feature/history/domain/entity"
)

// mockScanRecordRepository はScanRecordRepositoryのモック実装です。
type mockScanRecordRepository struct {
	CreateFunc     func(ctx context.Context, record *entity.ScanRecord) error
	FindRecentFunc func(ctx context.Context, limit int) ([]entity.ScanRecord, error)

	CreateCalls int
}

func (m *mockScanRecordRepository) Create(ctx context.Context, record *entity.ScanRecord) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	return nil
}

func (m *mockScanRecordRepository) FindRecent(ctx context.Context, limit int) ([]entity.ScanRecord, error) {
	if m.FindRecentFunc != nil {
		return m.FindRecentFunc(ctx, limit)
	}
	return nil, nil
}

func TestHistoryUsecase_Record(t *testing.T) {
	now := time.Now()

	t.Run("success: 記録を保存する", func(t *testing.T) {
		repo := &mockScanRecordRepository{}
		uc := NewHistoryUsecase(repo)

		err := uc.Record(context.Background(), entity.ScanRecord{
			StartedAt:  now,
			FinishedAt: now.Add(10 * time.Second),
			Changes:    map[string]int{"skittles": -1},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.CreateCalls != 1 {
			t.Errorf("expected 1 create call, got %d", repo.CreateCalls)
		}
	})

	t.Run("error: 終了時刻が開始時刻より前", func(t *testing.T) {
		repo := &mockScanRecordRepository{}
		uc := NewHistoryUsecase(repo)

		err := uc.Record(context.Background(), entity.ScanRecord{
			StartedAt:  now,
			FinishedAt: now.Add(-time.Second),
		})
		if err == nil {
			t.Fatal("expected error but got nil")
		}
		if repo.CreateCalls != 0 {
			t.Errorf("expected no create calls, got %d", repo.CreateCalls)
		}
	})

	t.Run("error: リポジトリの失敗を伝播する", func(t *testing.T) {
		wantErr := errors.New("database unavailable")
		repo := &mockScanRecordRepository{
			CreateFunc: func(ctx context.Context, record *entity.ScanRecord) error {
				return wantErr
			},
		}
		uc := NewHistoryUsecase(repo)

		err := uc.Record(context.Background(), entity.ScanRecord{
			StartedAt:  now,
			FinishedAt: now,
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected wrapped %v, got %v", wantErr, err)
		}
	})
}

func TestHistoryUsecase_ListRecent(t *testing.T) {
	t.Run("success: limitをそのまま渡す", func(t *testing.T) {
		repo := &mockScanRecordRepository{
			FindRecentFunc: func(ctx context.Context, limit int) ([]entity.ScanRecord, error) {
				if limit != 5 {
					t.Errorf("expected limit 5, got %d", limit)
				}
				return []entity.ScanRecord{{ID: 1}}, nil
			},
		}
		uc := NewHistoryUsecase(repo)

		records, err := uc.ListRecent(context.Background(), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("expected 1 record, got %d", len(records))
		}
	})

	t.Run("success: limit0以下はデフォルト値に丸める", func(t *testing.T) {
		repo := &mockScanRecordRepository{
			FindRecentFunc: func(ctx context.Context, limit int) ([]entity.ScanRecord, error) {
				if limit != DefaultListLimit {
					t.Errorf("expected limit %d, got %d", DefaultListLimit, limit)
				}
				return nil, nil
			},
		}
		uc := NewHistoryUsecase(repo)

		if _, err := uc.ListRecent(context.Background(), 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("success: 上限を超えるlimitは最大値に丸める", func(t *testing.T) {
		repo := &mockScanRecordRepository{
			FindRecentFunc: func(ctx context.Context, limit int) ([]entity.ScanRecord, error) {
				if limit != MaxListLimit {
					t.Errorf("expected limit %d, got %d", MaxListLimit, limit)
				}
				return nil, nil
			},
		}
		uc := NewHistoryUsecase(repo)

		if _, err := uc.ListRecent(context.Background(), 1000); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
