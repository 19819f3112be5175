// Package usecase はhistoryフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"shelf_backend/internal/feature/history/domain/entity"
)

const (
	// DefaultListLimit は一覧取得のデフォルト件数です。
	DefaultListLimit = 20
	// MaxListLimit は一覧取得の最大件数です。
	MaxListLimit = 100
)

// ScanRecordRepository はスキャン記録の永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ScanRecordRepository interface {
	// Create は新しいスキャン記録を永続化します。
	Create(ctx context.Context, record *entity.ScanRecord) error

	// FindRecent は新しい順にスキャン記録を取得します。
	FindRecent(ctx context.Context, limit int) ([]entity.ScanRecord, error)
}

// historyUsecase はスキャン記録の保存と一覧取得を提供します。
type historyUsecase struct {
	repo ScanRecordRepository
}

// NewHistoryUsecase はhistoryUsecaseの新しいインスタンスを生成します。
func NewHistoryUsecase(repo ScanRecordRepository) *historyUsecase {
	return &historyUsecase{repo: repo}
}

// Record は完了したサイクルの記録を保存します。
func (u *historyUsecase) Record(ctx context.Context, record entity.ScanRecord) error {
	if record.FinishedAt.Before(record.StartedAt) {
		return fmt.Errorf("finished_at is before started_at")
	}
	if err := u.repo.Create(ctx, &record); err != nil {
		return fmt.Errorf("failed to create scan record: %w", err)
	}
	return nil
}

// ListRecent は新しい順にスキャン記録を返します。
// limitが0以下の場合はDefaultListLimit、MaxListLimitを超える場合はMaxListLimitに丸めます。
func (u *historyUsecase) ListRecent(ctx context.Context, limit int) ([]entity.ScanRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	records, err := u.repo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scan records: %w", err)
	}
	return records, nil
}
