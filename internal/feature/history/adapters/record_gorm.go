// Package adapters はhistoryフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shelf_backend/internal/feature/history/domain/entity"
	"shelf_backend/internal/feature/history/usecase"
)

// scanRecordGorm はScanRecordRepositoryインターフェースのGORM実装です。
type scanRecordGorm struct {
	db *gorm.DB
}

// scanRecordGormがScanRecordRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ScanRecordRepository = (*scanRecordGorm)(nil)

// NewScanRecordRepository は指定されたgorm.DB接続でscanRecordGormの新しいインスタンスを生成します。
func NewScanRecordRepository(db *gorm.DB) *scanRecordGorm {
	return &scanRecordGorm{db: db}
}

// ScanRecordModel はscan_recordsテーブルのGORMモデルです。
// 増減マップはJSON文字列として保存します。
type ScanRecordModel struct {
	ID          uint      `gorm:"primaryKey"`
	StartedAt   time.Time `gorm:"not null;index"`
	FinishedAt  time.Time `gorm:"not null"`
	Changes     string    `gorm:"type:text;not null"`
	BeforeCount int       `gorm:"not null"`
	AfterCount  int       `gorm:"not null"`
	Summary     string    `gorm:"type:text"`
}

func (ScanRecordModel) TableName() string {
	return "scan_records"
}

func toModel(e *entity.ScanRecord) (ScanRecordModel, error) {
	changes, err := json.Marshal(e.Changes)
	if err != nil {
		return ScanRecordModel{}, fmt.Errorf("failed to marshal changes: %w", err)
	}
	return ScanRecordModel{
		StartedAt:   e.StartedAt,
		FinishedAt:  e.FinishedAt,
		Changes:     string(changes),
		BeforeCount: e.BeforeCount,
		AfterCount:  e.AfterCount,
		Summary:     e.Summary,
	}, nil
}

func toEntity(m ScanRecordModel) entity.ScanRecord {
	changes := map[string]int{}
	// 壊れた行があっても一覧全体は返す。増減は空として扱う
	_ = json.Unmarshal([]byte(m.Changes), &changes)
	return entity.ScanRecord{
		ID:          m.ID,
		StartedAt:   m.StartedAt,
		FinishedAt:  m.FinishedAt,
		Changes:     changes,
		BeforeCount: m.BeforeCount,
		AfterCount:  m.AfterCount,
		Summary:     m.Summary,
	}
}

// Create はスキャン記録をデータベースに追加します。
func (r *scanRecordGorm) Create(ctx context.Context, record *entity.ScanRecord) error {
	m, err := toModel(record)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	record.ID = m.ID
	return nil
}

// FindRecent は開始時刻の新しい順にスキャン記録を取得します。
func (r *scanRecordGorm) FindRecent(ctx context.Context, limit int) ([]entity.ScanRecord, error) {
	var rows []ScanRecordModel
	q := r.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.ScanRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}
