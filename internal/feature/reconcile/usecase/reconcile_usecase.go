package usecase

import (
	"context"
	"fmt"
	"log/slog"

	inventoryentity "shelf_backend/internal/feature/inventory/domain/entity"
	"shelf_backend/internal/feature/reconcile/domain/entity"
)

const (
	// MaxImageSize は検出対象画像の最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024

	// SummaryPromptTemplate はスキャン結果サマリーのプロンプトテンプレートです。
	SummaryPromptTemplate = "棚スキャンで次の在庫増減が検出されました: %v。日本語で、店舗オペレーター向けに1〜2文で要約して。"
)

// Detector は画像からオブジェクトを検出するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Detector interface {
	// Detect は画像バイト列からオブジェクトを検出し、検出列を返します。
	Detect(ctx context.Context, imageData []byte) (entity.DetectionSet, error)
}

// InventoryCommitter は在庫増減の適用と保存を行うインターフェースです。
type InventoryCommitter interface {
	// Commit は現在の在庫ストアに増減を適用し、保存後の新しいストアを返します。
	Commit(ctx context.Context, changes map[string]int) (inventoryentity.Store, error)
}

// Summarizer はスキャン結果のサマリーを生成するインターフェースです。
type Summarizer interface {
	// Summarize はプロンプトからサマリー文を生成します。
	Summarize(ctx context.Context, prompt string) (string, error)
}

// CycleResult は1回の照合サイクルの結果です。
type CycleResult struct {
	Changes     entity.InventoryChanges // ラベルごとの符号付き増減
	Store       inventoryentity.Store   // 適用後の在庫ストア
	BeforeCount int                     // beforeフレームの有効検出数
	AfterCount  int                     // afterフレームの有効検出数
	Summary     string                  // オペレーター向けサマリー（生成器が無い場合は空）
}

// reconcileUsecase はbefore/after比較による在庫照合のビジネスロジックを提供します。
type reconcileUsecase struct {
	detector   Detector
	inventory  InventoryCommitter
	summarizer Summarizer // nilの場合、サマリー生成をスキップ
	classMap   entity.ClassMap
}

// NewReconcileUsecase はreconcileUsecaseの新しいインスタンスを生成します。
// summarizerはnilを許容します（サマリー生成なしで動作）。
func NewReconcileUsecase(detector Detector, inventory InventoryCommitter, summarizer Summarizer, classMap entity.ClassMap) *reconcileUsecase {
	return &reconcileUsecase{
		detector:   detector,
		inventory:  inventory,
		summarizer: summarizer,
		classMap:   classMap,
	}
}

// Reconcile はbefore/after2枚の画像から在庫増減を算出し、在庫ストアへ適用します。
//
// 処理順: 両画像の検出 → クラスマップ外の検出を除外 → 貪欲マッチング → 増減分類 →
// 在庫への適用・保存 → サマリー生成（任意）。
// サマリー生成の失敗は非致命的で、サイクルは常に（空になり得る）増減マップを返して完了します。
func (u *reconcileUsecase) Reconcile(ctx context.Context, beforeImage, afterImage []byte) (*CycleResult, error) {
	if len(beforeImage) == 0 || len(afterImage) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}
	if len(beforeImage) > MaxImageSize || len(afterImage) > MaxImageSize {
		return nil, fmt.Errorf("image size exceeds maximum of %d bytes", MaxImageSize)
	}

	beforeSet, err := u.detector.Detect(ctx, beforeImage)
	if err != nil {
		return nil, fmt.Errorf("failed to detect objects in before frame: %w", err)
	}
	afterSet, err := u.detector.Detect(ctx, afterImage)
	if err != nil {
		return nil, fmt.Errorf("failed to detect objects in after frame: %w", err)
	}

	beforeSet = u.filterKnown(beforeSet)
	afterSet = u.filterKnown(afterSet)

	if err := beforeSet.Validate(); err != nil {
		return nil, fmt.Errorf("before frame: %w", err)
	}
	if err := afterSet.Validate(); err != nil {
		return nil, fmt.Errorf("after frame: %w", err)
	}

	match, err := MatchDetections(beforeSet, afterSet)
	if err != nil {
		return nil, fmt.Errorf("failed to match detections: %w", err)
	}

	changes, err := ClassifyChanges(beforeSet, afterSet, match, u.classMap)
	if err != nil {
		return nil, fmt.Errorf("failed to classify changes: %w", err)
	}

	store, err := u.inventory.Commit(ctx, changes)
	if err != nil {
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}

	result := &CycleResult{
		Changes:     changes,
		Store:       store,
		BeforeCount: len(beforeSet),
		AfterCount:  len(afterSet),
	}

	if u.summarizer != nil && len(changes) > 0 {
		prompt := fmt.Sprintf(SummaryPromptTemplate, map[string]int(changes))
		summary, err := u.summarizer.Summarize(ctx, prompt)
		if err != nil {
			// サマリーは補助情報。失敗してもサイクルは成立させる
			slog.Warn("スキャンサマリーの生成に失敗しました", "error", err)
		} else {
			result.Summary = summary
		}
	}

	return result, nil
}

// filterKnown はクラスマップに存在しないクラスIDの検出を除外します。
// 除外した検出はログに記録し、サイクルは継続します。
func (u *reconcileUsecase) filterKnown(set entity.DetectionSet) entity.DetectionSet {
	out := make(entity.DetectionSet, 0, len(set))
	for _, d := range set {
		if !u.classMap.Contains(d.ClassID) {
			slog.Warn("未知のクラスIDの検出をスキップします", "class_id", d.ClassID, "confidence", d.Confidence)
			continue
		}
		out = append(out, d)
	}
	return out
}
