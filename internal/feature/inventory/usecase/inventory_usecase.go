// Package usecase はinventoryフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"shelf_backend/internal/feature/inventory/domain/entity"
)

// InventoryRepository は在庫ストアの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type InventoryRepository interface {
	// Load は永続化された在庫ストアを読み込みます。
	// ストアが存在しない、または内容が壊れている場合は空のストアを返します（非致命的）。
	Load(ctx context.Context) (entity.Store, error)

	// Save は在庫ストア全体を上書き保存します。
	Save(ctx context.Context, store entity.Store) error
}

// inventoryUsecase は在庫ストアの読み取りと更新適用を提供します。
type inventoryUsecase struct {
	repo InventoryRepository
}

// NewInventoryUsecase はinventoryUsecaseの新しいインスタンスを生成します。
func NewInventoryUsecase(repo InventoryRepository) *inventoryUsecase {
	return &inventoryUsecase{repo: repo}
}

// Apply は在庫ストアに増減を適用した新しいストアを返します。
// 呼び出し元のストアは変更しません（コピーオンライト）。
// 増減対象のラベルがストアに存在しない場合は0で遅延初期化します（警告ログ、非致命的）。
// 上限・下限のクランプは行わず、在庫数は負になり得ます。
func Apply(current entity.Store, changes map[string]int) entity.Store {
	next := current.Clone()

	for label, delta := range changes {
		if _, ok := next[label]; !ok {
			slog.Warn("在庫に存在しないラベルを0で初期化します", "label", label)
			next[label] = 0
		}
		next[label] += delta
	}

	return next
}

// Get は現在の在庫ストアを返します。
func (u *inventoryUsecase) Get(ctx context.Context) (entity.Store, error) {
	store, err := u.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	return store, nil
}

// Commit は現在のストアに増減を適用し、新しいストアを保存して返します。
// 読み取り・適用・書き込みを1回の呼び出しにまとめます。同一ストアへの並行Commitは
// 失われた更新を生むため、呼び出し側（スキャンユースケース）が直列化します。
func (u *inventoryUsecase) Commit(ctx context.Context, changes map[string]int) (entity.Store, error) {
	current, err := u.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	next := Apply(current, changes)

	if err := u.repo.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save inventory: %w", err)
	}
	return next, nil
}
