// Package usecase はitemsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"sort"

	inventoryentity "shelf_backend/internal/feature/inventory/domain/entity"
	"shelf_backend/internal/feature/items/domain/entity"
	reconcileentity "shelf_backend/internal/feature/reconcile/domain/entity"
)

// InventoryReader は現在の在庫ストアを参照するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type InventoryReader interface {
	Get(ctx context.Context) (inventoryentity.Store, error)
}

// itemsUsecase はクラスマップと在庫ストアを結合した商品カタログを提供します。
type itemsUsecase struct {
	classMap  reconcileentity.ClassMap
	inventory InventoryReader
}

// NewItemsUsecase はitemsUsecaseの新しいインスタンスを生成します。
func NewItemsUsecase(classMap reconcileentity.ClassMap, inventory InventoryReader) *itemsUsecase {
	return &itemsUsecase{classMap: classMap, inventory: inventory}
}

// List はクラスマップの全商品を現在の在庫数と共にクラスID昇順で返します。
// 在庫ストアに登場しないラベルの在庫数は0です。
func (u *itemsUsecase) List(ctx context.Context) ([]entity.Item, error) {
	store, err := u.inventory.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	items := make([]entity.Item, 0, len(u.classMap))
	for id, label := range u.classMap {
		items = append(items, entity.Item{
			ClassID: id,
			Label:   label,
			Count:   store[label],
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ClassID < items[j].ClassID })
	return items, nil
}
