// Package file はinventoryフィーチャーのJSONファイルリポジトリ実装を提供します。
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"shelf_backend/internal/feature/inventory/domain/entity"
	"shelf_backend/internal/feature/inventory/usecase"
)

// inventoryFile はInventoryRepositoryインターフェースのJSONファイル実装です。
// ラベル→在庫数のマッピングを1つのJSONファイルとして保存します。
type inventoryFile struct {
	path string
}

// inventoryFileがInventoryRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.InventoryRepository = (*inventoryFile)(nil)

// NewInventoryFile は指定パスのJSONファイルを読み書きするリポジトリを生成します。
func NewInventoryFile(path string) *inventoryFile {
	return &inventoryFile{path: path}
}

// Load は在庫ファイルを読み込みます。
// ファイルが存在しない、または内容がJSONとして解釈できない場合は
// 空のストアを返します（ログのみ、非致命的）。
func (r *inventoryFile) Load(ctx context.Context) (entity.Store, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("在庫ファイルが見つかりません。空の在庫で開始します", "path", r.path)
		return entity.Store{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}

	var store entity.Store
	if err := json.Unmarshal(data, &store); err != nil {
		slog.Warn("在庫ファイルの読み取りに失敗しました。空の在庫で開始します", "path", r.path, "error", err)
		return entity.Store{}, nil
	}
	if store == nil {
		store = entity.Store{}
	}
	return store, nil
}

// Save は在庫ストア全体をJSONとして上書き保存します。
// 一時ファイルへ書き込んでからリネームすることで、書き込み途中のファイルが残らないようにします。
func (r *inventoryFile) Save(ctx context.Context, store entity.Store) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "inventory-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace inventory file: %w", err)
	}
	return nil
}
