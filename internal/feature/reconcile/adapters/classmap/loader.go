// Package classmap はクラスIDと商品ラベルの対応表のローダーを提供します。
package classmap

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"shelf_backend/internal/feature/reconcile/domain/entity"
)

// Default は学習済みモデルの11商品カタログです。
// CLASS_MAP_PATHが未設定の場合に使用します。
var Default = entity.ClassMap{
	0:  "MMs_peanut",
	1:  "MMs_regular",
	2:  "airheads",
	3:  "gummy_worms",
	4:  "milky_way",
	5:  "nerds",
	6:  "skittles",
	7:  "snickers",
	8:  "starbust",
	9:  "three_musketeers",
	10: "twizzlers",
}

// Load は環境変数CLASS_MAP_PATHのJSONファイルからクラスマップを読み込みます。
// 未設定の場合はDefaultを返します。ファイル形式は {"0": "MMs_peanut", ...} です。
func Load() (entity.ClassMap, error) {
	path := os.Getenv("CLASS_MAP_PATH")
	if path == "" {
		slog.Info("CLASS_MAP_PATHが未設定のため、デフォルトのクラスマップを使用します", "labels", len(Default))
		return Default, nil
	}
	return LoadFile(path)
}

// LoadFile は指定パスのJSONファイルからクラスマップを読み込みます。
func LoadFile(path string) (entity.ClassMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class map file: %w", err)
	}

	// JSONのキーは文字列のため、一旦map[string]stringで受けてintへ変換する
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse class map file: %w", err)
	}

	classMap := make(entity.ClassMap, len(raw))
	for key, label := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid class id %q in class map: %w", key, err)
		}
		classMap[id] = label
	}

	if len(classMap) == 0 {
		return nil, fmt.Errorf("class map file %s contains no entries", path)
	}
	return classMap, nil
}
