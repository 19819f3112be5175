package usecase

import (
	"log/slog"

	"shelf_backend/internal/feature/reconcile/domain/entity"
)

// ClassifyChanges はマッチング結果をラベルごとの符号付き在庫増減に変換します。
//
// マッチしたペアは重心のX座標のみで判定します:
//   - 右方向へ移動 (cx_after > cx_before) → 販売として -1
//   - 左方向へ移動 (cx_after < cx_before) → 補充として +1
//   - 移動なし (cx_after == cx_before)   → 増減なし
//
// 未マッチのbefore検出（消えた商品）は販売として -1。
// 未マッチのafter検出（現れた商品）も販売として -1 扱いです。
// 「出現＝販売」は直感に反しますが、現場で確認済みの業務ルールとして
// そのまま維持しています。変更はプロダクトオーナーのレビュー対象です。
func ClassifyChanges(before, after entity.DetectionSet, match entity.MatchResult, classMap entity.ClassMap) (entity.InventoryChanges, error) {
	changes := entity.InventoryChanges{}

	for _, pair := range match.Pairs {
		label := classMap.LabelOrID(before[pair.Before].ClassID)

		bc, err := before[pair.Before].BBox.Centroid()
		if err != nil {
			return nil, err
		}
		ac, err := after[pair.After].BBox.Centroid()
		if err != nil {
			return nil, err
		}

		switch {
		case ac.X > bc.X:
			slog.Info("商品が左→右へ移動（販売）", "label", label, "cx_before", bc.X, "cx_after", ac.X)
			changes.Add(label, -1)
		case ac.X < bc.X:
			slog.Info("商品が右→左へ移動（補充）", "label", label, "cx_before", bc.X, "cx_after", ac.X)
			changes.Add(label, +1)
		default:
			slog.Info("商品は移動なし", "label", label, "distance", pair.Distance)
		}
	}

	for _, i := range match.UnmatchedBefore {
		label := classMap.LabelOrID(before[i].ClassID)
		slog.Info("商品がフレームから消失（販売）", "label", label)
		changes.Add(label, -1)
	}

	for _, j := range match.UnmatchedAfter {
		label := classMap.LabelOrID(after[j].ClassID)
		slog.Info("商品がフレームに出現（販売扱い）", "label", label)
		changes.Add(label, -1)
	}

	return changes, nil
}
