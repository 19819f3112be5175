// Package usecase はreconcileフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"math"

	"shelf_backend/internal/feature/reconcile/domain/entity"
)

// MatchDetections はbefore検出とafter検出を同一クラス内で貪欲にマッチングします。
//
// beforeを先頭から順に走査し、各検出について「未確保かつ同一クラスID」のafter検出の中から
// 重心間ユークリッド距離が最小のものを選びます。距離の閾値は設けず、同一クラスの候補が
// 残っている限り、どれだけ離れていても必ずマッチします。選ばれたafterインデックスは即座に
// 確保され、後続のbefore検出からは再利用できません。候補が残っていないbefore検出は
// 未マッチとして記録されます。
//
// 入力順が同じであれば結果は決定的です。先に走査されたbefore検出が優先されるため、
// 大域最適な割り当て（最小コスト2部マッチング）にはなりません。これは意図した単純化であり、
// 観測可能な出力を変えるため「改善」してはいけません。
func MatchDetections(before, after entity.DetectionSet) (entity.MatchResult, error) {
	result := entity.MatchResult{
		Pairs:           []entity.MatchedPair{},
		UnmatchedBefore: []int{},
		UnmatchedAfter:  []int{},
	}

	afterCentroids := make([]entity.Point, len(after))
	for j, d := range after {
		c, err := d.BBox.Centroid()
		if err != nil {
			return entity.MatchResult{}, err
		}
		afterCentroids[j] = c
	}

	claimed := make(map[int]bool, len(after))

	for i, b := range before {
		bc, err := b.BBox.Centroid()
		if err != nil {
			return entity.MatchResult{}, err
		}

		bestIndex := -1
		minDist := math.Inf(1)
		for j, a := range after {
			if claimed[j] || a.ClassID != b.ClassID {
				continue
			}
			if dist := bc.Dist(afterCentroids[j]); dist < minDist {
				minDist = dist
				bestIndex = j
			}
		}

		if bestIndex < 0 {
			result.UnmatchedBefore = append(result.UnmatchedBefore, i)
			continue
		}
		claimed[bestIndex] = true
		result.Pairs = append(result.Pairs, entity.MatchedPair{
			Before:   i,
			After:    bestIndex,
			Distance: minDist,
		})
	}

	for j := range after {
		if !claimed[j] {
			result.UnmatchedAfter = append(result.UnmatchedAfter, j)
		}
	}

	return result, nil
}
