// Package entity はreconcileフィーチャーのドメインモデルを定義します。
package entity

import (
	"math"

	"shelf_backend/internal/feature/reconcile/domain"
)

// BBox は検出オブジェクトのバウンディングボックスです。
// 座標は [xmin, ymin, xmax, ymax] のピクセル値で、xmin <= xmax かつ ymin <= ymax を満たす必要があります。
type BBox struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

// Point はバウンディングボックスの重心座標を表します。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Validate は座標の整合性を検証します。
// xmin > xmax または ymin > ymax の場合、domain.ErrInvalidBBoxを返します。
func (b BBox) Validate() error {
	if b.XMin > b.XMax || b.YMin > b.YMax {
		return domain.ErrInvalidBBox
	}
	return nil
}

// Centroid はバウンディングボックスの幾何中心 ((xmin+xmax)/2, (ymin+ymax)/2) を返します。
// 座標が不正な場合はdomain.ErrInvalidBBoxを返します。
func (b BBox) Centroid() (Point, error) {
	if err := b.Validate(); err != nil {
		return Point{}, err
	}
	return Point{
		X: (b.XMin + b.XMax) / 2,
		Y: (b.YMin + b.YMax) / 2,
	}, nil
}

// Dist は2つの重心間のユークリッド距離を返します。
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Detection は1フレーム内の1つのオブジェクト観測です。
// 検出器の出力1件に対応し、1回の照合サイクル内でのみ生存します。
type Detection struct {
	ClassID    int     `json:"class_id"`
	BBox       BBox    `json:"bbox"`
	Confidence float64 `json:"confidence"`
}

// DetectionSet は1スナップショット分の検出列です。
// 順序はマッチャーの探索順（先勝ち）を決定するため、単なる集合ではなく意味を持ちます。
type DetectionSet []Detection

// Validate は全検出のバウンディングボックスを検証します。
// 最初に見つかった不正なボックスでdomain.ErrInvalidBBoxを返します。
func (s DetectionSet) Validate() error {
	for _, d := range s {
		if err := d.BBox.Validate(); err != nil {
			return err
		}
	}
	return nil
}
