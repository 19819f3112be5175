// Package domain はreconcileフィーチャーのドメインエラーを定義します。
package domain

import "errors"

// 照合処理のドメインエラー。
// ビジネスロジック上の失敗を表し、上位レイヤーで適切にハンドリングされます。
var (
	// ErrInvalidBBox はバウンディングボックスの座標が不正（xmin > xmax または ymin > ymax）であることを示します。
	// 検出器の出力が壊れている場合に返され、リトライ対象ではありません。
	ErrInvalidBBox = errors.New("bounding box coordinates are invalid")
)
