// Package entity はitemsフィーチャーのドメインモデルを定義します。
package entity

// Item はクラスマップに登録された商品1件と現在の在庫数です。
type Item struct {
	ClassID int    // 検出器のクラスID
	Label   string // 商品ラベル
	Count   int    // 現在の在庫数。在庫ストアに未登場のラベルは0
}
