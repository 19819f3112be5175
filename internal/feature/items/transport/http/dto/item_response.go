// Package dto はitemsフィーチャーのHTTPリクエスト/レスポンス型を定義します。
package dto

// ItemResponse は商品カタログ1件のレスポンスです。
type ItemResponse struct {
	ClassID int    `json:"class_id"`
	Label   string `json:"label"`
	Count   int    `json:"count"`
}
