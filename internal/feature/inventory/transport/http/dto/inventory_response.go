// Package dto はinventoryフィーチャーのHTTPリクエスト/レスポンス型を定義します。
package dto

// InventoryResponse は在庫ストアのレスポンスです。
type InventoryResponse struct {
	Counts map[string]int `json:"counts"`
}
