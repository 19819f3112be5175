// Package dto はreconcileフィーチャーのHTTPリクエスト/レスポンス型を定義します。
package dto

// ReconcileResponse は1回の照合サイクルの結果レスポンスです。
type ReconcileResponse struct {
	Changes     map[string]int `json:"changes"`
	Inventory   map[string]int `json:"inventory"`
	BeforeCount int            `json:"before_count"`
	AfterCount  int            `json:"after_count"`
	Summary     string         `json:"summary,omitempty"`
}
