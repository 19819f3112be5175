// Package dto はhistoryフィーチャーのHTTPリクエスト/レスポンス型を定義します。
package dto

import "time"

// ScanRecordResponse はスキャン記録1件のレスポンスです。
type ScanRecordResponse struct {
	ID          uint           `json:"id"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
	Changes     map[string]int `json:"changes"`
	BeforeCount int            `json:"before_count"`
	AfterCount  int            `json:"after_count"`
	Summary     string         `json:"summary,omitempty"`
}
