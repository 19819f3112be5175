// Package dto はscanフィーチャーのHTTPリクエスト/レスポンス型を定義します。
package dto

import "shelf_backend/internal/feature/scan/domain/entity"

// StatusResponse はスキャン状態のレスポンスです。
type StatusResponse struct {
	Status entity.Status `json:"status"`
}
