// Package handler はhistoryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shelf_backend/internal/feature/history/domain/entity"
	"shelf_backend/internal/feature/history/transport/http/dto"
)

// HistoryUsecase はスキャン記録一覧のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type HistoryUsecase interface {
	ListRecent(ctx context.Context, limit int) ([]entity.ScanRecord, error)
}

// HistoryHandler はスキャン記録のHTTPリクエストを処理します。
type HistoryHandler struct {
	uc HistoryUsecase
}

// NewHistoryHandler はHistoryHandlerの新しいインスタンスを生成します。
func NewHistoryHandler(uc HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// List は新しい順にスキャン記録を返します。
//
// エンドポイント: GET /v1/scans?limit=20
func (h *HistoryHandler) List(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limitは整数で指定してください"})
			return
		}
		limit = n
	}

	records, err := h.uc.ListRecent(c.Request.Context(), limit)
	if err != nil {
		slog.Error("スキャン記録の取得に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "スキャン記録を取得できませんでした"})
		return
	}

	out := make([]dto.ScanRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ScanRecordResponse{
			ID:          r.ID,
			StartedAt:   r.StartedAt,
			FinishedAt:  r.FinishedAt,
			Changes:     r.Changes,
			BeforeCount: r.BeforeCount,
			AfterCount:  r.AfterCount,
			Summary:     r.Summary,
		})
	}
	c.JSON(http.StatusOK, out)
}
