// Package handler はinventoryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shelf_backend/internal/feature/inventory/domain/entity"
	"shelf_backend/internal/feature/inventory/transport/http/dto"
)

// InventoryUsecase は在庫参照のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type InventoryUsecase interface {
	Get(ctx context.Context) (entity.Store, error)
}

// InventoryHandler は在庫参照のHTTPリクエストを処理します。
type InventoryHandler struct {
	uc InventoryUsecase
}

// NewInventoryHandler はInventoryHandlerの新しいインスタンスを生成します。
func NewInventoryHandler(uc InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Get は現在の在庫ストアを返します。
//
// エンドポイント: GET /v1/inventory
func (h *InventoryHandler) Get(c *gin.Context) {
	store, err := h.uc.Get(c.Request.Context())
	if err != nil {
		slog.Error("在庫の取得に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "在庫を取得できませんでした"})
		return
	}

	c.JSON(http.StatusOK, dto.InventoryResponse{Counts: store})
}
