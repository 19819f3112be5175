// Package handler はitemsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shelf_backend/internal/feature/items/domain/entity"
	"shelf_backend/internal/feature/items/transport/http/dto"
)

// ItemsUsecase は商品カタログのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ItemsUsecase interface {
	List(ctx context.Context) ([]entity.Item, error)
}

// ItemsHandler は商品カタログのHTTPリクエストを処理します。
type ItemsHandler struct {
	uc ItemsUsecase
}

// NewItemsHandler はItemsHandlerの新しいインスタンスを生成します。
func NewItemsHandler(uc ItemsUsecase) *ItemsHandler {
	return &ItemsHandler{uc: uc}
}

// List はクラスマップの全商品と現在の在庫数を返します。
//
// エンドポイント: GET /v1/items
func (h *ItemsHandler) List(c *gin.Context) {
	items, err := h.uc.List(c.Request.Context())
	if err != nil {
		slog.Error("商品カタログの取得に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "商品カタログを取得できませんでした"})
		return
	}

	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.ItemResponse{
			ClassID: item.ClassID,
			Label:   item.Label,
			Count:   item.Count,
		})
	}
	c.JSON(http.StatusOK, out)
}
