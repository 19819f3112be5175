// Package handler はreconcileフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"shelf_backend/internal/feature/reconcile/transport/http/dto"
	"shelf_backend/internal/feature/reconcile/usecase"
)

// ReconcileUsecase は在庫照合のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ReconcileUsecase interface {
	Reconcile(ctx context.Context, beforeImage, afterImage []byte) (*usecase.CycleResult, error)
}

// ReconcileHandler は在庫照合のHTTPリクエストを処理します。
type ReconcileHandler struct {
	uc ReconcileUsecase
}

// NewReconcileHandler はReconcileHandlerの新しいインスタンスを生成します。
func NewReconcileHandler(uc ReconcileUsecase) *ReconcileHandler {
	return &ReconcileHandler{uc: uc}
}

// Reconcile はbefore/after2枚の棚画像をアップロードして在庫増減を算出します。
//
// エンドポイント: POST /v1/reconcile
// Content-Type: multipart/form-data
// フィールド: before, after（画像ファイル、各最大10MB）
func (h *ReconcileHandler) Reconcile(c *gin.Context) {
	beforeData, ok := readImageField(c, "before")
	if !ok {
		return
	}
	afterData, ok := readImageField(c, "after")
	if !ok {
		return
	}

	result, err := h.uc.Reconcile(c.Request.Context(), beforeData, afterData)
	if err != nil {
		slog.Error("在庫照合に失敗", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "在庫照合に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, dto.ReconcileResponse{
		Changes:     result.Changes,
		Inventory:   result.Store,
		BeforeCount: result.BeforeCount,
		AfterCount:  result.AfterCount,
		Summary:     result.Summary,
	})
}

// readImageField はマルチパートフォームから画像フィールドを読み出します。
// 失敗時はエラーレスポンスを書き込み、okにfalseを返します。
func readImageField(c *gin.Context, field string) ([]byte, bool) {
	file, err := c.FormFile(field)
	if err != nil {
		slog.Warn("画像ファイルの取得に失敗", "field", field, "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": field + "画像ファイルが必要です"})
		return nil, false
	}
	if file.Size > usecase.MaxImageSize {
		slog.Warn("画像サイズが上限を超過", "field", field, "size", file.Size)
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "画像サイズが上限（10MB）を超えています"})
		return nil, false
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "field", field, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "画像の読み込みに失敗しました"})
		return nil, false
	}
	defer closeMultipartFile(f)

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("画像データの読み取りに失敗", "field", field, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "画像の読み込みに失敗しました"})
		return nil, false
	}
	return data, true
}

func closeMultipartFile(f multipart.File) {
	if err := f.Close(); err != nil {
		slog.Warn("画像ファイルのクローズに失敗", "error", err)
	}
}
