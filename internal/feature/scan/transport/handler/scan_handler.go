// Package handler はscanフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shelf_backend/internal/feature/scan/domain"
	"shelf_backend/internal/feature/scan/domain/entity"
	"shelf_backend/internal/feature/scan/transport/http/dto"
)

// MaxFrameSize はフレームアップロードの最大サイズ（10MB）です。
const MaxFrameSize = 10 * 1024 * 1024

// ScanUsecase はスキャン状態機械のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ScanUsecase interface {
	Start(ctx context.Context) error
	Status() entity.Status
}

// FrameBuffer は最新フレームセルへの読み書きインターフェースを定義します。
type FrameBuffer interface {
	Store(frame []byte)
	Latest() ([]byte, bool)
}

// ScanHandler はスキャン操作とカメラフレームのHTTPリクエストを処理します。
type ScanHandler struct {
	uc     ScanUsecase
	frames FrameBuffer
}

// NewScanHandler はScanHandlerの新しいインスタンスを生成します。
func NewScanHandler(uc ScanUsecase, frames FrameBuffer) *ScanHandler {
	return &ScanHandler{uc: uc, frames: frames}
}

// Start はスキャンを開始します。
//
// エンドポイント: POST /v1/scan/start
// IDLE以外の状態では409、フレーム未着の場合は503を返します。
func (h *ScanHandler) Start(c *gin.Context) {
	if err := h.uc.Start(c.Request.Context()); err != nil {
		switch {
		case errors.Is(err, domain.ErrScanInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": "スキャンが進行中です"})
		case errors.Is(err, domain.ErrNoFrame):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "カメラのフレームがまだ届いていません"})
		default:
			slog.Error("スキャンの開始に失敗", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "スキャンを開始できませんでした"})
		}
		return
	}

	c.JSON(http.StatusAccepted, dto.StatusResponse{Status: h.uc.Status()})
}

// Status は現在のスキャン状態を返します。
//
// エンドポイント: GET /v1/scan/status
func (h *ScanHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatusResponse{Status: h.uc.Status()})
}

// IngestFrame はカメラクライアントからのフレームを受け取り、最新フレームセルへ上書きします。
//
// エンドポイント: POST /v1/camera/frame
// Content-Type: multipart/form-data
// フィールド: frame（JPEG画像、最大10MB）
func (h *ScanHandler) IngestFrame(c *gin.Context) {
	file, err := c.FormFile("frame")
	if err != nil {
		slog.Warn("フレームの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "frameフィールドが必要です"})
		return
	}
	if file.Size > MaxFrameSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "フレームが大きすぎます"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("フレームのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "フレームの読み込みに失敗しました"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("フレームのクローズに失敗", "error", err)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("フレームの読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "フレームの読み込みに失敗しました"})
		return
	}

	h.frames.Store(data)
	c.Status(http.StatusNoContent)
}

// Preview は最新フレームをJPEGとして返します。
//
// エンドポイント: GET /v1/camera/preview
func (h *ScanHandler) Preview(c *gin.Context) {
	frame, ok := h.frames.Latest()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "フレームがまだ届いていません"})
		return
	}
	c.Data(http.StatusOK, "image/jpeg", frame)
}
