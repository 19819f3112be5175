// scanvideoは録画済み動画に対して棚スキャンを1回実行するオフラインバッチです。
// 動画の序盤からbeforeフレーム、終盤からafterフレームを抽出し、
// サーバーと同じ照合パイプラインで在庫ファイルを更新します。
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"gocv.io/x/gocv"

	"shelf_backend/internal/feature/inventory/adapters/file"
	inventoryusecase "shelf_backend/internal/feature/inventory/usecase"
	"shelf_backend/internal/feature/reconcile/adapters/classmap"
	"shelf_backend/internal/feature/reconcile/adapters/dnn"
	"shelf_backend/internal/feature/reconcile/domain/entity"
	reconcileusecase "shelf_backend/internal/feature/reconcile/usecase"
	"shelf_backend/internal/shared/ratelimiter"
)

const (
	// frameMargin は動画の端から何秒内側のフレームを採用するかです。
	frameMargin = 2.0
	// shortVideoLimit 以下の長さの動画は先頭/末尾フレームを採用します。
	shortVideoLimit = 4.5
	// marginFallbackLimit 未満の長さの動画は1/3・2/3地点を採用します。
	marginFallbackLimit = 6.0
)

func main() {
	videoPath := flag.String("video", "", "path to the recorded video file")
	inventoryPath := flag.String("inventory", "inventory.json", "path to the inventory JSON file")
	flag.Parse()

	if *videoPath == "" {
		log.Fatal("usage: scanvideo -video <path> [-inventory <path>]")
	}

	// .envはローカル開発用。存在しなくてもエラーにしない
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, using environment variables")
	}

	classMap, err := classmap.Load()
	if err != nil {
		log.Fatalf("failed to load class map: %v", err)
	}

	detector, err := dnn.NewDNNObjectDetector(dnn.LoadConfig())
	if err != nil {
		log.Fatalf("failed to load detector: %v", err)
	}
	defer func() {
		if err := detector.Close(); err != nil {
			log.Println("[WARN] failed to close detector:", err)
		}
	}()

	beforeImage, afterImage, err := extractFrames(*videoPath)
	if err != nil {
		log.Fatalf("failed to extract frames: %v", err)
	}

	inventoryRepo := file.NewInventoryFile(*inventoryPath)
	inventoryUC := inventoryusecase.NewInventoryUsecase(inventoryRepo)
	reconcileUC := reconcileusecase.NewReconcileUsecase(
		throttled{inner: detector, limiter: ratelimiter.NewRateLimiter(30, time.Minute)},
		inventoryUC,
		nil,
		classMap,
	)

	result, err := reconcileUC.Reconcile(context.Background(), beforeImage, afterImage)
	if err != nil {
		log.Fatalf("reconcile failed: %v", err)
	}

	changes, _ := json.MarshalIndent(map[string]int(result.Changes), "", "  ")
	store, _ := json.MarshalIndent(map[string]int(result.Store), "", "  ")
	log.Printf("detections: before=%d after=%d", result.BeforeCount, result.AfterCount)
	log.Printf("changes:\n%s", changes)
	log.Printf("inventory saved to %s:\n%s", *inventoryPath, store)
}

// throttled はDetectorをレートリミッターで包み、検出呼び出しの頻度を制限します。
type throttled struct {
	inner   reconcileusecase.Detector
	limiter ratelimiter.RateLimiterInterface
}

func (t throttled) Detect(ctx context.Context, imageData []byte) (entity.DetectionSet, error) {
	t.limiter.WaitIfNeeded()
	return t.inner.Detect(ctx, imageData)
}

// extractFrames は動画からbefore/after2枚のフレームをJPEGバイト列で返します。
//
// 採用位置は動画の長さに応じて変わります:
//   - shortVideoLimit以下: 先頭と末尾のフレーム
//   - marginFallbackLimit未満: 1/3地点と2/3地点
//   - それ以外: 先頭からframeMargin秒と末尾からframeMargin秒内側
func extractFrames(path string) (before, after []byte, err error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open video %s: %w", path, err)
	}
	defer cap.Close()

	fps := cap.Get(gocv.VideoCaptureFPS)
	frames := cap.Get(gocv.VideoCaptureFrameCount)
	if fps <= 0 || frames <= 0 {
		return nil, nil, fmt.Errorf("video %s has no readable duration (fps=%.2f, frames=%.0f)", path, fps, frames)
	}
	duration := frames / fps

	var beforeSec, afterSec float64
	switch {
	case duration <= shortVideoLimit:
		beforeSec, afterSec = 0, duration
	case duration < marginFallbackLimit:
		beforeSec, afterSec = duration/3, duration*2/3
	default:
		beforeSec, afterSec = frameMargin, duration-frameMargin
	}
	log.Printf("video duration %.1fs, sampling before=%.1fs after=%.1fs", duration, beforeSec, afterSec)

	before, err = frameAt(cap, beforeSec)
	if err != nil {
		return nil, nil, fmt.Errorf("before frame: %w", err)
	}
	after, err = frameAt(cap, afterSec)
	if err != nil {
		return nil, nil, fmt.Errorf("after frame: %w", err)
	}
	return before, after, nil
}

// frameAt は指定秒数のフレームを読み出してJPEGへエンコードします。
func frameAt(cap *gocv.VideoCapture, sec float64) ([]byte, error) {
	cap.Set(gocv.VideoCapturePosMsec, sec*1000)

	mat := gocv.NewMat()
	defer mat.Close()
	if ok := cap.Read(&mat); !ok || mat.Empty() {
		return nil, fmt.Errorf("failed to read frame at %.1fs", sec)
	}

	buf, err := gocv.IMEncode(".jpg", mat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame at %.1fs: %w", sec, err)
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}
