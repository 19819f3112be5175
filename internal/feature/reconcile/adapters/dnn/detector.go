package dnn

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"shelf_backend/internal/feature/reconcile/domain/entity"
	"shelf_backend/internal/feature/reconcile/usecase"
)

// DNNObjectDetector はgocv(OpenCV DNN)でSSD系モデルを実行する検出器です。
// 出力は1検出あたり [batchID, classID, score, x1, y1, x2, y2] の7要素（座標は0〜1に正規化）を想定しています。
type DNNObjectDetector struct {
	net gocv.Net
	cfg Config
}

// DNNObjectDetectorがDetectorを実装していることをコンパイル時に検証します。
var _ usecase.Detector = (*DNNObjectDetector)(nil)

// NewDNNObjectDetector はモデルをロードしてDNNObjectDetectorの新しいインスタンスを生成します。
func NewDNNObjectDetector(cfg Config) (*DNNObjectDetector, error) {
	net := gocv.ReadNet(cfg.ModelPath, cfg.ConfigPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load detection model from %s", cfg.ModelPath)
	}
	if cfg.InputSize <= 0 {
		cfg.InputSize = 300
	}
	return &DNNObjectDetector{net: net, cfg: cfg}, nil
}

// Close はネットワークを解放します。
func (d *DNNObjectDetector) Close() error {
	return d.net.Close()
}

// Detect は画像バイト列からオブジェクトを検出します。
// 信頼度が閾値未満の検出は捨てます。正規化座標は画像の実寸にスケールします。
func (d *DNNObjectDetector) Detect(ctx context.Context, imageData []byte) (entity.DetectionSet, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("decoded image is empty")
	}

	width := float64(mat.Cols())
	height := float64(mat.Rows())

	blob := gocv.BlobFromImage(
		mat,
		1.0/127.5,
		image.Pt(d.cfg.InputSize, d.cfg.InputSize),
		gocv.NewScalar(127.5, 127.5, 127.5, 0),
		true,
		false,
	)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	rows := output.Total() / 7
	detections := make(entity.DetectionSet, 0, rows)
	for i := 0; i < rows; i++ {
		confidence := float64(output.GetFloatAt(0, i*7+2))
		if confidence < d.cfg.ConfidenceThreshold {
			continue
		}
		classID := int(output.GetFloatAt(0, i*7+1))

		detections = append(detections, entity.Detection{
			ClassID: classID,
			BBox: entity.BBox{
				XMin: float64(output.GetFloatAt(0, i*7+3)) * width,
				YMin: float64(output.GetFloatAt(0, i*7+4)) * height,
				XMax: float64(output.GetFloatAt(0, i*7+5)) * width,
				YMax: float64(output.GetFloatAt(0, i*7+6)) * height,
			},
			Confidence: confidence,
		})
	}

	return detections, nil
}
