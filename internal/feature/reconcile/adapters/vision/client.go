// Package vision はGoogle Cloud Vision APIを使用したオブジェクト検出クライアントを提供します。
package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"

	_ "image/jpeg"
	_ "image/png"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"shelf_backend/internal/feature/reconcile/domain/entity"
	"shelf_backend/internal/feature/reconcile/usecase"
)

// VisionObjectDetector はGoogle Cloud Vision APIのオブジェクトローカライズで棚の商品を検出します。
// 検出名はクラスマップのラベルと逆引きで照合され、マップ外の検出名はスキップされます。
type VisionObjectDetector struct {
	client   *gvision.ImageAnnotatorClient
	classMap entity.ClassMap
}

// VisionObjectDetectorがDetectorを実装していることをコンパイル時に検証します。
var _ usecase.Detector = (*VisionObjectDetector)(nil)

// NewVisionObjectDetector はADCを使用してVisionObjectDetectorの新しいインスタンスを生成します。
func NewVisionObjectDetector(ctx context.Context, classMap entity.ClassMap) (*VisionObjectDetector, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionObjectDetector{client: client, classMap: classMap}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionObjectDetector) Close() error {
	return v.client.Close()
}

// Detect は画像バイト列からオブジェクトを検出します。
// Vision APIの正規化頂点(0〜1)は画像の実寸にスケールしてピクセル座標のバウンディングボックスへ変換します。
func (v *VisionObjectDetector) Detect(ctx context.Context, imageData []byte) (entity.DetectionSet, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image dimensions: %w", err)
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_OBJECT_LOCALIZATION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return nil, nil
	}
	if resp.Responses[0].Error != nil {
		return nil, fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	annotations := resp.Responses[0].LocalizedObjectAnnotations
	detections := make(entity.DetectionSet, 0, len(annotations))
	for _, ann := range annotations {
		classID, ok := v.classMap.IDForLabel(ann.Name)
		if !ok {
			slog.Warn("クラスマップ外の検出名をスキップします", "name", ann.Name, "score", ann.Score)
			continue
		}

		bbox, err := boundingBox(ann.BoundingPoly, cfg.Width, cfg.Height)
		if err != nil {
			slog.Warn("バウンディングポリゴンの変換に失敗しました", "name", ann.Name, "error", err)
			continue
		}

		detections = append(detections, entity.Detection{
			ClassID:    classID,
			BBox:       bbox,
			Confidence: float64(ann.Score),
		})
	}

	return detections, nil
}

// boundingBox は正規化頂点の外接矩形をピクセル座標で返します。
func boundingBox(poly *visionpb.BoundingPoly, width, height int) (entity.BBox, error) {
	if poly == nil || len(poly.NormalizedVertices) == 0 {
		return entity.BBox{}, fmt.Errorf("bounding poly is empty")
	}

	first := poly.NormalizedVertices[0]
	xmin, xmax := float64(first.X), float64(first.X)
	ymin, ymax := float64(first.Y), float64(first.Y)
	for _, v := range poly.NormalizedVertices[1:] {
		x, y := float64(v.X), float64(v.Y)
		if x < xmin {
			xmin = x
		}
		if x > xmax {
			xmax = x
		}
		if y < ymin {
			ymin = y
		}
		if y > ymax {
			ymax = y
		}
	}

	return entity.BBox{
		XMin: xmin * float64(width),
		YMin: ymin * float64(height),
		XMax: xmax * float64(width),
		YMax: ymax * float64(height),
	}, nil
}
