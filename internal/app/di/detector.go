// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"os"

	"shelf_backend/internal/feature/reconcile/adapters/dnn"
	"shelf_backend/internal/feature/reconcile/adapters/vision"
	"shelf_backend/internal/feature/reconcile/domain/entity"
	"shelf_backend/internal/feature/reconcile/usecase"
)

// NewDetector creates the object detector selected by the DETECTOR_BACKEND
// environment variable. "dnn" selects the local OpenCV DNN detector, anything
// else (including unset) selects the Cloud Vision detector.
func NewDetector(ctx context.Context, classMap entity.ClassMap) (usecase.Detector, error) {
	if os.Getenv("DETECTOR_BACKEND") == "dnn" {
		return dnn.NewDNNObjectDetector(dnn.LoadConfig())
	}
	return vision.NewVisionObjectDetector(ctx, classMap)
}
