package usecase_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	inventoryentity "shelf_backend/internal/feature/inventory/domain/entity"
	"shelf_backend/internal/feature/reconcile/domain/entity"
	"shelf_backend/internal/feature/reconcile/usecase"
)

// ErrDetector はモックと期待値の間で共有されるセンチネルエラーです。
var ErrDetector = errors.New("detector error")

// mockDetector はDetectorインターフェースのモック実装です。
type mockDetector struct {
	DetectFunc  func(ctx context.Context, imageData []byte) (entity.DetectionSet, error)
	DetectCalls int
}

func (m *mockDetector) Detect(ctx context.Context, imageData []byte) (entity.DetectionSet, error) {
	m.DetectCalls++
	if m.DetectFunc != nil {
		return m.DetectFunc(ctx, imageData)
	}
	return nil, errors.New("DetectFunc is not implemented")
}

// mockCommitter はInventoryCommitterインターフェースのモック実装です。
type mockCommitter struct {
	CommitFunc    func(ctx context.Context, changes map[string]int) (inventoryentity.Store, error)
	CommitCalls   int
	CommittedWith map[string]int
}

func (m *mockCommitter) Commit(ctx context.Context, changes map[string]int) (inventoryentity.Store, error) {
	m.CommitCalls++
	m.CommittedWith = changes
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx, changes)
	}
	return inventoryentity.Store{}, nil
}

// mockSummarizer はSummarizerインターフェースのモック実装です。
type mockSummarizer struct {
	SummarizeFunc  func(ctx context.Context, prompt string) (string, error)
	SummarizeCalls int
}

func (m *mockSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	m.SummarizeCalls++
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, prompt)
	}
	return "", errors.New("SummarizeFunc is not implemented")
}

// detectorFor はbefore/afterの検出列を順番に返すモックを生成します。
func detectorFor(sets ...entity.DetectionSet) *mockDetector {
	i := 0
	return &mockDetector{
		DetectFunc: func(ctx context.Context, imageData []byte) (entity.DetectionSet, error) {
			set := sets[i%len(sets)]
			i++
			return set, nil
		},
	}
}

func TestReconcileUsecase_Reconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("success: full cycle applies changes to inventory", func(t *testing.T) {
		// snickers cx 5→55（右へ移動＝販売）
		detector := detectorFor(
			entity.DetectionSet{det(7, 0, 0, 10, 10)},
			entity.DetectionSet{det(7, 50, 0, 60, 10)},
		)
		committer := &mockCommitter{
			CommitFunc: func(ctx context.Context, changes map[string]int) (inventoryentity.Store, error) {
				return inventoryentity.Store{"snickers": -1}, nil
			},
		}
		uc := usecase.NewReconcileUsecase(detector, committer, nil, testClassMap)

		result, err := uc.Reconcile(ctx, []byte("before"), []byte("after"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantChanges := entity.InventoryChanges{"snickers": -1}
		if !reflect.DeepEqual(result.Changes, wantChanges) {
			t.Errorf("expected changes %v, got %v", wantChanges, result.Changes)
		}
		if result.Store["snickers"] != -1 {
			t.Errorf("expected store snickers=-1, got %v", result.Store)
		}
		if committer.CommitCalls != 1 {
			t.Errorf("expected 1 commit, got %d", committer.CommitCalls)
		}
		if detector.DetectCalls != 2 {
			t.Errorf("expected 2 detector calls, got %d", detector.DetectCalls)
		}
		if result.BeforeCount != 1 || result.AfterCount != 1 {
			t.Errorf("expected counts 1/1, got %d/%d", result.BeforeCount, result.AfterCount)
		}
	})

	t.Run("success: unknown class ids are filtered before matching", func(t *testing.T) {
		// クラス99はマップ外。検出は捨てられ、サイクルは継続する
		detector := detectorFor(
			entity.DetectionSet{det(99, 0, 0, 10, 10), det(2, 0, 0, 10, 10)},
			entity.DetectionSet{det(99, 50, 0, 60, 10)},
		)
		committer := &mockCommitter{}
		uc := usecase.NewReconcileUsecase(detector, committer, nil, testClassMap)

		result, err := uc.Reconcile(ctx, []byte("before"), []byte("after"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// 残るのはbeforeのairheadsのみ → 消失で-1
		wantChanges := entity.InventoryChanges{"airheads": -1}
		if !reflect.DeepEqual(result.Changes, wantChanges) {
			t.Errorf("expected changes %v, got %v", wantChanges, result.Changes)
		}
		if result.BeforeCount != 1 || result.AfterCount != 0 {
			t.Errorf("expected counts 1/0, got %d/%d", result.BeforeCount, result.AfterCount)
		}
	})

	t.Run("success: empty changes still commit and return", func(t *testing.T) {
		detector := detectorFor(entity.DetectionSet{}, entity.DetectionSet{})
		committer := &mockCommitter{}
		summarizer := &mockSummarizer{}
		uc := usecase.NewReconcileUsecase(detector, committer, summarizer, testClassMap)

		result, err := uc.Reconcile(ctx, []byte("before"), []byte("after"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Changes) != 0 {
			t.Errorf("expected empty changes, got %v", result.Changes)
		}
		if committer.CommitCalls != 1 {
			t.Errorf("expected commit even with empty changes, got %d calls", committer.CommitCalls)
		}
		// 増減が無い場合、サマリーは生成しない
		if summarizer.SummarizeCalls != 0 {
			t.Errorf("expected no summary call, got %d", summarizer.SummarizeCalls)
		}
	})

	t.Run("success: summary failure is non-fatal", func(t *testing.T) {
		detector := detectorFor(
			entity.DetectionSet{det(2, 0, 0, 10, 10)},
			entity.DetectionSet{},
		)
		committer := &mockCommitter{}
		summarizer := &mockSummarizer{
			SummarizeFunc: func(ctx context.Context, prompt string) (string, error) {
				return "", errors.New("gemini unavailable")
			},
		}
		uc := usecase.NewReconcileUsecase(detector, committer, summarizer, testClassMap)

		result, err := uc.Reconcile(ctx, []byte("before"), []byte("after"))
		if err != nil {
			t.Fatalf("expected cycle to complete, got error: %v", err)
		}
		if result.Summary != "" {
			t.Errorf("expected empty summary, got %q", result.Summary)
		}
		if summarizer.SummarizeCalls != 1 {
			t.Errorf("expected 1 summary call, got %d", summarizer.SummarizeCalls)
		}
	})

	t.Run("error: empty image data", func(t *testing.T) {
		uc := usecase.NewReconcileUsecase(&mockDetector{}, &mockCommitter{}, nil, testClassMap)

		_, err := uc.Reconcile(ctx, nil, []byte("after"))
		if err == nil || !strings.Contains(err.Error(), "image data is empty") {
			t.Fatalf("expected empty image error, got %v", err)
		}
	})

	t.Run("error: image too large", func(t *testing.T) {
		uc := usecase.NewReconcileUsecase(&mockDetector{}, &mockCommitter{}, nil, testClassMap)

		_, err := uc.Reconcile(ctx, make([]byte, usecase.MaxImageSize+1), []byte("after"))
		if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
			t.Fatalf("expected size error, got %v", err)
		}
	})

	t.Run("error: detector failure aborts the cycle", func(t *testing.T) {
		detector := &mockDetector{
			DetectFunc: func(ctx context.Context, imageData []byte) (entity.DetectionSet, error) {
				return nil, ErrDetector
			},
		}
		committer := &mockCommitter{}
		uc := usecase.NewReconcileUsecase(detector, committer, nil, testClassMap)

		_, err := uc.Reconcile(ctx, []byte("before"), []byte("after"))
		if !errors.Is(err, ErrDetector) {
			t.Fatalf("expected detector error, got %v", err)
		}
		if committer.CommitCalls != 0 {
			t.Errorf("expected no commit on detector failure, got %d", committer.CommitCalls)
		}
	})

	t.Run("error: commit failure is surfaced to the caller", func(t *testing.T) {
		detector := detectorFor(entity.DetectionSet{}, entity.DetectionSet{})
		committer := &mockCommitter{
			CommitFunc: func(ctx context.Context, changes map[string]int) (inventoryentity.Store, error) {
				return nil, errors.New("disk full")
			},
		}
		uc := usecase.NewReconcileUsecase(detector, committer, nil, testClassMap)

		_, err := uc.Reconcile(ctx, []byte("before"), []byte("after"))
		if err == nil || !strings.Contains(err.Error(), "failed to update inventory") {
			t.Fatalf("expected inventory error, got %v", err)
		}
	})
}
