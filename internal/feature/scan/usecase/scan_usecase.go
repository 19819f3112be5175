package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	historyentity "shelf_backend/internal/feature/history/domain/entity"
	reconcileusecase "shelf_backend/internal/feature/reconcile/usecase"
	"shelf_backend/internal/feature/scan/domain"
	"shelf_backend/internal/feature/scan/domain/entity"
)

// FrameSource はカメラの最新フレームを供給するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type FrameSource interface {
	// Latest は最新フレームのコピーを返します。フレーム未着の場合は(nil, false)を返します。
	Latest() ([]byte, bool)
}

// Reconciler はbefore/after2枚の画像から在庫照合サイクルを実行するインターフェースです。
type Reconciler interface {
	Reconcile(ctx context.Context, beforeImage, afterImage []byte) (*reconcileusecase.CycleResult, error)
}

// HistoryRecorder は完了したサイクルの記録を保存するインターフェースです。
type HistoryRecorder interface {
	Record(ctx context.Context, record historyentity.ScanRecord) error
}

// StatusNotifier は状態遷移を購読者（WebSocketハブなど）へ通知するインターフェースです。
type StatusNotifier interface {
	NotifyStatus(status entity.Status)
}

// scanUsecase はスキャン状態機械を実装します。
//
// 状態遷移は IDLE → SCANNING → ANALYZING → IDLE のみで、スキャン開始はIDLEでのみ
// 受け付けます。進行中の解析は常に高々1つであり、在庫ストアへのread-modify-writeは
// この直列化によって保護されます（これが本システムに必要な唯一の排他保証です）。
type scanUsecase struct {
	frames     FrameSource
	reconciler Reconciler
	history    HistoryRecorder // nilの場合、記録をスキップ
	notifier   StatusNotifier  // nilの場合、通知をスキップ
	cfg        Config

	mu          sync.Mutex
	state       entity.State
	startedAt   time.Time
	beforeFrame []byte
	timer       *time.Timer
	lastChanges map[string]int
	lastSummary string
	lastError   string
}

// NewScanUsecase はscanUsecaseの新しいインスタンスを生成します。
// historyとnotifierはnilを許容します。
func NewScanUsecase(frames FrameSource, reconciler Reconciler, history HistoryRecorder, notifier StatusNotifier, cfg Config) *scanUsecase {
	if cfg.ScanDuration <= 0 {
		cfg.ScanDuration = DefaultScanDuration
	}
	if cfg.AnalysisTimeout <= 0 {
		cfg.AnalysisTimeout = DefaultAnalysisTimeout
	}
	return &scanUsecase{
		frames:     frames,
		reconciler: reconciler,
		history:    history,
		notifier:   notifier,
		cfg:        cfg,
		state:      entity.StateIdle,
	}
}

// Start はスキャンを開始します。
// IDLE以外の状態ではdomain.ErrScanInProgressを返します。
// beforeフレームを最新フレームセルから取得し、スキャンウィンドウのタイマーを起動します。
func (u *scanUsecase) Start(ctx context.Context) error {
	u.mu.Lock()

	if u.state != entity.StateIdle {
		u.mu.Unlock()
		return domain.ErrScanInProgress
	}

	frame, ok := u.frames.Latest()
	if !ok {
		u.mu.Unlock()
		return domain.ErrNoFrame
	}

	u.state = entity.StateScanning
	u.startedAt = time.Now()
	u.beforeFrame = frame
	u.timer = time.AfterFunc(u.cfg.ScanDuration, u.finishScan)
	u.mu.Unlock()

	slog.Info("スキャンを開始しました", "duration", u.cfg.ScanDuration)
	u.notify()
	return nil
}

// finishScan はタイマー満了時にafterフレームを取得し、解析を実行します。
// time.AfterFuncのゴルーチンで実行されます。
func (u *scanUsecase) finishScan() {
	u.mu.Lock()
	if u.state != entity.StateScanning {
		u.mu.Unlock()
		return
	}

	before := u.beforeFrame
	after, ok := u.frames.Latest()
	if !ok {
		// afterフレームが取れない場合はbeforeフレームを流用する（増減なしとして解析される）
		slog.Warn("afterフレームが取得できません。beforeフレームを使用します")
		after = before
	}

	u.state = entity.StateAnalyzing
	startedAt := u.startedAt
	u.mu.Unlock()
	u.notify()

	ctx, cancel := context.WithTimeout(context.Background(), u.cfg.AnalysisTimeout)
	defer cancel()

	result, err := u.reconciler.Reconcile(ctx, before, after)
	finishedAt := time.Now()

	u.mu.Lock()
	if err != nil {
		slog.Error("照合サイクルが失敗しました", "error", err)
		u.lastChanges = map[string]int{}
		u.lastSummary = ""
		u.lastError = err.Error()
	} else {
		u.lastChanges = result.Changes
		u.lastSummary = result.Summary
		u.lastError = ""
	}
	u.state = entity.StateIdle
	u.beforeFrame = nil
	u.mu.Unlock()

	if err == nil && u.history != nil {
		rec := historyentity.ScanRecord{
			StartedAt:   startedAt,
			FinishedAt:  finishedAt,
			Changes:     result.Changes,
			BeforeCount: result.BeforeCount,
			AfterCount:  result.AfterCount,
			Summary:     result.Summary,
		}
		// 記録の失敗は非致命的。サイクル自体は完了している
		if recErr := u.history.Record(ctx, rec); recErr != nil {
			slog.Warn("スキャン記録の保存に失敗しました", "error", recErr)
		}
	}

	u.notify()
}

// Status は現在の状態機械のスナップショットを返します。
func (u *scanUsecase) Status() entity.Status {
	u.mu.Lock()
	defer u.mu.Unlock()

	status := entity.Status{
		State:       u.state,
		LastChanges: u.lastChanges,
		LastSummary: u.lastSummary,
		LastError:   u.lastError,
	}
	if u.state == entity.StateScanning {
		remaining := u.cfg.ScanDuration - time.Since(u.startedAt)
		if remaining < 0 {
			remaining = 0
		}
		status.RemainingSec = remaining.Seconds()
	}
	return status
}

// notify は現在の状態を購読者へ通知します。
func (u *scanUsecase) notify() {
	if u.notifier == nil {
		return
	}
	u.notifier.NotifyStatus(u.Status())
}
