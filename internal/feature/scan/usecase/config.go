// Package usecase はscanフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"os"
	"strconv"
	"time"
)

const (
	// DefaultScanDuration はbefore/afterフレーム間の観測ウィンドウのデフォルト長です。
	DefaultScanDuration = 10 * time.Second
	// DefaultAnalysisTimeout は解析フェーズ（検出API呼び出し含む）のタイムアウトです。
	DefaultAnalysisTimeout = 2 * time.Minute
)

// Config はスキャン状態機械の設定です。
type Config struct {
	ScanDuration    time.Duration // スキャンウィンドウの長さ
	AnalysisTimeout time.Duration // 解析フェーズのタイムアウト
}

// LoadConfig はスキャン設定を環境変数から読み込みます。
// SCAN_DURATION_SECが未設定または不正な場合はデフォルトの10秒を使用します。
func LoadConfig() Config {
	duration := DefaultScanDuration
	if v := os.Getenv("SCAN_DURATION_SEC"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			duration = time.Duration(sec) * time.Second
		}
	}
	return Config{
		ScanDuration:    duration,
		AnalysisTimeout: DefaultAnalysisTimeout,
	}
}
