// Package entity はhistoryフィーチャーのドメインモデルを定義します。
package entity

import "time"

// ScanRecord は完了した照合サイクル1回分の記録です。
// オペレーターが過去のスキャン結果と在庫増減を追跡できるように永続化されます。
type ScanRecord struct {
	ID          uint
	StartedAt   time.Time      // beforeフレーム取得時刻
	FinishedAt  time.Time      // 解析完了時刻
	Changes     map[string]int // ラベルごとの符号付き増減
	BeforeCount int            // beforeフレームの有効検出数
	AfterCount  int            // afterフレームの有効検出数
	Summary     string         // 生成されたサマリー（無ければ空）
}
