// Package entity はscanフィーチャーのドメインモデルを定義します。
package entity

// State はスキャン状態機械の状態です。
// 遷移は IDLE → SCANNING → ANALYZING → IDLE のみです。
type State string

const (
	// StateIdle はスキャン待機中です。この状態でのみスキャン開始を受け付けます。
	StateIdle State = "IDLE"
	// StateScanning はbeforeフレーム取得済みで、タイマー満了を待っている状態です。
	StateScanning State = "SCANNING"
	// StateAnalyzing はafterフレーム取得済みで、照合パイプラインを実行中の状態です。
	StateAnalyzing State = "ANALYZING"
)

// Status はスキャン状態機械のスナップショットです。
type Status struct {
	State        State          `json:"state"`
	RemainingSec float64        `json:"remaining_sec"`  // SCANNING中の残り秒数。それ以外は0
	LastChanges  map[string]int `json:"last_changes"`   // 直近サイクルの在庫増減
	LastSummary  string         `json:"last_summary"`   // 直近サイクルのサマリー（無ければ空）
	LastError    string         `json:"last_error"`     // 直近サイクルのエラー（成功時は空）
}
