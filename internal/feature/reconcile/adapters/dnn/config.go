// Package dnn はOpenCV DNNモジュールを使用したローカル推論の検出クライアントを提供します。
// Cloud Visionが使えないオフライン環境（cmd/scanvideo）向けの実装です。
package dnn

import (
	"os"
	"strconv"
)

// Config はDNN検出器の設定です。
type Config struct {
	ModelPath           string  // 凍結グラフ等のモデルファイルパス
	ConfigPath          string  // モデル定義ファイルパス（pbtxtなど）
	ConfidenceThreshold float64 // この値未満の検出は捨てる
	InputSize           int     // ネットワーク入力の一辺（正方形）
}

// LoadConfig はDNN検出器の設定を環境変数から読み込みます。
func LoadConfig() Config {
	threshold := 0.5
	if v := os.Getenv("DNN_CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			threshold = f
		}
	}
	return Config{
		ModelPath:           os.Getenv("DNN_MODEL_PATH"),
		ConfigPath:          os.Getenv("DNN_CONFIG_PATH"),
		ConfidenceThreshold: threshold,
		InputSize:           300,
	}
}
