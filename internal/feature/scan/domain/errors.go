// Package domain はscanフィーチャーのドメインエラーを定義します。
package domain

import "errors"

// スキャン操作のドメインエラー。
var (
	// ErrScanInProgress はスキャンまたは解析が進行中で、新しいスキャンを開始できないことを示します。
	// 同時に実行できるスキャンは1つだけです。
	ErrScanInProgress = errors.New("a scan is already in progress")

	// ErrNoFrame はカメラからのフレームがまだ届いていないことを示します。
	ErrNoFrame = errors.New("no camera frame available yet")
)
