// Package framebuffer はカメラの最新フレームを保持する単一スロットのバッファを提供します。
package framebuffer

import "sync"

// LatestFrame はミューテックスで保護された単一スロットの最新フレームセルです。
// 書き込みは常に上書き（last-write-wins）で、キューイングは行いません。
// キャプチャループが照合より速く回っても中間フレームは単に捨てられます。これは設計上の許容です。
type LatestFrame struct {
	mu    sync.Mutex
	frame []byte
}

// NewLatestFrame はLatestFrameの新しいインスタンスを生成します。
func NewLatestFrame() *LatestFrame {
	return &LatestFrame{}
}

// Store は最新フレームを上書きします。呼び出し元のスライスはコピーされます。
func (b *LatestFrame) Store(frame []byte) {
	data := make([]byte, len(frame))
	copy(data, frame)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame = data
}

// Latest は最新フレームのコピーを返します。フレーム未着の場合は(nil, false)を返します。
func (b *LatestFrame) Latest() ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frame == nil {
		return nil, false
	}
	out := make([]byte, len(b.frame))
	copy(out, b.frame)
	return out, true
}
