// Package ws はスキャン状態をWebSocketで配信するハブを提供します。
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"shelf_backend/internal/feature/scan/domain/entity"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// ダッシュボードはローカルネットワーク運用のためオリジン検証は行わない
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub は接続中のダッシュボードクライアントへスキャン状態の遷移を配信します。
// 配信はrunループで直列化され、書き込みに失敗したクライアントは切断されます。
type Hub struct {
	mu        sync.RWMutex
	clients   map[*websocket.Conn]bool
	broadcast chan []byte
}

// NewHub はHubの新しいインスタンスを生成します。
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, 8),
	}
}

// Run は配信ループを開始します。ゴルーチンで呼び出します。
func (h *Hub) Run() {
	for message := range h.broadcast {
		h.mu.Lock()
		for client := range h.clients {
			if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
				slog.Warn("WebSocketクライアントへの送信に失敗。切断します", "error", err)
				delete(h.clients, client)
				client.Close()
			}
		}
		h.mu.Unlock()
	}
}

// NotifyStatus はスキャン状態を全クライアントへ配信します。
// usecase.StatusNotifierを実装します。ハブが詰まっている場合は破棄します（最新状態は次の遷移で届く）。
func (h *Hub) NotifyStatus(status entity.Status) {
	message, err := json.Marshal(status)
	if err != nil {
		slog.Error("スキャン状態のエンコードに失敗", "error", err)
		return
	}
	select {
	case h.broadcast <- message:
	default:
	}
}

// Serve はHTTP接続をWebSocketへアップグレードしてクライアント登録します。
//
// エンドポイント: GET /v1/scan/ws
func (h *Hub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("WebSocketへのアップグレードに失敗", "error", err, "remote_addr", c.ClientIP())
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	total := len(h.clients)
	h.mu.Unlock()
	slog.Info("WebSocketクライアントが接続しました", "total", total)

	// 読み取りループはクライアントの切断検知のためだけに回す
	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// ClientCount は接続中のクライアント数を返します。
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
