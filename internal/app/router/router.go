package router

import (
	"github.com/gin-gonic/gin"

	authhandler "shelf_backend/internal/feature/auth/transport/handler"
	historyhandler "shelf_backend/internal/feature/history/transport/handler"
	inventoryhandler "shelf_backend/internal/feature/inventory/transport/handler"
	itemshandler "shelf_backend/internal/feature/items/transport/handler"
	reconcilehandler "shelf_backend/internal/feature/reconcile/transport/handler"
	scanhandler "shelf_backend/internal/feature/scan/transport/handler"
	"shelf_backend/internal/feature/scan/transport/ws"
	platformhandler "shelf_backend/internal/platform/http/handler"
	jwtmw "shelf_backend/internal/platform/jwt"
)

func NewRouter(authHandler *authhandler.AuthHandler, reconcile *reconcilehandler.ReconcileHandler,
	scan *scanhandler.ScanHandler, inventory *inventoryhandler.InventoryHandler,
	history *historyhandler.HistoryHandler, items *itemshandler.ItemsHandler, hub *ws.Hub) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	// 新規オペレーター登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// ダッシュボード向けの参照系は認証不要
	v1 := r.Group("/v1")
	{
		v1.GET("/inventory", inventory.Get)
		v1.GET("/items", items.List)
		v1.GET("/scans", history.List)
		v1.GET("/scan/status", scan.Status)
		v1.GET("/scan/ws", hub.Serve)
		v1.GET("/camera/preview", scan.Preview)
	}

	// 認証必須のルート（在庫を書き換える操作）
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth := r.Group("/v1")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.POST("/scan/start", scan.Start)
		auth.POST("/camera/frame", scan.IngestFrame)
		auth.POST("/reconcile", reconcile.Reconcile)
	}

	return r
}
