package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"shelf_backend/internal/app/di"
	"shelf_backend/internal/app/router"
	authadapters "shelf_backend/internal/feature/auth/adapters"
	authhandler "shelf_backend/internal/feature/auth/transport/handler"
	authusecase "shelf_backend/internal/feature/auth/usecase"
	historyadapters "shelf_backend/internal/feature/history/adapters"
	historyhandler "shelf_backend/internal/feature/history/transport/handler"
	historyusecase "shelf_backend/internal/feature/history/usecase"
	inventoryhandler "shelf_backend/internal/feature/inventory/transport/handler"
	inventoryusecase "shelf_backend/internal/feature/inventory/usecase"
	itemshandler "shelf_backend/internal/feature/items/transport/handler"
	itemsusecase "shelf_backend/internal/feature/items/usecase"
	"shelf_backend/internal/feature/reconcile/adapters/classmap"
	"shelf_backend/internal/feature/reconcile/adapters/gemini"
	reconcilehandler "shelf_backend/internal/feature/reconcile/transport/handler"
	reconcileusecase "shelf_backend/internal/feature/reconcile/usecase"
	"shelf_backend/internal/feature/scan/adapters/framebuffer"
	scanhandler "shelf_backend/internal/feature/scan/transport/handler"
	"shelf_backend/internal/feature/scan/transport/ws"
	scanusecase "shelf_backend/internal/feature/scan/usecase"
	"shelf_backend/internal/platform/db"
	jwtmw "shelf_backend/internal/platform/jwt"
	infraredis "shelf_backend/internal/platform/redis"
)

// jwtExpiration は発行するJWTの有効期間です。
const jwtExpiration = 24 * time.Hour

func main() {
	// .envはローカル開発用。存在しなくてもエラーにしない
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, using environment variables")
	}

	ctx := context.Background()

	// db
	gormDB := db.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// クラスマップ（CLASS_MAP_PATH指定がなければ組み込みのデフォルト）
	classMap, err := classmap.Load()
	if err != nil {
		log.Fatalf("failed to load class map: %v", err)
	}

	// Repository
	operatorRepo := authadapters.NewOperatorGorm(gormDB)
	scanRecordRepo := historyadapters.NewScanRecordRepository(gormDB)
	inventoryRepo := di.NewInventoryRepository(rdb)

	// 検出器（DETECTOR_BACKEND=dnnでローカルDNN、既定はCloud Vision）
	detector, err := di.NewDetector(ctx, classMap)
	if err != nil {
		log.Fatalf("failed to create detector: %v", err)
	}

	// サマリー生成はGEMINI_API_KEYがある場合のみ有効化
	var summarizer reconcileusecase.Summarizer
	if os.Getenv("GEMINI_API_KEY") != "" {
		s, err := gemini.NewGeminiSummarizer(ctx)
		if err != nil {
			log.Println("[WARN] Gemini summarizer unavailable:", err)
		} else {
			summarizer = s
		}
	}

	// Usecase
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), jwtExpiration)
	authUC := authusecase.NewAuthUsecase(operatorRepo, jwtGen)
	inventoryUC := inventoryusecase.NewInventoryUsecase(inventoryRepo)
	historyUC := historyusecase.NewHistoryUsecase(scanRecordRepo)
	itemsUC := itemsusecase.NewItemsUsecase(classMap, inventoryUC)
	reconcileUC := reconcileusecase.NewReconcileUsecase(detector, inventoryUC, summarizer, classMap)

	// スキャン状態機械とフレームバッファ
	frames := framebuffer.NewLatestFrame()
	hub := ws.NewHub()
	go hub.Run()
	scanUC := scanusecase.NewScanUsecase(frames, reconcileUC, historyUC, hub, scanusecase.LoadConfig())

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	reconcileH := reconcilehandler.NewReconcileHandler(reconcileUC)
	scanH := scanhandler.NewScanHandler(scanUC, frames)
	inventoryH := inventoryhandler.NewInventoryHandler(inventoryUC)
	historyH := historyhandler.NewHistoryHandler(historyUC)
	itemsH := itemshandler.NewItemsHandler(itemsUC)

	// ルータ生成
	r := router.NewRouter(authH, reconcileH, scanH, inventoryH, historyH, itemsH, hub)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
