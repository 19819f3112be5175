package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shelf_backend/internal/feature/auth/domain/entity"
	historyadapters "shelf_backend/internal/feature/history/adapters"
)

// OpenDB はPostgreSQLへのGORM接続を確立します。
// DB_HOSTが未設定の場合はローカル開発用にSQLiteファイルへフォールバックします。
// 起動直後のDB未準備に備えて最大60秒リトライします。
func OpenDB() *gorm.DB {
	host := os.Getenv("DB_HOST")

	var dialector gorm.Dialector
	if host == "" {
		path := os.Getenv("DB_SQLITE_PATH")
		if path == "" {
			path = "shelf.db"
		}
		log.Printf("DB_HOST is not set, falling back to SQLite: %s", path)
		dialector = sqlite.Open(path)
	} else {
		user := os.Getenv("DB_USER")
		pass := os.Getenv("DB_PASSWORD")
		name := os.Getenv("DB_NAME")
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Tokyo",
			host, user, pass, name, port)
		dialector = gpostgres.Open(dsn)
	}

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		// TranslateErrorにより重複キー等をドライバー非依存のエラーへ変換する
		db, err = gorm.Open(dialector, &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（Operator, ScanRecord など）
		if err := db.AutoMigrate(
			&entity.Operator{},
			&historyadapters.ScanRecordModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
