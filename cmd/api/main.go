package main

import (
	"context"
	"log"

	"github.com/rickygarrix/otonavi-sub000/internal/config"
	"github.com/rickygarrix/otonavi-sub000/internal/infrastructure/postgres"
	"github.com/rickygarrix/otonavi-sub000/internal/server"
)

func main() {
	cfg := config.Load()

	db, err := postgres.Open(context.Background(), cfg.DatabaseURL, cfg.ConnectTimeout)
	if err != nil {
		cfg.ServerLog.Fatalf("Postgres 接続に失敗しました: %v", err)
	}

	redisClient := config.NewRedisClient()
	if redisClient == nil {
		cfg.ServerLog.Printf("Redis は未設定のため、マスタキャッシュ無しで起動します")
	}

	app := server.New(cfg, db, redisClient)
	if err := app.Run(); err != nil {
		log.Fatalf("サーバー起動に失敗: %v", err)
	}
}
