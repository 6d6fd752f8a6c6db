package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/PascalSeth/Edutrack-backend-sub005/config"
	"github.com/PascalSeth/Edutrack-backend-sub005/internal/routes"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg := config.Load()
	if len(cfg.JWTSecret) == 0 {
		log.Error("JWT_SECRET environment variable is not set")
		os.Exit(1)
	}

	db, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	log.Info("connected to database")

	rdb, err := config.ConnectRedis(context.Background(), cfg.RedisAddr)
	if err != nil {
		log.Warn("redis connection failed, auth caching disabled", "error", err)
		rdb = nil
	} else if rdb == nil {
		log.Warn("REDIS_ADDR not set, auth caching disabled")
	} else {
		log.Info("connected to redis")
	}

	r := gin.Default()
	routes.Setup(r, db, rdb, log, cfg.JWTSecret)

	log.Info("starting server", "addr", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
