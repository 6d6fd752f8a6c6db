package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/PascalSeth/Edutrack-backend-sub005/internal/handlers"
	"github.com/PascalSeth/Edutrack-backend-sub005/internal/middleware"
)

// Setup wires all routes onto the engine and starts the chat hub.
func Setup(r *gin.Engine, db *gorm.DB, rdb *redis.Client, log *slog.Logger, jwtSecret []byte) {
	h := handlers.New(db, rdb, log, jwtSecret)
	auth := middleware.NewAuth(db, rdb, log, jwtSecret)

	hub := handlers.NewHub(db, log)
	go hub.Run()

	// Login is the only unauthenticated route.
	r.POST("/mobile/auth/login", h.Login)

	authed := r.Group("/")
	authed.Use(auth.Handler())
	{
		registerMobileRoutes(authed, h, hub)
		registerAPIRoutes(authed, h)
	}
}
