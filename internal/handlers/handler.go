// Package handlers contains the HTTP request handlers. Each handler is
// stateless: it validates input, queries the database, reshapes rows into a
// response view and writes JSON. Errors map to the three-tier taxonomy:
// invalid input -> 400, missing entity -> 404, everything else -> 500.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handler carries the request-scoped dependencies shared by all handlers.
// The DB handle is injected rather than read from a package global so tests
// can run against an in-memory database.
type Handler struct {
	db     *gorm.DB
	rdb    *redis.Client
	log    *slog.Logger
	secret []byte
}

// New builds a Handler. rdb may be nil when caching is disabled.
func New(db *gorm.DB, rdb *redis.Client, log *slog.Logger, secret []byte) *Handler {
	return &Handler{db: db, rdb: rdb, log: log, secret: secret}
}

// DB exposes the underlying handle for route wiring that needs it.
func (h *Handler) DB() *gorm.DB { return h.db }

// badRequest writes a 400 with field-level detail when available.
func badRequest(c *gin.Context, message string, err error) {
	body := gin.H{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}

// notFound writes a 404 with the specific lookup message.
func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"message": message})
}

// serverError logs the failure with context and writes a generic 500.
func (h *Handler) serverError(c *gin.Context, logMsg string, err error) {
	h.log.Error(logMsg, "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{
		"message": "Internal server error",
		"error":   err.Error(),
	})
}
