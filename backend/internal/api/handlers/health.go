package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const Version = "0.1.0"

// Pinger reports whether a dependency is reachable. *database.Database satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// WordCounter reports the active dictionary size. *dictionary.Store satisfies it.
type WordCounter interface {
	Len() int
	IsFallback() bool
}

type HealthHandler struct {
	db         Pinger
	dictionary WordCounter
	logger     *zap.SugaredLogger
}

// NewHealthHandler builds the health endpoints. db is nil when the audit store is disabled.
func NewHealthHandler(db Pinger, dictionary WordCounter, logger *zap.SugaredLogger) *HealthHandler {
	return &HealthHandler{
		db:         db,
		dictionary: dictionary,
		logger:     logger,
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "passforge",
		"version": Version,
	})
}

func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (h *HealthHandler) Ready(c *gin.Context) {
	resp := gin.H{"status": "ready", "database": "disabled"}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.logger.Errorw("Database ping failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "error",
				"error":  "database ping failed",
			})
			return
		}
		resp["database"] = "connected"
	}

	if h.dictionary != nil {
		resp["dictionary_words"] = h.dictionary.Len()
		resp["dictionary_fallback"] = h.dictionary.IsFallback()
	}

	c.JSON(http.StatusOK, resp)
}
