package handlers

import (
	"net/http"
	"time"

	"neolink/internal/service"
	"neolink/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type SystemHandler struct {
	dataset     service.DatasetService
	db          *gorm.DB
	redisClient *goredis.Client
	workers     gin.H
}

// NewSystemHandler builds the health and stats endpoints. db and redisClient
// may be nil when the backends are disabled.
func NewSystemHandler(dataset service.DatasetService, db *gorm.DB, redisClient *goredis.Client, workers gin.H) *SystemHandler {
	return &SystemHandler{
		dataset:     dataset,
		db:          db,
		redisClient: redisClient,
		workers:     workers,
	}
}

func (h *SystemHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	status := "ok"
	dataset := "loaded"
	if _, err := h.dataset.Current(); err != nil {
		status = "degraded"
		dataset = "not loaded"
	}

	database := "disabled"
	if h.db != nil {
		database = "connected"
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status = "degraded"
			database = "unreachable"
		}
	}

	cache := "memory"
	if h.redisClient != nil {
		cache = "connected"
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			status = "degraded"
			cache = "unreachable"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services": gin.H{
			"dataset":  dataset,
			"database": database,
			"redis":    cache,
		},
	})
}

func (h *SystemHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.dataset.Stats(ctx)
	if err != nil {
		respondError(c, err, "failed to get dataset stats")
		return
	}

	response := gin.H{
		"dataset": stats,
		"workers": h.workers,
	}
	if h.redisClient != nil {
		if redisStats, err := redis.GetStats(ctx, h.redisClient); err == nil {
			response["redis"] = redisStats
		}
	}

	c.JSON(http.StatusOK, response)
}

// Reload forces a dataset reload.
func (h *SystemHandler) Reload(c *gin.Context) {
	ctx := c.Request.Context()

	snapshot, err := h.dataset.Reload(ctx)
	if err != nil {
		respondError(c, err, "failed to reload dataset")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "dataset reloaded",
		"snapshot":   snapshot.ID,
		"neos":       snapshot.DB.NEOCount(),
		"approaches": snapshot.DB.ApproachCount(),
	})
}
