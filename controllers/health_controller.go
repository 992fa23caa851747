package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/vnkhanh/skillplus-backend/ws"
)

type HealthController struct {
	db  *gorm.DB
	rdb *redis.Client
	hub *ws.Hub
}

// NewHealthController accepts a nil Redis client when caching is disabled.
func NewHealthController(db *gorm.DB, rdb *redis.Client, hub *ws.Hub) *HealthController {
	return &HealthController{db: db, rdb: rdb, hub: hub}
}

func (ctl *HealthController) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	// Mặc định trạng thái OK
	response := gin.H{
		"status":    "ok",
		"message":   "Service is healthy",
		"timestamp": time.Now().Unix(),
		"db":        "ok",
		"redis":     "disabled",
		"websocket": gin.H{
			"enabled": true,
			"stats":   ctl.hub.Stats(),
		},
	}
	status := http.StatusOK

	sqlDB, err := ctl.db.DB()
	if err != nil {
		response["db"] = "error: cannot get DB instance"
		response["status"] = "degraded"
		status = http.StatusInternalServerError
	} else if err := sqlDB.PingContext(ctx); err != nil {
		response["db"] = "error: cannot connect to DB"
		response["status"] = "degraded"
		status = http.StatusInternalServerError
	}

	if ctl.rdb != nil {
		response["redis"] = "ok"
		if err := ctl.rdb.Ping(ctx).Err(); err != nil {
			// Cache is optional; the service still works without it.
			response["redis"] = "error: cannot connect to Redis"
			response["status"] = "degraded"
		}
	}

	c.JSON(status, response)
}
