package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports whether the two stores behind the restaurant are reachable.
// The desktop app polls this before letting the cashier open the shift.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		postgres := "ok"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			postgres = "sin conexion"
		}

		redisEstado := "ok"
		if rdb.Ping(ctx).Err() != nil {
			redisEstado = "sin conexion"
		}

		status := http.StatusOK
		if postgres != "ok" || redisEstado != "ok" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":       status == http.StatusOK,
			"postgres": postgres,
			"redis":    redisEstado,
		})
	}
}
