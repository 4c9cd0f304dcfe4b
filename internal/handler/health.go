package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health responde el estado de las dos dependencias duras del servicio:
// Postgres y Redis. Devuelve 503 si cualquiera no contesta, para que el
// balanceador saque la instancia de rotación.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		estadoDB := "connected"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			estadoDB = "error"
		}

		estadoRedis := "connected"
		if rdb.Ping(ctx).Err() != nil {
			estadoRedis = "error"
		}

		codigo := http.StatusOK
		if estadoDB != "connected" || estadoRedis != "connected" {
			codigo = http.StatusServiceUnavailable
		}

		c.JSON(codigo, gin.H{
			"ok":    codigo == http.StatusOK,
			"db":    estadoDB,
			"redis": estadoRedis,
		})
	}
}
