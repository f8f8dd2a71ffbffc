package api

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fluffyshare/internal/metrics"
)

func NewRouter(h *Handler, allowedOrigins []string, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: allowedOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", adminTokenHeader},
			MaxAge:       12 * time.Hour,
		}))
	}

	api := r.Group("/api/fluffyshare")
	api.GET("/leaderboard", h.GetLeaderboard)
	api.GET("/stats", h.GetStats)
	api.GET("/users/:id", h.GetUser)
	api.POST("/run", h.TriggerRun)

	r.GET("/health", h.GetHealth)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
