package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig wires handlers and middleware into the engine.
type RouterConfig struct {
	Trackers  *TrackerHandler
	Logger    *zap.Logger
	RateLimit RateLimitConfig
	// Middleware runs after request logging and before routing.
	Middleware []gin.HandlerFunc
}

// NewRouter builds the gin engine. Handlers left nil are not routed.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := defaultLogger(cfg.Logger)

	engine := gin.New()
	engine.Use(RequestLogger(logger), gin.Recovery())
	for _, mw := range cfg.Middleware {
		if mw != nil {
			engine.Use(mw)
		}
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Trackers != nil {
		trackers := engine.Group("/trackers", RateLimit(cfg.RateLimit, logger))
		trackers.POST("", cfg.Trackers.Create)
		trackers.POST("/preview", cfg.Trackers.Preview)
	}

	resp := newResponder(logger)
	engine.NoRoute(func(c *gin.Context) {
		resp.writeJSON(c, http.StatusNotFound, errorResponse{Message: "The requested resource was not found."})
	})
	return engine
}
