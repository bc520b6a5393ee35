package http

import (
	"github.com/Medinhoo/liar/internal/config"
	"github.com/Medinhoo/liar/internal/game"
	"github.com/Medinhoo/liar/internal/http/handlers"
	"github.com/Medinhoo/liar/internal/http/middleware"
	"github.com/Medinhoo/liar/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, cfg *config.Config, db *pgxpool.Pool, registry *game.Registry, hub *ws.Hub, version string) {
	h := handlers.NewHandler(registry)
	healthHandler := handlers.NewHealthHandler(db, registry, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	v1.POST("/auth", middleware.SimpleRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow), h.Auth)

	// WebSocket for game rooms
	r.GET("/ws", h.WS(hub))
}
