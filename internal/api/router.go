package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"recipe-ranker/internal/api/handlers/engine"
	"recipe-ranker/internal/api/handlers/health"
	"recipe-ranker/internal/api/middleware"
	"recipe-ranker/internal/core/cache"
	"recipe-ranker/internal/core/recipe"
	"recipe-ranker/internal/infrastructure/config"
	"recipe-ranker/internal/metrics"
	"recipe-ranker/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// 預設請求超時
const defaultTimeout = 30 * time.Second

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, eng *recipe.Engine, store cache.Store) (*gin.Engine, error) {
	if cfg == nil || eng == nil {
		return nil, errors.New("config and engine are required")
	}
	if store == nil {
		store = cache.Disabled{}
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger())
	router.Use(metrics.Middleware())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	if cfg.Server.MaxBodyBytes > 0 {
		router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	}

	// 請求超時
	timeout := cfg.Server.WriteTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// 健康檢查路由
	checks := []health.Check{}
	if pinger, ok := store.(interface{ Ping(context.Context) error }); ok {
		checks = append(checks, health.Check{Name: "cache", Fn: pinger.Ping})
	}
	healthHandler := health.NewHandler(cfg.App.Version, store.Stats, checks...)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	engine.NewHandler(eng, cfg.App.Debug).Register(api, middleware.Deduplication(cfg.DedupWindow))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.ErrNotFound.Response(false))
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", timeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
