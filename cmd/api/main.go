package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-ranker/internal/api"
	"recipe-ranker/internal/core/cache"
	"recipe-ranker/internal/core/catalog"
	"recipe-ranker/internal/core/recipe"
	"recipe-ranker/internal/core/source"
	"recipe-ranker/internal/infrastructure/config"
	"recipe-ranker/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	// 載入查詢表
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		common.LogFatal("Failed to load catalog", zap.String("path", cfg.Catalog.Path), zap.Error(err))
	}

	// 初始化快取
	store, err := cache.New(&cfg.Cache)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.String("backend", cfg.Cache.Backend), zap.Error(err))
	}
	defer store.Close()

	opts := []recipe.Option{
		recipe.WithCache(store),
		recipe.WithWorkers(cfg.Ranking.Workers),
	}
	if cfg.RecipeAPI.Enabled {
		opts = append(opts, recipe.WithSource(source.NewClient(&cfg.RecipeAPI)))
		common.LogInfo("食譜搜尋服務已啟用",
			zap.String("base_url", cfg.RecipeAPI.BaseURL),
			zap.Int("max_results", cfg.RecipeAPI.MaxResults),
		)
	}

	engine, err := recipe.NewEngine(cat, opts...)
	if err != nil {
		common.LogFatal("Failed to create engine", zap.Error(err))
	}

	// 設置路由
	router, err := api.SetupRouter(cfg, engine, store)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogError("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
