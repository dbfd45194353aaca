package main

import (
	"os"
	"time"

	"drip/internal/ai"
	"drip/internal/battle"
	"drip/internal/config"
	"drip/internal/database"
	"drip/internal/handlers"
	"drip/internal/logger"
	"drip/internal/middleware"
	"drip/internal/weather"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Initialize(logger.ParseLevel(cfg.LogLevel))

	logger.Info("starting drip",
		"port", cfg.Port,
		"database", cfg.DatabasePath,
		"model", cfg.AnthropicModel,
		"api_key", cfg.AnthropicAPIKey,
	)

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.ImagesDir, 0o755); err != nil {
		logger.Error("failed to create images directory", "error", err)
		os.Exit(1)
	}

	aiClient := ai.NewClient(cfg)
	if !aiClient.IsEnabled() {
		logger.Warn("ANTHROPIC_API_KEY not set, outfit generation and identification disabled")
	}

	svc := &handlers.Services{
		Config:  cfg,
		AI:      aiClient,
		Weather: weather.NewClient(time.Duration(cfg.WeatherCacheMinutes) * time.Minute),
		Engine:  battle.NewEngine(db),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit())

	r.Static("/images", cfg.ImagesDir)

	handlers.SetupRoutes(r, db, svc)

	logger.Info("listening", "addr", ":"+cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
