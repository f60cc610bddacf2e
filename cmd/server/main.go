package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tnmai/diemdanh_backend/internal/civildate"
	"github.com/tnmai/diemdanh_backend/internal/config"
	"github.com/tnmai/diemdanh_backend/internal/database"
	"github.com/tnmai/diemdanh_backend/internal/logging"
	"github.com/tnmai/diemdanh_backend/internal/middleware"
	"github.com/tnmai/diemdanh_backend/internal/routes"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.Init(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	if err := database.SeedSettings(db, cfg.DefaultDailyFee); err != nil {
		logger.Fatal("settings seed failed", zap.Error(err))
	}

	if err := database.SeedStudents(db); err != nil {
		logger.Fatal("student seed failed", zap.Error(err))
	}

	codec, err := civildate.New(cfg.Timezone, nil)
	if err != nil {
		logger.Fatal("timezone setup failed", zap.Error(err))
	}

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())

	routes.Register(r, db, cfg, codec, logger)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("server listening", zap.String("port", port), zap.String("timezone", cfg.Timezone))
	if err := r.Run(":" + port); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
}
