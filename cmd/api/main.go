package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ivdepaste/ivdepaste-api/api/swagger"
	"github.com/ivdepaste/ivdepaste-api/internal/handler"
	"github.com/ivdepaste/ivdepaste-api/internal/middleware"
	"github.com/ivdepaste/ivdepaste-api/internal/repository"
	"github.com/ivdepaste/ivdepaste-api/internal/service"
	"github.com/ivdepaste/ivdepaste-api/pkg/cache"
	"github.com/ivdepaste/ivdepaste-api/pkg/config"
	"github.com/ivdepaste/ivdepaste-api/pkg/database"
	"github.com/ivdepaste/ivdepaste-api/pkg/export"
	"github.com/ivdepaste/ivdepaste-api/pkg/logger"
	corsmiddleware "github.com/ivdepaste/ivdepaste-api/pkg/middleware/cors"
	reqidmiddleware "github.com/ivdepaste/ivdepaste-api/pkg/middleware/requestid"
)

// @title ivdepaste API
// @version 1.0.0
// @description Paste storage, language detection and export service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	pasteRepo := repository.NewPasteRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Paste.CacheTTL, logr, redisClient != nil)
	pasteSvc := service.NewPasteService(pasteRepo, cacheSvc, metricsSvc, validate, logr, cfg.Paste)
	languageSvc := service.NewLanguageService()
	tokenSvc := service.NewTokenService(cfg.JWT)

	anonSet := middleware.NewAnonSet(cfg.Paste)
	pasteHandler := handler.NewPasteHandler(pasteSvc, anonSet)
	languageHandler := handler.NewLanguageHandler(languageSvc, metricsSvc)
	exportHandler := handler.NewExportHandler(pasteSvc, export.NewCSVExporter(), export.NewPDFExporter(), anonSet)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.OptionalJWT(tokenSvc))
	{
		api.POST("/pastes", pasteHandler.Create)
		api.GET("/pastes", pasteHandler.List)
		api.POST("/pastes/bulk-delete", pasteHandler.BulkDelete)
		api.GET("/pastes/:id", pasteHandler.Get)
		api.DELETE("/pastes/:id", pasteHandler.Delete)

		if cfg.Exports.Enabled {
			api.GET("/pastes/export", exportHandler.Export)
			api.GET("/pastes/:id/download", exportHandler.Download)
		}

		api.POST("/detect", languageHandler.Detect)
		api.GET("/languages", languageHandler.Languages)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
