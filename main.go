package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/config"
	"github.com/terramatch-studio/terramatch-engine/pkg/database"
	"github.com/terramatch-studio/terramatch-engine/pkg/handlers"
	"github.com/terramatch-studio/terramatch-engine/pkg/llm"
	"github.com/terramatch-studio/terramatch-engine/pkg/middleware"
	"github.com/terramatch-studio/terramatch-engine/pkg/repositories"
	"github.com/terramatch-studio/terramatch-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("redis", cfg.Redis.Addr()),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.Bool("ai_credential", cfg.AI.HasCredential()))

	ctx := context.Background()
	redisClient, err := database.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	kv := repositories.NewRedisKV(redisClient)
	productRepo := repositories.NewProductRepository(kv)
	projectRepo := repositories.NewProjectRepository(kv)

	catalogService := services.NewCatalogService(productRepo, logger)
	projectService := services.NewProjectService(projectRepo, productRepo, logger)

	extractionClient, err := llm.NewExtractionClient(&cfg.AI, logger)
	if err != nil {
		logger.Fatal("failed to create extraction client", zap.Error(err))
	}
	visualizationClient := llm.NewVisualizationClient(&cfg.AI, logger)

	extractionService := services.NewExtractionService(projectService, extractionClient, logger)
	visualizationService := services.NewVisualizationService(
		projectService, catalogService, services.CatalogMatcher{}, visualizationClient, logger)

	mux := http.NewServeMux()

	authHandler := handlers.NewAuthHandler(cfg, logger)
	authHandler.RegisterRoutes(mux)
	requireSession := handlers.Middleware(authHandler.RequireSession)

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewProductsHandler(catalogService, logger).RegisterRoutes(mux, requireSession)
	handlers.NewProjectsHandler(projectService, catalogService, services.CatalogMatcher{}, logger).RegisterRoutes(mux, requireSession)
	handlers.NewImportsHandler(projectService, extractionService, logger).RegisterRoutes(mux, requireSession)
	handlers.NewVisualizationHandler(visualizationService, logger).RegisterRoutes(mux, requireSession)

	handler := middleware.RequestLogger(logger)(mux)

	addr := fmt.Sprintf("%s:%s", cfg.BindAddr, cfg.Port)
	logger.Info("starting terramatch-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
