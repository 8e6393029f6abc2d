package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storybook-server/internal/api"
	"storybook-server/internal/config"
	"storybook-server/internal/database"
	"storybook-server/internal/generator"
	"storybook-server/internal/imagegen"
	"storybook-server/internal/pdf"
	"storybook-server/internal/storage"
	"storybook-server/pkg/logger"
	"storybook-server/pkg/taskmanager"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	zap.ReplaceGlobals(zapLogger)
	zap.L().Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	// Отдельный zerolog-логгер для фоновых задач (менеджер задач читает его
	// из контекста).
	taskLogger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "taskmanager").Logger()

	// --- Database ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pgPool, err := database.Connect(ctx, cfg.GetDSN(), cfg.DBMaxConns, zapLogger)
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()
	zap.L().Info("Connected to PostgreSQL")

	if err := database.Migrate(ctx, pgPool, zapLogger); err != nil {
		zap.L().Fatal("Failed to apply database migrations", zap.Error(err))
	}

	// --- Dependency Injection ---
	userRepo := database.NewPgUserRepository(pgPool, zapLogger)
	childRepo := database.NewPgChildRepository(pgPool, zapLogger)
	storyRepo := database.NewPgStoryRepository(pgPool, zapLogger)

	imageClient, err := imagegen.NewOpenAIImageClient(cfg, zapLogger)
	if err != nil {
		zap.L().Fatal("Failed to create image generation client", zap.Error(err))
	}

	fileStorage, err := storage.NewLocalStorage(cfg.PDFOutputDir, zapLogger)
	if err != nil {
		zap.L().Fatal("Failed to initialize PDF storage", zap.Error(err))
	}

	rasterizer, err := pdf.NewChromeRasterizer(cfg, zapLogger)
	if err != nil {
		zap.L().Fatal("Failed to start PDF rasterizer", zap.Error(err))
	}
	defer func() {
		if err := rasterizer.Close(); err != nil {
			zap.L().Warn("Failed to close rasterizer", zap.Error(err))
		}
	}()

	taskMgr, err := taskmanager.New(taskmanager.Config{MaxTasks: cfg.MaxGenerationTasks})
	if err != nil {
		zap.L().Fatal("Failed to create task manager", zap.Error(err))
	}

	illustrator := generator.NewIllustrator(imageClient, zapLogger)
	genSvc := generator.NewService(storyRepo, userRepo, childRepo, illustrator, taskMgr, zapLogger)
	pdfSvc := pdf.NewService(storyRepo, fileStorage, rasterizer, cfg.PDFPublicBasePath, cfg.PDFRenderTimeout, zapLogger)

	// --- HTTP Server ---
	router := api.NewRouter(cfg, api.Handlers{
		Stories:  api.NewStoryHandler(genSvc, storyRepo, pdfSvc, zapLogger),
		PDFs:     api.NewPDFHandler(pdfSvc, cfg.PDFCleanupDaysOld, zapLogger),
		Children: api.NewChildHandler(childRepo, zapLogger),
		Themes:   api.NewThemeHandler(),
	}, zapLogger, taskLogger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.Port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	// Даем фоновым генерациям шанс дойти до терминального статуса.
	if err := taskMgr.Shutdown(shutdownCtx); err != nil {
		zap.L().Warn("Task manager shutdown timed out", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}
