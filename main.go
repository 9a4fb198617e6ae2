package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"media-studio/config"
	"media-studio/handlers"
	"media-studio/media"
	"media-studio/middleware"
	"media-studio/pipeline"
	"media-studio/render"
	"media-studio/store"
	"media-studio/youtube"
)

func main() {
	// Load .env if present; real environment variables win
	godotenv.Load()

	// Initialize app config
	cfg := config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Create the file stores and the scratch directory
	uploads, err := store.New(cfg.UploadDir)
	if err != nil {
		logger.Fatal("failed to create upload store", zap.Error(err))
	}
	outputs, err := store.New(cfg.OutputDir)
	if err != nil {
		logger.Fatal("failed to create output store", zap.Error(err))
	}
	if err := os.MkdirAll(cfg.TempDir, os.ModePerm); err != nil {
		logger.Fatal("failed to create temp directory", zap.Error(err))
	}

	// Wire the pipeline
	engine := media.NewEngine(cfg.TempDir, logger)
	renderer := render.NewRenderer(logger)
	pipe := pipeline.New(engine, renderer, logger)

	// Sweep stores of files older than an hour, every 15 minutes
	c := cron.New()
	c.AddFunc("@every 15m", func() {
		deleted, _ := uploads.Sweep(time.Hour)
		n, _ := outputs.Sweep(time.Hour)
		if deleted+n > 0 {
			logger.Info("swept old files", zap.Int("deleted", deleted+n))
		}
	})
	c.Start()
	defer c.Stop()

	// Set release mode for production
	gin.SetMode(gin.ReleaseMode)

	// Create a new gin engine
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Add CORS middleware
	router.Use(middleware.CorsMiddleware())

	// Add GZIP compression middleware
	router.Use(middleware.GzipMiddleware())

	// Create handler context with dependencies
	handlerContext := &handlers.HandlerContext{
		Config:   cfg,
		Uploads:  uploads,
		Outputs:  outputs,
		Media:    engine,
		Pipeline: pipe,
		Fetcher:  youtube.NewFetcher(logger),
		Log:      logger,
	}

	// Register routes
	router.POST("/uploadfile", handlerContext.UploadHandler)
	router.POST("/extract-audio", handlerContext.ExtractAudioHandler)
	router.POST("/download-youtube-video", handlerContext.DownloadYouTubeHandler)
	router.POST("/create-video-from-images", handlerContext.CreateVideoHandler)
	router.GET("/download-result/:file_id", handlerContext.DownloadResultHandler)
	router.DELETE("/cleanup-old-files", handlerContext.CleanupHandler)

	// Health check endpoint
	router.GET("/health", handlerContext.HealthHandler)

	addr := ":" + cfg.Port

	// Create and configure the HTTP server. Encodes run synchronously
	// inside the request, so the write timeout stays generous.
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Log configuration info
	logger.Info("starting server",
		zap.String("port", cfg.Port),
		zap.String("upload_dir", cfg.UploadDir),
		zap.String("output_dir", cfg.OutputDir),
		zap.String("temp_dir", cfg.TempDir))

	// Start the server
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
