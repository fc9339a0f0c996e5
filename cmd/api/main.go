package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/portfolio/internal/config"
	"github.com/joshua-takyi/portfolio/internal/connect"
	"github.com/joshua-takyi/portfolio/internal/container"
	"github.com/joshua-takyi/portfolio/internal/feed"
	"github.com/joshua-takyi/portfolio/internal/models"
	"github.com/joshua-takyi/portfolio/internal/routes"
)

const statsSyncInterval = 6 * time.Hour

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	cld, err := connect.CloudinaryCredentials()
	if err != nil {
		slog.Error("Failed to connect to Cloudinary", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg)
	logger.Info("Starting portfolio API server", "environment", cfg.Environment)

	// Initialize database connections
	supaClient, _, _, err := connect.InitSupabase()
	if err != nil {
		logger.Error("Failed to connect to Supabase", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to Supabase successfully")

	mongoClient, err := connect.MongoDBConnect()
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to MongoDB successfully")

	// Initialize dependency container
	appContainer := container.NewContainer(cfg, logger, cld, supaClient, mongoClient)

	// First snapshot load. Partial failures fall back to defaults inside the
	// store, so this never blocks startup on an empty project.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	appContainer.Store.Refresh(loadCtx)
	cancelLoad()

	// Change-feed listener keeps the snapshot fresh across sessions.
	feedCtx, cancelFeed := context.WithCancel(context.Background())
	listener := feed.NewListener(
		cfg.SupabaseURL,
		cfg.SupabaseAnonKey,
		models.ContentTables,
		logger,
		appContainer.Store.NotifyChange,
	)
	go listener.Run(feedCtx)

	// Periodic GitHub stats sync; the admin panel can also trigger it.
	if cfg.GithubUsername != "" {
		go appContainer.StatsService.RunPeriodic(feedCtx, statsSyncInterval, func(err error) {
			logger.Warn("github stats sync failed", "error", err)
		})
	}

	// Setup routes
	router := routes.SetupRoutes(appContainer)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Release the feed subscriptions and the debounce timer first
	cancelFeed()
	appContainer.Store.Close()

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Close database connections
	if err := connect.MongoDBDisconnect(mongoClient); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}
