package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Yatube-Back/internal/cache"
	"github.com/ArthurDelaporte/Yatube-Back/internal/config"
	"github.com/ArthurDelaporte/Yatube-Back/internal/database"
	"github.com/ArthurDelaporte/Yatube-Back/internal/logs"
	"github.com/ArthurDelaporte/Yatube-Back/internal/routes"
	"github.com/ArthurDelaporte/Yatube-Back/internal/schema"
	"github.com/ArthurDelaporte/Yatube-Back/internal/storage"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fatal("Invalid configuration", err)
	}
	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg.DBUrl, cfg.DBLogMode); err != nil {
		fatal("Database connection failed", err)
	}
	defer database.Close()

	if err := schema.Migrate(database.DB); err != nil {
		fatal("Migration failed", err)
	}

	media, err := openMedia(context.Background(), cfg)
	if err != nil {
		fatal("Media storage unavailable", err)
	}
	storage.Use(media)

	pages := cache.NewPageCache("index_page", cfg.IndexCacheTTL)
	router, err := routes.SetupRouter(cfg, pages, media)
	if err != nil {
		fatal("Router setup failed", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logs.LogJSON("INFO", "Server listening", map[string]interface{}{
			"port":         cfg.Port,
			"mediaBackend": cfg.MediaBackend,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("Server error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logs.LogJSON("ERROR", "Shutdown error", map[string]interface{}{"error": err.Error()})
		return
	}
	logs.LogJSON("INFO", "Server stopped", nil)
}

func openMedia(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.MediaBackend == config.MediaBackendS3 {
		return storage.NewS3(ctx, cfg.AWSBucket, cfg.AWSRegion, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey)
	}
	return storage.NewLocal(cfg.MediaRoot, cfg.MediaURL)
}

func fatal(message string, err error) {
	logs.LogJSON("FATAL", message, map[string]interface{}{"error": err.Error()})
	os.Exit(1)
}
