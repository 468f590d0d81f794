package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/WispAyr/Hik-Camera-Server/internal/config"
	"github.com/WispAyr/Hik-Camera-Server/internal/live"
	"github.com/WispAyr/Hik-Camera-Server/internal/logger"
	"github.com/WispAyr/Hik-Camera-Server/internal/repository/sqlite"
	"github.com/WispAyr/Hik-Camera-Server/internal/routes"
	"github.com/WispAyr/Hik-Camera-Server/internal/storage"
)

type App struct {
	config *config.Config
	logger *zap.SugaredLogger
	db     *sqlite.DB
	repo   *sqlite.EventRepository
	store  *storage.AttachmentStore
	hub    *live.Hub
}

// NewApp wires every dependency explicitly. The store handle is constructed
// here once and injected into the endpoints; it lives for the whole process.
func NewApp() (*App, error) {
	cfg := config.Load()

	log, err := logger.New(cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &App{
		config: cfg,
		logger: log,
		db:     db,
		repo:   sqlite.NewEventRepository(db),
		store:  storage.NewAttachmentStore(cfg.ImageDirectory, cfg.MaxUploadSize),
		hub:    live.NewHub(log),
	}, nil
}

// Run starts the hub and the HTTP server, and blocks until shutdown.
// SIGINT/SIGTERM drain in-flight requests before the database is closed.
func (a *App) Run() error {
	go a.hub.Run()

	handler := routes.SetupRoutes(a.repo, a.store, a.hub, a.config, a.logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.config.Port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("ANPR event server listening on :%d", a.config.Port)
		a.logger.Infof("Database: %s", a.config.DatabasePath)
		a.logger.Infof("Images: %s", a.config.ImageDirectory)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.db.Close()
		return err
	case sig := <-stop:
		a.logger.Infof("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		a.logger.Errorf("Shutdown error: %v", err)
	}

	return a.db.Close()
}
