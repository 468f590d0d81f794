package routes

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/WispAyr/Hik-Camera-Server/internal/config"
	"github.com/WispAyr/Hik-Camera-Server/internal/handlers"
	"github.com/WispAyr/Hik-Camera-Server/internal/live"
	"github.com/WispAyr/Hik-Camera-Server/internal/middleware"
	"github.com/WispAyr/Hik-Camera-Server/internal/repository"
	"github.com/WispAyr/Hik-Camera-Server/internal/storage"
)

// SetupRoutes registers the ingestion and read API, stored image serving,
// the live websocket feed and the static dashboard files.
func SetupRoutes(repo repository.EventRepository, store *storage.AttachmentStore, hub *live.Hub, cfg *config.Config, logger *zap.SugaredLogger) http.Handler {
	mux := http.NewServeMux()

	// Event API: POST = camera ingestion, GET = dashboard query.
	mux.HandleFunc("/api/events", handlers.EventsHandler(repo, store, hub, cfg, logger))
	mux.HandleFunc("/api/events/stats", handlers.StatsHandler(repo, logger))
	mux.HandleFunc("/api/events/filters", handlers.FiltersHandler(repo, logger))

	// Live dashboard feed.
	mux.HandleFunc("/api/live", handlers.LiveEventsHandler(hub, logger))

	// Stored attachments, served byte-for-byte under a fixed prefix.
	mux.Handle("/images/", http.StripPrefix("/images/", http.FileServer(http.Dir(store.Dir()))))

	// Static dashboard files.
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDirectory)))

	return middleware.RequestLogging(logger, mux)
}
