package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/WispAyr/Hik-Camera-Server/internal/config"
	"github.com/WispAyr/Hik-Camera-Server/internal/live"
	"github.com/WispAyr/Hik-Camera-Server/internal/models"
	"github.com/WispAyr/Hik-Camera-Server/internal/repository"
	"github.com/WispAyr/Hik-Camera-Server/internal/storage"
	"github.com/WispAyr/Hik-Camera-Server/internal/validation"
)

// multipartMemoryLimit is how much of a parsed multipart body is kept in
// memory before spilling to temp files.
const multipartMemoryLimit = 32 << 20

// imageFields is the fixed processing order of the three optional image
// parts. The first successfully stored one doubles as the legacy imageFile
// reference.
var imageFields = []struct {
	name string
	ref  func(*models.Event) **string
}{
	{"licensePlateImage", func(e *models.Event) **string { return &e.LicensePlateImage }},
	{"vehicleImage", func(e *models.Event) **string { return &e.VehicleImage }},
	{"detectionImage", func(e *models.Event) **string { return &e.DetectionImage }},
}

// EventsHandler serves the event collection: camera units POST detections,
// the dashboard GETs the filtered list with statistics.
func EventsHandler(repo repository.EventRepository, store *storage.AttachmentStore, hub *live.Hub, cfg *config.Config, logger *zap.SugaredLogger) http.HandlerFunc {
	ingest := IngestEventHandler(repo, store, hub, logger)
	query := QueryEventsHandler(repo, cfg, logger)

	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			ingest(w, r)
		case http.MethodGet:
			query(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		}
	}
}

// IngestEventHandler accepts one detection submission: structured parameters
// plus zero to three JPEG parts. Attachments are written to disk before the
// row is inserted so the persisted record never references a missing file.
func IngestEventHandler(repo repository.EventRepository, store *storage.AttachmentStore, hub *live.Hub, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			if !errors.Is(err, http.ErrNotMultipart) {
				logger.Warnf("Failed to parse multipart submission: %v", err)
				writeError(w, http.StatusBadRequest, "Malformed multipart body", "")
				return
			}
			// Image-less submissions may arrive as a plain form or query string.
			if err := r.ParseForm(); err != nil {
				writeError(w, http.StatusBadRequest, "Malformed request parameters", "")
				return
			}
		}

		event, err := validation.Normalize(r.Form)
		if err != nil {
			var missing *validation.MissingFieldError
			field := ""
			if errors.As(err, &missing) {
				field = missing.Field
			}
			logger.Warnf("Rejected submission: %v", err)
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "Missing required parameters",
				"field": field,
			})
			return
		}

		if r.MultipartForm != nil {
			for _, img := range imageFields {
				files := r.MultipartForm.File[img.name]
				if len(files) == 0 {
					continue
				}
				header := files[0]

				part, err := header.Open()
				if err != nil {
					logger.Errorf("Failed to open image part %s: %v", img.name, err)
					writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
					return
				}
				data, err := io.ReadAll(part)
				part.Close()
				if err != nil {
					logger.Errorf("Failed to read image part %s: %v", img.name, err)
					writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
					return
				}

				filename, err := store.Save(img.name, event.LicensePlate, event.DateTime, data, header.Header.Get("Content-Type"), header.Filename)
				if err != nil {
					status := http.StatusInternalServerError
					message := "Internal server error"
					switch {
					case errors.Is(err, storage.ErrUnsupportedMediaType):
						status = http.StatusUnsupportedMediaType
						message = "Unsupported media type"
					case errors.Is(err, storage.ErrPayloadTooLarge):
						status = http.StatusRequestEntityTooLarge
						message = "Image too large"
					}
					logger.Warnf("Rejected image part %s for plate %s: %v", img.name, event.LicensePlate, err)
					writeError(w, status, message, err.Error())
					return
				}

				ref := img.ref(event)
				*ref = &filename
				if event.ImageFile == nil {
					event.ImageFile = &filename
				}
			}
		}

		id, err := repo.Insert(event)
		if err != nil {
			logger.Errorf("Failed to persist event for plate %s: %v", event.LicensePlate, err)
			writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		}
		event.ID = id

		logger.Infof("Stored event %d: channel=%s plate=%s type=%s", id, event.ChannelID, event.LicensePlate, event.EventType)

		if hub != nil {
			if payload, err := json.Marshal(event); err == nil {
				hub.Broadcast(payload)
			}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "success",
			"message": "Event received",
			"event":   event,
		})
	}
}

// QueryEventsHandler returns the filtered event list together with aggregate
// statistics for the dashboard renderer. Filter values are passed to the
// store verbatim; the result size is capped server-side.
func QueryEventsHandler(repo repository.EventRepository, cfg *config.Config, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := &models.EventFilter{
			LicensePlateContains: q.Get("licensePlate"),
			DateFrom:             q.Get("dateFrom"),
			DateTo:               q.Get("dateTo"),
			Limit:                cfg.QueryLimit,
		}

		events, err := repo.GetAll(filter)
		if err != nil {
			logger.Errorf("Failed to query events: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		}
		if events == nil {
			events = []models.Event{}
		}

		stats, err := repo.GetStats()
		if err != nil {
			logger.Errorf("Failed to compute stats: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"events": events,
			"stats":  stats,
		})
	}
}

// StatsHandler returns aggregate event statistics on their own.
func StatsHandler(repo repository.EventRepository, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := repo.GetStats()
		if err != nil {
			logger.Errorf("Failed to compute stats: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// FiltersHandler returns the distinct channels and event types available for
// the dashboard filter dropdowns.
func FiltersHandler(repo repository.EventRepository, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channels, err := repo.GetChannels()
		if err != nil {
			logger.Errorf("Failed to get channels: %v", err)
			channels = []string{}
		}
		if channels == nil {
			channels = []string{}
		}

		eventTypes, err := repo.GetEventTypes()
		if err != nil {
			logger.Errorf("Failed to get event types: %v", err)
			eventTypes = []string{}
		}
		if eventTypes == nil {
			eventTypes = []string{}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"channels":   channels,
			"eventTypes": eventTypes,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, errMsg, detail string) {
	body := map[string]string{"error": errMsg}
	if detail != "" {
		body["message"] = detail
	}
	writeJSON(w, status, body)
}
