package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/WispAyr/Hik-Camera-Server/internal/models"
)

// EventRepository implements repository.EventRepository for SQLite.
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new SQLite event repository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Insert adds a new event record to the database and returns its assigned id.
// Rows are immutable after creation; there is no update path.
func (r *EventRepository) Insert(event *models.Event) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.Conn().Exec(`
		INSERT INTO events (
			channel_id, date_time, event_type, country, license_plate,
			lane, direction, confidence_level, mac_address,
			license_plate_image, vehicle_image, detection_image, image_file, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		event.ChannelID, event.DateTime, event.EventType, event.Country, event.LicensePlate,
		event.Lane, event.Direction, event.ConfidenceLevel, event.MACAddress,
		event.LicensePlateImage, event.VehicleImage, event.DetectionImage, event.ImageFile,
		event.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}

	return result.LastInsertId()
}

const eventColumns = `
	id, channel_id, date_time, event_type, country, license_plate,
	lane, direction, confidence_level, mac_address,
	license_plate_image, vehicle_image, detection_image, image_file, created_at
`

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(id int64) (*models.Event, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	row := r.db.Conn().QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)

	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// GetAll retrieves events based on filter criteria, newest first.
// Ties on date_time fall back to id so repeated queries are deterministic.
func (r *EventRepository) GetAll(filter *models.EventFilter) ([]models.Event, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	args := []interface{}{}

	if filter.LicensePlateContains != "" {
		query += " AND license_plate LIKE '%' || ? || '%'"
		args = append(args, filter.LicensePlateContains)
	}

	if filter.DateFrom != "" {
		query += " AND date_time >= ?"
		args = append(args, filter.DateFrom)
	}

	if filter.DateTo != "" {
		query += " AND date_time <= ?"
		args = append(args, filter.DateTo)
	}

	query += " ORDER BY date_time DESC, id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *event)
	}

	return events, rows.Err()
}

// GetStats returns aggregate statistics about stored events.
func (r *EventRepository) GetStats() (*models.EventStats, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	stats := &models.EventStats{}

	var lastDetection sql.NullString
	err := r.db.Conn().QueryRow(`
		SELECT COUNT(*),
		       COUNT(DISTINCT license_plate),
		       COUNT(DISTINCT channel_id),
		       MAX(date_time)
		FROM events
	`).Scan(&stats.TotalEvents, &stats.UniqueVehicles, &stats.ActiveChannels, &lastDetection)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	if lastDetection.Valid {
		stats.LastDetection = &lastDetection.String
	}

	return stats, nil
}

// GetChannels returns a list of unique channel identifiers.
func (r *EventRepository) GetChannels() ([]string, error) {
	return r.distinctColumn("channel_id")
}

// GetEventTypes returns a list of unique event types.
func (r *EventRepository) GetEventTypes() ([]string, error) {
	return r.distinctColumn("event_type")
}

func (r *EventRepository) distinctColumn(column string) ([]string, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`SELECT DISTINCT ` + column + ` FROM events ORDER BY ` + column)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s values: %w", column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s value: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(s scanner) (*models.Event, error) {
	var event models.Event
	err := s.Scan(
		&event.ID, &event.ChannelID, &event.DateTime, &event.EventType, &event.Country,
		&event.LicensePlate, &event.Lane, &event.Direction, &event.ConfidenceLevel,
		&event.MACAddress, &event.LicensePlateImage, &event.VehicleImage,
		&event.DetectionImage, &event.ImageFile, &event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}
