package repository

import (
	"github.com/WispAyr/Hik-Camera-Server/internal/models"
)

// EventRepository defines the interface for event data operations.
type EventRepository interface {
	// Create operations
	Insert(event *models.Event) (int64, error)

	// Read operations
	GetByID(id int64) (*models.Event, error)
	GetAll(filter *models.EventFilter) ([]models.Event, error)
	GetStats() (*models.EventStats, error)
	GetChannels() ([]string, error)
	GetEventTypes() ([]string, error)
}
