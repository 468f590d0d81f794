package models

import "time"

// Event represents a single vehicle-detection record reported by a camera unit.
// DateTime is stored exactly as the device reported it; it is treated as an
// opaque, lexicographically sortable string and never reparsed.
type Event struct {
	ID              int64   `json:"id"`
	ChannelID       string  `json:"channelID"`
	DateTime        string  `json:"dateTime"`
	EventType       string  `json:"eventType"`
	Country         *string `json:"country"`
	LicensePlate    string  `json:"licensePlate"`
	Lane            *string `json:"lane"`
	Direction       *string `json:"direction"`
	ConfidenceLevel *string `json:"confidenceLevel"`
	MACAddress      *string `json:"macAddress"`

	// Stored attachment filenames, null when the submission carried no image
	// for that slot. ImageFile is a legacy alias holding the first stored
	// reference, for consumers that expect exactly one image.
	LicensePlateImage *string `json:"licensePlateImage"`
	VehicleImage      *string `json:"vehicleImage"`
	DetectionImage    *string `json:"detectionImage"`
	ImageFile         *string `json:"imageFile"`

	CreatedAt time.Time `json:"createdAt"`
}

// EventFilter contains filtering options for querying events. All fields are
// optional and combined with AND. DateFrom/DateTo are inclusive bounds
// compared against the raw dateTime string.
type EventFilter struct {
	LicensePlateContains string
	DateFrom             string
	DateTo               string
	Limit                int
}

// EventStats contains aggregate statistics about stored events.
// LastDetection is the maximum dateTime string, null while the table is empty.
type EventStats struct {
	TotalEvents    int     `json:"totalEvents"`
	UniqueVehicles int     `json:"uniqueVehicles"`
	ActiveChannels int     `json:"activeChannels"`
	LastDetection  *string `json:"lastDetection"`
}
