package validation

import (
	"fmt"
	"net/url"

	"github.com/WispAyr/Hik-Camera-Server/internal/models"
)

// requiredFields is the fixed check order; the first missing field is the one
// reported to the client.
var requiredFields = []string{"channelID", "dateTime", "eventType", "licensePlate"}

// MissingFieldError reports a required submission parameter that was absent
// or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Normalize extracts a canonical event from raw request parameters.
//
// Only presence of the required fields is enforced. Optional fields pass
// through without type coercion or range checks: the camera units are trusted
// to send whatever they send, and dateTime in particular is kept verbatim.
// Attachments are not inspected here.
func Normalize(params url.Values) (*models.Event, error) {
	for _, field := range requiredFields {
		if params.Get(field) == "" {
			return nil, &MissingFieldError{Field: field}
		}
	}

	return &models.Event{
		ChannelID:       params.Get("channelID"),
		DateTime:        params.Get("dateTime"),
		EventType:       params.Get("eventType"),
		LicensePlate:    params.Get("licensePlate"),
		Country:         optional(params, "country"),
		Lane:            optional(params, "lane"),
		Direction:       optional(params, "direction"),
		ConfidenceLevel: optional(params, "confidenceLevel"),
		MACAddress:      optional(params, "macAddress"),
	}, nil
}

// optional returns a pointer to the parameter value, or nil when it is absent
// or empty.
func optional(params url.Values, key string) *string {
	if v := params.Get(key); v != "" {
		return &v
	}
	return nil
}
