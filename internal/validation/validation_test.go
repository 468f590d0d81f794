package validation_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WispAyr/Hik-Camera-Server/internal/validation"
)

func fullParams() url.Values {
	return url.Values{
		"channelID":    {"CH1"},
		"dateTime":     {"2024-01-01T10:00:00Z"},
		"eventType":    {"ANPR"},
		"licensePlate": {"ABC123"},
	}
}

func TestNormalize_AllRequiredFields(t *testing.T) {
	event, err := validation.Normalize(fullParams())
	require.NoError(t, err)

	assert.Equal(t, "CH1", event.ChannelID)
	assert.Equal(t, "2024-01-01T10:00:00Z", event.DateTime)
	assert.Equal(t, "ANPR", event.EventType)
	assert.Equal(t, "ABC123", event.LicensePlate)

	// Optional fields default to null.
	assert.Nil(t, event.Country)
	assert.Nil(t, event.Lane)
	assert.Nil(t, event.Direction)
	assert.Nil(t, event.ConfidenceLevel)
	assert.Nil(t, event.MACAddress)
}

func TestNormalize_MissingRequiredField(t *testing.T) {
	for _, field := range []string{"channelID", "dateTime", "eventType", "licensePlate"} {
		params := fullParams()
		params.Del(field)

		_, err := validation.Normalize(params)
		require.Error(t, err, "expected error for missing %s", field)

		var missing *validation.MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, field, missing.Field)
	}
}

func TestNormalize_EmptyValueCountsAsMissing(t *testing.T) {
	params := fullParams()
	params.Set("licensePlate", "")

	_, err := validation.Normalize(params)
	var missing *validation.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "licensePlate", missing.Field)
}

func TestNormalize_FirstMissingFieldWins(t *testing.T) {
	// With several fields absent, the first in the fixed order is reported.
	params := url.Values{"eventType": {"ANPR"}}

	_, err := validation.Normalize(params)
	var missing *validation.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "channelID", missing.Field)
}

func TestNormalize_OptionalFieldsPassThroughUnvalidated(t *testing.T) {
	params := fullParams()
	params.Set("country", "UK")
	params.Set("lane", "2")
	params.Set("direction", "forward")
	params.Set("confidenceLevel", "not-a-number")
	params.Set("macAddress", "definitely not a mac")

	event, err := validation.Normalize(params)
	require.NoError(t, err)

	require.NotNil(t, event.Country)
	assert.Equal(t, "UK", *event.Country)
	require.NotNil(t, event.Lane)
	assert.Equal(t, "2", *event.Lane)
	require.NotNil(t, event.Direction)
	assert.Equal(t, "forward", *event.Direction)
	// No semantic validation on purpose: values are stored as reported.
	require.NotNil(t, event.ConfidenceLevel)
	assert.Equal(t, "not-a-number", *event.ConfidenceLevel)
	require.NotNil(t, event.MACAddress)
	assert.Equal(t, "definitely not a mac", *event.MACAddress)
}

func TestNormalize_DateTimeKeptVerbatim(t *testing.T) {
	params := fullParams()
	params.Set("dateTime", "not a timestamp at all")

	event, err := validation.Normalize(params)
	require.NoError(t, err)
	assert.Equal(t, "not a timestamp at all", event.DateTime)
}
