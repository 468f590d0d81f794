package storage_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WispAyr/Hik-Camera-Server/internal/storage"
)

const maxTestSize = 10 << 20

func TestSave_WritesFileWithSynthesizedName(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewAttachmentStore(dir, maxTestSize)

	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02, 0x03}
	filename, err := store.Save("licensePlateImage", "ABC123", "2024-01-01T10:00:00Z", data, "image/jpeg", "plate.jpg")
	require.NoError(t, err)

	assert.Equal(t, "ABC123_2024-01-01T10-00-00Z_licensePlateImage.jpg", filename)

	stored, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, stored), "stored bytes must be identical to the uploaded bytes")
}

func TestSave_RejectsNonJPEG(t *testing.T) {
	store := storage.NewAttachmentStore(t.TempDir(), maxTestSize)

	_, err := store.Save("vehicleImage", "ABC123", "2024-01-01T10:00:00Z", []byte("png data"), "image/png", "vehicle.png")
	assert.ErrorIs(t, err, storage.ErrUnsupportedMediaType)
}

func TestSave_RejectsOversizePayload(t *testing.T) {
	store := storage.NewAttachmentStore(t.TempDir(), 16)

	_, err := store.Save("vehicleImage", "ABC123", "2024-01-01T10:00:00Z", make([]byte, 17), "image/jpeg", "vehicle.jpg")
	assert.ErrorIs(t, err, storage.ErrPayloadTooLarge)
}

func TestSave_CreatesDirectoryOnFirstUse(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")
	store := storage.NewAttachmentStore(dir, maxTestSize)

	filename, err := store.Save("detectionImage", "XYZ789", "2024-02-02T12:00:00Z", []byte("jpeg"), "image/jpeg", "frame.jpg")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, filename))
	assert.NoError(t, err)
}

func TestSave_SanitizesPlateAndTimestamp(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewAttachmentStore(dir, maxTestSize)

	filename, err := store.Save("vehicleImage", "AB 12/3", "2024-01-01 10:00:00.123", []byte("jpeg"), "image/jpeg", "v.jpg")
	require.NoError(t, err)

	assert.Equal(t, "AB-12-3_2024-01-01-10-00-00-123_vehicleImage.jpg", filename)
	_, err = os.Stat(filepath.Join(dir, filename))
	assert.NoError(t, err)
}

func TestSave_SamePlateAndTimestampOverwrites(t *testing.T) {
	// Known limitation: colliding names are silently overwritten, last
	// writer wins.
	dir := t.TempDir()
	store := storage.NewAttachmentStore(dir, maxTestSize)

	first, err := store.Save("vehicleImage", "ABC123", "2024-01-01T10:00:00Z", []byte("first"), "image/jpeg", "v.jpg")
	require.NoError(t, err)

	second, err := store.Save("vehicleImage", "ABC123", "2024-01-01T10:00:00Z", []byte("second"), "image/jpeg", "v.jpg")
	require.NoError(t, err)
	require.Equal(t, first, second)

	stored, err := os.ReadFile(filepath.Join(dir, second))
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), stored)
}

func TestSave_DefaultsExtensionWhenHintHasNone(t *testing.T) {
	store := storage.NewAttachmentStore(t.TempDir(), maxTestSize)

	filename, err := store.Save("vehicleImage", "ABC123", "2024-01-01T10:00:00Z", []byte("jpeg"), "image/jpeg", "upload")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(filename))
}
