package events

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeStampsFileAndSection(t *testing.T) {
	rec := &Recorder{}
	scope := For(rec, "de_DE.ini").InSection("General")

	scope.Warn("Theme", "Key not found")
	scope.Info("", "Done")

	got := rec.Events()
	require.Len(t, got, 2)
	assert.Equal(t, Event{
		Level:   zerolog.WarnLevel,
		File:    "de_DE.ini",
		Section: "General",
		Key:     "Theme",
		Message: "Key not found",
	}, got[0])
	assert.True(t, rec.HasKey(zerolog.WarnLevel, "Theme"))
	assert.False(t, rec.HasKey(zerolog.InfoLevel, "Theme"))
	assert.Len(t, rec.AtLevel(zerolog.InfoLevel), 1)

	rec.Reset()
	assert.Empty(t, rec.Events())
}

func TestForNilSinkDiscards(t *testing.T) {
	scope := For(nil, "x.ini")
	assert.NotPanics(t, func() { scope.Error("k", "boom") })
}

func TestLogSinkWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(zerolog.New(&buf))

	sink.Emit(Event{Level: zerolog.InfoLevel, File: "fr_FR.ini", Section: "Audio", Key: "Volume", Message: "Inserted line"})

	var rec map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "fr_FR.ini", rec["file"])
	assert.Equal(t, "Audio", rec["section"])
	assert.Equal(t, "Volume", rec["key"])
	assert.Equal(t, "Inserted line", rec["message"])
}

func TestLogSinkOmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(zerolog.New(&buf))

	sink.Emit(Event{Level: zerolog.WarnLevel, Message: "Nothing"})

	var rec map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	_, hasFile := rec["file"]
	assert.False(t, hasFile)
	assert.Equal(t, "warn", rec["level"])
}
