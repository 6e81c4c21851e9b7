package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestContextFields(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "procurement", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-1")
	ctx = logg.WithFields(ctx, map[string]any{"rfp_id": "rfp1"})
	logg.Error(ctx, "compare.failed", errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "procurement", entry["service"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "rfp1", entry["rfp_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "compare.failed", entry["message"])
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{Level: zerolog.InfoLevel, Output: &buf})

	logg.Debug(context.Background(), "hidden")
	assert.Zero(t, buf.Len())
}
