package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("auth-service", "info", &buf)

	l.Info("user logged in", "user_id", int64(1))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "auth-service", entry["service"])
	assert.Equal(t, "user logged in", entry["msg"])
	assert.Equal(t, float64(1), entry["user_id"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("auth-service", "warn", &buf)

	l.Info("filtered out")
	assert.Zero(t, buf.Len())

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewWithWriter_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("auth-service", "verbose", &buf)

	l.Debug("filtered out")
	assert.Zero(t, buf.Len())

	l.Info("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestCorrelationID_ContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, CorrelationIDFromContext(ctx))

	ctx = WithCorrelationID(ctx, "abc-123")
	assert.Equal(t, "abc-123", CorrelationIDFromContext(ctx))
}

func TestWithContext_EnrichesCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("auth-service", "info", &buf)
	ctx := WithCorrelationID(context.Background(), "abc-123")

	WithContext(ctx, l).Info("request handled")

	assert.Contains(t, buf.String(), `"correlation_id":"abc-123"`)
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("auth-service", "info", &buf)

	ctx := NewContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))

	// Without a stored logger the default logger comes back, never nil.
	assert.NotNil(t, FromContext(context.Background()))
}
