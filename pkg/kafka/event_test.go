package kafka

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginData struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

func TestNewEvent(t *testing.T) {
	data := loginData{UserID: 1, Email: "user@example.com"}

	event, err := NewEvent("user.logged_in", "1", "user", "auth-service", data)
	require.NoError(t, err)

	_, err = uuid.Parse(event.EventID)
	assert.NoError(t, err, "event ID must be a valid UUID")
	assert.Equal(t, "user.logged_in", event.EventType)
	assert.Equal(t, "1", event.AggregateID)
	assert.Equal(t, "user", event.AggregateType)
	assert.Equal(t, "auth-service", event.Source)
	assert.Equal(t, 1, event.Version)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, time.Minute)

	var decoded loginData
	require.NoError(t, event.UnmarshalData(&decoded))
	assert.Equal(t, data, decoded)
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent("user.logged_in", "1", "user", "auth-service", make(chan int))
	assert.Error(t, err)
}

func TestEvent_WithCorrelationID(t *testing.T) {
	event, err := NewEvent("user.logged_in", "1", "user", "auth-service", loginData{UserID: 1})
	require.NoError(t, err)

	correlationID := uuid.New().String()
	event.WithCorrelationID(correlationID)

	payload, err := event.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(payload), correlationID)
}

func TestEvent_MarshalOmitsEmptyCorrelationID(t *testing.T) {
	event, err := NewEvent("user.logged_in", "1", "user", "auth-service", loginData{UserID: 1})
	require.NoError(t, err)

	payload, err := event.Marshal()
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "correlation_id")
}
