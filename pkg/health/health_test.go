package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doReadiness(h *Handler) (*httptest.ResponseRecorder, Response) {
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	h.ReadinessHandler()(rec, req)

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		panic(err)
	}
	return rec, resp
}

func TestLiveness(t *testing.T) {
	h := NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	h.LivenessHandler()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, StatusUp, resp.Status)
}

func TestReadiness_AllUp(t *testing.T) {
	h := NewHandler()
	h.RegisterCritical("postgres", func(ctx context.Context) error { return nil })
	h.RegisterNonCritical("kafka", func(ctx context.Context) error { return nil })

	rec, resp := doReadiness(h)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, StatusUp, resp.Status)
	assert.Equal(t, StatusUp, resp.Checks["postgres"].Status)
	assert.Equal(t, StatusUp, resp.Checks["kafka"].Status)
}

func TestReadiness_CriticalFailure(t *testing.T) {
	h := NewHandler()
	h.RegisterCritical("postgres", func(ctx context.Context) error {
		return errors.New("connection refused")
	})

	rec, resp := doReadiness(h)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, StatusDown, resp.Status)
	assert.Equal(t, StatusDown, resp.Checks["postgres"].Status)
	assert.Equal(t, "connection refused", resp.Checks["postgres"].Error)
}

func TestReadiness_NonCriticalFailureDegrades(t *testing.T) {
	h := NewHandler()
	h.RegisterCritical("postgres", func(ctx context.Context) error { return nil })
	h.RegisterNonCritical("kafka", func(ctx context.Context) error {
		return errors.New("broker unreachable")
	})

	rec, resp := doReadiness(h)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, StatusDegraded, resp.Status)
	assert.Equal(t, StatusDown, resp.Checks["kafka"].Status)
	assert.Equal(t, StatusUp, resp.Checks["postgres"].Status)
}
