package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandlerHealthyAfterNewServer(t *testing.T) {
	s, err := NewServer(testConfig(), nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.healthChecker.HealthHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, HealthStatusHealthy, resp.Status)
	assert.Len(t, resp.Checks, 2)
}

func TestHealthHandlerUnhealthyWhenOrchestratorUnwired(t *testing.T) {
	hc := NewHealthChecker(&Server{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	hc.HealthHandler(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, HealthStatusUnhealthy, resp.Status)
}

func TestRegisterCheckAddsCustomCheck(t *testing.T) {
	hc := NewHealthChecker(&Server{})
	hc.RegisterCheck("custom", func(ctx context.Context) error { return nil })
	assert.Contains(t, hc.checks, "custom")
}
