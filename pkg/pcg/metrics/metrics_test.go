package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersWithoutPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
	})
}

func TestMultipleInstancesDoNotCollide(t *testing.T) {
	a := New()
	b := New()
	assert.NotPanics(t, func() {
		a.RecordGeneration("npc")
		b.RecordGeneration("npc")
	})
}

func TestHandlerExposesRecordedMetrics(t *testing.T) {
	m := New()
	m.RecordGeneration("npc")
	m.RecordGenerationDuration("town", 50*time.Millisecond)
	m.RecordCacheHit()
	m.RecordCacheMiss()
	m.RecordBindingFailure("quest_objective")
	m.SetCachedLocations(3)

	handler := m.Handler()
	require.NotNil(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ironfrontier_pcg_generations_total")
	assert.Contains(t, body, "ironfrontier_pcg_generation_duration_seconds")
	assert.Contains(t, body, "ironfrontier_pcg_cache_hits_total")
	assert.Contains(t, body, "ironfrontier_pcg_cache_misses_total")
	assert.Contains(t, body, "ironfrontier_pcg_binding_failures_total")
	assert.Contains(t, body, "ironfrontier_pcg_cached_locations 3")
}
