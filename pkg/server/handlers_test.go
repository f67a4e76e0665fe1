package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ironfrontier/pkg/pcg/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstLocationID(t *testing.T, s *Server) string {
	t.Helper()
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id := range s.locations {
		return id
	}
	t.Fatal("no locations available")
	return ""
}

func TestHandleGenerateWorldReplacesLocations(t *testing.T) {
	s, err := NewServer(testConfig(), nil)
	require.NoError(t, err)

	body, _ := json.Marshal(generateWorldRequest{Seed: 7, Name: "New World", RegionCount: 1, LocationsPerRegion: [2]int{1, 1}})
	req := httptest.NewRequest(http.MethodPost, "/api/world/generate", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleGenerateWorld(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var world entities.GeneratedWorld
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &world))
	assert.Equal(t, uint32(7), world.Seed)
	assert.Len(t, world.Regions, 1)
}

func TestHandleGenerateLocationContentUnknownLocation(t *testing.T) {
	s, err := NewServer(testConfig(), nil)
	require.NoError(t, err)

	body, _ := json.Marshal(generateLocationContentRequest{LocationID: "nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/location/content", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleGenerateLocationContent(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGenerateLocationContentKnownLocation(t *testing.T) {
	s, err := NewServer(testConfig(), nil)
	require.NoError(t, err)
	locationID := firstLocationID(t, s)

	body, _ := json.Marshal(generateLocationContentRequest{LocationID: locationID})
	req := httptest.NewRequest(http.MethodPost, "/api/location/content", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleGenerateLocationContent(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var content entities.ProceduralLocationContent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &content))
}

func TestHandleGetOrGenerateNPCsRequiresLocationID(t *testing.T) {
	s, err := NewServer(testConfig(), nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/location/npcs", nil)
	rec := httptest.NewRecorder()

	s.handleGetOrGenerateNPCs(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetOrGenerateNPCsReturnsNPCs(t *testing.T) {
	s, err := NewServer(testConfig(), nil)
	require.NoError(t, err)
	locationID := firstLocationID(t, s)

	req := httptest.NewRequest(http.MethodGet, "/api/location/npcs?location_id="+locationID, nil)
	rec := httptest.NewRecorder()

	s.handleGetOrGenerateNPCs(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var npcs []entities.ProceduralNPC
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &npcs))
	assert.NotEmpty(t, npcs)
}

func TestHandleGetOrGenerateDialogueMissingParams(t *testing.T) {
	s, err := NewServer(testConfig(), nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/dialogue", nil)
	rec := httptest.NewRecorder()

	s.handleGetOrGenerateDialogue(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleClearCacheResetsOrchestrator(t *testing.T) {
	s, err := NewServer(testConfig(), nil)
	require.NoError(t, err)
	locationID := firstLocationID(t, s)
	resolved, _ := s.resolveLocation(locationID)
	before := s.orchestrator.GenerateLocationContent(resolved, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/cache/clear", nil)
	rec := httptest.NewRecorder()

	s.handleClearCache(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	after := s.orchestrator.GenerateLocationContent(resolved, nil)
	assert.NotSame(t, before, after)
}
