package e2e

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestWorldGenerationAndLocationContent exercises the full generation
// pipeline through the server's HTTP API: generate a world, fetch
// NPCs for one of its locations, then generate full location content.
func TestWorldGenerationAndLocationContent(t *testing.T) {
	server, err := NewTestServer()
	require.NoError(t, err, "should create test server")

	require.NoError(t, server.Start(), "server should start")
	defer server.Stop()

	client := NewClient(server.BaseURL())
	require.NoError(t, client.WaitForHealth(10*time.Second))

	var world struct {
		Seed    uint32 `json:"Seed"`
		Regions []struct {
			ID        string `json:"ID"`
			Locations []struct {
				ID string `json:"ID"`
			} `json:"Locations"`
		} `json:"Regions"`
	}
	require.NoError(t, client.GenerateWorld(1234, "E2E Frontier", 2, &world))
	require.Equal(t, uint32(1234), world.Seed)
	require.NotEmpty(t, world.Regions)
	require.NotEmpty(t, world.Regions[0].Locations)

	locationID := world.Regions[0].Locations[0].ID

	var npcs []map[string]interface{}
	require.NoError(t, client.GetNPCs(locationID, &npcs))
	require.NotEmpty(t, npcs)

	var content map[string]interface{}
	require.NoError(t, client.GenerateLocationContent(locationID, &content))
	require.Equal(t, locationID, content["LocationID"])

	require.NoError(t, client.ClearCache())
}

// TestWebSocketBroadcastsWorldGenerated verifies the event stream reports
// a world_generated event after POST /api/world/generate.
func TestWebSocketBroadcastsWorldGenerated(t *testing.T) {
	server, err := NewTestServer()
	require.NoError(t, err, "should create test server")

	require.NoError(t, server.Start(), "server should start")
	defer server.Stop()

	client := NewClient(server.BaseURL())
	require.NoError(t, client.WaitForHealth(10*time.Second))
	require.NoError(t, client.ConnectWebSocket())
	defer client.Close()

	var world map[string]interface{}
	require.NoError(t, client.GenerateWorld(99, "WS Frontier", 1, &world))

	_, err = client.WaitForEvent("world_generated", 5*time.Second)
	require.NoError(t, err)
}
