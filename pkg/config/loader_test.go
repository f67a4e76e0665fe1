package config

import (
	"os"
	"path/filepath"
	"testing"

	"ironfrontier/pkg/integration"
	"ironfrontier/pkg/pcg/content"
	"ironfrontier/pkg/resilience"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetCircuitBreakerForTesting resets the circuit breaker state for testing
func resetCircuitBreakerForTesting() {
	manager := resilience.GetGlobalCircuitBreakerManager()
	manager.Remove("config_loader")
	integration.ResetExecutorsForTesting()
}

func TestLoadContentOverlay_EmptyPathIsNoOp(t *testing.T) {
	resetCircuitBreakerForTesting()

	registry := content.NewRegistry(nil)
	registry.LoadDefaults()
	before := len(registry.NPCTemplates)

	err := LoadContentOverlay("", registry)
	require.NoError(t, err)
	assert.Equal(t, before, len(registry.NPCTemplates))
}

func TestLoadContentOverlay_ValidYAMLFile(t *testing.T) {
	resetCircuitBreakerForTesting()

	tempDir := t.TempDir()
	overlayFile := filepath.Join(tempDir, "overlay.yaml")

	overlayContent := `
npc_templates:
  - id: "custom_blacksmith"
    role: "blacksmith"
    allowed_factions: ["law", "outlaws"]
    gender_male: 0.7
    gender_female: 0.3
    name_pool_id: "anglo_surnames"
    quest_giver_chance: 0.2
    shop_chance: 0.9
    valid_location_types: ["town"]
    min_importance: 0.1
`
	require.NoError(t, os.WriteFile(overlayFile, []byte(overlayContent), 0o644))

	registry := content.NewRegistry(nil)
	registry.LoadDefaults()

	err := LoadContentOverlay(overlayFile, registry)
	require.NoError(t, err)

	tmpl, ok := registry.NPCTemplates["custom_blacksmith"]
	require.True(t, ok)
	assert.Equal(t, "blacksmith", tmpl.Role)
}

func TestLoadContentOverlay_NonExistentFile(t *testing.T) {
	resetCircuitBreakerForTesting()

	tempDir := t.TempDir()
	registry := content.NewRegistry(nil)
	registry.LoadDefaults()

	err := LoadContentOverlay(filepath.Join(tempDir, "does_not_exist.yaml"), registry)
	assert.Error(t, err)
}

func TestLoadContentOverlay_InvalidYAML(t *testing.T) {
	resetCircuitBreakerForTesting()

	tempDir := t.TempDir()
	invalidFile := filepath.Join(tempDir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalidFile, []byte("npc_templates: [unclosed"), 0o644))

	registry := content.NewRegistry(nil)
	registry.LoadDefaults()

	err := LoadContentOverlay(invalidFile, registry)
	assert.Error(t, err)
}
