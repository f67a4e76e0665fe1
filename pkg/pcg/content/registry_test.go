package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsPopulatesEveryFamily(t *testing.T) {
	r := NewRegistry(nil)
	result := r.LoadDefaults()
	require.True(t, result.IsValid())

	assert.NotEmpty(t, r.NamePools)
	assert.NotEmpty(t, r.PlaceNamePools)
	assert.NotEmpty(t, r.Snippets)
	assert.NotEmpty(t, r.NPCTemplates)
	assert.NotEmpty(t, r.QuestTemplates)
	assert.NotEmpty(t, r.Encounters)
	assert.NotEmpty(t, r.Enemies)
	assert.NotEmpty(t, r.Buildings)
	assert.NotEmpty(t, r.Locations)
}

func TestLoadDefaultsDropsInvalidEntries(t *testing.T) {
	r := NewRegistry(nil)
	result := r.LoadDefaults()
	for _, tmpl := range r.NPCTemplates {
		assert.LessOrEqual(t, tmpl.GenderMale+tmpl.GenderFemale, 1.0)
		for _, rng := range tmpl.PersonalityRanges {
			assert.LessOrEqual(t, rng.Lo, rng.Hi)
		}
	}
	for _, tmpl := range r.QuestTemplates {
		hasObjective := false
		for _, stage := range tmpl.Stages {
			if len(stage.Objectives) > 0 {
				hasObjective = true
			}
		}
		assert.True(t, hasObjective)
	}
	assert.NotNil(t, result)
}

func TestLoadYAMLOverlayMissingFileIsNonFatal(t *testing.T) {
	r := NewRegistry(nil)
	r.LoadDefaults()
	err := r.LoadYAMLOverlay("/nonexistent/path/does-not-exist.yaml")
	assert.NoError(t, err)
}
