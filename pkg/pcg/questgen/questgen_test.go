package questgen

import (
	"testing"

	"ironfrontier/pkg/pcg/content"
	"ironfrontier/pkg/pcg/entities"
	"ironfrontier/pkg/pcg/rng"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *content.Registry {
	r := content.NewRegistry(nil)
	r.LoadDefaults()
	return r
}

func sampleContext() entities.QuestGenerationContext {
	return entities.QuestGenerationContext{
		GenerationContext: entities.GenerationContext{
			LocationID: "dustbowl", RegionID: "region1", PlayerLevel: 5,
		},
		AvailableNPCs: []entities.ProceduralNPC{
			{GeneratedNPC: entities.GeneratedNPC{ID: "npc_outlaw_1", FullName: "Cole Garrett", Tags: []string{"outlaw"}}},
		},
		AvailableItems:     []entities.WorldItemSpawn{{ItemID: "item_canteen"}},
		AvailableLocations: []string{"dustbowl", "red_ridge"},
		AvailableEnemies:   []string{"bandit_thug"},
	}
}

func TestEligibleTemplatesFiltersByLevel(t *testing.T) {
	reg := testRegistry()
	gen := New(reg, nil)
	eligible := gen.EligibleTemplates(5, "sheriff", "law")
	found := false
	for _, t := range eligible {
		if t.ID == "bounty_basic" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestEligibleTemplatesRejectsGiverConstraintMismatch(t *testing.T) {
	reg := testRegistry()
	gen := New(reg, nil)
	eligible := gen.EligibleTemplates(5, "drifter", "independent")
	for _, t := range eligible {
		assert.NotEqual(t, "bounty_basic", t.ID)
	}
}

func TestGenerateOneIsDeterministic(t *testing.T) {
	reg := testRegistry()
	gen := New(reg, nil)
	tmpl := reg.QuestTemplates["bounty_basic"]
	giver := GiverInfo{ID: "npc_sheriff_1", Name: "Sheriff Garrett", Role: "sheriff", Faction: "law"}

	a := gen.GenerateOne(rng.New(42), tmpl, sampleContext(), giver)
	b := gen.GenerateOne(rng.New(42), tmpl, sampleContext(), giver)
	assert.Equal(t, a, b)
}

func TestGenerateOneCrossReferenceClosure(t *testing.T) {
	reg := testRegistry()
	gen := New(reg, nil)
	tmpl := reg.QuestTemplates["bounty_basic"]
	giver := GiverInfo{ID: "npc_sheriff_1", Name: "Sheriff Garrett", Role: "sheriff", Faction: "law"}
	qctx := sampleContext()

	quest := gen.GenerateOne(rng.New(7), tmpl, qctx, giver)

	available := map[string]bool{}
	for _, npc := range qctx.AvailableNPCs {
		available[npc.ID] = true
	}
	for _, item := range qctx.AvailableItems {
		available[item.ItemID] = true
	}
	for _, loc := range qctx.AvailableLocations {
		available[loc] = true
	}
	for _, enemy := range qctx.AvailableEnemies {
		available[enemy] = true
	}

	for _, id := range quest.TargetIDs {
		if id == "" {
			continue
		}
		assert.True(t, available[id], "target id %s must be in context's available lists", id)
	}
	for _, stage := range quest.Stages {
		for _, obj := range stage.Objectives {
			if obj.TargetID == "" {
				continue
			}
			assert.True(t, available[obj.TargetID])
		}
	}
}

func TestGenerateOneUnboundObjectiveKeepsUnresolvedPlaceholder(t *testing.T) {
	reg := testRegistry()
	gen := New(reg, nil)
	tmpl := reg.QuestTemplates["bounty_basic"]
	giver := GiverInfo{ID: "npc_sheriff_1", Name: "Sheriff Garrett", Role: "sheriff", Faction: "law"}

	emptyCtx := entities.QuestGenerationContext{
		GenerationContext: entities.GenerationContext{LocationID: "dustbowl", PlayerLevel: 5},
	}
	quest := gen.GenerateOne(rng.New(7), tmpl, emptyCtx, giver)
	require.NotEmpty(t, quest.Stages)
	for _, stage := range quest.Stages {
		for _, obj := range stage.Objectives {
			assert.Empty(t, obj.TargetID)
			assert.Contains(t, obj.Description, "{{target}}")
		}
	}
}

func TestGenerateOneLevelWithinTemplateRange(t *testing.T) {
	reg := testRegistry()
	gen := New(reg, nil)
	tmpl := reg.QuestTemplates["bounty_basic"]
	giver := GiverInfo{ID: "npc_sheriff_1", Name: "Sheriff Garrett", Role: "sheriff", Faction: "law"}

	for seed := uint32(0); seed < 50; seed++ {
		quest := gen.GenerateOne(rng.New(seed), tmpl, sampleContext(), giver)
		assert.GreaterOrEqual(t, quest.Level, tmpl.LevelRange.Lo)
		assert.LessOrEqual(t, quest.Level, tmpl.LevelRange.Hi)
	}
}
