package orchestrator

import (
	"testing"

	"ironfrontier/pkg/pcg/content"
	"ironfrontier/pkg/pcg/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator() *Orchestrator {
	return New(nil, nil)
}

func testRegistry() *content.Registry {
	r := content.NewRegistry(nil)
	r.LoadDefaults()
	return r
}

func TestUseBeforeInitializePanics(t *testing.T) {
	o := newTestOrchestrator()
	assert.Panics(t, func() {
		o.GenerateLocationContent(entities.ResolvedLocation{ID: "loc_1"}, nil)
	})
}

func TestGenerateLocationContentDeterministic(t *testing.T) {
	o1 := newTestOrchestrator()
	o1.Initialize(42, testRegistry())
	a := o1.GenerateLocationContent(entities.ResolvedLocation{ID: "dustwell", Type: "town"}, nil)

	o2 := newTestOrchestrator()
	o2.Initialize(42, testRegistry())
	b := o2.GenerateLocationContent(entities.ResolvedLocation{ID: "dustwell", Type: "town"}, nil)

	assert.Equal(t, a, b)
}

func TestGenerateLocationContentCachedOnRepeat(t *testing.T) {
	o := newTestOrchestrator()
	o.Initialize(1, testRegistry())
	first := o.GenerateLocationContent(entities.ResolvedLocation{ID: "loc_a", Type: "town"}, nil)
	second := o.GenerateLocationContent(entities.ResolvedLocation{ID: "loc_a", Type: "town"}, nil)
	assert.Same(t, first, second)
}

func TestDifferentLocationsDifferInContent(t *testing.T) {
	o := newTestOrchestrator()
	o.Initialize(1, testRegistry())
	a := o.GenerateLocationContent(entities.ResolvedLocation{ID: "loc_a", Type: "town"}, nil)
	b := o.GenerateLocationContent(entities.ResolvedLocation{ID: "loc_b", Type: "town"}, nil)
	assert.NotEqual(t, a.Seed, b.Seed)
}

func TestOtherLocationUnaffectedByNewLocation(t *testing.T) {
	o := newTestOrchestrator()
	o.Initialize(1, testRegistry())
	a1 := o.GenerateLocationContent(entities.ResolvedLocation{ID: "loc_a", Type: "town"}, nil)
	_ = o.GenerateLocationContent(entities.ResolvedLocation{ID: "loc_b", Type: "town"}, nil)
	a2 := o.GenerateLocationContent(entities.ResolvedLocation{ID: "loc_a", Type: "town"}, nil)
	assert.Equal(t, a1, a2)
}

func TestInferLocationTypeExplicit(t *testing.T) {
	got := InferLocationType(entities.ResolvedLocation{Type: "mine"})
	assert.Equal(t, "mine", got)
}

func TestInferLocationTypeFromTags(t *testing.T) {
	got := InferLocationType(entities.ResolvedLocation{Tags: []string{"frontier", "ranch"}})
	assert.Equal(t, "ranch", got)
}

func TestInferLocationTypeFromNameSubstring(t *testing.T) {
	got := InferLocationType(entities.ResolvedLocation{Name: "Old Copper Mine"})
	assert.Equal(t, "mine", got)
}

func TestInferLocationTypeFallsBackToTown(t *testing.T) {
	got := InferLocationType(entities.ResolvedLocation{Name: "Somewhere"})
	assert.Equal(t, "town", got)
}

func TestGeneratedContentHasQuestsReferencingKnownNPCs(t *testing.T) {
	o := newTestOrchestrator()
	o.Initialize(7, testRegistry())
	c := o.GenerateLocationContent(entities.ResolvedLocation{ID: "loc_quests", Type: "town"}, nil)

	npcIDs := map[string]bool{}
	for _, npc := range c.NPCs {
		npcIDs[npc.ID] = true
	}
	for _, q := range c.Quests {
		assert.True(t, npcIDs[q.GiverID], "quest giver must be one of the location's NPCs")
	}
}

func TestStructureStateMemoized(t *testing.T) {
	o := newTestOrchestrator()
	o.Initialize(3, testRegistry())
	o.GenerateLocationContent(entities.ResolvedLocation{ID: "loc_struct", Type: "town"}, nil)

	a := o.GetOrGenerateStructureState("loc_struct", "2,3")
	b := o.GetOrGenerateStructureState("loc_struct", "2,3")
	assert.Equal(t, a, b)
}

func TestStructureStateUngeneratedLocationPanics(t *testing.T) {
	o := newTestOrchestrator()
	o.Initialize(3, testRegistry())
	assert.Panics(t, func() {
		o.GetOrGenerateStructureState("never_generated", "0,0")
	})
}

func TestClearCacheForcesRegeneration(t *testing.T) {
	o := newTestOrchestrator()
	o.Initialize(9, testRegistry())
	first := o.GenerateLocationContent(entities.ResolvedLocation{ID: "loc_clear", Type: "town"}, nil)
	o.ClearCache()
	second := o.GenerateLocationContent(entities.ResolvedLocation{ID: "loc_clear", Type: "town"}, nil)
	assert.NotSame(t, first, second)
	assert.Equal(t, first, second)
}

func TestInitializeWithNewSeedResetsCache(t *testing.T) {
	o := newTestOrchestrator()
	reg := testRegistry()
	o.Initialize(1, reg)
	o.GenerateLocationContent(entities.ResolvedLocation{ID: "loc_reseed", Type: "town"}, nil)
	require.Len(t, o.cache, 1)

	o.Initialize(2, reg)
	assert.Empty(t, o.cache)
}

func TestGetOrGenerateDialogueAndShop(t *testing.T) {
	o := newTestOrchestrator()
	o.Initialize(5, testRegistry())
	c := o.GenerateLocationContent(entities.ResolvedLocation{ID: "loc_dia", Type: "town"}, nil)
	require.NotEmpty(t, c.NPCs)

	for _, npc := range c.NPCs {
		tree := o.GetOrGenerateDialogue(npc.ID, "loc_dia")
		require.NotNil(t, tree)
		assert.NotEmpty(t, tree.Nodes)

		if npc.HasShop {
			shop := o.GetOrGenerateShop(npc.ID, "loc_dia")
			require.NotNil(t, shop)
		}
	}
}

func TestGetOrGenerateShopMissingReturnsNil(t *testing.T) {
	o := newTestOrchestrator()
	o.Initialize(5, testRegistry())
	o.GenerateLocationContent(entities.ResolvedLocation{ID: "loc_noshop", Type: "town"}, nil)
	shop := o.GetOrGenerateShop("npc_does_not_exist", "loc_noshop")
	assert.Nil(t, shop)
}
