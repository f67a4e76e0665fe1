package dialoguegen

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

func sampleNPC(questGiver bool) entities.GeneratedNPC {
	return entities.GeneratedNPC{
		ID: "npc_sheriff_1", FullName: "Sheriff Cole Garrett", Role: "sheriff", Faction: "law",
		Personality:  entities.Personality{Friendliness: 0.8, Aggression: 0.3},
		IsQuestGiver: questGiver,
	}
}

func assertWellFormed(t *testing.T, tree entities.GeneratedDialogueTree) {
	t.Helper()
	_, ok := tree.Nodes[tree.RootNodeID]
	require.True(t, ok, "root node must exist")
	for _, n := range tree.Nodes {
		assert.NotEmpty(t, n.Choices, "every node must have at least one choice")
		for _, c := range n.Choices {
			if c.NextNodeID != "" {
				_, ok := tree.Nodes[c.NextNodeID]
				assert.True(t, ok, "nextNodeId %s must resolve to an existing node", c.NextNodeID)
			}
		}
	}
}

func TestGenerateSimpleIsWellFormed(t *testing.T) {
	reg := testRegistry()
	gen := New(reg, nil)
	npc := sampleNPC(true)
	tree := gen.GenerateSimple(rng.New(42), npc, SimpleOptions{IncludeRumors: true, IncludeQuest: true, IncludeShop: true})
	assertWellFormed(t, tree)
}

func TestGenerateSimpleOmitsDisabledBranches(t *testing.T) {
	reg := testRegistry()
	gen := New(reg, nil)
	npc := sampleNPC(false)
	tree := gen.GenerateSimple(rng.New(42), npc, SimpleOptions{IncludeRumors: true, IncludeQuest: false, IncludeShop: false})

	_, hasQuest := tree.Nodes["node_quest"]
	_, hasShop := tree.Nodes["node_shop"]
	assert.False(t, hasQuest)
	assert.False(t, hasShop)

	root := tree.Nodes[tree.RootNodeID]
	var tagSets [][]string
	for _, c := range root.Choices {
		tagSets = append(tagSets, c.Tags)
	}
	assert.Contains(t, tagSets, []string{"rumor"})
	assert.Contains(t, tagSets, []string{"farewell"})
}

func TestGenerateSimpleDeterministic(t *testing.T) {
	reg := testRegistry()
	gen := New(reg, nil)
	npc := sampleNPC(true)
	a := gen.GenerateSimple(rng.New(7), npc, SimpleOptions{IncludeRumors: true, IncludeQuest: true, IncludeShop: true})
	b := gen.GenerateSimple(rng.New(7), npc, SimpleOptions{IncludeRumors: true, IncludeQuest: true, IncludeShop: true})
	assert.Equal(t, a, b)
}

func TestGenerateFromTemplateRootResolution(t *testing.T) {
	reg := testRegistry()
	gen := New(reg, nil)
	npc := sampleNPC(false)

	tmpl := Template{Patterns: []NodePattern{
		{Role: "greeting", TextCategory: content.CategoryGreeting, Choices: []ChoicePattern{
			{Text: "Tell me a rumor", NextRole: "rumor", Tags: []string{"rumor"}},
			{Text: "Farewell", NextRole: "", Tags: []string{"farewell"}},
		}},
		{Role: "rumor", TextCategory: content.CategoryRumor, Choices: []ChoicePattern{
			{Text: "Back", NextRole: "greeting", Tags: []string{"back"}},
		}},
	}}

	tree := gen.GenerateFromTemplate(rng.New(3), tmpl, npc, "")
	assert.Equal(t, "node_greeting", tree.RootNodeID)
	assertWellFormed(t, tree)
}

func TestSnippetSelectionFallsBackWhenNoneQualify(t *testing.T) {
	reg := content.NewRegistry(nil) // no snippets loaded
	gen := New(reg, nil)
	npc := sampleNPC(false)
	text := gen.selectText(rng.New(1), content.CategoryGreeting, npc, "", map[string]string{})
	assert.NotEmpty(t, text)
}
