// Package dialoguegen implements the Dialogue Generator (spec §4.6): snippet
// selection filtered by NPC attributes, and two tree-construction modes
// (simple hard-coded hub, and template-driven) that both produce the same
// cycle-safe node-map output shape.
package dialoguegen

import (
	"fmt"

	"ironfrontier/pkg/pcg/content"
	"ironfrontier/pkg/pcg/entities"
	"ironfrontier/pkg/pcg/rng"
	"ironfrontier/pkg/pcg/substitute"

	"github.com/sirupsen/logrus"
)

const defaultPersonalityThreshold = 0.5

var fallbackText = map[content.DialogueCategory]string{
	content.CategoryGreeting: "...",
	content.CategoryRumor:    "Can't say I've heard anything worth repeating.",
	content.CategoryFarewell: "Farewell.",
}

// Generator produces dialogue trees against a content registry.
type Generator struct {
	registry *content.Registry
	logger   *logrus.Logger
}

// New returns a dialogue generator bound to the given registry.
func New(registry *content.Registry, logger *logrus.Logger) *Generator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Generator{registry: registry, logger: logger}
}

// snippetQualifies tests the full filter set from spec §4.6: category
// match, role/faction constraints, personality thresholds (a trait name
// that is not one of the NPC's personality traits reads as 0.5), and
// time-of-day when specified.
func snippetQualifies(s *content.DialogueSnippet, category content.DialogueCategory, npc entities.GeneratedNPC, timeOfDay string) bool {
	if s.Category != category {
		return false
	}
	if len(s.ValidRoles) > 0 && !contains(s.ValidRoles, npc.Role) {
		return false
	}
	if len(s.ValidFactions) > 0 && !contains(s.ValidFactions, npc.Faction) {
		return false
	}
	if len(s.ValidTimesOfDay) > 0 && timeOfDay != "" && !contains(s.ValidTimesOfDay, timeOfDay) {
		return false
	}
	for trait, min := range s.PersonalityMin {
		if traitValue(npc.Personality, trait) < min {
			return false
		}
	}
	for trait, max := range s.PersonalityMax {
		if traitValue(npc.Personality, trait) > max {
			return false
		}
	}
	return true
}

func traitValue(p entities.Personality, trait string) float64 {
	switch trait {
	case "aggression":
		return p.Aggression
	case "friendliness":
		return p.Friendliness
	case "curiosity":
		return p.Curiosity
	case "greed":
		return p.Greed
	case "honesty":
		return p.Honesty
	case "lawfulness":
		return p.Lawfulness
	default:
		return defaultPersonalityThreshold
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// selectText picks a qualifying snippet for category and returns one of its
// texts substituted against vars; falls back to a constant string if no
// snippet qualifies — a non-fatal binding failure per spec §7.
func (g *Generator) selectText(r *rng.RNG, category content.DialogueCategory, npc entities.GeneratedNPC, timeOfDay string, vars map[string]string) string {
	var candidates []*content.DialogueSnippet
	for _, s := range g.registry.Snippets {
		if snippetQualifies(s, category, npc, timeOfDay) {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		g.logger.WithFields(logrus.Fields{"function": "selectText", "category": category, "npc_id": npc.ID}).
			Warn("no qualifying dialogue snippet, using fallback")
		return fallbackText[category]
	}
	snippet := rng.Pick(r, candidates)
	text := rng.Pick(r, snippet.Texts)
	return substitute.Expand(text, vars)
}

// SimpleOptions controls which conditional branches the simple tree
// includes.
type SimpleOptions struct {
	IncludeRumors bool
	IncludeQuest  bool
	IncludeShop   bool
	TimeOfDay     string
}

type branchSpec struct {
	name        string
	category    content.DialogueCategory
	terminalTag string
}

// GenerateSimple produces the hard-coded greeting-hub tree: a root node
// whose choices are the conditional set {rumor, quest, shop, farewell}, and
// one peer node per enabled branch that either returns to the root (tag
// "back") or terminates with an effect tag the runtime interprets.
func (g *Generator) GenerateSimple(parent *rng.RNG, npc entities.GeneratedNPC, opts SimpleOptions) entities.GeneratedDialogueTree {
	seed := parent.Int(0, 1<<31-1)
	r := rng.New(uint32(seed))

	vars := map[string]string{"name": npc.FullName, "location": "", "faction": npc.Faction}

	nodes := map[string]entities.DialogueNode{}

	var branches []branchSpec
	if opts.IncludeRumors {
		branches = append(branches, branchSpec{"rumor", content.CategoryRumor, "farewell"})
	}
	if opts.IncludeQuest {
		branches = append(branches, branchSpec{"quest", content.CategoryQuestOffer, "accept_quest"})
	}
	if opts.IncludeShop {
		branches = append(branches, branchSpec{"shop", content.CategoryShopOpen, "open_shop"})
	}

	rootChoices := make([]entities.DialogueChoice, 0, len(branches)+1)
	for _, b := range branches {
		nodeID := "node_" + b.name
		rootChoices = append(rootChoices, entities.DialogueChoice{
			Text: branchPromptText(b.name), NextNodeID: nodeID, Tags: []string{b.name},
		})
		nodes[nodeID] = entities.DialogueNode{
			ID: nodeID, SpeakerID: npc.ID, SpeakerName: npc.FullName,
			Text: g.selectText(r, b.category, npc, opts.TimeOfDay, vars),
			Choices: []entities.DialogueChoice{
				{Text: "Anything else?", NextNodeID: "node_greeting", Tags: []string{"back"}},
				{Text: "Farewell.", NextNodeID: "", Tags: []string{b.terminalTag}},
			},
		}
	}
	rootChoices = append(rootChoices, entities.DialogueChoice{
		Text: "Farewell.", NextNodeID: "", Tags: []string{"farewell"},
	})

	nodes["node_greeting"] = entities.DialogueNode{
		ID: "node_greeting", SpeakerID: npc.ID, SpeakerName: npc.FullName,
		Text:    g.selectText(r, content.CategoryGreeting, npc, opts.TimeOfDay, vars),
		Choices: rootChoices,
	}

	ensureWellFormed(nodes)

	return entities.GeneratedDialogueTree{
		ID:         fmt.Sprintf("dialogue_%s", npc.ID),
		RootNodeID: "node_greeting",
		Nodes:      nodes,
	}
}

func branchPromptText(branch string) string {
	switch branch {
	case "rumor":
		return "Heard any news?"
	case "quest":
		return "Got any work?"
	case "shop":
		return "What are you selling?"
	default:
		return branch
	}
}

// NodePattern describes one node in a template-driven dialogue tree.
type NodePattern struct {
	Role        string
	TextCategory content.DialogueCategory
	Choices      []ChoicePattern
}

// ChoicePattern describes one choice within a node pattern. NextRole empty
// means the choice terminates (null next-node).
type ChoicePattern struct {
	Text     string
	NextRole string
	Tags     []string
}

// Template is a full template-driven dialogue tree specification.
type Template struct {
	Patterns []NodePattern
}

// GenerateFromTemplate builds a tree from the given template: each pattern
// yields a node id "node_<role>"; root is the pattern with role "greeting"
// if present, else the first pattern.
func (g *Generator) GenerateFromTemplate(parent *rng.RNG, tmpl Template, npc entities.GeneratedNPC, timeOfDay string) entities.GeneratedDialogueTree {
	seed := parent.Int(0, 1<<31-1)
	r := rng.New(uint32(seed))

	vars := map[string]string{"name": npc.FullName, "faction": npc.Faction}

	nodes := map[string]entities.DialogueNode{}
	root := ""
	for i, p := range tmpl.Patterns {
		nodeID := "node_" + p.Role
		if p.Role == "greeting" || (root == "" && i == 0) {
			root = nodeID
		}
		choices := make([]entities.DialogueChoice, 0, len(p.Choices))
		for _, cp := range p.Choices {
			next := ""
			if cp.NextRole != "" {
				next = "node_" + cp.NextRole
			}
			choices = append(choices, entities.DialogueChoice{Text: cp.Text, NextNodeID: next, Tags: cp.Tags})
		}
		nodes[nodeID] = entities.DialogueNode{
			ID: nodeID, SpeakerID: npc.ID, SpeakerName: npc.FullName,
			Text:    g.selectText(r, p.TextCategory, npc, timeOfDay, vars),
			Choices: choices,
		}
	}

	ensureWellFormed(nodes)

	return entities.GeneratedDialogueTree{
		ID:         fmt.Sprintf("dialogue_%s", npc.ID),
		RootNodeID: root,
		Nodes:      nodes,
	}
}

// ensureWellFormed appends a terminal farewell choice to any node produced
// with zero choices, per the generator invariant that every node has at
// least one choice.
func ensureWellFormed(nodes map[string]entities.DialogueNode) {
	for id, n := range nodes {
		if len(n.Choices) == 0 {
			n.Choices = []entities.DialogueChoice{{Text: "Farewell.", NextNodeID: "", Tags: []string{"farewell"}}}
			nodes[id] = n
		}
	}
}
