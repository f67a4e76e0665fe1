// Package npcgen implements the NPC Generator (spec §4.4): template
// selection, gender/name/faction/personality assignment, backstory and
// description expansion, and quest-giver/shop role flags.
package npcgen

import (
	"fmt"
	"strings"

	"ironfrontier/pkg/pcg/content"
	"ironfrontier/pkg/pcg/entities"
	"ironfrontier/pkg/pcg/namegen"
	"ironfrontier/pkg/pcg/rng"
	"ironfrontier/pkg/pcg/substitute"

	"github.com/sirupsen/logrus"
)

var defaultPersonalityRange = content.FloatRange{Lo: 0.0, Hi: 1.0}

var traitNames = []string{"aggression", "friendliness", "curiosity", "greed", "honesty", "lawfulness"}

// Generator produces NPCs against a content registry.
type Generator struct {
	registry *content.Registry
	logger   *logrus.Logger
}

// New returns an NPC generator bound to the given registry.
func New(registry *content.Registry, logger *logrus.Logger) *Generator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Generator{registry: registry, logger: logger}
}

// ValidTemplatesForLocationType returns templates whose ValidLocationTypes
// is empty (meaning "all") or contains locationType.
func (g *Generator) ValidTemplatesForLocationType(locationType string) []*content.NPCTemplate {
	var out []*content.NPCTemplate
	for _, t := range g.registry.NPCTemplates {
		if len(t.ValidLocationTypes) == 0 {
			out = append(out, t)
			continue
		}
		for _, lt := range t.ValidLocationTypes {
			if lt == locationType {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// GenerateOne produces a single NPC from the given template using a child
// RNG of parent, plus the ambient location/region ids for substitution.
func (g *Generator) GenerateOne(parent *rng.RNG, tmpl *content.NPCTemplate, locationID, regionID string) entities.GeneratedNPC {
	seed := parent.Int(0, 1<<31-1)
	r := rng.New(uint32(seed))

	gender := rollGender(r, tmpl)

	pool, ok := g.registry.NamePools[tmpl.NamePoolID]
	if !ok {
		g.logger.WithFields(logrus.Fields{"function": "GenerateOne", "template": tmpl.ID}).
			Warn("name pool missing, using empty fallback name")
		pool = &content.NamePool{}
	}

	opts := namegen.PersonOptions{
		IncludeTitle:    tmpl.MinImportance > 0.5,
		IncludeNickname: r.Bool(0.3),
	}
	name := namegen.GeneratePerson(r, pool, tmpl.NameOriginWeights, gender, opts)

	faction := ""
	if len(tmpl.AllowedFactions) > 0 {
		faction = rng.Pick(r, tmpl.AllowedFactions)
	}

	personality := rollPersonality(r, tmpl)

	ctx := substitute.NewContext().
		Set("firstName", name.FirstName).
		Set("lastName", name.LastName).
		Set("name", name.FullName).
		Set("role", tmpl.Role).
		Set("faction", faction).
		Set("gender", string(gender)).
		Set("pronoun", pronounFor(gender)).
		Set("possessive", possessiveFor(gender)).
		Set("location", locationID).
		Set("region", regionID)

	backstory := ""
	if len(tmpl.BackstoryTemplates) > 0 {
		backstory = ctx.Expand(rng.Pick(r, tmpl.BackstoryTemplates))
	}
	description := ""
	if len(tmpl.DescriptionTemplates) > 0 {
		description = ctx.Expand(rng.Pick(r, tmpl.DescriptionTemplates))
	}

	isQuestGiver := r.Bool(tmpl.QuestGiverChance)
	hasShop := r.Bool(tmpl.ShopChance)

	npc := entities.GeneratedNPC{
		ID:           fmt.Sprintf("npc_%s_%08x", tmpl.ID, seed),
		TemplateID:   tmpl.ID,
		FirstName:    name.FirstName,
		LastName:     name.LastName,
		Nickname:     name.Nickname,
		Title:        name.Title,
		FullName:     name.FullName,
		Role:         tmpl.Role,
		Faction:      faction,
		Gender:       string(gender),
		Personality:  personality,
		Description:  description,
		Backstory:    backstory,
		IsQuestGiver: isQuestGiver,
		HasShop:      hasShop,
		Tags:         tmpl.Tags,
		Seed:         uint32(seed),
	}
	return npc
}

func rollGender(r *rng.RNG, tmpl *content.NPCTemplate) content.Gender {
	roll := r.Next()
	if roll < tmpl.GenderMale {
		return content.GenderMale
	}
	if roll < tmpl.GenderMale+tmpl.GenderFemale {
		return content.GenderFemale
	}
	return content.GenderNeutral
}

func rollPersonality(r *rng.RNG, tmpl *content.NPCTemplate) entities.Personality {
	values := make(map[string]float64, len(traitNames))
	for _, trait := range traitNames {
		traitRange, ok := tmpl.PersonalityRanges[trait]
		if !ok {
			traitRange = defaultPersonalityRange
		}
		values[trait] = r.Float(traitRange.Lo, traitRange.Hi)
	}
	return entities.Personality{
		Aggression:   values["aggression"],
		Friendliness: values["friendliness"],
		Curiosity:    values["curiosity"],
		Greed:        values["greed"],
		Honesty:      values["honesty"],
		Lawfulness:   values["lawfulness"],
	}
}

func pronounFor(g content.Gender) string {
	switch g {
	case content.GenderMale:
		return "he"
	case content.GenderFemale:
		return "she"
	default:
		return "they"
	}
}

func possessiveFor(g content.Gender) string {
	switch g {
	case content.GenderMale:
		return "his"
	case content.GenderFemale:
		return "her"
	default:
		return "their"
	}
}

// BatchCounts is the {background, notable} NPC count pair for a location.
type BatchCounts struct {
	Background int
	Notable    int
}

// GenerateBatch generates notable NPCs first (from templates with
// MinImportance >= 0.5, falling back to the full valid set if empty), then
// background NPCs from the complement. Name uniqueness (case-insensitive)
// is enforced with up to 10 regeneration attempts per NPC before accepting
// a duplicate.
func (g *Generator) GenerateBatch(parent *rng.RNG, locationType, locationID, regionID string, counts BatchCounts) []entities.GeneratedNPC {
	valid := g.ValidTemplatesForLocationType(locationType)
	if len(valid) == 0 {
		g.logger.WithField("location_type", locationType).Warn("no valid NPC templates for location type")
		return nil
	}

	var notableTemplates []*content.NPCTemplate
	var backgroundTemplates []*content.NPCTemplate
	for _, t := range valid {
		if t.MinImportance >= 0.5 {
			notableTemplates = append(notableTemplates, t)
		} else {
			backgroundTemplates = append(backgroundTemplates, t)
		}
	}
	if len(notableTemplates) == 0 {
		notableTemplates = valid
	}
	if len(backgroundTemplates) == 0 {
		backgroundTemplates = valid
	}

	seen := map[string]bool{}
	var out []entities.GeneratedNPC

	generateN := func(templates []*content.NPCTemplate, n int) {
		for i := 0; i < n; i++ {
			var npc entities.GeneratedNPC
			for attempt := 0; attempt < 10; attempt++ {
				tmpl := rng.Pick(parent, templates)
				npc = g.GenerateOne(parent, tmpl, locationID, regionID)
				key := strings.ToLower(npc.FullName)
				if !seen[key] {
					seen[key] = true
					break
				}
				// duplicate: loop retries; after 10 attempts the last draw is accepted as-is
			}
			out = append(out, npc)
		}
	}

	generateN(notableTemplates, counts.Notable)
	generateN(backgroundTemplates, counts.Background)

	return out
}
