// Package questgen implements the Quest Generator (spec §4.5): template
// filtering against giver/player constraints, target binding against a
// caller-supplied pool of available entities, stage/objective expansion,
// and reward computation.
package questgen

import (
	"fmt"
	"strings"

	"ironfrontier/pkg/pcg/content"
	"ironfrontier/pkg/pcg/entities"
	"ironfrontier/pkg/pcg/rng"
	"ironfrontier/pkg/pcg/substitute"

	"github.com/sirupsen/logrus"
)

// Generator produces quests against a content registry.
type Generator struct {
	registry *content.Registry
	logger   *logrus.Logger
}

// New returns a quest generator bound to the given registry.
func New(registry *content.Registry, logger *logrus.Logger) *Generator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Generator{registry: registry, logger: logger}
}

// candidate is a bindable target drawn from the available pools.
type candidate struct {
	targetType string
	id         string
	name       string
	tags       []string
}

// EligibleTemplates returns templates whose level range contains
// playerLevel and whose giver role/faction constraints (when the template
// declares any) are satisfied by giverRole/giverFaction. Empty constraint
// lists are unrestricted.
func (g *Generator) EligibleTemplates(playerLevel int, giverRole, giverFaction string) []*content.QuestTemplate {
	var out []*content.QuestTemplate
	for _, t := range g.registry.QuestTemplates {
		if playerLevel < t.LevelRange.Lo || playerLevel > t.LevelRange.Hi {
			continue
		}
		if len(t.GiverRoles) > 0 && !contains(t.GiverRoles, giverRole) {
			continue
		}
		if len(t.GiverFactions) > 0 && !contains(t.GiverFactions, giverFaction) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func buildCandidates(qctx entities.QuestGenerationContext) []candidate {
	var out []candidate
	for _, npc := range qctx.AvailableNPCs {
		out = append(out, candidate{targetType: string(content.TargetNPC), id: npc.ID, name: npc.FullName, tags: npc.Tags})
	}
	for _, item := range qctx.AvailableItems {
		out = append(out, candidate{targetType: string(content.TargetItem), id: item.ItemID, name: item.ItemID})
	}
	for _, loc := range qctx.AvailableLocations {
		out = append(out, candidate{targetType: string(content.TargetLocation), id: loc, name: loc})
	}
	for _, enemy := range qctx.AvailableEnemies {
		out = append(out, candidate{targetType: string(content.TargetEnemy), id: enemy, name: enemy, tags: []string{enemy}})
	}
	return out
}

func filterCandidates(pool []candidate, targetType string, tags []string, used map[string]bool) []candidate {
	var out []candidate
	for _, c := range pool {
		if used[c.id] {
			continue
		}
		if targetType != string(content.TargetAny) && c.targetType != targetType {
			continue
		}
		if !matchesTags(c, tags) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesTags(c candidate, required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, req := range required {
		found := false
		for _, t := range c.tags {
			if t == req {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// GiverInfo carries the minimal giver identity needed for substitution and
// constraint checking.
type GiverInfo struct {
	ID      string
	Name    string
	Role    string
	Faction string
}

// GenerateOne produces a single quest from tmpl, binding targets against
// qctx's available pools. Binding failures are non-fatal: an objective
// whose target cannot be resolved is emitted with an empty TargetID and a
// description that still carries the unresolved {{target}} placeholder.
func (g *Generator) GenerateOne(parent *rng.RNG, tmpl *content.QuestTemplate, qctx entities.QuestGenerationContext, giver GiverInfo) entities.GeneratedQuest {
	seed := parent.Int(0, 1<<31-1)
	r := rng.New(uint32(seed))

	used := map[string]bool{}
	pool := buildCandidates(qctx)

	ctx := substitute.NewContext().
		Set("giver", giver.Name).
		Set("giverId", giver.ID).
		Set("location", qctx.LocationID).
		Set("region", qctx.RegionID).
		Set("player", "Stranger")

	targetIDs := map[string]string{}
	targetNames := map[string]string{}

	if primary := pickCandidate(r, pool, string(content.TargetAny), nil, used); primary != nil {
		used[primary.id] = true
		targetIDs["target"] = primary.id
		targetNames["target"] = primary.name
		ctx.Set("target", primary.name).Set("targetId", primary.id)
	} else {
		ctx.Set("target", "").Set("targetId", "")
	}

	if r.Bool(0.5) {
		if dest := pickCandidate(r, pool, string(content.TargetLocation), nil, used); dest != nil {
			used[dest.id] = true
			targetIDs["destination"] = dest.id
			targetNames["destination"] = dest.name
			ctx.Set("destination", dest.name).Set("destinationId", dest.id)
		}
	}

	title := ""
	if len(tmpl.TitleTemplates) > 0 {
		title = ctx.Expand(rng.Pick(r, tmpl.TitleTemplates))
	}
	description := ""
	if len(tmpl.DescriptionTemplates) > 0 {
		description = ctx.Expand(rng.Pick(r, tmpl.DescriptionTemplates))
	}

	stages := make([]entities.QuestStage, 0, len(tmpl.Stages))
	for _, stageTmpl := range tmpl.Stages {
		stage := entities.QuestStage{
			Title:       ctx.Expand(stageTmpl.Title),
			Description: ctx.Expand(stageTmpl.Description),
			OnStart:     ctx.Expand(stageTmpl.OnStart),
			OnComplete:  ctx.Expand(stageTmpl.OnComplete),
		}
		for _, objTmpl := range stageTmpl.Objectives {
			count := objTmpl.CountRange.Lo
			if objTmpl.CountRange.Hi > objTmpl.CountRange.Lo {
				count = r.Int(objTmpl.CountRange.Lo, objTmpl.CountRange.Hi)
			}
			bound := pickCandidate(r, pool, string(objTmpl.TargetType), objTmpl.TargetTags, used)
			obj := entities.QuestObjective{
				TargetType: string(objTmpl.TargetType),
				Count:      count,
				Optional:   len(stage.Objectives) > 0 && r.Bool(0.2),
			}
			if bound != nil {
				used[bound.id] = true
				obj.TargetID = bound.id
				obj.TargetName = bound.name
				ctx.Set("target", bound.name).Set("targetId", bound.id)
			} else {
				g.logger.WithFields(logrus.Fields{
					"function":    "GenerateOne",
					"target_type": objTmpl.TargetType,
				}).Warn("objective target binding failed, leaving unbound")
				delete(ctx.Vars(), "target")
				delete(ctx.Vars(), "targetId")
			}
			obj.Description = ctx.Expand(objTmpl.Description)
			stage.Objectives = append(stage.Objectives, obj)
		}
		stages = append(stages, stage)
	}

	level := tmpl.LevelRange.Lo
	if tmpl.LevelRange.Hi > tmpl.LevelRange.Lo {
		level = r.Int(tmpl.LevelRange.Lo, tmpl.LevelRange.Hi)
	}

	baseXP := r.Int(tmpl.RewardXP.Lo, tmpl.RewardXP.Hi)
	baseGold := r.Int(tmpl.RewardGold.Lo, tmpl.RewardGold.Hi)
	levelFactor := 1 + 0.2*float64(level-1)
	difficultyBonus := 1 + 0.05*float64(level)
	rewardXP := int(float64(baseXP) * levelFactor * difficultyBonus)
	rewardGold := int(float64(baseGold) * levelFactor)

	reputationDeltas := map[string]float64{}
	for faction, deltaRange := range tmpl.ReputationDeltas {
		reputationDeltas[faction] = r.Float(deltaRange.Lo, deltaRange.Hi)
	}

	var locationIDs []string
	if qctx.LocationID != "" {
		locationIDs = append(locationIDs, qctx.LocationID)
	}

	return entities.GeneratedQuest{
		ID:               fmt.Sprintf("quest_%s_%08x", tmpl.ID, seed),
		TemplateID:       tmpl.ID,
		Archetype:        string(tmpl.Archetype),
		Title:            title,
		Description:      description,
		Stages:           stages,
		RewardXP:         rewardXP,
		RewardGold:       rewardGold,
		ReputationDeltas: reputationDeltas,
		GiverID:          giver.ID,
		TargetIDs:        targetIDs,
		TargetNames:      targetNames,
		LocationIDs:      locationIDs,
		Level:            level,
		Tags:             questTags(tmpl),
		Repeatable:       false,
		Seed:             uint32(seed),
	}
}

func questTags(tmpl *content.QuestTemplate) []string {
	return []string{strings.ToLower(string(tmpl.Archetype))}
}

// pickCandidate draws uniformly among the filtered candidate set; returns
// nil when no candidate qualifies (a binding failure, recovered locally by
// the caller).
func pickCandidate(r *rng.RNG, pool []candidate, targetType string, tags []string, used map[string]bool) *candidate {
	filtered := filterCandidates(pool, targetType, tags, used)
	if len(filtered) == 0 {
		return nil
	}
	picked := rng.Pick(r, filtered)
	return &picked
}
