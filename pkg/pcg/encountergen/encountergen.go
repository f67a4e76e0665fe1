// Package encountergen implements the Encounter Generator, Enemy scaling,
// and Shop Inventory Generator (spec §4.7, §4.8): enemy roster expansion
// with level-scaled, jittered stats; difficulty computation; encounter
// reward scaling; the trigger-chance formula; and shop stock assembly.
package encountergen

import (
	"fmt"
	"math"
	"strings"

	"ironfrontier/pkg/pcg/content"
	"ironfrontier/pkg/pcg/entities"
	"ironfrontier/pkg/pcg/rng"

	"github.com/sirupsen/logrus"
)

// Generator produces encounters and shop inventories against a content
// registry.
type Generator struct {
	registry *content.Registry
	logger   *logrus.Logger
}

// New returns an encounter generator bound to the given registry.
func New(registry *content.Registry, logger *logrus.Logger) *Generator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Generator{registry: registry, logger: logger}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round(f float64) int {
	return int(math.Round(f))
}

// jitter applies independent multiplicative jitter ×(1 + U(-eps, eps)) with
// a floor of 1.
func jitter(r *rng.RNG, value float64, eps float64) int {
	factor := 1 + r.Float(-eps, eps)
	v := round(value * factor)
	if v < 1 {
		v = 1
	}
	return v
}

// scaleEnemy expands one enemy instance from its template at the given
// level, per the scaling and jitter formulas in spec §4.7.
func scaleEnemy(r *rng.RNG, tmpl *content.EnemyTemplate, level int) entities.EnemyInstance {
	health := tmpl.BaseStats.Health * math.Pow(tmpl.Scaling.HealthPerLevel, float64(level-1))
	damage := tmpl.BaseStats.Damage * math.Pow(tmpl.Scaling.DamagePerLevel, float64(level-1))
	armor := tmpl.BaseStats.Armor * math.Pow(tmpl.Scaling.ArmorPerLevel, float64(level-1))
	accuracy := math.Min(100, tmpl.BaseStats.Accuracy+tmpl.Scaling.AccuracyPerLevel*float64(level-1))
	evasion := math.Min(100, tmpl.BaseStats.Evasion+tmpl.Scaling.EvasionPerLevel*float64(level-1))

	healthJ := jitter(r, health, 0.10)
	damageJ := jitter(r, damage, 0.10)
	armorJ := jitter(r, armor, 0.05)
	accuracyJ := jitter(r, accuracy, 0.05)
	evasionJ := jitter(r, evasion, 0.05)
	if accuracyJ > 100 {
		accuracyJ = 100
	}
	if evasionJ > 100 {
		evasionJ = 100
	}

	xp := round((0.5*float64(healthJ) + 2*float64(damageJ) + 1.5*float64(armorJ)) * tmpl.XPModifier * (1 + 0.15*float64(level-1)))

	return entities.EnemyInstance{
		TemplateID: tmpl.ID,
		Name:       enemyName(r, tmpl),
		Level:      level,
		Health:     healthJ,
		Damage:     damageJ,
		Armor:      armorJ,
		Accuracy:   accuracyJ,
		Evasion:    evasionJ,
		XPValue:    xp,
	}
}

// enemyName assembles capitalize(join-with-spaces of: maybe one prefix
// (p=0.5), maybe one title if no prefix (p=0.3), base name, maybe one
// suffix (p=0.2)).
func enemyName(r *rng.RNG, tmpl *content.EnemyTemplate) string {
	var parts []string
	hasPrefix := len(tmpl.Names.Prefixes) > 0 && r.Bool(0.5)
	if hasPrefix {
		parts = append(parts, rng.Pick(r, tmpl.Names.Prefixes))
	} else if len(tmpl.Names.Titles) > 0 && r.Bool(0.3) {
		parts = append(parts, rng.Pick(r, tmpl.Names.Titles))
	}

	base := tmpl.Tag
	if len(tmpl.Names.BaseNames) > 0 {
		base = rng.Pick(r, tmpl.Names.BaseNames)
	}
	parts = append(parts, base)

	if len(tmpl.Names.Suffixes) > 0 && r.Bool(0.2) {
		parts = append(parts, rng.Pick(r, tmpl.Names.Suffixes))
	}

	name := strings.Join(parts, " ")
	if len(name) == 0 {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// GenerateOne expands a full encounter from tmpl at the given player level.
func (g *Generator) GenerateOne(parent *rng.RNG, tmpl *content.EncounterTemplate, playerLevel int) entities.GeneratedEncounter {
	seed := parent.Int(0, 1<<31-1)
	r := rng.New(uint32(seed))

	var roster []entities.EnemyInstance
	for _, group := range tmpl.Groups {
		enemyTmpl, ok := g.registry.Enemies[group.EnemyTag]
		if !ok {
			g.logger.WithFields(logrus.Fields{"function": "GenerateOne", "enemy_tag": group.EnemyTag}).
				Warn("enemy template missing, skipping group")
			continue
		}
		count := group.CountRange.Lo
		if group.CountRange.Hi > group.CountRange.Lo {
			count = r.Int(group.CountRange.Lo, group.CountRange.Hi)
		}
		for i := 0; i < count; i++ {
			level := clampInt(round(float64(playerLevel)*group.LevelScale), enemyTmpl.MinLevel, enemyTmpl.MaxLevel)
			roster = append(roster, scaleEnemy(r, enemyTmpl, level))
		}
	}

	difficulty := computeDifficulty(roster, playerLevel)

	baseXP := r.Int(tmpl.RewardXP.Lo, tmpl.RewardXP.Hi)
	baseGold := r.Int(tmpl.RewardGold.Lo, tmpl.RewardGold.Hi)
	rewardXP := round(float64(baseXP) * (1 + 0.2*float64(playerLevel-1)) * (1 + 0.1*float64(difficulty)))
	rewardGold := round(float64(baseGold) * (1 + 0.2*float64(playerLevel-1)))

	return entities.GeneratedEncounter{
		ID:          fmt.Sprintf("encounter_%s_%08x", tmpl.ID, seed),
		TemplateID:  tmpl.ID,
		Description: tmpl.DescriptionTemplate,
		Enemies:     roster,
		Difficulty:  difficulty,
		RewardXP:    rewardXP,
		RewardGold:  rewardGold,
		Seed:        uint32(seed),
	}
}

// computeDifficulty implements difficulty = min(10, round(totalEnemyPower /
// (playerLevel * 50))).
func computeDifficulty(roster []entities.EnemyInstance, playerLevel int) int {
	total := 0.0
	for _, e := range roster {
		total += float64(e.Health) + 3*float64(e.Damage) + 2*float64(e.Armor)
	}
	if playerLevel <= 0 {
		playerLevel = 1
	}
	d := round(total / (float64(playerLevel) * 50))
	if d < 1 {
		d = 1
	}
	if d > 10 {
		d = 10
	}
	return d
}

// TriggerContext carries the ambient state the trigger-chance formula
// reads from.
type TriggerContext struct {
	BaseChance     float64
	GameHour       int
	FactionTension map[string]float64
	ActiveEvents   []string
}

// ShouldTrigger implements the shouldTriggerEncounter chance formula and
// compares it against a single Bernoulli draw.
func ShouldTrigger(r *rng.RNG, ctx TriggerContext) bool {
	chance := ctx.BaseChance
	if ctx.GameHour < 6 || ctx.GameHour > 20 {
		chance *= 1.5
	}
	for _, tension := range ctx.FactionTension {
		if tension > 0.5 {
			chance *= 1 + (tension - 0.5)
		}
	}
	for _, event := range ctx.ActiveEvents {
		switch event {
		case "gang_war":
			chance *= 2
		case "law_crackdown":
			chance *= 0.5
		}
	}
	if chance > 0.8 {
		chance = 0.8
	}
	return r.Bool(chance)
}

// GenerateShop selects items from the registry's shop-type weighted pool
// and assembles a shop inventory.
func (g *Generator) GenerateShop(parent *rng.RNG, npcID, shopType string, level, slotCount int) entities.ShopInventory {
	seed := parent.Int(0, 1<<31-1)
	r := rng.New(uint32(seed))

	pool := g.registry.ShopPools[shopType]
	var items []entities.ShopItem
	if len(pool) > 0 {
		ids := make([]string, len(pool))
		weights := make([]float64, len(pool))
		for i, e := range pool {
			ids[i] = e.ItemID
			weights[i] = e.Weight
		}
		byID := map[string]content.ShopItemEntry{}
		for _, e := range pool {
			byID[e.ItemID] = e
		}
		for i := 0; i < slotCount; i++ {
			itemID := rng.WeightedPick(r, ids, weights)
			entry := byID[itemID]
			stock := entry.StockRange.Lo
			if entry.StockRange.Hi > entry.StockRange.Lo {
				stock = r.Int(entry.StockRange.Lo, entry.StockRange.Hi)
			}
			price := entry.BasePrice.Lo
			if entry.BasePrice.Hi > entry.BasePrice.Lo {
				price = r.Int(entry.BasePrice.Lo, entry.BasePrice.Hi)
			}
			items = append(items, entities.ShopItem{ItemID: itemID, Stock: stock, BasePrice: price})
		}
	}

	return entities.ShopInventory{
		NPCID:         npcID,
		ShopType:      shopType,
		Items:         items,
		PriceModifier: 1.0 + r.Float(-0.1, 0.2),
		CanBuy:        true,
		CanSell:       true,
	}
}
