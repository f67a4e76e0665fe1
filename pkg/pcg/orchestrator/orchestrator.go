// Package orchestrator implements the Location Content Orchestrator (spec
// §4.9): the process-wide, lazily-memoizing coordinator that infers a
// location's type, derives its seed, invokes every sub-generator in the
// fixed order required for draw-stream stability, threads cross-references
// between them, and caches the result for the life of the process.
package orchestrator

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"time"

	"ironfrontier/pkg/pcg/content"
	"ironfrontier/pkg/pcg/dialoguegen"
	"ironfrontier/pkg/pcg/encountergen"
	"ironfrontier/pkg/pcg/entities"
	"ironfrontier/pkg/pcg/metrics"
	"ironfrontier/pkg/pcg/npcgen"
	"ironfrontier/pkg/pcg/questgen"
	"ironfrontier/pkg/pcg/rng"

	"github.com/sirupsen/logrus"
)

// locationDefaults is the per-type default counts table: background and
// notable NPC counts, and world item count.
type locationDefaults struct {
	Background int
	Notable    int
	Items      int
}

var defaultCountsByType = map[string]locationDefaults{
	"city":    {Background: 10, Notable: 5, Items: 8},
	"town":    {Background: 6, Notable: 3, Items: 5},
	"mine":    {Background: 3, Notable: 1, Items: 4},
	"ranch":   {Background: 4, Notable: 2, Items: 3},
	"outpost": {Background: 2, Notable: 1, Items: 2},
	"camp":    {Background: 2, Notable: 1, Items: 2},
	"ruin":    {Background: 1, Notable: 1, Items: 3},
}

var locationTypeOrder = []string{"city", "town", "mine", "ranch", "outpost", "camp", "ruin"}

// roleShopType maps an NPC role to the shop-type key used to look up its
// weighted item pool; roles with no dedicated shop type fall back to
// "general".
var roleShopType = map[string]string{
	"merchant":     "general",
	"bartender":    "saloon",
	"saloonkeeper": "saloon",
}

// Orchestrator is the single process-wide instance. Zero value is
// uninitialized; call Initialize before any generate/get call.
type Orchestrator struct {
	mu          sync.Mutex
	initialized bool
	worldSeed   uint32
	registry    *content.Registry
	logger      *logrus.Logger

	npcGen       *npcgen.Generator
	questGen     *questgen.Generator
	dialogueGen  *dialoguegen.Generator
	encounterGen *encountergen.Generator

	metrics *metrics.Metrics
	cache   map[string]*entities.ProceduralLocationContent
}

// New returns an uninitialized orchestrator. Pass nil for m to run without
// metrics instrumentation (e.g. in tests).
func New(logger *logrus.Logger, m *metrics.Metrics) *Orchestrator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Orchestrator{logger: logger, metrics: m}
}

// Initialize is idempotent when called with the same world seed; a
// different seed resets every cache, per spec §6. This is the only
// externally triggered cache invalidation — the orchestrator never
// auto-invalidates.
func (o *Orchestrator) Initialize(worldSeed uint32, registry *content.Registry) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.initialized && o.worldSeed == worldSeed && o.registry == registry {
		return
	}

	o.worldSeed = worldSeed
	o.registry = registry
	o.npcGen = npcgen.New(registry, o.logger)
	o.questGen = questgen.New(registry, o.logger)
	o.dialogueGen = dialoguegen.New(registry, o.logger)
	o.encounterGen = encountergen.New(registry, o.logger)
	o.cache = make(map[string]*entities.ProceduralLocationContent)
	o.initialized = true
}

func (o *Orchestrator) requireInitialized() {
	if !o.initialized {
		panic("orchestrator: used before Initialize")
	}
}

// Initialized reports whether Initialize has been called at least once.
func (o *Orchestrator) Initialized() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.initialized
}

// locationSeed derives the root seed for a location's content from the
// current world seed and the location id.
func (o *Orchestrator) locationSeed(locationID string) uint32 {
	return rng.CombineSeeds(o.worldSeed, rng.HashString(locationID))
}

// InferLocationType resolves explicit type → tag-driven mapping →
// name-substring heuristic → "town" fallback.
func InferLocationType(resolved entities.ResolvedLocation) string {
	if resolved.Type != "" {
		return resolved.Type
	}
	tagSet := map[string]bool{}
	for _, t := range resolved.Tags {
		tagSet[strings.ToLower(t)] = true
	}
	for _, lt := range locationTypeOrder {
		if tagSet[lt] {
			return lt
		}
	}
	name := strings.ToLower(resolved.Name)
	for _, lt := range locationTypeOrder {
		if strings.Contains(name, lt) {
			return lt
		}
	}
	return "town"
}

func countsFor(locationType string, override *entities.NPCCountOverride, itemOverride *int) (npcgen.BatchCounts, int) {
	d, ok := defaultCountsByType[locationType]
	if !ok {
		d = defaultCountsByType["town"]
	}
	counts := npcgen.BatchCounts{Background: d.Background, Notable: d.Notable}
	items := d.Items
	if override != nil {
		counts.Background = override.Background
		counts.Notable = override.Notable
	}
	if itemOverride != nil {
		items = *itemOverride
	}
	return counts, items
}

// spiralPosition implements the hex-coordinate spiral placement formula:
// radius grows by 2 every 8 points, angle sweeps evenly around the circle.
func spiralPosition(i, n int) entities.HexCoord {
	if n <= 0 {
		n = 1
	}
	radius := 2 + (i/8)*2
	angle := 2 * math.Pi * float64(i) / float64(n)
	q := int(math.Round(math.Cos(angle) * float64(radius)))
	r := int(math.Round(math.Sin(angle) * float64(radius)))
	return entities.HexCoord{Q: q, R: r}
}

// GenerateLocationContent is the primary lazy entry point (spec §4.9). A
// cache hit whose stored seed matches the currently derived location seed
// is returned unchanged (the fast path); otherwise the full fixed-order
// generation pipeline runs and the result is memoized.
func (o *Orchestrator) GenerateLocationContent(resolved entities.ResolvedLocation, options *entities.GenerationOptions) *entities.ProceduralLocationContent {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.requireInitialized()

	seed := o.locationSeed(resolved.ID)
	if cached, ok := o.cache[resolved.ID]; ok && cached.Seed == seed {
		if o.metrics != nil {
			o.metrics.RecordCacheHit()
		}
		return cached
	}
	if o.metrics != nil {
		o.metrics.RecordCacheMiss()
	}

	locationType := InferLocationType(resolved)
	start := time.Now()

	var npcOverride *entities.NPCCountOverride
	var itemOverride *int
	if options != nil {
		npcOverride = options.NPCCount
		itemOverride = options.ItemCount
	}
	batchCounts, itemCount := countsFor(locationType, npcOverride, itemOverride)

	root := rng.New(seed)

	playerLevel := 1
	gameHour := 12
	if options != nil && options.ContextOverrides != nil {
		if options.ContextOverrides.PlayerLevel > 0 {
			playerLevel = options.ContextOverrides.PlayerLevel
		}
		if options.ContextOverrides.GameHour > 0 {
			gameHour = options.ContextOverrides.GameHour
		}
	}

	// 1. NPCs
	rawNPCs := o.npcGen.GenerateBatch(root, locationType, resolved.ID, resolved.RegionID, batchCounts)
	if o.metrics != nil {
		o.metrics.RecordGeneration("npc")
	}
	npcCount := len(rawNPCs)
	procNPCs := make([]entities.ProceduralNPC, npcCount)
	for i, npc := range rawNPCs {
		procNPCs[i] = entities.ProceduralNPC{
			GeneratedNPC:   npc,
			Position:       spiralPosition(i, npcCount),
			DialogueTreeID: fmt.Sprintf("dialogue_%s", npc.ID),
		}
	}

	// 2. World items
	items := o.generateItems(root, locationType, itemCount)
	if o.metrics != nil && len(items) > 0 {
		o.metrics.RecordGeneration("item")
	}

	// 3. Dialogue
	dialogue := make(map[string]entities.GeneratedDialogueTree, len(procNPCs))
	for _, npc := range procNPCs {
		tree := o.dialogueGen.GenerateSimple(root, npc.GeneratedNPC, dialoguegen.SimpleOptions{
			IncludeRumors: true,
			IncludeQuest:  npc.IsQuestGiver,
			IncludeShop:   npc.HasShop,
		})
		dialogue[npc.ID] = tree
		if o.metrics != nil {
			o.metrics.RecordGeneration("dialogue")
		}
	}

	// 4. Shops
	shops := make(map[string]entities.ShopInventory)
	for _, npc := range procNPCs {
		if !npc.HasShop {
			continue
		}
		shopType, ok := roleShopType[npc.Role]
		if !ok {
			shopType = "general"
		}
		shops[npc.ID] = o.encounterGen.GenerateShop(root, npc.ID, shopType, playerLevel, 6)
		if o.metrics != nil {
			o.metrics.RecordGeneration("shop")
		}
	}

	// 5. Quests
	var locIDs []string
	if resolved.ID != "" {
		locIDs = append(locIDs, resolved.ID)
	}
	qctx := entities.QuestGenerationContext{
		GenerationContext: entities.GenerationContext{
			WorldSeed:   o.worldSeed,
			LocationID:  resolved.ID,
			RegionID:    resolved.RegionID,
			PlayerLevel: playerLevel,
			GameHour:    gameHour,
		},
		AvailableNPCs:      procNPCs,
		AvailableItems:     items,
		AvailableLocations: locIDs,
	}

	var quests []entities.GeneratedQuest
	for _, npc := range procNPCs {
		if !npc.IsQuestGiver {
			continue
		}
		eligible := o.questGen.EligibleTemplates(playerLevel, npc.Role, npc.Faction)
		if len(eligible) == 0 {
			continue
		}
		tmpl := rng.Pick(root, eligible)
		giver := questgen.GiverInfo{ID: npc.ID, Name: npc.FullName, Role: npc.Role, Faction: npc.Faction}
		quest := o.questGen.GenerateOne(root, tmpl, qctx, giver)
		if o.metrics != nil {
			o.metrics.RecordGeneration("quest")
			for _, stage := range quest.Stages {
				for _, obj := range stage.Objectives {
					if obj.TargetID == "" {
						o.metrics.RecordBindingFailure("quest_objective")
					}
				}
			}
		}
		quests = append(quests, quest)
	}

	// 6. Structure states (populated lazily)
	record := &entities.ProceduralLocationContent{
		LocationID:      resolved.ID,
		Seed:            seed,
		NPCs:            procNPCs,
		Items:           items,
		Dialogue:        dialogue,
		Shops:           shops,
		Quests:          quests,
		StructureStates: make(map[string]entities.StructureState),
	}

	o.cache[resolved.ID] = record
	if o.metrics != nil {
		o.metrics.RecordGenerationDuration(locationType, time.Since(start))
		o.metrics.SetCachedLocations(len(o.cache))
	}
	return record
}

// generateItems draws itemCount world items from the location type's
// weighted pool, placing each at a uniformly random angle/radius in
// [0, 2π) x [3, 10].
func (o *Orchestrator) generateItems(root *rng.RNG, locationType string, itemCount int) []entities.WorldItemSpawn {
	pool := o.registry.WorldItemPool[locationType]
	if len(pool) == 0 || itemCount <= 0 {
		return nil
	}
	ids := make([]string, len(pool))
	weights := make([]float64, len(pool))
	for i, e := range pool {
		ids[i] = e.ItemID
		weights[i] = e.Weight
	}

	items := make([]entities.WorldItemSpawn, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		itemID := rng.WeightedPick(root, ids, weights)
		angle := root.Float(0, 2*math.Pi)
		radius := root.Float(3, 10)
		q := int(math.Round(math.Cos(angle) * radius))
		r := int(math.Round(math.Sin(angle) * radius))
		items = append(items, entities.WorldItemSpawn{ItemID: itemID, Position: entities.HexCoord{Q: q, R: r}})
	}
	return items
}

// GetOrGenerateNPCs is a convenience lookup: it generates (or returns
// cached) content for locationID and projects out the NPC list.
func (o *Orchestrator) GetOrGenerateNPCs(locationID string, resolved *entities.ResolvedLocation) []entities.ProceduralNPC {
	record := o.contentFor(locationID, resolved)
	if record == nil {
		return nil
	}
	return record.NPCs
}

// GetOrGenerateItems mirrors GetOrGenerateNPCs for the world-item list.
func (o *Orchestrator) GetOrGenerateItems(locationID string, resolved *entities.ResolvedLocation) []entities.WorldItemSpawn {
	record := o.contentFor(locationID, resolved)
	if record == nil {
		return nil
	}
	return record.Items
}

// GetOrGenerateDialogue returns the dialogue tree for npcID within
// locationID's content, or nil if the NPC has no tree.
func (o *Orchestrator) GetOrGenerateDialogue(npcID, locationID string) *entities.GeneratedDialogueTree {
	o.mu.Lock()
	record, ok := o.cache[locationID]
	o.mu.Unlock()
	if !ok {
		return nil
	}
	tree, ok := record.Dialogue[npcID]
	if !ok {
		return nil
	}
	return &tree
}

// GetOrGenerateShop returns the shop inventory for npcID within
// locationID's content, or nil if the NPC has no shop.
func (o *Orchestrator) GetOrGenerateShop(npcID, locationID string) *entities.ShopInventory {
	o.mu.Lock()
	record, ok := o.cache[locationID]
	o.mu.Unlock()
	if !ok {
		return nil
	}
	shop, ok := record.Shops[npcID]
	if !ok {
		return nil
	}
	return &shop
}

// GetOrGenerateStructureState lazily derives and memoizes the structure
// state at hexKey within locationID's content: functional with probability
// 0.8, else broken or locked with equal probability.
func (o *Orchestrator) GetOrGenerateStructureState(locationID, hexKey string) entities.StructureState {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.requireInitialized()

	record, ok := o.cache[locationID]
	if !ok {
		panic(fmt.Sprintf("orchestrator: structure state requested for ungenerated location %q", locationID))
	}
	if state, ok := record.StructureStates[hexKey]; ok {
		return state
	}

	sub := rng.New(rng.CombineSeeds(record.Seed, rng.HashString(hexKey)))
	var state entities.StructureState
	switch {
	case sub.Bool(0.8):
		state = entities.StructureFunctional
	case sub.Bool(0.5):
		state = entities.StructureBroken
	default:
		state = entities.StructureLocked
	}
	record.StructureStates[hexKey] = state
	return state
}

// contentFor is the shared "cache hit or generate" path for the
// NPC/item lookup convenience methods; resolved may be nil only on a
// guaranteed cache hit (a prior GenerateLocationContent call for the id).
func (o *Orchestrator) contentFor(locationID string, resolved *entities.ResolvedLocation) *entities.ProceduralLocationContent {
	o.mu.Lock()
	seed := o.locationSeed(locationID)
	cached, ok := o.cache[locationID]
	o.mu.Unlock()
	if ok && cached.Seed == seed {
		return cached
	}
	if resolved == nil {
		resolved = &entities.ResolvedLocation{ID: locationID}
	}
	return o.GenerateLocationContent(*resolved, nil)
}

// ClearCache drops all memoized location content. Must be called
// externally after a world-seed change; the orchestrator never
// auto-invalidates.
func (o *Orchestrator) ClearCache() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cache = make(map[string]*entities.ProceduralLocationContent)
	if o.metrics != nil {
		o.metrics.SetCachedLocations(0)
	}
}
