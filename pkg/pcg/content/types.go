// Package content defines the static template and pool data that every
// generator draws from: name pools, dialogue snippets, and the template
// families for NPCs, quests, encounters, enemies, buildings, and locations.
// These are loaded once at startup and never mutated during generation.
package content

// Gender is a closed enumeration with an Unknown variant for forward
// compatibility with permissively-typed source data.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderNeutral Gender = "neutral"
	GenderUnknown Gender = "unknown"
)

// TargetType is the closed set of quest-objective target kinds.
type TargetType string

const (
	TargetNPC      TargetType = "npc"
	TargetItem     TargetType = "item"
	TargetLocation TargetType = "location"
	TargetEnemy    TargetType = "enemy"
	TargetAny      TargetType = "any"
)

// DialogueCategory is the closed set of snippet categories.
type DialogueCategory string

const (
	CategoryGreeting      DialogueCategory = "greeting"
	CategoryFarewell      DialogueCategory = "farewell"
	CategoryThanks        DialogueCategory = "thanks"
	CategoryRefusal       DialogueCategory = "refusal"
	CategoryAgreement     DialogueCategory = "agreement"
	CategoryQuestion      DialogueCategory = "question"
	CategoryRumor         DialogueCategory = "rumor"
	CategoryThreat        DialogueCategory = "threat"
	CategoryBribe         DialogueCategory = "bribe"
	CategoryCompliment    DialogueCategory = "compliment"
	CategoryInsult        DialogueCategory = "insult"
	CategorySmallTalk     DialogueCategory = "small_talk"
	CategoryQuestOffer    DialogueCategory = "quest_offer"
	CategoryQuestUpdate   DialogueCategory = "quest_update"
	CategoryQuestComplete DialogueCategory = "quest_complete"
	CategoryShopOpen      DialogueCategory = "shop_open"
	CategoryShopBuy       DialogueCategory = "shop_buy"
	CategoryShopSell      DialogueCategory = "shop_sell"
)

// QuestArchetype is the closed set of quest families.
type QuestArchetype string

const (
	ArchetypeBountyHunt    QuestArchetype = "bounty_hunt"
	ArchetypeClearArea     QuestArchetype = "clear_area"
	ArchetypeEscort        QuestArchetype = "escort"
	ArchetypeFetch         QuestArchetype = "fetch"
	ArchetypeDeliver       QuestArchetype = "deliver"
	ArchetypeInvestigate   QuestArchetype = "investigate"
	ArchetypeDefendLand    QuestArchetype = "defend_land"
	ArchetypeRoundUp       QuestArchetype = "round_up"
	ArchetypeProspect      QuestArchetype = "prospect"
	ArchetypeSabotage      QuestArchetype = "sabotage"
	ArchetypeNegotiate     QuestArchetype = "negotiate"
	ArchetypeTrack         QuestArchetype = "track"
	ArchetypeSmuggle       QuestArchetype = "smuggle"
	ArchetypeDuel          QuestArchetype = "duel"
	ArchetypeRescue        QuestArchetype = "rescue"
	ArchetypeRobBank       QuestArchetype = "rob_bank"
	ArchetypeRailwayGuard  QuestArchetype = "railway_guard"
	ArchetypeCattleDrive   QuestArchetype = "cattle_drive"
	ArchetypeSurvey        QuestArchetype = "survey"
	ArchetypeWantedPoster  QuestArchetype = "wanted_poster"
	ArchetypeBuildAlliance QuestArchetype = "build_alliance"
	ArchetypeTreasureHunt  QuestArchetype = "treasure_hunt"
	ArchetypeTownDefense   QuestArchetype = "town_defense"
)

// BehaviorTag is a closed set describing enemy combat behavior.
type BehaviorTag string

const (
	BehaviorAggressive BehaviorTag = "aggressive"
	BehaviorDefensive  BehaviorTag = "defensive"
	BehaviorSkittish   BehaviorTag = "skittish"
	BehaviorAmbusher   BehaviorTag = "ambusher"
	BehaviorPack       BehaviorTag = "pack"
)

// IntRange is an inclusive integer range, lo <= hi.
type IntRange struct {
	Lo int `yaml:"lo"`
	Hi int `yaml:"hi"`
}

// FloatRange is an inclusive float range, lo <= hi.
type FloatRange struct {
	Lo float64 `yaml:"lo"`
	Hi float64 `yaml:"hi"`
}

// OriginWeight pairs a cultural name origin with a selection weight.
type OriginWeight struct {
	Origin string  `yaml:"origin"`
	Weight float64 `yaml:"weight"`
}

// NamePool holds gendered first-name lists by origin, surnames by origin,
// and optional title/nickname sources.
type NamePool struct {
	ID         string                         `yaml:"id"`
	FirstNames map[string]map[Gender][]string `yaml:"first_names"`
	Surnames   map[string][]string            `yaml:"surnames"`
	Titles     []string                       `yaml:"titles"`
	Nicknames  []string                       `yaml:"nicknames"`
}

// PlaceNamePool holds the recombination vocabulary for place names.
type PlaceNamePool struct {
	ID          string   `yaml:"id"`
	Adjectives  []string `yaml:"adjectives"`
	Nouns       []string `yaml:"nouns"`
	Suffixes    []string `yaml:"suffixes"`
	Possessives []string `yaml:"possessives"`
	Patterns    []string `yaml:"patterns"`
}

// DialogueSnippet is a reusable fragment of dialogue text with filter
// metadata.
type DialogueSnippet struct {
	ID                string           `yaml:"id"`
	Category          DialogueCategory `yaml:"category"`
	Texts             []string         `yaml:"texts"`
	ValidRoles        []string         `yaml:"valid_roles"`
	ValidFactions     []string         `yaml:"valid_factions"`
	ValidTimesOfDay   []string         `yaml:"valid_times_of_day"`
	PersonalityMin    map[string]float64 `yaml:"personality_min"`
	PersonalityMax    map[string]float64 `yaml:"personality_max"`
	Tags              []string         `yaml:"tags"`
}

// NPCTemplate describes a family of NPCs.
type NPCTemplate struct {
	ID                string                `yaml:"id"`
	Role              string                `yaml:"role"`
	AllowedFactions   []string              `yaml:"allowed_factions"`
	GenderMale        float64               `yaml:"gender_male"`
	GenderFemale      float64               `yaml:"gender_female"`
	NameOriginWeights []OriginWeight        `yaml:"name_origin_weights"`
	NamePoolID        string                `yaml:"name_pool_id"`
	PersonalityRanges map[string]FloatRange `yaml:"personality_ranges"`
	BackstoryTemplates   []string           `yaml:"backstory_templates"`
	DescriptionTemplates []string           `yaml:"description_templates"`
	QuestGiverChance  float64               `yaml:"quest_giver_chance"`
	ShopChance        float64               `yaml:"shop_chance"`
	ValidLocationTypes []string             `yaml:"valid_location_types"`
	MinImportance     float64               `yaml:"min_importance"`
	Tags              []string              `yaml:"tags"`
}

// QuestObjectiveTemplate describes one objective within a stage.
type QuestObjectiveTemplate struct {
	TargetType  TargetType `yaml:"target_type"`
	TargetTags  []string   `yaml:"target_tags"`
	CountRange  IntRange   `yaml:"count_range"`
	Description string     `yaml:"description"`
}

// QuestStageTemplate describes one stage of a quest.
type QuestStageTemplate struct {
	Title       string                   `yaml:"title"`
	Description string                   `yaml:"description"`
	OnStart     string                   `yaml:"on_start"`
	OnComplete  string                   `yaml:"on_complete"`
	Objectives  []QuestObjectiveTemplate `yaml:"objectives"`
}

// QuestTemplate describes a family of quests.
type QuestTemplate struct {
	ID                   string                `yaml:"id"`
	Archetype            QuestArchetype        `yaml:"archetype"`
	TitleTemplates       []string              `yaml:"title_templates"`
	DescriptionTemplates []string              `yaml:"description_templates"`
	Stages               []QuestStageTemplate  `yaml:"stages"`
	RewardXP             IntRange              `yaml:"reward_xp"`
	RewardGold           IntRange              `yaml:"reward_gold"`
	ReputationDeltas     map[string]FloatRange `yaml:"reputation_deltas"`
	GiverRoles           []string              `yaml:"giver_roles"`
	GiverFactions        []string              `yaml:"giver_factions"`
	LevelRange           IntRange              `yaml:"level_range"`
}

// EnemyGroupTemplate describes one enemy wave within an encounter.
type EnemyGroupTemplate struct {
	EnemyTag   string   `yaml:"enemy_tag"`
	CountRange IntRange `yaml:"count_range"`
	LevelScale float64  `yaml:"level_scale"`
}

// EncounterTemplate describes a family of combat encounters.
type EncounterTemplate struct {
	ID                  string               `yaml:"id"`
	Groups              []EnemyGroupTemplate `yaml:"groups"`
	RewardXP            IntRange             `yaml:"reward_xp"`
	RewardGold          IntRange             `yaml:"reward_gold"`
	DifficultyRange     IntRange             `yaml:"difficulty_range"`
	ValidBiomes         []string             `yaml:"valid_biomes"`
	ValidLocationTypes  []string             `yaml:"valid_location_types"`
	ValidTimesOfDay     []string             `yaml:"valid_times_of_day"`
	DescriptionTemplate string               `yaml:"description_template"`
}

// EnemyStats is the base statline for an enemy template.
type EnemyStats struct {
	Health   float64 `yaml:"health"`
	Damage   float64 `yaml:"damage"`
	Armor    float64 `yaml:"armor"`
	Accuracy float64 `yaml:"accuracy"`
	Evasion  float64 `yaml:"evasion"`
}

// EnemyScaling is the per-level scaling factors for an enemy template.
// Health/Damage/Armor scale multiplicatively; Accuracy/Evasion additively.
type EnemyScaling struct {
	HealthPerLevel   float64 `yaml:"health_per_level"`
	DamagePerLevel   float64 `yaml:"damage_per_level"`
	ArmorPerLevel    float64 `yaml:"armor_per_level"`
	AccuracyPerLevel float64 `yaml:"accuracy_per_level"`
	EvasionPerLevel  float64 `yaml:"evasion_per_level"`
}

// EnemyNamePool holds the name-assembly vocabulary for an enemy family.
type EnemyNamePool struct {
	BaseNames []string `yaml:"base_names"`
	Prefixes  []string `yaml:"prefixes"`
	Titles    []string `yaml:"titles"`
	Suffixes  []string `yaml:"suffixes"`
}

// EnemyTemplate describes a family of enemies.
type EnemyTemplate struct {
	ID            string        `yaml:"id"`
	Tag           string        `yaml:"tag"`
	BaseStats     EnemyStats    `yaml:"base_stats"`
	Scaling       EnemyScaling  `yaml:"scaling"`
	Names         EnemyNamePool `yaml:"names"`
	BehaviorTags  []BehaviorTag `yaml:"behavior_tags"`
	CombatTags    []string      `yaml:"combat_tags"`
	Factions      []string      `yaml:"factions"`
	XPModifier    float64       `yaml:"xp_modifier"`
	MinLevel      int           `yaml:"min_level"`
	MaxLevel      int           `yaml:"max_level"`
}

// NPCSlot declares how many NPCs of which role a building wants.
type NPCSlot struct {
	Role     string `yaml:"role"`
	Required bool   `yaml:"required"`
	Count    IntRange `yaml:"count"`
}

// BuildingTemplate describes a family of buildings within a location.
type BuildingTemplate struct {
	ID            string    `yaml:"id"`
	Type          string    `yaml:"type"`
	NPCSlots      []NPCSlot `yaml:"npc_slots"`
	ShopType      string    `yaml:"shop_type"`
	MinTownSize   int       `yaml:"min_town_size"`
	MaxInstances  int       `yaml:"max_instances"`
	Tags          []string  `yaml:"tags"`
}

// BuildingRef is a location template's reference to a building template
// with an expected instance count.
type BuildingRef struct {
	BuildingID string   `yaml:"building_id"`
	CountRange IntRange `yaml:"count_range"`
	Required   bool     `yaml:"required"`
}

// ShopItemEntry is one weighted candidate in a shop-type item pool.
type ShopItemEntry struct {
	ItemID     string   `yaml:"item_id"`
	Weight     float64  `yaml:"weight"`
	BasePrice  IntRange `yaml:"base_price"`
	StockRange IntRange `yaml:"stock_range"`
}

// LocationTemplate describes a family of locations (towns, mines, ruins...).
type LocationTemplate struct {
	ID                     string        `yaml:"id"`
	Type                   string        `yaml:"type"`
	SizeTier               string        `yaml:"size_tier"`
	NamePoolID             string        `yaml:"name_pool_id"`
	Buildings              []BuildingRef `yaml:"buildings"`
	BackgroundNPCCount     IntRange      `yaml:"background_npc_count"`
	NotableNPCCount        IntRange      `yaml:"notable_npc_count"`
	ValidBiomes            []string      `yaml:"valid_biomes"`
	DescriptionTemplates   []string      `yaml:"description_templates"`
	Tags                   []string      `yaml:"tags"`
}
