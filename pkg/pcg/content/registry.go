package content

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ValidationResult accumulates non-fatal errors and warnings encountered
// while loading static data, matching the orchestrator-wide convention that
// template validation failures are logged and the offending entry dropped
// rather than aborting the whole registry load.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

func (v *ValidationResult) AddError(format string, args ...interface{}) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *ValidationResult) AddWarning(format string, args ...interface{}) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

func (v *ValidationResult) IsValid() bool { return len(v.Errors) == 0 }

// Registry holds all static template and pool data, keyed by id. It is
// built once at startup and never mutated afterward.
type Registry struct {
	NamePools      map[string]*NamePool
	PlaceNamePools map[string]*PlaceNamePool
	Snippets       map[string]*DialogueSnippet
	NPCTemplates   map[string]*NPCTemplate
	QuestTemplates map[string]*QuestTemplate
	Encounters     map[string]*EncounterTemplate
	Enemies        map[string]*EnemyTemplate
	Buildings      map[string]*BuildingTemplate
	Locations      map[string]*LocationTemplate
	ShopPools      map[string][]ShopItemEntry // shop type -> weighted entries
	WorldItemPool  map[string][]ShopItemEntry // location type -> weighted entries, for world item spawns

	logger *logrus.Logger
}

// NewRegistry returns an empty registry ready for Load calls.
func NewRegistry(logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logrus.New()
	}
	return &Registry{
		NamePools:      make(map[string]*NamePool),
		PlaceNamePools: make(map[string]*PlaceNamePool),
		Snippets:       make(map[string]*DialogueSnippet),
		NPCTemplates:   make(map[string]*NPCTemplate),
		QuestTemplates: make(map[string]*QuestTemplate),
		Encounters:     make(map[string]*EncounterTemplate),
		Enemies:        make(map[string]*EnemyTemplate),
		Buildings:      make(map[string]*BuildingTemplate),
		Locations:      make(map[string]*LocationTemplate),
		ShopPools:      make(map[string][]ShopItemEntry),
		WorldItemPool:  make(map[string][]ShopItemEntry),
		logger:         logger,
	}
}

// LoadDefaults populates the registry with the compiled-in Western-themed
// template set (see defaults.go), validating each entry and dropping any
// that fails structural validation.
func (r *Registry) LoadDefaults() *ValidationResult {
	result := &ValidationResult{}

	for _, np := range defaultNamePools() {
		if err := validateNamePool(np); err != "" {
			result.AddWarning("name pool %s: %s", np.ID, err)
			continue
		}
		r.NamePools[np.ID] = np
	}
	for _, pp := range defaultPlaceNamePools() {
		r.PlaceNamePools[pp.ID] = pp
	}
	for _, s := range defaultSnippets() {
		if len(s.Texts) == 0 {
			result.AddWarning("snippet %s: text templates empty, dropped", s.ID)
			continue
		}
		r.Snippets[s.ID] = s
	}
	for _, t := range defaultNPCTemplates() {
		if err := validateNPCTemplate(t); err != "" {
			result.AddWarning("npc template %s: %s", t.ID, err)
			continue
		}
		r.NPCTemplates[t.ID] = t
	}
	for _, t := range defaultQuestTemplates() {
		if err := validateQuestTemplate(t); err != "" {
			result.AddWarning("quest template %s: %s", t.ID, err)
			continue
		}
		r.QuestTemplates[t.ID] = t
	}
	for _, t := range defaultEncounterTemplates() {
		if t.DifficultyRange.Lo > t.DifficultyRange.Hi {
			result.AddWarning("encounter template %s: difficulty range inverted, dropped", t.ID)
			continue
		}
		r.Encounters[t.ID] = t
	}
	for _, t := range defaultEnemyTemplates() {
		r.Enemies[t.ID] = t
	}
	for _, t := range defaultBuildingTemplates() {
		r.Buildings[t.ID] = t
	}
	for _, t := range defaultLocationTemplates() {
		r.Locations[t.ID] = t
	}
	for shopType, entries := range defaultShopPools() {
		r.ShopPools[shopType] = entries
	}
	for locType, entries := range defaultWorldItemPool() {
		r.WorldItemPool[locType] = entries
	}

	for _, w := range result.Warnings {
		r.logger.WithField("function", "LoadDefaults").Warn(w)
	}
	return result
}

// LoadYAMLOverlay reads a YAML file of the same shape as the compiled-in
// defaults and merges it in, overwriting entries with matching ids. Missing
// or unreadable files are logged and skipped — template loading never
// aborts startup.
func (r *Registry) LoadYAMLOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.WithFields(logrus.Fields{"function": "LoadYAMLOverlay", "path": path}).
			Warn("overlay file unreadable, skipping")
		return nil
	}

	var overlay struct {
		NPCTemplates   []*NPCTemplate       `yaml:"npc_templates"`
		QuestTemplates []*QuestTemplate     `yaml:"quest_templates"`
		Encounters     []*EncounterTemplate `yaml:"encounters"`
		Enemies        []*EnemyTemplate     `yaml:"enemies"`
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("content: parsing overlay %s: %w", path, err)
	}

	for _, t := range overlay.NPCTemplates {
		r.NPCTemplates[t.ID] = t
	}
	for _, t := range overlay.QuestTemplates {
		r.QuestTemplates[t.ID] = t
	}
	for _, t := range overlay.Encounters {
		r.Encounters[t.ID] = t
	}
	for _, t := range overlay.Enemies {
		r.Enemies[t.ID] = t
	}
	return nil
}

func validateNamePool(np *NamePool) string {
	if len(np.FirstNames) == 0 {
		return "no origins with first names"
	}
	return ""
}

func validateNPCTemplate(t *NPCTemplate) string {
	if t.GenderMale+t.GenderFemale > 1.0 {
		return "gender distribution exceeds 1.0"
	}
	for trait, rng := range t.PersonalityRanges {
		if rng.Lo > rng.Hi {
			return fmt.Sprintf("personality range for %s inverted", trait)
		}
	}
	return ""
}

func validateQuestTemplate(t *QuestTemplate) string {
	hasNonOptional := false
	for _, stage := range t.Stages {
		if len(stage.Objectives) > 0 {
			hasNonOptional = true
		}
	}
	if !hasNonOptional {
		return "no stage has at least one objective"
	}
	return ""
}
