package content

// Compiled-in Western-themed template set. Loaded via Registry.LoadDefaults
// and may be overlaid with data-driven YAML via LoadYAMLOverlay.

func defaultNamePools() []*NamePool {
	return []*NamePool{
		{
			ID: "frontier",
			FirstNames: map[string]map[Gender][]string{
				"anglo": {
					GenderMale:   {"Cole", "Jed", "Silas", "Amos", "Virgil", "Walt", "Obed", "Clay"},
					GenderFemale: {"Clara", "Hattie", "Ida", "Mercy", "Nell", "Vesta", "Opal", "Ruth"},
				},
				"mexican": {
					GenderMale:   {"Alonso", "Ramon", "Tomas", "Esteban", "Rafael", "Mateo"},
					GenderFemale: {"Luz", "Soledad", "Inez", "Carmen", "Dolores", "Rosario"},
				},
				"chinese": {
					GenderMale:   {"Wei", "Hao", "Jun", "Feng", "Long"},
					GenderFemale: {"Mei", "Lan", "Xia", "Jing", "Yun"},
				},
			},
			Surnames: map[string][]string{
				"anglo":   {"Garrett", "Holt", "Crowe", "Tillman", "Wade", "Briggs", "Shaw", "Flynn"},
				"mexican": {"Reyes", "Vega", "Cruz", "Ortega", "Salazar", "Montoya"},
				"chinese": {"Chen", "Liu", "Wang", "Zhao", "Huang"},
			},
			Titles:    []string{"Sheriff", "Marshal", "Doc", "Father", "Madam", "Colonel", "Judge"},
			Nicknames: []string{"Tex", "Doc", "Lucky", "Iron", "Snake", "Dusty", "Preacher", "Red"},
		},
	}
}

func defaultPlaceNamePools() []*PlaceNamePool {
	return []*PlaceNamePool{
		{
			ID:          "frontier_towns",
			Adjectives:  []string{"Iron", "Dust", "Red", "Broken", "Lone", "Silver", "Copper", "Burnt"},
			Nouns:       []string{"Ridge", "Gulch", "Creek", "Hollow", "Flats", "Bend", "Canyon", "Springs"},
			Suffixes:    []string{"town", "ville", "burg", "ford", "stead"},
			Possessives: []string{"Carter's", "Hangman's", "Deacon's", "Widow's", "Outlaw's"},
			Patterns: []string{
				"{{adj}} {{noun}}",
				"{{possessive}} {{noun}}",
				"{{noun}}{{suffix}}",
				"{{adj}}{{suffix}}",
				"Fort {{noun}}",
				"{{letter}} {{number}} Crossing",
			},
		},
	}
}

func defaultSnippets() []*DialogueSnippet {
	return []*DialogueSnippet{
		{ID: "greet_friendly", Category: CategoryGreeting, Texts: []string{
			"Well howdy there, {{name}}.", "Afternoon, stranger. Fine day, ain't it.",
		}, PersonalityMin: map[string]float64{"friendliness": 0.5}},
		{ID: "greet_hostile", Category: CategoryGreeting, Texts: []string{
			"What do you want.", "State your business and be quick about it.",
		}, PersonalityMax: map[string]float64{"friendliness": 0.4}},
		{ID: "farewell_default", Category: CategoryFarewell, Texts: []string{
			"Ride safe, now.", "See you 'round, {{name}}.",
		}},
		{ID: "rumor_default", Category: CategoryRumor, Texts: []string{
			"Heard there's trouble brewin' out past {{location}}.",
			"They say the {{faction}} been movin' through these parts lately.",
		}},
		{ID: "quest_offer_default", Category: CategoryQuestOffer, Texts: []string{
			"Say, {{name}}, I could use a hand with somethin'.",
		}},
		{ID: "shop_open_default", Category: CategoryShopOpen, Texts: []string{
			"Take a look, everything's fair priced.",
		}},
		{ID: "threat_default", Category: CategoryThreat, Texts: []string{
			"You're pushin' your luck, {{name}}.",
		}, PersonalityMin: map[string]float64{"aggression": 0.6}},
	}
}

func defaultNPCTemplates() []*NPCTemplate {
	return []*NPCTemplate{
		{
			ID:                "sheriff",
			Role:               "sheriff",
			AllowedFactions:    []string{"law", "town"},
			GenderMale:         0.85,
			GenderFemale:       0.15,
			NameOriginWeights:  []OriginWeight{{Origin: "anglo", Weight: 1}},
			NamePoolID:         "frontier",
			PersonalityRanges: map[string]FloatRange{
				"aggression": {Lo: 0.3, Hi: 0.7}, "lawfulness": {Lo: 0.7, Hi: 1.0},
			},
			BackstoryTemplates:   []string{"{{firstName}} pinned on the badge after the last sheriff met a bad end in {{location}}."},
			DescriptionTemplates: []string{"A weathered {{role}} who keeps {{location}} in line."},
			QuestGiverChance:     0.6,
			ShopChance:           0.0,
			ValidLocationTypes:   []string{"town", "city"},
			MinImportance:        0.7,
			Tags:                 []string{"law", "notable"},
		},
		{
			ID:                "shopkeeper",
			Role:               "merchant",
			AllowedFactions:    []string{"town", "independent"},
			GenderMale:         0.5,
			GenderFemale:       0.5,
			NameOriginWeights:  []OriginWeight{{Origin: "anglo", Weight: 0.6}, {Origin: "chinese", Weight: 0.4}},
			NamePoolID:         "frontier",
			PersonalityRanges: map[string]FloatRange{
				"greed": {Lo: 0.4, Hi: 0.8},
			},
			BackstoryTemplates:   []string{"{{firstName}} {{lastName}} set up shop in {{location}} years back and never left."},
			DescriptionTemplates: []string{"Runs the general store in {{location}}."},
			QuestGiverChance:     0.2,
			ShopChance:           0.95,
			ValidLocationTypes:   []string{"town", "city", "outpost"},
			MinImportance:        0.4,
			Tags:                 []string{"merchant"},
		},
		{
			ID:                "outlaw",
			Role:               "outlaw",
			AllowedFactions:    []string{"outlaws"},
			GenderMale:         0.7,
			GenderFemale:       0.3,
			NameOriginWeights:  []OriginWeight{{Origin: "anglo", Weight: 0.5}, {Origin: "mexican", Weight: 0.5}},
			NamePoolID:         "frontier",
			PersonalityRanges: map[string]FloatRange{
				"aggression": {Lo: 0.6, Hi: 1.0}, "honesty": {Lo: 0.0, Hi: 0.3},
			},
			BackstoryTemplates:   []string{"{{firstName}} rides with a rough crew out past {{location}}."},
			DescriptionTemplates: []string{"A hard-eyed figure who doesn't belong in polite company."},
			QuestGiverChance:     0.3,
			ShopChance:           0.1,
			ValidLocationTypes:   []string{"camp", "ruin"},
			MinImportance:        0.3,
			Tags:                 []string{"outlaw"},
		},
		{
			ID:                "rancher",
			Role:               "rancher",
			AllowedFactions:    []string{"town", "independent"},
			GenderMale:         0.6,
			GenderFemale:       0.4,
			NameOriginWeights:  []OriginWeight{{Origin: "anglo", Weight: 0.7}, {Origin: "mexican", Weight: 0.3}},
			NamePoolID:         "frontier",
			PersonalityRanges: map[string]FloatRange{
				"friendliness": {Lo: 0.4, Hi: 0.8},
			},
			BackstoryTemplates:   []string{"{{firstName}} {{lastName}} has worked the land around {{location}} since childhood."},
			DescriptionTemplates: []string{"Tends cattle on the outskirts of {{location}}."},
			QuestGiverChance:     0.4,
			ShopChance:           0.0,
			ValidLocationTypes:   []string{"ranch", "town"},
			MinImportance:        0.4,
			Tags:                 []string{"rancher"},
		},
		{
			ID:                "drifter",
			Role:               "drifter",
			AllowedFactions:    []string{"independent"},
			GenderMale:         0.55,
			GenderFemale:       0.45,
			NameOriginWeights:  []OriginWeight{{Origin: "anglo", Weight: 0.4}, {Origin: "mexican", Weight: 0.3}, {Origin: "chinese", Weight: 0.3}},
			NamePoolID:         "frontier",
			PersonalityRanges: map[string]FloatRange{
				"curiosity": {Lo: 0.5, Hi: 1.0},
			},
			BackstoryTemplates:   []string{"{{firstName}} passed through {{location}} with nothing but a horse and a past."},
			DescriptionTemplates: []string{"A stranger passing through {{location}}."},
			QuestGiverChance:     0.2,
			ShopChance:           0.0,
			ValidLocationTypes:   []string{},
			MinImportance:        0.1,
			Tags:                 []string{"background"},
		},
	}
}

func defaultQuestTemplates() []*QuestTemplate {
	return []*QuestTemplate{
		{
			ID:             "bounty_basic",
			Archetype:      ArchetypeBountyHunt,
			TitleTemplates: []string{"Dead or Alive: {{target}}", "Bounty on {{target}}"},
			DescriptionTemplates: []string{
				"{{giver}} wants {{target}} brought to justice, dead or alive.",
			},
			Stages: []QuestStageTemplate{
				{
					Title:       "Track them down",
					Description: "Find {{target}} near {{location}}.",
					OnStart:     "The trail starts in {{location}}.",
					OnComplete:  "You've found {{target}}.",
					Objectives: []QuestObjectiveTemplate{
						{TargetType: TargetEnemy, TargetTags: []string{"outlaw"}, CountRange: IntRange{1, 1}, Description: "Defeat {{target}}."},
					},
				},
			},
			RewardXP:      IntRange{Lo: 50, Hi: 150},
			RewardGold:    IntRange{Lo: 20, Hi: 80},
			ReputationDeltas: map[string]FloatRange{"law": {Lo: 0.05, Hi: 0.15}},
			GiverRoles:    []string{"sheriff"},
			GiverFactions: []string{"law"},
			LevelRange:    IntRange{Lo: 1, Hi: 20},
		},
		{
			ID:             "fetch_supplies",
			Archetype:      ArchetypeFetch,
			TitleTemplates: []string{"Supplies for {{giver}}", "A Favor for {{giver}}"},
			DescriptionTemplates: []string{
				"{{giver}} needs {{target}} fetched from somewhere around {{location}}.",
			},
			Stages: []QuestStageTemplate{
				{
					Title:       "Gather the goods",
					Description: "Find {{target}}.",
					OnStart:     "Start looking around {{location}}.",
					OnComplete:  "Got what {{giver}} needed.",
					Objectives: []QuestObjectiveTemplate{
						{TargetType: TargetItem, TargetTags: []string{}, CountRange: IntRange{1, 3}, Description: "Collect {{target}}."},
					},
				},
			},
			RewardXP:      IntRange{Lo: 20, Hi: 60},
			RewardGold:    IntRange{Lo: 10, Hi: 40},
			ReputationDeltas: map[string]FloatRange{"town": {Lo: 0.01, Hi: 0.05}},
			GiverRoles:    []string{"shopkeeper", "rancher"},
			GiverFactions: []string{},
			LevelRange:    IntRange{Lo: 1, Hi: 10},
		},
		{
			ID:             "escort_to_location",
			Archetype:      ArchetypeEscort,
			TitleTemplates: []string{"Safe Passage to {{destination}}"},
			DescriptionTemplates: []string{
				"{{giver}} needs safe escort to {{destination}}.",
			},
			Stages: []QuestStageTemplate{
				{
					Title:       "Escort",
					Description: "Accompany {{giver}} to {{destination}}.",
					OnStart:     "The road to {{destination}} is dangerous.",
					OnComplete:  "{{giver}} arrived safely.",
					Objectives: []QuestObjectiveTemplate{
						{TargetType: TargetLocation, TargetTags: []string{}, CountRange: IntRange{1, 1}, Description: "Reach {{destination}}."},
					},
				},
			},
			RewardXP:      IntRange{Lo: 40, Hi: 100},
			RewardGold:    IntRange{Lo: 15, Hi: 60},
			ReputationDeltas: map[string]FloatRange{"town": {Lo: 0.02, Hi: 0.1}},
			GiverRoles:    []string{},
			GiverFactions: []string{},
			LevelRange:    IntRange{Lo: 1, Hi: 15},
		},
	}
}

func defaultEncounterTemplates() []*EncounterTemplate {
	return []*EncounterTemplate{
		{
			ID: "bandit_ambush",
			Groups: []EnemyGroupTemplate{
				{EnemyTag: "bandit_thug", CountRange: IntRange{Lo: 2, Hi: 4}, LevelScale: 1.0},
			},
			RewardXP:            IntRange{Lo: 30, Hi: 90},
			RewardGold:          IntRange{Lo: 10, Hi: 50},
			DifficultyRange:     IntRange{Lo: 1, Hi: 6},
			ValidBiomes:         []string{"desert", "scrub"},
			ValidLocationTypes:  []string{},
			ValidTimesOfDay:     []string{},
			DescriptionTemplate: "Bandits ambush you near {{location}}.",
		},
		{
			ID: "rattlesnake_den",
			Groups: []EnemyGroupTemplate{
				{EnemyTag: "rattlesnake", CountRange: IntRange{Lo: 1, Hi: 3}, LevelScale: 0.6},
			},
			RewardXP:            IntRange{Lo: 10, Hi: 30},
			RewardGold:          IntRange{Lo: 0, Hi: 10},
			DifficultyRange:     IntRange{Lo: 1, Hi: 3},
			ValidBiomes:         []string{"desert"},
			DescriptionTemplate: "You stumble onto a den of rattlesnakes.",
		},
	}
}

func defaultEnemyTemplates() []*EnemyTemplate {
	return []*EnemyTemplate{
		{
			ID:  "bandit_thug",
			Tag: "bandit_thug",
			BaseStats: EnemyStats{Health: 30, Damage: 6, Armor: 2, Accuracy: 60, Evasion: 20},
			Scaling: EnemyScaling{
				HealthPerLevel: 1.15, DamagePerLevel: 1.1, ArmorPerLevel: 1.05,
				AccuracyPerLevel: 1.5, EvasionPerLevel: 1.0,
			},
			Names: EnemyNamePool{
				BaseNames: []string{"Bandit", "Gunslinger", "Thug"},
				Prefixes:  []string{"Mangy", "One-Eyed", "Crooked"},
				Titles:    []string{"the Quick", "the Cruel"},
				Suffixes:  []string{"of the Gulch", "of Red Ridge"},
			},
			BehaviorTags: []BehaviorTag{BehaviorAggressive},
			CombatTags:   []string{"ranged"},
			Factions:     []string{"outlaws"},
			XPModifier:   1.0,
			MinLevel:     1,
			MaxLevel:     20,
		},
		{
			ID:  "rattlesnake",
			Tag: "rattlesnake",
			BaseStats: EnemyStats{Health: 8, Damage: 3, Armor: 0, Accuracy: 70, Evasion: 35},
			Scaling: EnemyScaling{
				HealthPerLevel: 1.1, DamagePerLevel: 1.08, ArmorPerLevel: 1.0,
				AccuracyPerLevel: 1.0, EvasionPerLevel: 1.2,
			},
			Names: EnemyNamePool{
				BaseNames: []string{"Rattlesnake"},
			},
			BehaviorTags: []BehaviorTag{BehaviorSkittish, BehaviorAmbusher},
			Factions:     []string{},
			XPModifier:   0.6,
			MinLevel:     1,
			MaxLevel:     10,
		},
	}
}

func defaultBuildingTemplates() []*BuildingTemplate {
	return []*BuildingTemplate{
		{ID: "sheriff_office", Type: "sheriff_office", NPCSlots: []NPCSlot{{Role: "sheriff", Required: true, Count: IntRange{Lo: 1, Hi: 1}}}, MinTownSize: 1, MaxInstances: 1, Tags: []string{"law"}},
		{ID: "general_store", Type: "shop", NPCSlots: []NPCSlot{{Role: "merchant", Required: true, Count: IntRange{Lo: 1, Hi: 2}}}, ShopType: "general", MinTownSize: 1, MaxInstances: 2, Tags: []string{"shop"}},
		{ID: "saloon", Type: "shop", NPCSlots: []NPCSlot{{Role: "merchant", Required: false, Count: IntRange{Lo: 0, Hi: 1}}}, ShopType: "saloon", MinTownSize: 1, MaxInstances: 1, Tags: []string{"shop", "social"}},
	}
}

func defaultShopPools() map[string][]ShopItemEntry {
	return map[string][]ShopItemEntry{
		"general": {
			{ItemID: "ammo_revolver", Weight: 3, BasePrice: IntRange{Lo: 2, Hi: 4}, StockRange: IntRange{Lo: 10, Hi: 40}},
			{ItemID: "canteen", Weight: 2, BasePrice: IntRange{Lo: 3, Hi: 6}, StockRange: IntRange{Lo: 2, Hi: 8}},
			{ItemID: "bedroll", Weight: 1, BasePrice: IntRange{Lo: 8, Hi: 15}, StockRange: IntRange{Lo: 1, Hi: 4}},
			{ItemID: "dynamite", Weight: 1, BasePrice: IntRange{Lo: 12, Hi: 20}, StockRange: IntRange{Lo: 1, Hi: 3}},
		},
		"saloon": {
			{ItemID: "whiskey", Weight: 3, BasePrice: IntRange{Lo: 1, Hi: 3}, StockRange: IntRange{Lo: 10, Hi: 30}},
			{ItemID: "playing_cards", Weight: 1, BasePrice: IntRange{Lo: 2, Hi: 4}, StockRange: IntRange{Lo: 2, Hi: 6}},
		},
	}
}

func defaultWorldItemPool() map[string][]ShopItemEntry {
	return map[string][]ShopItemEntry{
		"town":  {{ItemID: "scrap_metal", Weight: 2}, {ItemID: "lost_coin", Weight: 1}},
		"mine":  {{ItemID: "raw_ore", Weight: 3}, {ItemID: "broken_pickaxe", Weight: 1}},
		"ruin":  {{ItemID: "rusted_revolver", Weight: 2}, {ItemID: "torn_wanted_poster", Weight: 1}},
		"ranch": {{ItemID: "horseshoe", Weight: 2}, {ItemID: "cattle_brand", Weight: 1}},
	}
}

func defaultLocationTemplates() []*LocationTemplate {
	return []*LocationTemplate{
		{
			ID: "frontier_town", Type: "town", SizeTier: "medium", NamePoolID: "frontier_towns",
			Buildings: []BuildingRef{
				{BuildingID: "sheriff_office", CountRange: IntRange{Lo: 1, Hi: 1}, Required: true},
				{BuildingID: "general_store", CountRange: IntRange{Lo: 1, Hi: 2}, Required: true},
				{BuildingID: "saloon", CountRange: IntRange{Lo: 0, Hi: 1}, Required: false},
			},
			BackgroundNPCCount:   IntRange{Lo: 3, Hi: 8},
			NotableNPCCount:      IntRange{Lo: 1, Hi: 3},
			ValidBiomes:          []string{"desert", "scrub", "plains"},
			DescriptionTemplates: []string{"{{name}} is a modest frontier town."},
			Tags:                 []string{"town"},
		},
		{
			ID: "mining_outpost", Type: "mine", SizeTier: "small", NamePoolID: "frontier_towns",
			Buildings:            []BuildingRef{{BuildingID: "general_store", CountRange: IntRange{Lo: 0, Hi: 1}, Required: false}},
			BackgroundNPCCount:   IntRange{Lo: 2, Hi: 5},
			NotableNPCCount:      IntRange{Lo: 0, Hi: 1},
			ValidBiomes:          []string{"mountain", "desert"},
			DescriptionTemplates: []string{"{{name}} is a dusty mining camp."},
			Tags:                 []string{"mine"},
		},
		{
			ID: "outlaw_ruin", Type: "ruin", SizeTier: "small", NamePoolID: "frontier_towns",
			Buildings:            []BuildingRef{},
			BackgroundNPCCount:   IntRange{Lo: 1, Hi: 1},
			NotableNPCCount:      IntRange{Lo: 0, Hi: 0},
			ValidBiomes:          []string{"desert", "scrub"},
			DescriptionTemplates: []string{"{{name}} lies in ruin, claimed by outlaws."},
			Tags:                 []string{"ruin", "abandoned"},
		},
	}
}
