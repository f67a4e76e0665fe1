// Package worldgen implements the World Generator (spec §4.10): the
// highest-level driver that derives a master RNG from a world seed and
// name, produces regions sequentially, places each region's locations on a
// hex spiral, and emits a summary manifest.
package worldgen

import (
	"fmt"
	"math"

	"ironfrontier/pkg/pcg/entities"
	"ironfrontier/pkg/pcg/rng"

	"github.com/sirupsen/logrus"
)

const schemaVersion = "1.0"

var locationTypes = []string{"town", "city", "mine", "ranch", "outpost", "camp", "ruin"}

var factions = []string{"law", "outlaws", "railroad", "natives", "ranchers"}

// Options configures one generateWorld call.
type Options struct {
	RegionCount        int
	LocationsPerRegion [2]int // inclusive [min, max]
}

// DefaultOptions mirrors the defaults a caller gets when it supplies none.
func DefaultOptions() Options {
	return Options{RegionCount: 3, LocationsPerRegion: [2]int{3, 7}}
}

// Generator produces whole worlds.
type Generator struct {
	logger *logrus.Logger
}

// New returns a world generator.
func New(logger *logrus.Logger) *Generator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Generator{logger: logger}
}

// Generate produces a full world from seed and name, sequentially building
// regionCount regions and emitting a manifest.
func (g *Generator) Generate(seed uint32, worldName string, opts Options) entities.GeneratedWorld {
	master := rng.New(rng.CombineSeeds(seed, rng.HashString(worldName)))

	requestedRegionCount := opts.RegionCount
	if opts.RegionCount <= 0 {
		opts = DefaultOptions()
	}

	var warnings []string
	if requestedRegionCount == 0 {
		warnings = append(warnings, "generated world with zero regions requested, falling back to defaults")
	}
	regions := make([]entities.Region, 0, opts.RegionCount)
	locationCount := 0

	for i := 0; i < opts.RegionCount; i++ {
		regionSeed := uint32(master.Int(0, 1<<31-1))
		regionRNG := rng.New(regionSeed)
		regionID := fmt.Sprintf("region_%d_%08x", i, regionSeed)
		regionName := generateRegionName(regionRNG, i)

		lo, hi := opts.LocationsPerRegion[0], opts.LocationsPerRegion[1]
		if hi < lo {
			lo, hi = hi, lo
		}
		count := lo
		if hi > lo {
			count = regionRNG.Int(lo, hi)
		}

		locations := make([]entities.RegionLocation, 0, count)
		for j := 0; j < count; j++ {
			locType := rng.Pick(regionRNG, locationTypes)
			locSeed := uint32(regionRNG.Int(0, 1<<31-1))
			locID := fmt.Sprintf("%s_%s_%d_%08x", regionID, locType, j, locSeed)
			locations = append(locations, entities.RegionLocation{
				ID:       locID,
				Type:     locType,
				Position: spiralPosition(j, count),
			})
		}
		locationCount += len(locations)

		presence := make(map[string]float64, len(factions))
		for _, f := range factions {
			presence[f] = regionRNG.Next()
		}

		regions = append(regions, entities.Region{
			ID:              regionID,
			Seed:            regionSeed,
			Name:            regionName,
			Locations:       locations,
			FactionPresence: presence,
		})
	}

	return entities.GeneratedWorld{
		Seed: seed,
		Name: worldName,
		Regions: regions,
		Manifest: entities.GenerationManifest{
			SchemaVersion: schemaVersion,
			RegionCount:   len(regions),
			LocationCount: locationCount,
			Warnings:      warnings,
		},
	}
}

// spiralPosition mirrors the orchestrator's hex-spiral placement formula so
// that region-level location layout follows the same algorithm as
// location-level NPC/item layout.
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

var regionAdjectives = []string{"Dusty", "Lonesome", "Broken", "Forsaken", "Red", "Silver", "Iron", "Copper", "Desolate", "Gilded"}
var regionNouns = []string{"Basin", "Mesa", "Flats", "Gulch", "Canyon", "Ridge", "Territory", "Valley", "Plains", "Badlands"}

// generateRegionName recombines a fixed adjective/noun vocabulary; index i
// is unused beyond documenting call order and has no bearing on the draw.
func generateRegionName(r *rng.RNG, _ int) string {
	return rng.Pick(r, regionAdjectives) + " " + rng.Pick(r, regionNouns)
}
