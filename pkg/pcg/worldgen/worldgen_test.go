package worldgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministic(t *testing.T) {
	g := New(nil)
	opts := Options{RegionCount: 3, LocationsPerRegion: [2]int{2, 5}}
	a := g.Generate(101, "Iron Frontier", opts)
	b := g.Generate(101, "Iron Frontier", opts)
	assert.Equal(t, a, b)
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	g := New(nil)
	opts := Options{RegionCount: 3, LocationsPerRegion: [2]int{2, 5}}
	a := g.Generate(101, "Iron Frontier", opts)
	b := g.Generate(202, "Iron Frontier", opts)
	assert.NotEqual(t, a.Regions, b.Regions)
}

func TestGenerateRegionCount(t *testing.T) {
	g := New(nil)
	w := g.Generate(1, "Test", Options{RegionCount: 4, LocationsPerRegion: [2]int{1, 1}})
	require.Len(t, w.Regions, 4)
	assert.Equal(t, 4, w.Manifest.RegionCount)
	for _, region := range w.Regions {
		assert.Len(t, region.Locations, 1)
	}
}

func TestGenerateLocationCountMatchesManifest(t *testing.T) {
	g := New(nil)
	w := g.Generate(5, "Test", Options{RegionCount: 2, LocationsPerRegion: [2]int{3, 3}})
	total := 0
	for _, region := range w.Regions {
		total += len(region.Locations)
	}
	assert.Equal(t, total, w.Manifest.LocationCount)
	assert.Equal(t, 6, total)
}

func TestGenerateFactionPresenceInBounds(t *testing.T) {
	g := New(nil)
	w := g.Generate(3, "Test", Options{RegionCount: 2, LocationsPerRegion: [2]int{1, 2}})
	for _, region := range w.Regions {
		require.NotEmpty(t, region.FactionPresence)
		for _, v := range region.FactionPresence {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestGenerateZeroRegionCountUsesDefaults(t *testing.T) {
	g := New(nil)
	w := g.Generate(1, "Test", Options{})
	assert.Equal(t, DefaultOptions().RegionCount, len(w.Regions))
	assert.Contains(t, w.Manifest.Warnings, "generated world with zero regions requested, falling back to defaults")
}

func TestGenerateNegativeRegionCountUsesDefaultsWithoutWarning(t *testing.T) {
	g := New(nil)
	w := g.Generate(1, "Test", Options{RegionCount: -1, LocationsPerRegion: [2]int{1, 1}})
	assert.Equal(t, DefaultOptions().RegionCount, len(w.Regions))
	assert.Empty(t, w.Manifest.Warnings)
}

func TestGenerateManifestSchemaVersion(t *testing.T) {
	g := New(nil)
	w := g.Generate(1, "Test", DefaultOptions())
	assert.Equal(t, "1.0", w.Manifest.SchemaVersion)
}

func TestGenerateRegionNamesNonEmpty(t *testing.T) {
	g := New(nil)
	w := g.Generate(1, "Test", Options{RegionCount: 5, LocationsPerRegion: [2]int{1, 1}})
	for _, region := range w.Regions {
		assert.NotEmpty(t, region.Name)
	}
}
