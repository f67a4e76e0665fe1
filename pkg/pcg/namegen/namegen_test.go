package namegen

import (
	"testing"

	"ironfrontier/pkg/pcg/content"
	"ironfrontier/pkg/pcg/rng"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool() *content.NamePool {
	r := content.NewRegistry(nil)
	r.LoadDefaults()
	return r.NamePools["frontier"]
}

func testPlacePool() *content.PlaceNamePool {
	r := content.NewRegistry(nil)
	r.LoadDefaults()
	return r.PlaceNamePools["frontier_towns"]
}

func TestGeneratePersonDeterministic(t *testing.T) {
	pool := testPool()
	origins := []content.OriginWeight{{Origin: "anglo", Weight: 1}}

	a := GeneratePerson(rng.New(42), pool, origins, content.GenderMale, PersonOptions{})
	b := GeneratePerson(rng.New(42), pool, origins, content.GenderMale, PersonOptions{})
	assert.Equal(t, a, b)
}

func TestGeneratePersonFullNameOrdering(t *testing.T) {
	pool := testPool()
	origins := []content.OriginWeight{{Origin: "anglo", Weight: 1}}
	name := GeneratePerson(rng.New(7), pool, origins, content.GenderMale, PersonOptions{IncludeNickname: true, IncludeTitle: true})

	require.NotEmpty(t, name.Title)
	require.NotEmpty(t, name.Nickname)
	expected := name.Title + " " + name.FirstName + " \"" + name.Nickname + "\" " + name.LastName
	assert.Equal(t, expected, name.FullName)
}

func TestGeneratePersonWithoutOptionalFields(t *testing.T) {
	pool := testPool()
	origins := []content.OriginWeight{{Origin: "anglo", Weight: 1}}
	name := GeneratePerson(rng.New(7), pool, origins, content.GenderFemale, PersonOptions{})
	assert.Empty(t, name.Title)
	assert.Empty(t, name.Nickname)
	assert.Equal(t, name.FirstName+" "+name.LastName, name.FullName)
}

func TestGeneratePlaceResolvesAllPlaceholders(t *testing.T) {
	pool := testPlacePool()
	for seed := uint32(0); seed < 200; seed++ {
		name := GeneratePlace(rng.New(seed), pool, PlaceOptions{})
		assert.NotContains(t, name, "{{")
	}
}

func TestGeneratePlaceDeterministic(t *testing.T) {
	pool := testPlacePool()
	a := GeneratePlace(rng.New(42), pool, PlaceOptions{})
	b := GeneratePlace(rng.New(42), pool, PlaceOptions{})
	assert.Equal(t, a, b)
}

func TestGeneratePlaceMaxLengthFallsBackToLastAttempt(t *testing.T) {
	pool := testPlacePool()
	name := GeneratePlace(rng.New(3), pool, PlaceOptions{MaxLength: 1, MaxAttempts: 3})
	assert.NotEmpty(t, name)
}
