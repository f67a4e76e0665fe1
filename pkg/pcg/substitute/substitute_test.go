package substitute

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandResolvesKnownVariables(t *testing.T) {
	out := Expand("Howdy, {{name}}, welcome to {{location}}.", map[string]string{
		"name": "Cole", "location": "Dustbowl",
	})
	assert.Equal(t, "Howdy, Cole, welcome to Dustbowl.", out)
}

func TestExpandLeavesUnresolvedPlaceholdersLiteral(t *testing.T) {
	out := Expand("Find {{target}} near {{location}}.", map[string]string{"location": "Dustbowl"})
	assert.Equal(t, "Find {{target}} near Dustbowl.", out)
}

func TestExpandIsNonRecursive(t *testing.T) {
	out := Expand("{{a}}", map[string]string{"a": "{{b}}", "b": "never"})
	assert.Equal(t, "{{b}}", out)
}

func TestExpandRepeatedPlaceholderResolvesIndependently(t *testing.T) {
	out := Expand("{{letter}}{{letter}}", map[string]string{"letter": "Q"})
	assert.Equal(t, "QQ", out)
}

func TestContextAccumulatesBindings(t *testing.T) {
	ctx := NewContext().Set("giver", "Sheriff Garrett").Set("location", "Dustbowl")
	assert.Equal(t, "Sheriff Garrett sends you to Dustbowl.", ctx.Expand("{{giver}} sends you to {{location}}."))
}
