// Package namegen produces person names (cultural origin + gender, with
// optional nickname/title) and place names (pattern + pool recombination).
package namegen

import (
	"fmt"
	"strings"

	"ironfrontier/pkg/pcg/content"
	"ironfrontier/pkg/pcg/rng"
)

// PersonName holds the structured output of person name generation.
type PersonName struct {
	FirstName string
	LastName  string
	Nickname  string
	Title     string
	FullName  string
}

// PersonOptions controls optional structured fields.
type PersonOptions struct {
	IncludeNickname bool
	IncludeTitle    bool
}

// GeneratePerson performs weighted origin selection then draws first and
// last names from that origin x gender, surfacing nickname/title as
// structured fields when requested.
func GeneratePerson(r *rng.RNG, pool *content.NamePool, origins []content.OriginWeight, gender content.Gender, opts PersonOptions) PersonName {
	originIDs := make([]string, len(origins))
	weights := make([]float64, len(origins))
	for i, o := range origins {
		originIDs[i] = o.Origin
		weights[i] = o.Weight
	}
	origin := rng.WeightedPick(r, originIDs, weights)

	genderPool, ok := pool.FirstNames[origin]
	if !ok {
		panic(fmt.Sprintf("namegen: origin %q not present in pool %q", origin, pool.ID))
	}
	firstNames := genderPool[gender]
	if len(firstNames) == 0 {
		firstNames = genderPool[content.GenderNeutral]
	}

	name := PersonName{
		FirstName: rng.Pick(r, firstNames),
		LastName:  rng.Pick(r, pool.Surnames[origin]),
	}

	if opts.IncludeTitle && len(pool.Titles) > 0 {
		name.Title = rng.Pick(r, pool.Titles)
	}
	if opts.IncludeNickname && len(pool.Nicknames) > 0 {
		name.Nickname = rng.Pick(r, pool.Nicknames)
	}

	name.FullName = buildFullName(name)
	return name
}

// buildFullName concatenates present parts in canonical order: optional
// title, first, optional nickname in quotes, last.
func buildFullName(n PersonName) string {
	var parts []string
	if n.Title != "" {
		parts = append(parts, n.Title)
	}
	parts = append(parts, n.FirstName)
	if n.Nickname != "" {
		parts = append(parts, fmt.Sprintf("%q", n.Nickname))
	}
	parts = append(parts, n.LastName)
	return strings.Join(parts, " ")
}

const placeLetterAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ" // excludes I, O: visually ambiguous with 1, 0

// PlaceOptions constrains pattern selection and enforces a maximum length.
type PlaceOptions struct {
	PreferredPlaceholders []string // if non-empty, only patterns containing at least one of these qualify
	ExcludedPlaceholders  []string // patterns containing any of these are disqualified
	MaxLength             int      // 0 = unconstrained
	MaxAttempts           int      // retry budget for the max-length rejection loop; 0 = 1 attempt
}

// GeneratePlace draws a pattern uniformly from the pool (after optional
// pre-filtering) and resolves its placeholders.
func GeneratePlace(r *rng.RNG, pool *content.PlaceNamePool, opts PlaceOptions) string {
	patterns := filterPatterns(pool.Patterns, opts)
	if len(patterns) == 0 {
		patterns = pool.Patterns
	}

	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var last string
	for i := 0; i < attempts; i++ {
		pattern := rng.Pick(r, patterns)
		last = resolvePattern(r, pattern, pool)
		if opts.MaxLength <= 0 || len(last) <= opts.MaxLength {
			return last
		}
	}
	// Retry budget exhausted: return the last-generated name regardless.
	return last
}

func filterPatterns(patterns []string, opts PlaceOptions) []string {
	if len(opts.PreferredPlaceholders) == 0 && len(opts.ExcludedPlaceholders) == 0 {
		return patterns
	}
	var out []string
	for _, p := range patterns {
		if containsAnyPlaceholder(p, opts.ExcludedPlaceholders) {
			continue
		}
		if len(opts.PreferredPlaceholders) > 0 && !containsAnyPlaceholder(p, opts.PreferredPlaceholders) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func containsAnyPlaceholder(pattern string, placeholders []string) bool {
	for _, ph := range placeholders {
		if strings.Contains(pattern, "{{"+ph+"}}") {
			return true
		}
	}
	return false
}

// resolvePattern fills each placeholder occurrence by drawing independently
// from the pool's matching list; a repeated {{letter}} resolves a second
// time, independently.
func resolvePattern(r *rng.RNG, pattern string, pool *content.PlaceNamePool) string {
	var b strings.Builder
	i := 0
	for i < len(pattern) {
		start := strings.Index(pattern[i:], "{{")
		if start == -1 {
			b.WriteString(pattern[i:])
			break
		}
		start += i
		b.WriteString(pattern[i:start])

		end := strings.Index(pattern[start:], "}}")
		if end == -1 {
			b.WriteString(pattern[start:])
			break
		}
		end += start

		placeholder := pattern[start+2 : end]
		b.WriteString(resolvePlaceholder(r, placeholder, pool))
		i = end + 2
	}
	return b.String()
}

func resolvePlaceholder(r *rng.RNG, placeholder string, pool *content.PlaceNamePool) string {
	switch placeholder {
	case "adj":
		return rng.Pick(r, pool.Adjectives)
	case "noun":
		return rng.Pick(r, pool.Nouns)
	case "suffix":
		return rng.Pick(r, pool.Suffixes)
	case "possessive":
		return rng.Pick(r, pool.Possessives)
	case "letter":
		idx := r.Int(0, len(placeLetterAlphabet)-1)
		return string(placeLetterAlphabet[idx])
	case "number":
		return fmt.Sprintf("%d", r.Int(1, 99))
	default:
		return "{{" + placeholder + "}}"
	}
}
