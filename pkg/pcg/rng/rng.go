// Package rng implements the deterministic seeded PRNG that underlies every
// other generation component. It has the numeric behavior of Mulberry32 and
// exposes the derived combinators the generators are built on.
package rng

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RNG is a single Mulberry32 stream. Zero value is not usable; construct
// with New or Child.
type RNG struct {
	state uint32
}

// New creates an RNG from a 32-bit seed.
func New(seed uint32) *RNG {
	return &RNG{state: seed}
}

// Next advances the stream one step and returns a float64 in [0, 1).
func (r *RNG) Next() float64 {
	r.state += 0x6D2B79F5
	z := r.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	z ^= z >> 14
	return float64(z) / 4294967296.0
}

// Int returns an integer in [lo, hi] inclusive.
func (r *RNG) Int(lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("rng: Int range inverted (%d, %d)", lo, hi))
	}
	span := hi - lo + 1
	return lo + int(r.Next()*float64(span))
}

// Float returns a float64 in [lo, hi).
func (r *RNG) Float(lo, hi float64) float64 {
	return lo + r.Next()*(hi-lo)
}

// Bool returns true with probability p.
func (r *RNG) Bool(p float64) bool {
	return r.Next() < p
}

// Pick returns a uniformly random element of seq. Panics on an empty seq —
// a programming error per the contract.
func Pick[T any](r *RNG, seq []T) T {
	if len(seq) == 0 {
		panic("rng: Pick from empty sequence")
	}
	return seq[r.Int(0, len(seq)-1)]
}

// PickN draws n distinct elements from seq without replacement, consuming
// exactly n floats. Panics if n > len(seq).
func PickN[T any](r *RNG, seq []T, n int) []T {
	if n > len(seq) {
		panic(fmt.Sprintf("rng: PickN n=%d exceeds len=%d", n, len(seq)))
	}
	pool := make([]T, len(seq))
	copy(pool, seq)
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		idx := r.Int(0, len(pool)-1-i)
		out = append(out, pool[idx])
		pool[idx] = pool[len(pool)-1-i]
	}
	return out
}

// WeightedPick selects an item proportional to its weight. Panics if items
// and weights lengths mismatch or the sequence is empty.
func WeightedPick[T any](r *RNG, items []T, weights []float64) T {
	if len(items) == 0 || len(items) != len(weights) {
		panic("rng: WeightedPick requires non-empty, equal-length items and weights")
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return Pick(r, items)
	}
	roll := r.Next() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if roll <= acc {
			return items[i]
		}
	}
	return items[len(items)-1]
}

// Shuffle performs an in-place Fisher-Yates shuffle.
func Shuffle[T any](r *RNG, seq []T) {
	for i := len(seq) - 1; i > 0; i-- {
		j := r.Int(0, i)
		seq[i], seq[j] = seq[j], seq[i]
	}
}

var diceExpr = regexp.MustCompile(`^(\d+)d(\d+)([+-]\d+)?$`)

// Roll parses and evaluates "NdM±K" dice notation, consuming N floats.
// Malformed notation panics — a programming error.
func (r *RNG) Roll(notation string) int {
	m := diceExpr.FindStringSubmatch(strings.TrimSpace(notation))
	if m == nil {
		panic(fmt.Sprintf("rng: malformed dice notation %q", notation))
	}
	count, _ := strconv.Atoi(m[1])
	sides, _ := strconv.Atoi(m[2])
	modifier := 0
	if m[3] != "" {
		modifier, _ = strconv.Atoi(m[3])
	}
	total := 0
	for i := 0; i < count; i++ {
		total += r.Int(1, sides)
	}
	return total + modifier
}

const uuidHex = "0123456789abcdef"

// UUID draws enough nibbles from the stream to fill a version-4-shaped
// 128-bit pattern. Not cryptographically meaningful; purely a deterministic
// identifier combinator.
func (r *RNG) UUID() string {
	var b strings.Builder
	layout := []int{8, 4, 4, 4, 12}
	for li, n := range layout {
		if li > 0 {
			b.WriteByte('-')
		}
		for i := 0; i < n; i++ {
			if li == 2 && i == 0 {
				b.WriteByte('4')
				continue
			}
			nibble := int(r.Next() * 16)
			if nibble > 15 {
				nibble = 15
			}
			b.WriteByte(uuidHex[nibble])
		}
	}
	return b.String()
}

// HashString folds each byte of s into a 32-bit accumulator via the
// polynomial hash h = (h << 5) - h + c, finalized to unsigned.
func HashString(s string) uint32 {
	var h int32
	for _, c := range []byte(s) {
		h = (h << 5) - h + int32(c)
	}
	return uint32(h)
}

// CombineSeeds folds seed integers with the same accumulator used by
// HashString.
func CombineSeeds(seeds ...uint32) uint32 {
	var h int32
	for _, s := range seeds {
		h = (h << 5) - h + int32(s)
	}
	return uint32(h)
}

// Child derives a sub-RNG seeded from this RNG's current seed and a label,
// the primitive that lets any sub-entity regenerate from parent seed plus
// its own label alone.
func (r *RNG) Child(label string) *RNG {
	return New(CombineSeeds(r.state, HashString(label)))
}

// Seed returns the RNG's current internal seed, for hierarchy bookkeeping
// (e.g. recording the seed a generated entity was produced from).
func (r *RNG) Seed() uint32 {
	return r.state
}
