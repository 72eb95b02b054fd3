// handicap.go — distributing a player's handicap strokes across holes.
//
// Golf handicaps let players of different abilities compete fairly: a player
// with a course handicap of 10 receives 10 "free" strokes per round. WHICH
// holes those strokes apply to is decided by each hole's stroke index — a
// 1..N difficulty ranking printed on every scorecard, where index 1 is the
// hardest hole and therefore the first to receive a stroke.
package scoring

import (
	"math"
	"sort"
)

// PlayingHandicap converts a fractional handicap index (e.g. 12.4) into the
// whole number of strokes the player receives for a round. The index is
// rounded half-away-from-zero, matching how course handicaps are rounded for
// posting, and never goes below zero — plus handicaps are not supported.
func PlayingHandicap(index float64) int {
	if math.IsNaN(index) || math.IsInf(index, 0) {
		return 0
	}
	h := int(math.Round(index))
	if h < 0 {
		return 0
	}
	return h
}

// Allocate distributes `strokes` handicap strokes across the round's holes
// and returns a slice the same length as `holes` where each entry is the
// number of extra strokes the player receives on that hole.
//
// Every hole receives floor(strokes / N); the remaining (strokes mod N)
// strokes go one each to the holes with the LOWEST stroke-index values,
// i.e. the hardest holes. Ties in stroke index are broken by hole order,
// and a hole with no stroke index assigned (0) falls back to its ordinal
// position as a surrogate rank. Handicaps larger than the hole count work
// naturally: H=36 on 18 holes gives every hole 2 strokes.
//
// Property relied on by callers and tests: the returned entries always sum
// to exactly `strokes`.
func Allocate(strokes int, holes []Hole) []int {
	allocation := make([]int, len(holes))
	if strokes <= 0 || len(holes) == 0 {
		return allocation
	}

	n := len(holes)
	base := strokes / n
	remainder := strokes % n

	for i := range allocation {
		allocation[i] = base
	}

	if remainder == 0 {
		return allocation
	}

	// Rank hole positions hardest-first. sort.SliceStable keeps equal
	// stroke indexes in hole order, which is the documented tie-break.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return effectiveIndex(holes[order[a]]) < effectiveIndex(holes[order[b]])
	})

	// The `remainder` hardest holes each get one extra stroke.
	for _, i := range order[:remainder] {
		allocation[i]++
	}

	return allocation
}

// effectiveIndex is the hole's stroke index, or its ordinal position when no
// index was assigned (some courses don't publish one for every tee).
func effectiveIndex(h Hole) int {
	if h.StrokeIndex > 0 {
		return h.StrokeIndex
	}
	return h.Number
}
