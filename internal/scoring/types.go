// Package scoring is the pure computation core of the Fairway Cup API.
// It converts raw per-hole stroke counts into gross/net totals, Stableford
// points, team totals, ranked leaderboards, and match-play results.
//
// Everything in this package is a stateless function over explicit inputs:
// no database handles, no HTTP types, no package-level state. The handlers
// load whatever rows they need, call into this package, and persist the
// results. That keeps every scoring rule independently testable and gives
// the REST handlers and the websocket broadcaster one shared source of truth
// for the rules (rather than each computing scores its own way).
//
// Concurrency: because every function recomputes its output from the full
// raw input, calls are idempotent and order-insensitive across different
// players or matches. Callers must still serialize concurrent writes to the
// SAME player's scores or the SAME match (the handlers do this with one
// database transaction per submission).
package scoring

// Format describes how a round is scored. The values mirror the
// scoring_format enum stored on the rounds table.
type Format string

const (
	FormatStroke     Format = "stroke"     // Fewest total strokes wins
	FormatStableford Format = "stableford" // Points per hole based on net score vs par
	FormatBestBall   Format = "best_ball"  // Team format: count only the best score per hole
	FormatScramble   Format = "scramble"   // Team format: one shared ball, one score per hole
	FormatMatchPlay  Format = "match_play" // Head-to-head: win/loss per hole, not total strokes
)

// Hole is the per-hole course data the engine needs: par and the stroke
// index used for handicap allocation. Yardage is informational only and
// deliberately not part of the engine's input.
type Hole struct {
	Number      int // 1..N ordinal position in the round
	Par         int // Expected strokes (typically 3, 4, or 5)
	StrokeIndex int // Difficulty rank 1..N, 1 = hardest; 0 = not assigned
}

// HoleScore is one entry in a player's (or scramble team's) raw score array.
// It is an explicit sum type: either a recorded stroke count or "unplayed".
// The original client code overloaded 0/null/undefined for conceded holes,
// which made "no score" and "zero strokes" indistinguishable — modeling the
// two states explicitly removes that ambiguity.
type HoleScore struct {
	Strokes int
	Played  bool
}

// Played returns a recorded hole score.
func Played(strokes int) HoleScore {
	return HoleScore{Strokes: strokes, Played: true}
}

// Unplayed returns the "no score" value: the hole was skipped, conceded,
// or simply not entered yet.
func Unplayed() HoleScore {
	return HoleScore{}
}

// Valid reports whether this entry counts toward aggregation. A hole counts
// only when it was played AND the stroke count is a positive number —
// negative or zero entries are domain-invalid and are excluded rather than
// treated as an error.
func (s HoleScore) Valid() bool {
	return s.Played && s.Strokes > 0
}

// at returns the raw entry for hole index i, treating entries beyond the end
// of the array as unplayed. Submitted arrays may be shorter than the round's
// hole list (a player who stopped after 9) or longer (stale client data) —
// both are processed positionally, never rejected.
func at(raw []HoleScore, i int) HoleScore {
	if i < 0 || i >= len(raw) {
		return Unplayed()
	}
	return raw[i]
}

// allocAt reads a per-hole handicap allocation, tolerating a nil or short
// slice (no strokes given).
func allocAt(allocation []int, i int) int {
	if i < 0 || i >= len(allocation) {
		return 0
	}
	return allocation[i]
}
