// matchplay.go — the head-to-head match state machine.
//
// In match play two sides (Ryder Cup style: singles, foursomes, or four-ball
// pairs) compete hole by hole. Whoever takes fewer strokes on a hole wins
// that hole; total strokes over the round are irrelevant. A match ends the
// moment one side leads by more holes than remain — "3&2" means the winner
// was 3 holes up with 2 still unplayed — or, if it goes the distance, on the
// final green as a one-hole win ("1 up") or a half.
package scoring

import "fmt"

// Side identifies one of a match's two sides.
type Side string

const (
	SideA    Side = "side_a"
	SideB    Side = "side_b"
	SideNone Side = "" // no winner (match open or halved)
)

// HoleResult is the outcome of a single hole within a match.
type HoleResult string

const (
	HoleSideA    HoleResult = "side_a"
	HoleSideB    HoleResult = "side_b"
	HoleTie      HoleResult = "tie"
	HoleUnplayed HoleResult = "unplayed"
)

// MatchStatus is the match state machine's current state. `completed` is
// terminal; the others can move freely between each other as holes are
// corrected, because status is re-derived from the raw history every time.
type MatchStatus string

const (
	MatchNotStarted MatchStatus = "not_started"
	MatchInProgress MatchStatus = "in_progress"
	MatchDormie     MatchStatus = "dormie" // lead equals holes remaining: can't lose, hasn't won
	MatchCompleted  MatchStatus = "completed"
)

// MatchHolePair is the raw input for one hole: each side's stroke count, or
// nil where a side has no recorded score yet.
type MatchHolePair struct {
	HoleNumber int
	SideA      *int
	SideB      *int
}

// MatchHoleResult is a scored hole: the raw pair plus the derived outcome.
type MatchHoleResult struct {
	HoleNumber int        `json:"hole_number"`
	SideA      *int       `json:"side_a_score"`
	SideB      *int       `json:"side_b_score"`
	Result     HoleResult `json:"result"`
}

// MatchState is the fully derived state of a match: per-hole results,
// running lead, status, display text, and point allocation.
type MatchState struct {
	Holes          []MatchHoleResult `json:"holes"`
	HolesPlayed    int               `json:"holes_played"`
	HolesRemaining int               `json:"holes_remaining"`
	Lead           int               `json:"lead"` // positive = side A ahead, negative = side B
	Status         MatchStatus       `json:"status"`
	StatusText     string            `json:"status_text"`
	Margin         string            `json:"margin"` // "3&2", "1 up", "halved"; empty while open
	Winner         Side              `json:"winner"`
	PointsA        float64           `json:"points_side_a"`
	PointsB        float64           `json:"points_side_b"`
}

// ComputeMatch derives the complete match state from the raw hole history.
//
// This is a full replay, never an incremental update: recording hole 14,
// correcting hole 3, and deleting hole 9 all go through the exact same path
// of "recompute everything from the pairs that exist now". That makes score
// corrections trivially safe — there is no cached status to get out of sync.
//
// A hole only counts when BOTH sides have a valid (positive) score; partial
// or invalid pairs are marked unplayed and excluded, so the function never
// fails on incomplete input — it just reports the match as far along as the
// valid pairs say it is.
//
// Note on closeout margins: the "X&Y" text is computed from the CURRENT
// history. If more holes are entered after a match is mathematically over
// (groups often play on for fun), the margin and holes-remaining shift
// accordingly rather than freezing at the moment of decision. That is the
// platform's established behavior — previously implemented twice with
// subtly different timing, now implemented exactly once, here.
func ComputeMatch(totalHoles int, pairs []MatchHolePair) MatchState {
	state := MatchState{
		Holes:  make([]MatchHoleResult, 0, len(pairs)),
		Status: MatchNotStarted,
	}

	winsA, winsB := 0, 0
	for _, pair := range pairs {
		hole := MatchHoleResult{
			HoleNumber: pair.HoleNumber,
			SideA:      pair.SideA,
			SideB:      pair.SideB,
			Result:     HoleUnplayed,
		}
		if validStroke(pair.SideA) && validStroke(pair.SideB) {
			switch {
			case *pair.SideA < *pair.SideB:
				hole.Result = HoleSideA
				winsA++
			case *pair.SideB < *pair.SideA:
				hole.Result = HoleSideB
				winsB++
			default:
				hole.Result = HoleTie
			}
			state.HolesPlayed++
		}
		state.Holes = append(state.Holes, hole)
	}

	state.Lead = winsA - winsB
	state.HolesRemaining = totalHoles - state.HolesPlayed
	if state.HolesRemaining < 0 {
		state.HolesRemaining = 0
	}

	lead := abs(state.Lead)

	// Status derivation, in strict priority order.
	switch {
	case state.HolesPlayed == 0:
		state.Status = MatchNotStarted
		state.StatusText = "Not Started"

	case lead > state.HolesRemaining:
		// Won: either closed out before the last hole (more holes up than
		// holes left to play) or decided on the final green.
		state.Status = MatchCompleted
		state.Winner = leader(state.Lead)
		state.Margin = winMargin(lead, state.HolesRemaining)
		state.StatusText = fmt.Sprintf("%s wins %s", sideLabel(state.Winner), state.Margin)
		state.PointsA, state.PointsB = pointsFor(state.Winner)

	case state.HolesRemaining == 0:
		// Every hole played and the lead is zero (any nonzero lead with no
		// holes remaining is a win, handled above): the match is halved.
		state.Status = MatchCompleted
		state.Margin = "halved"
		state.StatusText = "Match halved"
		state.PointsA, state.PointsB = 0.5, 0.5

	case state.Lead != 0 && lead == state.HolesRemaining:
		// Dormie: the leader cannot lose outright but has not clinched.
		// No points yet — the trailing side can still halve the match.
		state.Status = MatchDormie
		state.StatusText = fmt.Sprintf("%s %d up (dormie)", sideLabel(leader(state.Lead)), lead)

	default:
		state.Status = MatchInProgress
		if state.Lead == 0 {
			state.StatusText = "All Square"
		} else {
			state.StatusText = fmt.Sprintf("%s %d up", sideLabel(leader(state.Lead)), lead)
		}
	}

	return state
}

// TournamentPoints sums each side's match points across a set of matches.
// The caller compares the result against a clinch target (e.g. first team to
// 14.5) — that threshold is a read-only comparison, not engine state.
func TournamentPoints(states []MatchState) (sideA, sideB float64) {
	for _, s := range states {
		sideA += s.PointsA
		sideB += s.PointsB
	}
	return sideA, sideB
}

// SideStrokes totals each side's raw strokes across a match's holes,
// counting every valid score independently per side. Tournament stroke
// standings include match-play rounds by raw strokes regardless of who won
// the matches, and that sum must not drop a side's score just because the
// opponent's is missing on some hole.
func SideStrokes(pairs []MatchHolePair) (sideA, sideB int) {
	for _, p := range pairs {
		if validStroke(p.SideA) {
			sideA += *p.SideA
		}
		if validStroke(p.SideB) {
			sideB += *p.SideB
		}
	}
	return sideA, sideB
}

// winMargin renders a winner's margin. A one-hole win on the final green is
// "1 up", never "1&0"; any larger lead with no holes left stays "X&0" (a
// match conceded or closed out exactly at the end, e.g. "2&0").
func winMargin(lead, remaining int) string {
	if remaining == 0 && lead == 1 {
		return "1 up"
	}
	return fmt.Sprintf("%d&%d", lead, remaining)
}

func validStroke(s *int) bool {
	return s != nil && *s > 0
}

func leader(lead int) Side {
	switch {
	case lead > 0:
		return SideA
	case lead < 0:
		return SideB
	default:
		return SideNone
	}
}

func pointsFor(winner Side) (a, b float64) {
	switch winner {
	case SideA:
		return 1, 0
	case SideB:
		return 0, 1
	default:
		return 0, 0
	}
}

func sideLabel(s Side) string {
	switch s {
	case SideA:
		return "Side A"
	case SideB:
		return "Side B"
	default:
		return ""
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
