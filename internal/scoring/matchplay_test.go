package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pair(hole, a, b int) MatchHolePair {
	return MatchHolePair{HoleNumber: hole, SideA: &a, SideB: &b}
}

func TestComputeMatchEmpty(t *testing.T) {
	state := ComputeMatch(18, nil)

	assert.Equal(t, MatchNotStarted, state.Status)
	assert.Equal(t, 0, state.HolesPlayed)
	assert.Equal(t, 18, state.HolesRemaining)
	assert.Zero(t, state.PointsA+state.PointsB)
}

func TestComputeMatchThreeHoleScenario(t *testing.T) {
	// A 3-hole match: A wins hole 1, halves hole 2, wins hole 3.
	h1 := pair(1, 4, 5)
	h2 := pair(2, 4, 4)
	h3 := pair(3, 3, 5)

	t.Run("after hole 1: A up 1 with 2 to play", func(t *testing.T) {
		state := ComputeMatch(3, []MatchHolePair{h1})
		assert.Equal(t, MatchInProgress, state.Status)
		assert.Equal(t, 1, state.Lead)
		assert.Equal(t, 2, state.HolesRemaining)
		assert.Equal(t, "Side A 1 up", state.StatusText)
	})

	t.Run("after hole 2: dormie", func(t *testing.T) {
		state := ComputeMatch(3, []MatchHolePair{h1, h2})
		assert.Equal(t, MatchDormie, state.Status)
		assert.Equal(t, 1, state.Lead)
		assert.Equal(t, 1, state.HolesRemaining)
		assert.Zero(t, state.PointsA, "dormie awards no points yet")
		assert.Contains(t, state.StatusText, "1 up")
	})

	t.Run("after hole 3: A closes out 2&0", func(t *testing.T) {
		state := ComputeMatch(3, []MatchHolePair{h1, h2, h3})
		assert.Equal(t, MatchCompleted, state.Status)
		assert.Equal(t, SideA, state.Winner)
		assert.Equal(t, "2&0", state.Margin)
		assert.Equal(t, 1.0, state.PointsA)
		assert.Equal(t, 0.0, state.PointsB)
	})
}

func TestComputeMatchDormieProgression(t *testing.T) {
	// 18-hole match, results A, A, A, tie, B, B: lead swings from 3 to 1.
	pairs := []MatchHolePair{
		pair(1, 4, 5), pair(2, 4, 5), pair(3, 4, 5), // A up 3
		pair(4, 4, 4),               // halved
		pair(5, 5, 4), pair(6, 5, 4), // B claws two back
	}

	// Walk the match hole by hole and track the status transitions.
	var statuses []MatchStatus
	for i := 1; i <= len(pairs); i++ {
		statuses = append(statuses, ComputeMatch(18, pairs[:i]).Status)
	}
	assert.Equal(t, []MatchStatus{
		MatchInProgress, MatchInProgress, MatchInProgress,
		MatchInProgress, MatchInProgress, MatchInProgress,
	}, statuses, "lead never reaches holes-remaining in the first six holes")

	// Fast-forward: A wins holes 7..14, so after 14 A leads 9 with 4 left.
	for h := 7; h <= 14; h++ {
		pairs = append(pairs, pair(h, 4, 5))
	}
	state := ComputeMatch(18, pairs)
	assert.Equal(t, MatchCompleted, state.Status)
	assert.Equal(t, "9&4", state.Margin)
}

func TestComputeMatchStatusBoundaries(t *testing.T) {
	// Build an 18-hole match where A wins the first n holes; check the
	// exact transition points: dormie when lead == remaining, completed
	// when lead > remaining.
	wins := func(n int) []MatchHolePair {
		pairs := make([]MatchHolePair, n)
		for i := range pairs {
			pairs[i] = pair(i+1, 4, 5)
		}
		return pairs
	}

	t.Run("8 up after 8 is in progress", func(t *testing.T) {
		state := ComputeMatch(18, wins(8))
		assert.Equal(t, MatchInProgress, state.Status) // lead 8 < remaining 10
	})

	t.Run("9 up after 9 is dormie", func(t *testing.T) {
		state := ComputeMatch(18, wins(9))
		assert.Equal(t, MatchDormie, state.Status) // lead 9 == remaining 9
	})

	t.Run("10 up after 10 is a 10&8 closeout", func(t *testing.T) {
		state := ComputeMatch(18, wins(10))
		assert.Equal(t, MatchCompleted, state.Status)
		assert.Equal(t, "10&8", state.Margin)
	})
}

func TestComputeMatchLastHoleOutcomes(t *testing.T) {
	// Two-hole match going the distance.
	t.Run("halved match splits the point", func(t *testing.T) {
		state := ComputeMatch(2, []MatchHolePair{pair(1, 4, 5), pair(2, 5, 4)})
		assert.Equal(t, MatchCompleted, state.Status)
		assert.Equal(t, SideNone, state.Winner)
		assert.Equal(t, "halved", state.Margin)
		assert.Equal(t, 0.5, state.PointsA)
		assert.Equal(t, 0.5, state.PointsB)
	})

	t.Run("won on the last green is 1 up", func(t *testing.T) {
		state := ComputeMatch(2, []MatchHolePair{pair(1, 4, 4), pair(2, 3, 4)})
		assert.Equal(t, MatchCompleted, state.Status)
		assert.Equal(t, SideA, state.Winner)
		assert.Equal(t, "1 up", state.Margin) // never "1&0"
		assert.Equal(t, "Side A wins 1 up", state.StatusText)
		assert.Equal(t, 1.0, state.PointsA)
	})

	t.Run("two up at the end stays an ampersand margin", func(t *testing.T) {
		state := ComputeMatch(2, []MatchHolePair{pair(1, 4, 5), pair(2, 3, 4)})
		assert.Equal(t, MatchCompleted, state.Status)
		assert.Equal(t, "2&0", state.Margin)
	})
}

func TestCompletedMatchPointsAlwaysSumToOne(t *testing.T) {
	scenarios := [][]MatchHolePair{
		{pair(1, 4, 5), pair(2, 4, 5)},               // A closes out a 2-hole match
		{pair(1, 5, 4), pair(2, 5, 4)},               // B closes out
		{pair(1, 4, 5), pair(2, 5, 4)},               // halved
		{pair(1, 4, 4), pair(2, 4, 5)},               // A wins 1 up
	}
	for _, pairs := range scenarios {
		state := ComputeMatch(2, pairs)
		require.Equal(t, MatchCompleted, state.Status)
		assert.Equal(t, 1.0, state.PointsA+state.PointsB)
	}
}

func TestComputeMatchInvalidPairsDegrade(t *testing.T) {
	five := 5
	zero := 0
	neg := -3

	pairs := []MatchHolePair{
		{HoleNumber: 1, SideA: &five},              // B missing: unplayed
		{HoleNumber: 2, SideA: &zero, SideB: &five}, // zero is not a score
		{HoleNumber: 3, SideA: &neg, SideB: &five},  // negative is not a score
		{HoleNumber: 4},                             // nothing recorded
	}

	state := ComputeMatch(18, pairs)

	assert.Equal(t, MatchNotStarted, state.Status, "no valid pairs means the match never started")
	assert.Equal(t, 0, state.HolesPlayed)
	require.Len(t, state.Holes, 4)
	for _, h := range state.Holes {
		assert.Equal(t, HoleUnplayed, h.Result)
	}

	// One valid pair flips the match to in-progress; the garbage stays out.
	pairs = append(pairs, pair(5, 4, 5))
	state = ComputeMatch(18, pairs)
	assert.Equal(t, MatchInProgress, state.Status)
	assert.Equal(t, 1, state.HolesPlayed)
}

func TestComputeMatchMarginRecomputedFromFullHistory(t *testing.T) {
	// A is 3 up after 5 of 7 — that's a 3&2 closeout.
	pairs := []MatchHolePair{
		pair(1, 4, 5), pair(2, 4, 5), pair(3, 4, 5), pair(4, 4, 4), pair(5, 4, 4),
	}
	state := ComputeMatch(7, pairs)
	require.Equal(t, MatchCompleted, state.Status)
	require.Equal(t, "3&2", state.Margin)

	// The group plays on and B wins hole 6. The margin is recomputed from
	// the whole history — it shifts to 2&1 rather than staying frozen at
	// the moment of decision. Established platform behavior.
	pairs = append(pairs, pair(6, 5, 4))
	state = ComputeMatch(7, pairs)
	assert.Equal(t, MatchCompleted, state.Status)
	assert.Equal(t, "2&1", state.Margin)
}

func TestTournamentPoints(t *testing.T) {
	states := []MatchState{
		{PointsA: 1, PointsB: 0},
		{PointsA: 0.5, PointsB: 0.5},
		{PointsA: 0, PointsB: 1},
		{}, // still in progress: contributes nothing
	}
	a, b := TournamentPoints(states)
	assert.Equal(t, 1.5, a)
	assert.Equal(t, 1.5, b)
}

func TestSideStrokes(t *testing.T) {
	four := 4
	pairs := []MatchHolePair{
		pair(1, 4, 5),
		pair(2, 3, 4),
		{HoleNumber: 3, SideA: &four}, // B missing: A's strokes still count
	}
	a, b := SideStrokes(pairs)
	assert.Equal(t, 11, a)
	assert.Equal(t, 9, b)
}
