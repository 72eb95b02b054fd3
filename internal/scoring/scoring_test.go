package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end: the full pipeline from handicap index to net leaderboard
// numbers, exercising Allocate + Aggregate + Stableford together the way the
// score-submission handler does.
func TestBogeyGolferWithHandicapTen(t *testing.T) {
	holes := testHoles(18, 4) // stroke index 1..18 in hole order

	// Handicap 10, strokes given: the ten hardest holes get one stroke each.
	allocation := Allocate(PlayingHandicap(10.0), holes)
	sum := 0
	for _, a := range allocation {
		sum += a
	}
	require.Equal(t, 10, sum)

	// All bogeys: gross 18 over.
	raw := make([]HoleScore, 18)
	for i := range raw {
		raw[i] = Played(holes[i].Par + 1)
	}

	s := Aggregate(holes, raw, allocation)

	assert.Equal(t, 90, s.TotalScore)
	assert.Equal(t, 18, s.TotalToPar)
	assert.Equal(t, 10, s.HandicapStrokes)

	// Net par on the ten stroke holes, net bogey on the other eight.
	require.NotNil(t, s.NetToPar)
	assert.Equal(t, 8, *s.NetToPar)
	require.NotNil(t, s.NetScore)
	assert.Equal(t, 80, *s.NetScore)

	// Stableford reading of the same round: 2 points on the ten net pars,
	// 1 point on the eight net bogeys.
	assert.Equal(t, 10*2+8*1, StablefordPoints(holes, raw, allocation))
}

// End-to-end: a net leaderboard built from two aggregated rounds.
func TestLeaderboardFromAggregatedRounds(t *testing.T) {
	holes := testHoles(18, 4)

	scratch := make([]HoleScore, 18)
	bogey := make([]HoleScore, 18)
	for i := range holes {
		scratch[i] = Played(4)
		bogey[i] = Played(5)
	}

	scratchSummary := Aggregate(holes, scratch, nil)
	bogeySummary := Aggregate(holes, bogey, Allocate(20, holes))

	ranked := Rank([]Entry{
		{Name: "scratch", TotalScore: scratchSummary.TotalScore, NetScore: scratchSummary.NetScore},
		{Name: "twenty", TotalScore: bogeySummary.TotalScore, NetScore: bogeySummary.NetScore},
	})

	// The 20-handicapper's net 70 beats the scratch player's gross 72.
	require.Len(t, ranked, 2)
	assert.Equal(t, "twenty", ranked[0].Name)
	assert.Equal(t, 1, ranked[0].Position)
	assert.Equal(t, "scratch", ranked[1].Name)
}
