package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateFullRoundOfPars(t *testing.T) {
	holes := testHoles(18, 4)
	raw := make([]HoleScore, 18)
	for i := range raw {
		raw[i] = Played(4)
	}

	s := Aggregate(holes, raw, nil)

	assert.Equal(t, 72, s.TotalScore)
	assert.Equal(t, 0, s.TotalToPar, "all pars with no handicap is even")
	assert.Equal(t, 18, s.HolesPlayed)
	assert.Equal(t, 0, s.HandicapStrokes)
	assert.Nil(t, s.NetScore, "no handicap applied means no net score")
	assert.Nil(t, s.NetToPar)
}

func TestAggregateUnplayedHolesExcluded(t *testing.T) {
	holes := testHoles(4, 4)
	raw := []HoleScore{
		Played(5),
		Unplayed(), // skipped hole: not a zero, not a double-par
		Played(3),
		Unplayed(),
	}

	s := Aggregate(holes, raw, nil)

	assert.Equal(t, 8, s.TotalScore)
	assert.Equal(t, 0, s.TotalToPar, "par denominator only covers played holes (5-4)+(3-4)")
	assert.Equal(t, 2, s.HolesPlayed)
}

func TestAggregateToParIdentity(t *testing.T) {
	// totalToPar must always equal totalScore minus the par of played holes.
	holes := []Hole{
		{Number: 1, Par: 4, StrokeIndex: 1},
		{Number: 2, Par: 3, StrokeIndex: 2},
		{Number: 3, Par: 5, StrokeIndex: 3},
	}
	raw := []HoleScore{Played(6), Unplayed(), Played(4)}

	s := Aggregate(holes, raw, nil)

	require.Equal(t, 10, s.TotalScore)
	assert.Equal(t, s.TotalScore-(4+5), s.TotalToPar)
}

func TestAggregateHandicapOnlyOnPlayedHoles(t *testing.T) {
	holes := testHoles(4, 4)
	allocation := []int{1, 1, 1, 1}
	raw := []HoleScore{Played(5), Played(5), Unplayed(), Unplayed()}

	s := Aggregate(holes, raw, allocation)

	assert.Equal(t, 2, s.HandicapStrokes, "unplayed holes bank no strokes")
	require.NotNil(t, s.NetScore)
	assert.Equal(t, 8, *s.NetScore)
	require.NotNil(t, s.NetToPar)
	assert.Equal(t, 0, *s.NetToPar)
}

func TestAggregateShortAndLongArrays(t *testing.T) {
	holes := testHoles(18, 4)

	t.Run("short array treats the rest as unplayed", func(t *testing.T) {
		raw := []HoleScore{Played(4), Played(4), Played(4)}
		s := Aggregate(holes, raw, nil)
		assert.Equal(t, 12, s.TotalScore)
		assert.Equal(t, 3, s.HolesPlayed)
	})

	t.Run("long array ignores entries beyond the hole count", func(t *testing.T) {
		raw := make([]HoleScore, 25)
		for i := range raw {
			raw[i] = Played(4)
		}
		s := Aggregate(holes, raw, nil)
		assert.Equal(t, 72, s.TotalScore)
		assert.Equal(t, 18, s.HolesPlayed)
	})

	t.Run("empty input yields the zero baseline", func(t *testing.T) {
		s := Aggregate(holes, nil, nil)
		assert.Equal(t, Summary{}, s)
	})
}

func TestAggregateInvalidScoresExcluded(t *testing.T) {
	holes := testHoles(3, 4)
	raw := []HoleScore{
		Played(4),
		{Strokes: -2, Played: true}, // domain-invalid: excluded, not fatal
		{Strokes: 0, Played: true},  // zero strokes is never a real score
	}

	s := Aggregate(holes, raw, nil)

	assert.Equal(t, 4, s.TotalScore)
	assert.Equal(t, 1, s.HolesPlayed)
}
