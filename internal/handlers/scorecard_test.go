package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwaycup/api/internal/models"
	"github.com/fairwaycup/api/internal/scoring"
)

func TestEngineHolesSortsByNumber(t *testing.T) {
	holes := engineHoles([]models.Hole{
		{Number: 3, Par: 5, StrokeIndex: 1},
		{Number: 1, Par: 4, StrokeIndex: 7},
		{Number: 2, Par: 3, StrokeIndex: 17},
	})

	require.Len(t, holes, 3)
	assert.Equal(t, []scoring.Hole{
		{Number: 1, Par: 4, StrokeIndex: 7},
		{Number: 2, Par: 3, StrokeIndex: 17},
		{Number: 3, Par: 5, StrokeIndex: 1},
	}, holes)
}

func TestRawScoresMissingRowsStayUnplayed(t *testing.T) {
	raw := rawScores(4, []models.Score{
		{HoleNumber: 2, Strokes: 4},
		{HoleNumber: 4, Strokes: 5},
	})

	require.Len(t, raw, 4)
	assert.False(t, raw[0].Played)
	assert.Equal(t, scoring.Played(4), raw[1])
	assert.False(t, raw[2].Played)
	assert.Equal(t, scoring.Played(5), raw[3])
}

func TestRawScoresIgnoresOutOfRangeRows(t *testing.T) {
	raw := rawScores(2, []models.Score{
		{HoleNumber: 0, Strokes: 4},
		{HoleNumber: 3, Strokes: 4},
		{HoleNumber: 1, Strokes: 3},
	})

	require.Len(t, raw, 2)
	assert.Equal(t, scoring.Played(3), raw[0])
	assert.False(t, raw[1].Played)
}

func TestPlayerAllocationGating(t *testing.T) {
	holes := []scoring.Hole{
		{Number: 1, Par: 4, StrokeIndex: 1},
		{Number: 2, Par: 4, StrokeIndex: 2},
	}
	handicap := 2.0

	t.Run("no strokes given", func(t *testing.T) {
		round := models.Round{StrokesGiven: false}
		player := models.TournamentPlayer{Handicap: &handicap}
		assert.Nil(t, playerAllocation(round, player, holes))
	})

	t.Run("no handicap on file", func(t *testing.T) {
		round := models.Round{StrokesGiven: true}
		player := models.TournamentPlayer{}
		assert.Nil(t, playerAllocation(round, player, holes))
	})

	t.Run("strokes given and handicap present", func(t *testing.T) {
		round := models.Round{StrokesGiven: true}
		player := models.TournamentPlayer{Handicap: &handicap}
		assert.Equal(t, []int{1, 1}, playerAllocation(round, player, holes))
	})
}

func TestMatchPairsSortsAndCarriesNils(t *testing.T) {
	four := 4
	five := 5
	pairs := matchPairs([]models.MatchHole{
		{HoleNumber: 2, SideAScore: &four, SideBScore: nil},
		{HoleNumber: 1, SideAScore: &four, SideBScore: &five},
	})

	require.Len(t, pairs, 2)
	assert.Equal(t, 1, pairs[0].HoleNumber)
	assert.Equal(t, 2, pairs[1].HoleNumber)
	assert.Nil(t, pairs[1].SideB)
}

func TestDerivedHolesJoinsStoredResults(t *testing.T) {
	three := 3
	four := 4
	holes := derivedHoles([]models.MatchHole{
		{HoleNumber: 2, SideAScore: &four, SideBScore: &four, Result: "tie"},
		{HoleNumber: 1, SideAScore: &three, SideBScore: &four, Result: "side_a"},
	})

	require.Len(t, holes, 2)
	assert.Equal(t, scoring.HoleSideA, holes[0].Result)
	assert.Equal(t, scoring.HoleTie, holes[1].Result)
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{"stroke", "stableford", "best_ball", "scramble", "match_play"} {
		assert.True(t, validFormat(f), f)
	}
	assert.False(t, validFormat("skins"))
	assert.False(t, validFormat(""))
}

func TestAccumulatePreservesNilNet(t *testing.T) {
	entry := &scoring.Entry{}

	accumulate(entry, 80, 8, nil, nil, nil)
	assert.Equal(t, 80, entry.TotalScore)
	assert.Nil(t, entry.NetScore)

	net := 75
	netToPar := 3
	accumulate(entry, 78, 6, &net, &netToPar, nil)
	assert.Equal(t, 158, entry.TotalScore)
	assert.Equal(t, 14, entry.TotalToPar)
	require.NotNil(t, entry.NetScore)
	assert.Equal(t, 75, *entry.NetScore)
	assert.Equal(t, 3, *entry.NetToPar)

	accumulate(entry, 0, 0, &net, &netToPar, nil)
	assert.Equal(t, 150, *entry.NetScore)
}

func TestTeamEntryReusesByName(t *testing.T) {
	totals := map[string]*scoring.Entry{}
	var order []string

	a := teamEntry(totals, &order, "Team USA")
	b := teamEntry(totals, &order, "Team Europe")
	again := teamEntry(totals, &order, "Team USA")

	assert.Same(t, a, again)
	assert.NotSame(t, a, b)
	assert.Equal(t, []string{"Team USA", "Team Europe"}, order)
	// Cross-round identity is the name, so the synthetic ID must be stable.
	assert.Equal(t, a.ID, again.ID)
}
