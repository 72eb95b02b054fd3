package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategyForFormat(t *testing.T) {
	assert.IsType(t, BestBall{}, StrategyForFormat(FormatBestBall))
	assert.IsType(t, Scramble{}, StrategyForFormat(FormatScramble))
	assert.IsType(t, IndividualSum{}, StrategyForFormat(FormatStroke))
	assert.IsType(t, IndividualSum{}, StrategyForFormat(FormatStableford))
	assert.IsType(t, IndividualSum{}, StrategyForFormat(FormatMatchPlay))
}

func TestBestBallTakesHoleMinimum(t *testing.T) {
	holes := testHoles(3, 4)
	in := TeamRound{
		Holes: holes,
		Players: []PlayerRound{
			{Raw: []HoleScore{Played(5), Played(4), Played(6)}},
			{Raw: []HoleScore{Played(4), Played(6), Played(3)}},
		},
	}

	ts := BestBall{}.Aggregate(in)

	assert.Equal(t, 4+4+3, ts.TotalScore)
	assert.Equal(t, -1, ts.TotalToPar)
	assert.Equal(t, 3, ts.HolesPlayed)
	assert.Equal(t, 2, ts.PlayersWithScores)
}

func TestBestBallIgnoresMissingTeammateScores(t *testing.T) {
	holes := testHoles(3, 4)
	in := TeamRound{
		Holes: holes,
		Players: []PlayerRound{
			{Raw: []HoleScore{Played(5), Unplayed(), Unplayed()}},
			{Raw: []HoleScore{Unplayed(), Played(4), Unplayed()}},
		},
	}

	ts := BestBall{}.Aggregate(in)

	// Hole 3 has no score from anyone: excluded from total AND par sum.
	assert.Equal(t, 9, ts.TotalScore)
	assert.Equal(t, 1, ts.TotalToPar, "(5-4)+(4-4); hole 3 par not charged")
	assert.Equal(t, 2, ts.HolesPlayed)
	assert.Equal(t, 2, ts.PlayersWithScores)
}

func TestBestBallCountsOnlyPlayersWhoPosted(t *testing.T) {
	holes := testHoles(2, 4)
	in := TeamRound{
		Holes: holes,
		Players: []PlayerRound{
			{Raw: []HoleScore{Played(4), Played(4)}},
			{Raw: []HoleScore{Unplayed(), Unplayed()}}, // never teed off
		},
	}

	ts := BestBall{}.Aggregate(in)

	assert.Equal(t, 1, ts.PlayersWithScores)
	assert.Equal(t, 8, ts.TotalScore)
}

func TestScramblePassesTeamScoreThrough(t *testing.T) {
	holes := testHoles(3, 4)
	in := TeamRound{
		Holes:   holes,
		Players: []PlayerRound{{}, {}, {}, {}},
		TeamRaw: []HoleScore{Played(3), Played(4), Unplayed()},
	}

	ts := Scramble{}.Aggregate(in)

	// The team's single stream aggregates exactly like an individual's.
	assert.Equal(t, 7, ts.TotalScore)
	assert.Equal(t, -1, ts.TotalToPar)
	assert.Equal(t, 2, ts.HolesPlayed)
	assert.Equal(t, 4, ts.PlayersWithScores)
}

func TestScrambleNoScoresYet(t *testing.T) {
	ts := Scramble{}.Aggregate(TeamRound{
		Holes:   testHoles(18, 4),
		Players: []PlayerRound{{}, {}},
	})
	assert.Zero(t, ts.TotalScore)
	assert.Zero(t, ts.PlayersWithScores)
}

func TestIndividualSumAddsAggregatedTotals(t *testing.T) {
	net1 := 75
	netToPar1 := 3
	in := TeamRound{
		Players: []PlayerRound{
			{Summary: Summary{TotalScore: 85, TotalToPar: 13, HolesPlayed: 18,
				HandicapStrokes: 10, NetScore: &net1, NetToPar: &netToPar1}},
			{Summary: Summary{TotalScore: 72, TotalToPar: 0, HolesPlayed: 18}},
			{Summary: Summary{}}, // hasn't posted a single hole: not counted
		},
	}

	ts := IndividualSum{}.Aggregate(in)

	assert.Equal(t, 157, ts.TotalScore)
	assert.Equal(t, 13, ts.TotalToPar)
	assert.Equal(t, 2, ts.PlayersWithScores)
	assert.Equal(t, 10, ts.HandicapStrokes)
	require.NotNil(t, ts.NetScore, "one teammate with a handicap is enough for team net")
	assert.Equal(t, 147, *ts.NetScore)
	require.NotNil(t, ts.NetToPar)
	assert.Equal(t, 3, *ts.NetToPar)
}

func TestIndividualSumNoHandicapsMeansNoNet(t *testing.T) {
	in := TeamRound{
		Players: []PlayerRound{
			{Summary: Summary{TotalScore: 72, HolesPlayed: 18}},
			{Summary: Summary{TotalScore: 80, TotalToPar: 8, HolesPlayed: 18}},
		},
	}

	ts := IndividualSum{}.Aggregate(in)

	assert.Equal(t, 152, ts.TotalScore)
	assert.Nil(t, ts.NetScore)
	assert.Nil(t, ts.NetToPar)
}
