// team.go — reducing a team's players (or a team's own scramble scorecard)
// to one total per round.
//
// The three team formats score very differently, so each is its own strategy
// behind a common interface and the round's format picks which one runs.
package scoring

// PlayerRound is one teammate's contribution to a team computation: the raw
// array and allocation feed best-ball's per-hole minimum, while the
// pre-aggregated Summary feeds individual-sum.
type PlayerRound struct {
	Raw        []HoleScore
	Allocation []int
	Summary    Summary
}

// TeamRound is the full input to a team strategy. Best-ball and
// individual-sum read Players; scramble reads the team's own single score
// stream (TeamRaw), because in a scramble there are no individual scores at
// all — the whole team plays one ball.
type TeamRound struct {
	Holes          []Hole
	Players        []PlayerRound
	TeamRaw        []HoleScore
	TeamAllocation []int
}

// TeamSummary is a team's derived round record: the same totals a player
// Summary carries, plus how many teammates actually posted a score.
type TeamSummary struct {
	Summary
	PlayersWithScores int
}

// TeamStrategy reduces a TeamRound to a TeamSummary. Implementations are
// stateless; the zero value of each is ready to use.
type TeamStrategy interface {
	Aggregate(in TeamRound) TeamSummary
}

// StrategyForFormat picks the aggregation strategy for a round format.
// Stroke, Stableford and match-play rounds fall through to individual-sum:
// for those formats a "team total" is simply its members' totals added up
// (for match-play rounds the caller first folds each side's match strokes
// into per-player Summaries — wins and losses don't matter for this number).
func StrategyForFormat(f Format) TeamStrategy {
	switch f {
	case FormatBestBall:
		return BestBall{}
	case FormatScramble:
		return Scramble{}
	default:
		return IndividualSum{}
	}
}

// BestBall scores each hole as the single best (lowest) score any teammate
// recorded on that hole.
type BestBall struct{}

// Aggregate walks the holes once. Teammates with no score on a given hole
// are simply ignored for that hole; a hole where NO teammate has a score is
// excluded from both the team total and the par denominator — the same
// exclusion rule the individual aggregator applies to unplayed holes.
func (BestBall) Aggregate(in TeamRound) TeamSummary {
	var ts TeamSummary

	for i, hole := range in.Holes {
		best := 0
		for _, p := range in.Players {
			entry := at(p.Raw, i)
			if !entry.Valid() {
				continue
			}
			if best == 0 || entry.Strokes < best {
				best = entry.Strokes
			}
		}
		if best == 0 {
			continue // nobody scored this hole
		}
		ts.HolesPlayed++
		ts.TotalScore += best
		ts.TotalToPar += best - hole.Par
	}

	ts.PlayersWithScores = countPlayersWithScores(in.Players)
	return ts
}

// Scramble passes the team's own scorecard through the individual
// aggregator unchanged: the team IS the player, with one shot stream.
type Scramble struct{}

func (Scramble) Aggregate(in TeamRound) TeamSummary {
	ts := TeamSummary{Summary: Aggregate(in.Holes, in.TeamRaw, in.TeamAllocation)}
	if ts.HolesPlayed > 0 {
		// One combined entry per hole means the "team" posted a score.
		ts.PlayersWithScores = len(in.Players)
	}
	return ts
}

// IndividualSum adds up each teammate's already-aggregated totals, counting
// only teammates who have posted at least one hole (TotalScore > 0).
type IndividualSum struct{}

func (IndividualSum) Aggregate(in TeamRound) TeamSummary {
	var ts TeamSummary

	for _, p := range in.Players {
		if p.Summary.TotalScore <= 0 {
			continue
		}
		ts.PlayersWithScores++
		ts.HolesPlayed += p.Summary.HolesPlayed
		ts.TotalScore += p.Summary.TotalScore
		ts.TotalToPar += p.Summary.TotalToPar
		ts.HandicapStrokes += p.Summary.HandicapStrokes
	}

	// Net totals appear as soon as any counted teammate received strokes.
	// Summing (net when present, else gross) per teammate is the same as
	// gross-minus-strokes here, since a teammate without a handicap
	// contributes zero strokes.
	if ts.HandicapStrokes > 0 {
		net := ts.TotalScore - ts.HandicapStrokes
		netToPar := ts.TotalToPar - ts.HandicapStrokes
		ts.NetScore = &net
		ts.NetToPar = &netToPar
	}

	return ts
}

func countPlayersWithScores(players []PlayerRound) int {
	count := 0
	for _, p := range players {
		for _, entry := range p.Raw {
			if entry.Valid() {
				count++
				break
			}
		}
	}
	return count
}
