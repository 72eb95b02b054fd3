// Package handlers contains the HTTP route handlers for the Fairway Cup
// API. Each exported function follows the handler-factory pattern: it takes
// its dependencies (*gorm.DB, and the websocket hub where live updates
// apply) and returns a fiber.Handler, so nothing is injected through
// globals.
//
// This file is the glue between the persistence models and the scoring
// engine: loading raw rows into the engine's input shapes and writing the
// engine's derived output back. All scoring RULES live in internal/scoring;
// nothing in this package ever computes a total itself.
package handlers

import (
	"sort"

	"gorm.io/gorm"

	"github.com/fairwaycup/api/internal/models"
	"github.com/fairwaycup/api/internal/scoring"
)

// engineHoles converts a course's hole rows into the engine's hole shape,
// ordered by hole number. Courses with missing hole rows still work — the
// engine treats any hole a raw array can't reach as unplayed.
func engineHoles(holes []models.Hole) []scoring.Hole {
	sorted := make([]models.Hole, len(holes))
	copy(sorted, holes)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Number < sorted[b].Number })

	out := make([]scoring.Hole, len(sorted))
	for i, h := range sorted {
		out[i] = scoring.Hole{Number: h.Number, Par: h.Par, StrokeIndex: h.StrokeIndex}
	}
	return out
}

// rawScores builds a player's raw per-hole array from their Score rows.
// A hole with no row is unplayed; rows outside 1..holeCount are ignored.
func rawScores(holeCount int, scores []models.Score) []scoring.HoleScore {
	raw := make([]scoring.HoleScore, holeCount)
	for _, s := range scores {
		if s.HoleNumber < 1 || s.HoleNumber > holeCount {
			continue
		}
		raw[s.HoleNumber-1] = scoring.Played(s.Strokes)
	}
	return raw
}

// rawTeamScores does the same for a scramble team's TeamScore rows.
func rawTeamScores(holeCount int, scores []models.TeamScore) []scoring.HoleScore {
	raw := make([]scoring.HoleScore, holeCount)
	for _, s := range scores {
		if s.HoleNumber < 1 || s.HoleNumber > holeCount {
			continue
		}
		raw[s.HoleNumber-1] = scoring.Played(s.Strokes)
	}
	return raw
}

// playerAllocation computes the per-hole handicap allocation for one player
// in one round: nil unless the round gives strokes AND the player has a
// handicap on file. The round setting and the handicap are passed in
// explicitly — the engine never reads ambient round state.
func playerAllocation(round models.Round, player models.TournamentPlayer, holes []scoring.Hole) []int {
	if !round.StrokesGiven || player.Handicap == nil {
		return nil
	}
	return scoring.Allocate(scoring.PlayingHandicap(*player.Handicap), holes)
}

// recomputeRoundPlayer reloads a player's raw Score rows and rewrites the
// entire derived record on their RoundPlayer row. Every score mutation goes
// through here — there is no code path that adjusts a stored total in
// place — so the cached record always matches the raw history.
func recomputeRoundPlayer(tx *gorm.DB, round models.Round, holes []scoring.Hole, rp *models.RoundPlayer) error {
	var scores []models.Score
	if err := tx.Where("round_player_id = ?", rp.ID).Find(&scores).Error; err != nil {
		return err
	}

	raw := rawScores(len(holes), scores)
	allocation := playerAllocation(round, rp.TournamentPlayer, holes)
	summary := scoring.Aggregate(holes, raw, allocation)

	rp.TotalGross = summary.TotalScore
	rp.TotalToPar = summary.TotalToPar
	rp.HolesPlayed = summary.HolesPlayed
	rp.HandicapStrokes = summary.HandicapStrokes
	rp.TotalNet = summary.NetScore
	rp.NetToPar = summary.NetToPar

	// Stableford rounds also carry a points total; the stored value
	// already has any manual override applied.
	rp.StablefordPoints = nil
	if round.Format == models.ScoringFormatStableford && (summary.HolesPlayed > 0 || rp.StablefordOverride != nil) {
		points := scoring.OverrideOr(rp.StablefordOverride, scoring.StablefordPoints(holes, raw, allocation))
		rp.StablefordPoints = &points
	}

	return tx.Model(&models.RoundPlayer{}).Where("id = ?", rp.ID).Updates(map[string]interface{}{
		"total_gross":       rp.TotalGross,
		"total_to_par":      rp.TotalToPar,
		"holes_played":      rp.HolesPlayed,
		"handicap_strokes":  rp.HandicapStrokes,
		"total_net":         rp.TotalNet,
		"net_to_par":        rp.NetToPar,
		"stableford_points": rp.StablefordPoints,
	}).Error
}

// recomputeTeam rewrites a team's derived totals from its raw data using
// the strategy for the round's format.
func recomputeTeam(tx *gorm.DB, round models.Round, holes []scoring.Hole, team *models.Team) error {
	in, err := teamRoundInput(tx, round, holes, *team)
	if err != nil {
		return err
	}

	ts := scoring.StrategyForFormat(scoring.Format(round.Format)).Aggregate(in)

	team.TotalGross = ts.TotalScore
	team.TotalToPar = ts.TotalToPar
	team.HandicapStrokes = ts.HandicapStrokes
	team.TotalNet = ts.NetScore
	team.NetToPar = ts.NetToPar

	return tx.Model(&models.Team{}).Where("id = ?", team.ID).Updates(map[string]interface{}{
		"total_gross":      team.TotalGross,
		"total_to_par":     team.TotalToPar,
		"handicap_strokes": team.HandicapStrokes,
		"total_net":        team.TotalNet,
		"net_to_par":       team.NetToPar,
	}).Error
}

// teamRoundInput assembles the engine input for one team in one round:
// every member's raw array and allocation (best-ball, individual-sum) plus
// the team's own scramble stream when one exists.
func teamRoundInput(tx *gorm.DB, round models.Round, holes []scoring.Hole, team models.Team) (scoring.TeamRound, error) {
	in := scoring.TeamRound{Holes: holes}

	var members []models.RoundPlayer
	err := tx.Preload("TournamentPlayer").
		Joins("JOIN team_members ON team_members.round_player_id = round_players.id").
		Where("team_members.team_id = ?", team.ID).
		Find(&members).Error
	if err != nil {
		return in, err
	}

	for _, m := range members {
		var scores []models.Score
		if err := tx.Where("round_player_id = ?", m.ID).Find(&scores).Error; err != nil {
			return in, err
		}
		raw := rawScores(len(holes), scores)
		allocation := playerAllocation(round, m.TournamentPlayer, holes)
		in.Players = append(in.Players, scoring.PlayerRound{
			Raw:        raw,
			Allocation: allocation,
			Summary:    scoring.Aggregate(holes, raw, allocation),
		})
	}

	var teamScores []models.TeamScore
	if err := tx.Where("team_id = ?", team.ID).Find(&teamScores).Error; err != nil {
		return in, err
	}
	in.TeamRaw = rawTeamScores(len(holes), teamScores)

	return in, nil
}

// matchPairs converts a match's hole rows into the engine's raw pair list,
// ordered by hole number.
func matchPairs(holes []models.MatchHole) []scoring.MatchHolePair {
	sorted := make([]models.MatchHole, len(holes))
	copy(sorted, holes)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].HoleNumber < sorted[b].HoleNumber })

	pairs := make([]scoring.MatchHolePair, len(sorted))
	for i, h := range sorted {
		pairs[i] = scoring.MatchHolePair{
			HoleNumber: h.HoleNumber,
			SideA:      h.SideAScore,
			SideB:      h.SideBScore,
		}
	}
	return pairs
}

// recomputeMatch replays a match's full hole history through the engine and
// rewrites the match snapshot plus every hole's derived result.
func recomputeMatch(tx *gorm.DB, holeCount int, match *models.Match) (scoring.MatchState, error) {
	var holes []models.MatchHole
	if err := tx.Where("match_id = ?", match.ID).Find(&holes).Error; err != nil {
		return scoring.MatchState{}, err
	}

	state := scoring.ComputeMatch(holeCount, matchPairs(holes))

	// Persist the derived per-hole results. The engine returns holes in
	// the same sorted order matchPairs produced.
	for _, derived := range state.Holes {
		err := tx.Model(&models.MatchHole{}).
			Where("match_id = ? AND hole_number = ?", match.ID, derived.HoleNumber).
			Update("result", string(derived.Result)).Error
		if err != nil {
			return state, err
		}
	}

	match.Status = string(state.Status)
	match.StatusText = state.StatusText
	match.Margin = state.Margin
	match.Winner = string(state.Winner)
	match.PointsA = state.PointsA
	match.PointsB = state.PointsB

	err := tx.Model(&models.Match{}).Where("id = ?", match.ID).Updates(map[string]interface{}{
		"status":      match.Status,
		"status_text": match.StatusText,
		"margin":      match.Margin,
		"winner":      match.Winner,
		"points_a":    match.PointsA,
		"points_b":    match.PointsB,
	}).Error
	return state, err
}
