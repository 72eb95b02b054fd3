// leaderboard.go — ranked views: the live round leaderboard that the
// websocket hub rebroadcasts on every score change, and the tournament-wide
// standings and match-play point race that only aggregate COMPLETED rounds.
package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fairwaycup/api/internal/models"
	"github.com/fairwaycup/api/internal/scoring"
	"github.com/fairwaycup/api/internal/websocket"
)

// RoundLeaderboardResponse is the payload for GET /rounds/:id/leaderboard
// and for every "leaderboard" websocket event.
type RoundLeaderboardResponse struct {
	RoundID string          `json:"round_id"`
	Format  string          `json:"format"`
	Entries []scoring.Entry `json:"entries"`
}

// teamFormat reports whether a format's leaderboard rows are teams.
func teamFormat(f models.ScoringFormat) bool {
	return f == models.ScoringFormatBestBall || f == models.ScoringFormatScramble
}

// roundLeaderboard builds the ranked leaderboard for one round from the
// cached derived records. No engine math happens here beyond Rank — the
// totals were computed (and persisted) when the scores were submitted.
func roundLeaderboard(db *gorm.DB, round models.Round) (RoundLeaderboardResponse, error) {
	resp := RoundLeaderboardResponse{
		RoundID: round.ID.String(),
		Format:  string(round.Format),
		Entries: []scoring.Entry{},
	}

	var entries []scoring.Entry
	if teamFormat(round.Format) {
		var teams []models.Team
		err := db.Where("round_id = ?", round.ID).Order("created_at ASC").Find(&teams).Error
		if err != nil {
			return resp, err
		}
		for _, t := range teams {
			entries = append(entries, scoring.Entry{
				ID:         t.ID,
				Name:       t.Name,
				TotalScore: t.TotalGross,
				TotalToPar: t.TotalToPar,
				NetScore:   t.TotalNet,
				NetToPar:   t.NetToPar,
			})
		}
	} else {
		var players []models.RoundPlayer
		err := db.Preload("TournamentPlayer").Preload("TournamentPlayer.User").
			Where("round_id = ?", round.ID).Order("created_at ASC").
			Find(&players).Error
		if err != nil {
			return resp, err
		}
		for _, rp := range players {
			entries = append(entries, scoring.Entry{
				ID:         rp.ID,
				Name:       rp.TournamentPlayer.User.DisplayName,
				TotalScore: rp.TotalGross,
				TotalToPar: rp.TotalToPar,
				NetScore:   rp.TotalNet,
				NetToPar:   rp.NetToPar,
				Points:     rp.StablefordPoints,
			})
		}
	}

	resp.Entries = scoring.Rank(entries)
	return resp, nil
}

// broadcastLeaderboard pushes a fresh leaderboard snapshot to everyone
// watching the round. Failures to build the snapshot are swallowed — the
// write that triggered the broadcast already succeeded.
func broadcastLeaderboard(db *gorm.DB, hub *websocket.Hub, round models.Round) {
	snapshot, err := roundLeaderboard(db, round)
	if err != nil {
		return
	}
	hub.Broadcast(websocket.Event{
		RoundID: round.ID.String(),
		Kind:    websocket.EventLeaderboard,
		Payload: snapshot,
	})
}

// GetRoundLeaderboard returns a handler for GET /rounds/:id/leaderboard.
// Individual formats rank players, team formats rank teams. Match-play
// rounds have no stroke leaderboard; clients read the matches instead.
func GetRoundLeaderboard(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, ok := parseUUIDParam(c, "id")
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid round ID",
			})
		}

		var round models.Round
		if err := db.First(&round, "id = ?", roundID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "round not found",
			})
		}
		if round.Format == models.ScoringFormatMatchPlay {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "match-play rounds have no stroke leaderboard; use /rounds/:id/matches",
			})
		}

		resp, err := roundLeaderboard(db, round)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to build leaderboard",
			})
		}
		return c.JSON(resp)
	}
}

// StandingsResponse is the payload for GET /tournaments/:id/standings.
type StandingsResponse struct {
	TournamentID    string          `json:"tournament_id"`
	RoundsCompleted int             `json:"rounds_completed"`
	Players         []scoring.Entry `json:"players"`
	Teams           []scoring.Entry `json:"teams"`
}

// GetTournamentStandings returns a handler for GET /tournaments/:id/standings:
// cumulative totals across COMPLETED rounds only, so the standings never move
// mid-round. Players accumulate by registration; teams accumulate by NAME,
// because team rows belong to individual rounds but "Team USA" on Saturday
// and Sunday is the same team to the tournament.
func GetTournamentStandings(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournamentID, ok := parseUUIDParam(c, "id")
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}

		var rounds []models.Round
		err := db.Where("tournament_id = ? AND status = ?", tournamentID, models.RoundStatusCompleted).
			Order("round_number ASC").
			Find(&rounds).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch rounds",
			})
		}

		playerTotals := map[uuid.UUID]*scoring.Entry{}
		var playerOrder []uuid.UUID
		teamTotals := map[string]*scoring.Entry{}
		var teamOrder []string

		for _, round := range rounds {
			var players []models.RoundPlayer
			err := db.Preload("TournamentPlayer").Preload("TournamentPlayer.User").
				Where("round_id = ?", round.ID).
				Find(&players).Error
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to fetch round players",
				})
			}
			for _, rp := range players {
				key := rp.TournamentPlayerID
				entry, ok := playerTotals[key]
				if !ok {
					entry = &scoring.Entry{
						ID:   key,
						Name: rp.TournamentPlayer.User.DisplayName,
					}
					playerTotals[key] = entry
					playerOrder = append(playerOrder, key)
				}
				accumulate(entry, rp.TotalGross, rp.TotalToPar, rp.TotalNet, rp.NetToPar, rp.StablefordPoints)
			}

			var teams []models.Team
			if err := db.Where("round_id = ?", round.ID).Find(&teams).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to fetch teams",
				})
			}
			// Team rows carry strategy output for every stroke-style
			// format (best-ball minimums, scramble streams, individual
			// sums). Match-play teams have no stroke totals of their own;
			// those come from the match hole history below.
			teamByID := map[uuid.UUID]models.Team{}
			for _, t := range teams {
				teamByID[t.ID] = t
				if round.Format == models.ScoringFormatMatchPlay {
					continue
				}
				entry := teamEntry(teamTotals, &teamOrder, t.Name)
				accumulate(entry, t.TotalGross, t.TotalToPar, t.TotalNet, t.NetToPar, nil)
			}

			// Match-play rounds have no team stroke totals on the Team row;
			// each side's strokes come from the match hole history.
			if round.Format == models.ScoringFormatMatchPlay {
				var matches []models.Match
				if err := db.Where("round_id = ?", round.ID).Find(&matches).Error; err != nil {
					return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
						"error": "failed to fetch matches",
					})
				}
				for _, m := range matches {
					var holes []models.MatchHole
					if err := db.Where("match_id = ?", m.ID).Find(&holes).Error; err != nil {
						return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
							"error": "failed to fetch match holes",
						})
					}
					strokesA, strokesB := scoring.SideStrokes(matchPairs(holes))
					if teamA, ok := teamByID[m.SideATeamID]; ok {
						accumulate(teamEntry(teamTotals, &teamOrder, teamA.Name), strokesA, 0, nil, nil, nil)
					}
					if teamB, ok := teamByID[m.SideBTeamID]; ok {
						accumulate(teamEntry(teamTotals, &teamOrder, teamB.Name), strokesB, 0, nil, nil, nil)
					}
				}
			}
		}

		players := make([]scoring.Entry, 0, len(playerOrder))
		for _, id := range playerOrder {
			players = append(players, *playerTotals[id])
		}
		teams := make([]scoring.Entry, 0, len(teamOrder))
		for _, name := range teamOrder {
			teams = append(teams, *teamTotals[name])
		}

		return c.JSON(StandingsResponse{
			TournamentID:    tournamentID.String(),
			RoundsCompleted: len(rounds),
			Players:         scoring.Rank(players),
			Teams:           scoring.Rank(teams),
		})
	}
}

// teamEntry fetches or creates the cumulative entry for a team name.
// Cross-round team identity is the name, so the ID is derived from it.
func teamEntry(totals map[string]*scoring.Entry, order *[]string, name string) *scoring.Entry {
	if entry, ok := totals[name]; ok {
		return entry
	}
	entry := &scoring.Entry{
		ID:   uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)),
		Name: name,
	}
	totals[name] = entry
	*order = append(*order, name)
	return entry
}

// accumulate folds one round's derived record into a cumulative entry.
// Nullable fields stay nil until any round contributes a value, preserving
// the "nil net = rank by gross" rule at the tournament level.
func accumulate(entry *scoring.Entry, gross, toPar int, net, netToPar, points *int) {
	entry.TotalScore += gross
	entry.TotalToPar += toPar
	if net != nil {
		entry.NetScore = addTo(entry.NetScore, *net)
	}
	if netToPar != nil {
		entry.NetToPar = addTo(entry.NetToPar, *netToPar)
	}
	if points != nil {
		entry.Points = addTo(entry.Points, *points)
	}
}

func addTo(current *int, delta int) *int {
	total := delta
	if current != nil {
		total += *current
	}
	return &total
}

// TeamPoints is one team's running match-play total.
type TeamPoints struct {
	TeamName string  `json:"team_name"`
	Points   float64 `json:"points"`
	Clinched bool    `json:"clinched"`
}

// PointsResponse is the payload for GET /tournaments/:id/points.
type PointsResponse struct {
	TournamentID string       `json:"tournament_id"`
	TargetPoints *float64     `json:"target_points"`
	Teams        []TeamPoints `json:"teams"`
}

// GetTournamentPoints returns a handler for GET /tournaments/:id/points: the
// Ryder Cup scoreboard. Sums each team's match points across COMPLETED
// match-play rounds, grouped by team name, and marks a team clinched once
// its total reaches the tournament's target.
func GetTournamentPoints(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournamentID, ok := parseUUIDParam(c, "id")
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}

		var tournament models.Tournament
		if err := db.First(&tournament, "id = ?", tournamentID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "tournament not found",
			})
		}

		var matches []models.Match
		err := db.Preload("SideATeam").Preload("SideBTeam").
			Joins("JOIN rounds ON rounds.id = matches.round_id").
			Where("rounds.tournament_id = ? AND rounds.status = ?", tournamentID, models.RoundStatusCompleted).
			Find(&matches).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch matches",
			})
		}

		totals := map[string]float64{}
		for _, m := range matches {
			totals[m.SideATeam.Name] += m.PointsA
			totals[m.SideBTeam.Name] += m.PointsB
		}

		teams := make([]TeamPoints, 0, len(totals))
		for name, points := range totals {
			clinched := tournament.TargetPoints != nil && points >= *tournament.TargetPoints
			teams = append(teams, TeamPoints{TeamName: name, Points: points, Clinched: clinched})
		}
		sort.Slice(teams, func(a, b int) bool {
			if teams[a].Points != teams[b].Points {
				return teams[a].Points > teams[b].Points
			}
			return teams[a].TeamName < teams[b].TeamName
		})

		return c.JSON(PointsResponse{
			TournamentID: tournamentID.String(),
			TargetPoints: tournament.TargetPoints,
			Teams:        teams,
		})
	}
}
