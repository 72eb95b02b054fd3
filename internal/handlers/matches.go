// matches.go — match-play rounds: creating head-to-head matches between two
// team sides and recording per-hole score pairs.
//
// The Match row's status/points columns are pure engine output. Every hole
// submission rewrites them wholesale via recomputeMatch (a full replay of the
// hole history), then pushes the fresh match state to everyone watching the
// round.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fairwaycup/api/internal/models"
	"github.com/fairwaycup/api/internal/scoring"
	"github.com/fairwaycup/api/internal/websocket"
)

// CreateMatchRequest is the JSON body for POST /rounds/:id/matches. Each
// side names its team and the round players actually playing this match
// (one for singles, two for foursomes/four-ball).
type CreateMatchRequest struct {
	SideATeamID    string   `json:"side_a_team_id"`
	SideBTeamID    string   `json:"side_b_team_id"`
	SideAPlayerIDs []string `json:"side_a_player_ids"`
	SideBPlayerIDs []string `json:"side_b_player_ids"`
}

// MatchHoleRequest is the JSON body for PUT /matches/:id/holes/:holeNumber.
// Either side may be null while a hole is half-entered; both null deletes
// the hole entirely, returning it to unplayed.
type MatchHoleRequest struct {
	SideAScore *int `json:"side_a_score"`
	SideBScore *int `json:"side_b_score"`
}

// MatchResponse is a match with its full derived state.
type MatchResponse struct {
	ID           string                    `json:"id"`
	RoundID      string                    `json:"round_id"`
	SideATeam    string                    `json:"side_a_team"`
	SideBTeam    string                    `json:"side_b_team"`
	Status       string                    `json:"status"`
	StatusText   string                    `json:"status_text"`
	Margin       string                    `json:"margin"`
	Winner       string                    `json:"winner"`
	PointsA      float64                   `json:"points_side_a"`
	PointsB      float64                   `json:"points_side_b"`
	Holes        []scoring.MatchHoleResult `json:"holes"`
	SideAPlayers []string                  `json:"side_a_players"`
	SideBPlayers []string                  `json:"side_b_players"`
}

func matchResponse(db *gorm.DB, m models.Match, holes []scoring.MatchHoleResult) MatchResponse {
	if holes == nil {
		holes = []scoring.MatchHoleResult{}
	}
	return MatchResponse{
		ID:           m.ID.String(),
		RoundID:      m.RoundID.String(),
		SideATeam:    m.SideATeam.Name,
		SideBTeam:    m.SideBTeam.Name,
		Status:       m.Status,
		StatusText:   m.StatusText,
		Margin:       m.Margin,
		Winner:       m.Winner,
		PointsA:      m.PointsA,
		PointsB:      m.PointsB,
		Holes:        holes,
		SideAPlayers: matchSideNames(db, m.ID, models.MatchSideA),
		SideBPlayers: matchSideNames(db, m.ID, models.MatchSideB),
	}
}

// matchSideNames loads display names for one side's players.
func matchSideNames(db *gorm.DB, matchID uuid.UUID, side models.MatchSide) []string {
	names := []string{}
	db.Model(&models.MatchPlayer{}).
		Select("users.display_name").
		Joins("JOIN round_players ON round_players.id = match_players.round_player_id").
		Joins("JOIN tournament_players ON tournament_players.id = round_players.tournament_player_id").
		Joins("JOIN users ON users.id = tournament_players.user_id").
		Where("match_players.match_id = ? AND match_players.side = ?", matchID, side).
		Scan(&names)
	return names
}

// CreateMatch returns a handler for POST /rounds/:id/matches. Organizer-only,
// match-play rounds only. Both sides' teams and players must belong to this
// round; a player cannot appear on both sides.
func CreateMatch(db *gorm.DB) fiber.Handler {
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
		if round.Format != models.ScoringFormatMatchPlay {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "matches only apply to match-play rounds",
			})
		}
		if !callerIsOrganizer(c, db, round.TournamentID) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "not authorized to manage this tournament",
			})
		}

		var req CreateMatchRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		teamAID, errA := uuid.Parse(req.SideATeamID)
		teamBID, errB := uuid.Parse(req.SideBTeamID)
		if errA != nil || errB != nil || teamAID == teamBID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "two distinct team IDs are required",
			})
		}
		if len(req.SideAPlayerIDs) == 0 || len(req.SideBPlayerIDs) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "both sides need at least one player",
			})
		}

		var teamA, teamB models.Team
		if err := db.Where("id = ? AND round_id = ?", teamAID, roundID).First(&teamA).Error; err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "side A team is not in this round",
			})
		}
		if err := db.Where("id = ? AND round_id = ?", teamBID, roundID).First(&teamB).Error; err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "side B team is not in this round",
			})
		}

		seen := map[uuid.UUID]bool{}
		parseSide := func(ids []string) ([]uuid.UUID, error) {
			out := make([]uuid.UUID, 0, len(ids))
			for _, s := range ids {
				id, err := uuid.Parse(s)
				if err != nil || seen[id] {
					return nil, fiber.ErrBadRequest
				}
				seen[id] = true
				out = append(out, id)
			}
			return out, nil
		}
		sideA, errA2 := parseSide(req.SideAPlayerIDs)
		sideB, errB2 := parseSide(req.SideBPlayerIDs)
		if errA2 != nil || errB2 != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player IDs must be valid and unique across both sides",
			})
		}

		var created models.Match
		txErr := db.Transaction(func(tx *gorm.DB) error {
			match := models.Match{
				RoundID:     roundID,
				SideATeamID: teamAID,
				SideBTeamID: teamBID,
				Status:      string(scoring.MatchNotStarted),
				StatusText:  "Not Started",
			}
			if err := tx.Create(&match).Error; err != nil {
				return err
			}

			assign := func(ids []uuid.UUID, side models.MatchSide) error {
				for _, rpID := range ids {
					var rp models.RoundPlayer
					if err := tx.Where("id = ? AND round_id = ?", rpID, roundID).First(&rp).Error; err != nil {
						return err
					}
					mp := models.MatchPlayer{MatchID: match.ID, RoundPlayerID: rpID, Side: side}
					if err := tx.Create(&mp).Error; err != nil {
						return err
					}
				}
				return nil
			}
			if err := assign(sideA, models.MatchSideA); err != nil {
				return err
			}
			if err := assign(sideB, models.MatchSideB); err != nil {
				return err
			}

			created = match
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "all players must be in this round",
			})
		}

		created.SideATeam = teamA
		created.SideBTeam = teamB
		return c.Status(fiber.StatusCreated).JSON(matchResponse(db, created, nil))
	}
}

// GetRoundMatches returns a handler for GET /rounds/:id/matches.
func GetRoundMatches(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, ok := parseUUIDParam(c, "id")
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid round ID",
			})
		}

		var matches []models.Match
		err := db.Preload("SideATeam").Preload("SideBTeam").
			Where("round_id = ?", roundID).Order("created_at ASC").
			Find(&matches).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch matches",
			})
		}

		response := make([]MatchResponse, 0, len(matches))
		for _, m := range matches {
			var holes []models.MatchHole
			db.Where("match_id = ?", m.ID).Find(&holes)
			response = append(response, matchResponse(db, m, derivedHoles(holes)))
		}
		return c.JSON(response)
	}
}

// GetMatch returns a handler for GET /matches/:id.
func GetMatch(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		matchID, ok := parseUUIDParam(c, "id")
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid match ID",
			})
		}

		var match models.Match
		err := db.Preload("SideATeam").Preload("SideBTeam").
			First(&match, "id = ?", matchID).Error
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "match not found",
			})
		}

		var holes []models.MatchHole
		db.Where("match_id = ?", match.ID).Find(&holes)
		return c.JSON(matchResponse(db, match, derivedHoles(holes)))
	}
}

// derivedHoles converts stored MatchHole rows to the engine's result shape
// for read responses, sorted by hole number via matchPairs.
func derivedHoles(holes []models.MatchHole) []scoring.MatchHoleResult {
	byNumber := map[int]string{}
	for _, h := range holes {
		byNumber[h.HoleNumber] = h.Result
	}
	pairs := matchPairs(holes)
	out := make([]scoring.MatchHoleResult, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, scoring.MatchHoleResult{
			HoleNumber: p.HoleNumber,
			SideA:      p.SideA,
			SideB:      p.SideB,
			Result:     scoring.HoleResult(byNumber[p.HoleNumber]),
		})
	}
	return out
}

// SubmitMatchHole returns a handler for PUT /matches/:id/holes/:holeNumber.
// Upserts one hole's score pair (or deletes it when both sides are null),
// replays the whole match, and broadcasts the new state. A completed match
// stays editable — corrections re-derive everything, including un-completing
// a match whose deciding hole was entered wrong.
func SubmitMatchHole(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		matchID, ok := parseUUIDParam(c, "id")
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid match ID",
			})
		}
		holeNumber, err := c.ParamsInt("holeNumber")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid hole number",
			})
		}

		var match models.Match
		if err := db.First(&match, "id = ?", matchID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "match not found",
			})
		}
		var round models.Round
		if err := db.First(&round, "id = ?", match.RoundID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "round not found",
			})
		}
		if round.Status == models.RoundStatusCompleted {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "round is completed; scores are locked",
			})
		}
		if !canEnterMatchScores(c, db, round, match) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "not authorized to enter scores for this match",
			})
		}

		course, err := loadCourseForRound(db, round)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load course",
			})
		}
		if holeNumber < 1 || holeNumber > course.HoleCount {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "hole number out of range for this course",
			})
		}

		var req MatchHoleRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if (req.SideAScore != nil && *req.SideAScore < 1) || (req.SideBScore != nil && *req.SideBScore < 1) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "scores must be positive",
			})
		}

		entererIDStr, _ := c.Locals("userID").(string)
		entererID, _ := uuid.Parse(entererIDStr)

		var state scoring.MatchState
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if req.SideAScore == nil && req.SideBScore == nil {
				err := tx.Where("match_id = ? AND hole_number = ?", match.ID, holeNumber).
					Delete(&models.MatchHole{}).Error
				if err != nil {
					return err
				}
			} else {
				hole := models.MatchHole{
					MatchID:    match.ID,
					HoleNumber: holeNumber,
					SideAScore: req.SideAScore,
					SideBScore: req.SideBScore,
					EnteredBy:  entererID,
				}
				err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "match_id"}, {Name: "hole_number"}},
					DoUpdates: clause.AssignmentColumns([]string{"side_a_score", "side_b_score", "entered_by", "updated_at"}),
				}).Create(&hole).Error
				if err != nil {
					return err
				}
			}

			state, err = recomputeMatch(tx, course.HoleCount, &match)
			return err
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save match hole",
			})
		}

		hub.Broadcast(websocket.Event{
			RoundID: round.ID.String(),
			Kind:    websocket.EventMatch,
			Payload: fiber.Map{
				"match_id": match.ID.String(),
				"state":    state,
			},
		})

		db.Preload("SideATeam").Preload("SideBTeam").First(&match, "id = ?", match.ID)
		return c.JSON(matchResponse(db, match, state.Holes))
	}
}

// canEnterMatchScores: a player in the match, or an organizer.
func canEnterMatchScores(c *fiber.Ctx, db *gorm.DB, round models.Round, match models.Match) bool {
	userIDStr, _ := c.Locals("userID").(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return false
	}

	var count int64
	db.Model(&models.MatchPlayer{}).
		Joins("JOIN round_players ON round_players.id = match_players.round_player_id").
		Joins("JOIN tournament_players ON tournament_players.id = round_players.tournament_player_id").
		Where("match_players.match_id = ? AND tournament_players.user_id = ?", match.ID, userID).
		Count(&count)
	if count > 0 {
		return true
	}
	return callerIsOrganizer(c, db, round.TournamentID)
}
