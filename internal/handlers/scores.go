// scores.go — raw score entry for individual (stroke / stableford /
// best-ball) play.
//
// Submissions are idempotent upserts keyed on (round_player, hole): sending
// hole 7 twice just replaces hole 7. Strokes of 0 deletes the row, which
// returns the hole to "unplayed" — a state the engine treats very differently
// from a recorded score. After every write the player's entire derived record
// is recomputed from the raw rows inside the same transaction, then the
// round's live leaderboard is rebroadcast.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fairwaycup/api/internal/models"
	"github.com/fairwaycup/api/internal/websocket"
)

// ScoreEntry is one hole in a score submission. Strokes 0 deletes any
// recorded score for the hole.
type ScoreEntry struct {
	HoleNumber int `json:"hole_number"`
	Strokes    int `json:"strokes"`
}

// SubmitScoresRequest is the JSON body for PUT /rounds/:id/players/:playerID/scores.
type SubmitScoresRequest struct {
	Scores []ScoreEntry `json:"scores"`
}

// StablefordOverrideRequest is the JSON body for
// PUT /rounds/:id/players/:playerID/stableford-override. A null points value
// clears the override and the computed total takes effect again.
type StablefordOverrideRequest struct {
	Points *int `json:"points"`
}

// RoundPlayerResponse is a player's derived scoring record for a round.
type RoundPlayerResponse struct {
	ID               string  `json:"id"`
	RoundID          string  `json:"round_id"`
	PlayerName       string  `json:"player_name"`
	TotalGross       int     `json:"total_gross"`
	TotalToPar       int     `json:"total_to_par"`
	HolesPlayed      int     `json:"holes_played"`
	HandicapStrokes  int     `json:"handicap_strokes"`
	TotalNet         *int    `json:"total_net"`
	NetToPar         *int    `json:"net_to_par"`
	StablefordPoints *int    `json:"stableford_points"`
	TeamID           *string `json:"team_id"`
}

func roundPlayerResponse(rp models.RoundPlayer) RoundPlayerResponse {
	resp := RoundPlayerResponse{
		ID:               rp.ID.String(),
		RoundID:          rp.RoundID.String(),
		PlayerName:       rp.TournamentPlayer.User.DisplayName,
		TotalGross:       rp.TotalGross,
		TotalToPar:       rp.TotalToPar,
		HolesPlayed:      rp.HolesPlayed,
		HandicapStrokes:  rp.HandicapStrokes,
		TotalNet:         rp.TotalNet,
		NetToPar:         rp.NetToPar,
		StablefordPoints: rp.StablefordPoints,
	}
	if rp.TeamID != nil {
		id := rp.TeamID.String()
		resp.TeamID = &id
	}
	return resp
}

// loadRoundPlayer fetches a RoundPlayer (with its tournament registration and
// user) and verifies it belongs to the round in the URL.
func loadRoundPlayer(db *gorm.DB, roundID, playerID uuid.UUID) (models.RoundPlayer, error) {
	var rp models.RoundPlayer
	err := db.Preload("TournamentPlayer").Preload("TournamentPlayer.User").
		Where("id = ? AND round_id = ?", playerID, roundID).
		First(&rp).Error
	return rp, err
}

// canEnterScores: a player may enter their own scores; organizers may enter
// anyone's. This is the write path most users hit on the course, so the
// check is deliberately simple.
func canEnterScores(c *fiber.Ctx, db *gorm.DB, round models.Round, rp models.RoundPlayer) bool {
	userIDStr, _ := c.Locals("userID").(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return false
	}
	if rp.TournamentPlayer.UserID == userID {
		return true
	}
	return callerIsOrganizer(c, db, round.TournamentID)
}

// SubmitScores returns a handler for PUT /rounds/:id/players/:playerID/scores.
// Accepts a batch of per-hole entries, upserts/deletes the raw rows, and
// recomputes the player's derived record — all in one transaction.
func SubmitScores(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, ok := parseUUIDParam(c, "id")
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid round ID",
			})
		}
		playerID, ok := parseUUIDParam(c, "playerID")
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid player ID",
			})
		}

		var round models.Round
		if err := db.First(&round, "id = ?", roundID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "round not found",
			})
		}
		if round.Status == models.RoundStatusCompleted {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "round is completed; scores are locked",
			})
		}

		rp, err := loadRoundPlayer(db, roundID, playerID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "player is not in this round",
			})
		}
		if !canEnterScores(c, db, round, rp) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "not authorized to enter scores for this player",
			})
		}

		var req SubmitScoresRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if len(req.Scores) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "scores must not be empty",
			})
		}

		course, err := loadCourseForRound(db, round)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load course",
			})
		}
		holes := engineHoles(course.Holes)

		// Boundary validation: bad entries are rejected whole, before any
		// row is touched. Inside the engine an invalid stroke is merely
		// ignored, but the API never lets one into the table.
		for _, e := range req.Scores {
			if e.HoleNumber < 1 || e.HoleNumber > len(holes) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "hole_number out of range for this course",
				})
			}
			if e.Strokes < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "strokes must be positive (0 deletes the hole)",
				})
			}
		}

		entererIDStr, _ := c.Locals("userID").(string)
		entererID, _ := uuid.Parse(entererIDStr)

		txErr := db.Transaction(func(tx *gorm.DB) error {
			for _, e := range req.Scores {
				if e.Strokes == 0 {
					err := tx.Where("round_player_id = ? AND hole_number = ?", rp.ID, e.HoleNumber).
						Delete(&models.Score{}).Error
					if err != nil {
						return err
					}
					continue
				}
				score := models.Score{
					RoundPlayerID: rp.ID,
					HoleNumber:    e.HoleNumber,
					Strokes:       e.Strokes,
					EnteredBy:     entererID,
				}
				err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "round_player_id"}, {Name: "hole_number"}},
					DoUpdates: clause.AssignmentColumns([]string{"strokes", "entered_by", "updated_at"}),
				}).Create(&score).Error
				if err != nil {
					return err
				}
			}

			if err := recomputeRoundPlayer(tx, round, holes, &rp); err != nil {
				return err
			}

			// Best-ball team totals depend on member scores, so the
			// player's team recomputes in the same transaction.
			if rp.TeamID != nil {
				var team models.Team
				if err := tx.First(&team, "id = ?", *rp.TeamID).Error; err != nil {
					return err
				}
				if err := recomputeTeam(tx, round, holes, &team); err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save scores",
			})
		}

		broadcastLeaderboard(db, hub, round)

		return c.JSON(roundPlayerResponse(rp))
	}
}

// SetStablefordOverride returns a handler for
// PUT /rounds/:id/players/:playerID/stableford-override. Organizer-only: lets
// a committee correct a points total (rules decisions, concessions) without
// editing the underlying strokes. The override replaces the computed total
// entirely; passing null removes it.
func SetStablefordOverride(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, ok := parseUUIDParam(c, "id")
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid round ID",
			})
		}
		playerID, ok := parseUUIDParam(c, "playerID")
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid player ID",
			})
		}

		var round models.Round
		if err := db.First(&round, "id = ?", roundID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "round not found",
			})
		}
		if round.Format != models.ScoringFormatStableford {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "round is not scored as stableford",
			})
		}
		if !callerIsOrganizer(c, db, round.TournamentID) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "not authorized to manage this tournament",
			})
		}

		rp, err := loadRoundPlayer(db, roundID, playerID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "player is not in this round",
			})
		}

		var req StablefordOverrideRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.Points != nil && *req.Points < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "points must be non-negative",
			})
		}

		course, err := loadCourseForRound(db, round)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load course",
			})
		}
		holes := engineHoles(course.Holes)

		txErr := db.Transaction(func(tx *gorm.DB) error {
			err := tx.Model(&models.RoundPlayer{}).Where("id = ?", rp.ID).
				Update("stableford_override", req.Points).Error
			if err != nil {
				return err
			}
			rp.StablefordOverride = req.Points
			return recomputeRoundPlayer(tx, round, holes, &rp)
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to apply override",
			})
		}

		broadcastLeaderboard(db, hub, round)

		return c.JSON(roundPlayerResponse(rp))
	}
}

// GetRoundPlayers returns a handler for GET /rounds/:id/players: every
// player's derived record, unranked. Clients that want positions use the
// leaderboard endpoint.
func GetRoundPlayers(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, ok := parseUUIDParam(c, "id")
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid round ID",
			})
		}

		var players []models.RoundPlayer
		err := db.Preload("TournamentPlayer").Preload("TournamentPlayer.User").
			Where("round_id = ?", roundID).
			Find(&players).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch round players",
			})
		}

		response := make([]RoundPlayerResponse, 0, len(players))
		for _, rp := range players {
			response = append(response, roundPlayerResponse(rp))
		}
		return c.JSON(response)
	}
}
