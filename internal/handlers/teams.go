// teams.go — team management for best-ball, scramble, and match-play rounds.
//
// Teams belong to a round, not the tournament: compositions change day to
// day. Best-ball teams derive everything from their members' individual
// Score rows; scramble teams carry their own TeamScore stream because the
// whole team plays one ball and no individual rows exist.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fairwaycup/api/internal/models"
	"github.com/fairwaycup/api/internal/websocket"
)

// CreateTeamRequest is the JSON body for POST /rounds/:id/teams.
type CreateTeamRequest struct {
	Name           string   `json:"name"`
	Color          string   `json:"color"`
	RoundPlayerIDs []string `json:"round_player_ids"`
}

// SubmitTeamScoresRequest is the JSON body for PUT /teams/:id/scores.
// Same upsert/delete semantics as individual score entry.
type SubmitTeamScoresRequest struct {
	Scores []ScoreEntry `json:"scores"`
}

// TeamResponse is a team with its derived totals.
type TeamResponse struct {
	ID              string   `json:"id"`
	RoundID         string   `json:"round_id"`
	Name            string   `json:"name"`
	Color           string   `json:"color"`
	MemberNames     []string `json:"member_names"`
	TotalGross      int      `json:"total_gross"`
	TotalToPar      int      `json:"total_to_par"`
	HandicapStrokes int      `json:"handicap_strokes"`
	TotalNet        *int     `json:"total_net"`
	NetToPar        *int     `json:"net_to_par"`
}

func teamResponse(team models.Team, memberNames []string) TeamResponse {
	if memberNames == nil {
		memberNames = []string{}
	}
	return TeamResponse{
		ID:              team.ID.String(),
		RoundID:         team.RoundID.String(),
		Name:            team.Name,
		Color:           team.Color,
		MemberNames:     memberNames,
		TotalGross:      team.TotalGross,
		TotalToPar:      team.TotalToPar,
		HandicapStrokes: team.HandicapStrokes,
		TotalNet:        team.TotalNet,
		NetToPar:        team.NetToPar,
	}
}

// teamMemberNames loads display names for a team's members, for responses.
func teamMemberNames(db *gorm.DB, teamID uuid.UUID) []string {
	var names []string
	db.Model(&models.RoundPlayer{}).
		Select("users.display_name").
		Joins("JOIN team_members ON team_members.round_player_id = round_players.id").
		Joins("JOIN tournament_players ON tournament_players.id = round_players.tournament_player_id").
		Joins("JOIN users ON users.id = tournament_players.user_id").
		Where("team_members.team_id = ?", teamID).
		Scan(&names)
	return names
}

// CreateTeam returns a handler for POST /rounds/:id/teams. Organizer-only.
// Members must already be RoundPlayers in this round, and a player can only
// be on one team per round.
func CreateTeam(db *gorm.DB) fiber.Handler {
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
		if !callerIsOrganizer(c, db, round.TournamentID) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "not authorized to manage this tournament",
			})
		}

		var req CreateTeamRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "name is required",
			})
		}
		if len(req.RoundPlayerIDs) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "at least one member is required",
			})
		}

		memberIDs := make([]uuid.UUID, 0, len(req.RoundPlayerIDs))
		for _, s := range req.RoundPlayerIDs {
			id, err := uuid.Parse(s)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid round player ID in members",
				})
			}
			memberIDs = append(memberIDs, id)
		}

		var created models.Team
		txErr := db.Transaction(func(tx *gorm.DB) error {
			team := models.Team{
				RoundID: roundID,
				Name:    req.Name,
				Color:   req.Color,
			}
			if err := tx.Create(&team).Error; err != nil {
				return err
			}

			for _, rpID := range memberIDs {
				var rp models.RoundPlayer
				if err := tx.Where("id = ? AND round_id = ?", rpID, roundID).First(&rp).Error; err != nil {
					return err
				}
				if rp.TeamID != nil {
					return gorm.ErrDuplicatedKey
				}
				member := models.TeamMember{TeamID: team.ID, RoundPlayerID: rp.ID}
				if err := tx.Create(&member).Error; err != nil {
					return err
				}
				err := tx.Model(&models.RoundPlayer{}).Where("id = ?", rp.ID).
					Update("team_id", team.ID).Error
				if err != nil {
					return err
				}
			}

			created = team
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "members must be in this round and not already on a team",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(teamResponse(created, teamMemberNames(db, created.ID)))
	}
}

// GetRoundTeams returns a handler for GET /rounds/:id/teams.
func GetRoundTeams(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, ok := parseUUIDParam(c, "id")
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid round ID",
			})
		}

		var teams []models.Team
		if err := db.Where("round_id = ?", roundID).Find(&teams).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch teams",
			})
		}

		response := make([]TeamResponse, 0, len(teams))
		for _, team := range teams {
			response = append(response, teamResponse(team, teamMemberNames(db, team.ID)))
		}
		return c.JSON(response)
	}
}

// SubmitTeamScores returns a handler for PUT /teams/:id/scores: the scramble
// score stream. Only meaningful on scramble rounds — best-ball teams derive
// from individual scores and reject this endpoint.
func SubmitTeamScores(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, ok := parseUUIDParam(c, "id")
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid team ID",
			})
		}

		var team models.Team
		if err := db.First(&team, "id = ?", teamID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "team not found",
			})
		}
		var round models.Round
		if err := db.First(&round, "id = ?", team.RoundID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "round not found",
			})
		}
		if round.Format != models.ScoringFormatScramble {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "team score streams only apply to scramble rounds",
			})
		}
		if round.Status == models.RoundStatusCompleted {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "round is completed; scores are locked",
			})
		}
		if !canEnterTeamScores(c, db, round, team) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "not authorized to enter scores for this team",
			})
		}

		var req SubmitTeamScoresRequest
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
					err := tx.Where("team_id = ? AND hole_number = ?", team.ID, e.HoleNumber).
						Delete(&models.TeamScore{}).Error
					if err != nil {
						return err
					}
					continue
				}
				score := models.TeamScore{
					TeamID:     team.ID,
					HoleNumber: e.HoleNumber,
					Strokes:    e.Strokes,
					EnteredBy:  entererID,
				}
				err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "team_id"}, {Name: "hole_number"}},
					DoUpdates: clause.AssignmentColumns([]string{"strokes", "entered_by", "updated_at"}),
				}).Create(&score).Error
				if err != nil {
					return err
				}
			}
			return recomputeTeam(tx, round, holes, &team)
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save team scores",
			})
		}

		broadcastLeaderboard(db, hub, round)

		return c.JSON(teamResponse(team, teamMemberNames(db, team.ID)))
	}
}

// canEnterTeamScores: any member of the team, or an organizer.
func canEnterTeamScores(c *fiber.Ctx, db *gorm.DB, round models.Round, team models.Team) bool {
	userIDStr, _ := c.Locals("userID").(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return false
	}

	var count int64
	db.Model(&models.TeamMember{}).
		Joins("JOIN round_players ON round_players.id = team_members.round_player_id").
		Joins("JOIN tournament_players ON tournament_players.id = round_players.tournament_player_id").
		Where("team_members.team_id = ? AND tournament_players.user_id = ?", team.ID, userID).
		Count(&count)
	if count > 0 {
		return true
	}
	return callerIsOrganizer(c, db, round.TournamentID)
}
