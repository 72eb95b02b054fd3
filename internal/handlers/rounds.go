// rounds.go — round scheduling and lifecycle.
//
// A round's status only ever moves forward: created → in_progress →
// completed. The completed state matters beyond display — tournament-wide
// standings and match-play point totals only aggregate completed rounds, so
// marking a round completed is what publishes its results upward.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fairwaycup/api/internal/models"
)

// CreateRoundRequest is the JSON body for POST /tournaments/:id/rounds.
type CreateRoundRequest struct {
	CourseID      string `json:"course_id"`
	RoundNumber   int    `json:"round_number"`
	ScheduledDate string `json:"scheduled_date"` // "YYYY-MM-DD"
	Format        string `json:"format"`
	StrokesGiven  bool   `json:"strokes_given"`
}

// AddRoundPlayerRequest is the JSON body for POST /rounds/:id/players.
type AddRoundPlayerRequest struct {
	TournamentPlayerID string `json:"tournament_player_id"`
}

// UpdateRoundStatusRequest is the JSON body for PATCH /rounds/:id/status.
type UpdateRoundStatusRequest struct {
	Status string `json:"status"`
}

// RoundResponse is a round as the app sees it.
type RoundResponse struct {
	ID            string `json:"id"`
	TournamentID  string `json:"tournament_id"`
	CourseID      string `json:"course_id"`
	CourseName    string `json:"course_name"`
	RoundNumber   int    `json:"round_number"`
	ScheduledDate string `json:"scheduled_date"`
	Status        string `json:"status"`
	Format        string `json:"format"`
	StrokesGiven  bool   `json:"strokes_given"`
}

func roundResponse(r models.Round, courseName string) RoundResponse {
	return RoundResponse{
		ID:            r.ID.String(),
		TournamentID:  r.TournamentID.String(),
		CourseID:      r.CourseID.String(),
		CourseName:    courseName,
		RoundNumber:   r.RoundNumber,
		ScheduledDate: r.ScheduledDate.UTC().Format("2006-01-02"),
		Status:        string(r.Status),
		Format:        string(r.Format),
		StrokesGiven:  r.StrokesGiven,
	}
}

func validFormat(s string) bool {
	switch models.ScoringFormat(s) {
	case models.ScoringFormatStroke, models.ScoringFormatStableford,
		models.ScoringFormatBestBall, models.ScoringFormatScramble,
		models.ScoringFormatMatchPlay:
		return true
	}
	return false
}

// CreateRound returns a handler for POST /tournaments/:id/rounds.
// Organizer-only.
func CreateRound(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournamentID, ok := parseUUIDParam(c, "id")
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}
		if !callerIsOrganizer(c, db, tournamentID) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "not authorized to manage this tournament",
			})
		}

		var req CreateRoundRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		courseID, err := uuid.Parse(req.CourseID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "course_id is required",
			})
		}
		if !validFormat(req.Format) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "format must be one of stroke, stableford, best_ball, scramble, match_play",
			})
		}
		scheduled, err := time.Parse("2006-01-02", req.ScheduledDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "scheduled_date must be in YYYY-MM-DD format",
			})
		}

		var course models.Course
		if err := db.First(&course, "id = ?", courseID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "course not found",
			})
		}

		roundNumber := req.RoundNumber
		if roundNumber < 1 {
			roundNumber = 1
		}

		round := models.Round{
			TournamentID:  tournamentID,
			CourseID:      courseID,
			RoundNumber:   roundNumber,
			ScheduledDate: scheduled,
			Status:        models.RoundStatusCreated,
			Format:        models.ScoringFormat(req.Format),
			StrokesGiven:  req.StrokesGiven,
		}
		if err := db.Create(&round).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create round",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(roundResponse(round, course.Name))
	}
}

// GetRound returns a handler for GET /rounds/:id.
func GetRound(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, ok := parseUUIDParam(c, "id")
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid round ID",
			})
		}

		var round models.Round
		if err := db.Preload("Course").First(&round, "id = ?", roundID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "round not found",
			})
		}

		return c.JSON(roundResponse(round, round.Course.Name))
	}
}

// AddRoundPlayer returns a handler for POST /rounds/:id/players: enters a
// registered tournament player into a round. Organizer-only.
func AddRoundPlayer(db *gorm.DB) fiber.Handler {
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

		var req AddRoundPlayerRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		tpID, err := uuid.Parse(req.TournamentPlayerID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "tournament_player_id is required",
			})
		}

		// Boundary precondition: the player must belong to this round's
		// tournament. This check lives here, not in the engine.
		var tp models.TournamentPlayer
		if err := db.First(&tp, "id = ?", tpID).Error; err != nil || tp.TournamentID != round.TournamentID {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "player is not registered for this tournament",
			})
		}

		rp := models.RoundPlayer{
			RoundID:            roundID,
			TournamentPlayerID: tpID,
		}
		if err := db.Create(&rp).Error; err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "player is already in this round",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":                   rp.ID.String(),
			"round_id":             roundID.String(),
			"tournament_player_id": tpID.String(),
		})
	}
}

// UpdateRoundStatus returns a handler for PATCH /rounds/:id/status.
// Organizer-only. The lifecycle is monotonic: a round can move forward
// (created → in_progress → completed) but never back, so results that have
// been published into tournament aggregates can't silently un-publish.
func UpdateRoundStatus(db *gorm.DB) fiber.Handler {
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

		var req UpdateRoundStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		next := models.RoundStatus(req.Status)
		nextRank := models.RoundLifecycleRank(next)
		if nextRank < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "status must be one of created, in_progress, completed",
			})
		}
		if nextRank <= models.RoundLifecycleRank(round.Status) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "round status can only move forward",
			})
		}

		if err := db.Model(&round).Update("status", next).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update round status",
			})
		}
		round.Status = next

		var course models.Course
		db.First(&course, "id = ?", round.CourseID)
		return c.JSON(roundResponse(round, course.Name))
	}
}

// callerIsOrganizer reads the authenticated caller from the request context
// and checks tournament-level management permission.
func callerIsOrganizer(c *fiber.Ctx, db *gorm.DB, tournamentID uuid.UUID) bool {
	userIDStr, _ := c.Locals("userID").(string)
	userRole, _ := c.Locals("userRole").(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return false
	}
	return isTournamentOrganizer(db, tournamentID, userID, userRole)
}
