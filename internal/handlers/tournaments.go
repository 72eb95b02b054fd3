// tournaments.go — the /api/v1/tournaments routes: listing, creation, and
// player registration.
//
// --- Permission model ---
// Two layers of access control:
//
//  1. Route-level (middleware.RequireRole): only "admin" and "manager"
//     global roles may create tournaments. Any authenticated user can read.
//
//  2. Resource-level (isTournamentOrganizer, defined below): who may modify
//     a SPECIFIC tournament — schedule rounds, register players, override
//     scores.
//     - "admin" global role → any tournament.
//     - everyone else → only tournaments where they hold the "organizer"
//       tournament_player role (granted automatically to the creator, or
//       manually by an existing organizer).
//
// A manager therefore cannot touch tournaments created by other people
// unless one of that tournament's organizers has added them as an organizer.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fairwaycup/api/internal/models"
)

// TournamentResponse is what the app receives for a tournament. A dedicated
// response struct (instead of the raw GORM model) controls exactly which
// fields serialize and allows computed fields like PlayerCount.
type TournamentResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	Status       string   `json:"status"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	TargetPoints *float64 `json:"target_points"`
	CreatorName  string   `json:"creator_name"`
	PlayerCount  int64    `json:"player_count"`
	CreatedAt    string   `json:"created_at"`
}

// CreateTournamentRequest is the JSON body for POST /api/v1/tournaments.
type CreateTournamentRequest struct {
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	StartDate    *string  `json:"start_date"` // "YYYY-MM-DD"
	EndDate      *string  `json:"end_date"`
	TargetPoints *float64 `json:"target_points"` // Match-play clinch line, e.g. 14.5
}

// RegisterPlayerRequest is the JSON body for POST /tournaments/:id/players.
type RegisterPlayerRequest struct {
	UserID   string   `json:"user_id"`
	Role     string   `json:"role"`     // "organizer" or "player"; defaults to player
	Handicap *float64 `json:"handicap"` // Fractional index, e.g. 12.4; null = plays gross
}

// formatOptionalDate converts a *time.Time to a *string in "2006-01-02"
// format, preserving nil.
func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("2006-01-02")
	return &s
}

// parseOptionalDate parses an optional "YYYY-MM-DD" string; nil or empty
// input stays nil, a malformed non-empty string is an error.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func tournamentResponse(t models.Tournament, playerCount int64) TournamentResponse {
	return TournamentResponse{
		ID:           t.ID.String(),
		Name:         t.Name,
		Description:  t.Description,
		Status:       string(t.Status),
		StartDate:    formatOptionalDate(t.StartDate),
		EndDate:      formatOptionalDate(t.EndDate),
		TargetPoints: t.TargetPoints,
		CreatorName:  t.Creator.DisplayName,
		PlayerCount:  playerCount,
		CreatedAt:    t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GetTournaments returns a handler for GET /api/v1/tournaments.
// Admins see every tournament; everyone else sees only tournaments they are
// registered in.
func GetTournaments(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr, _ := c.Locals("userID").(string)
		userRole, _ := c.Locals("userRole").(string)

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid user ID",
			})
		}

		var tournaments []models.Tournament
		query := db.Preload("Creator")

		if userRole == "admin" {
			query = query.Find(&tournaments)
		} else {
			query = query.
				Joins("JOIN tournament_players ON tournament_players.tournament_id = tournaments.id").
				Where("tournament_players.user_id = ?", userID).
				Find(&tournaments)
		}
		if query.Error != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch tournaments",
			})
		}

		response := make([]TournamentResponse, 0, len(tournaments))
		for _, t := range tournaments {
			var playerCount int64
			db.Model(&models.TournamentPlayer{}).
				Where("tournament_id = ?", t.ID).
				Count(&playerCount)
			response = append(response, tournamentResponse(t, playerCount))
		}

		return c.JSON(response)
	}
}

// CreateTournament returns a handler for POST /api/v1/tournaments.
// Requires "admin" or "manager" (enforced by RequireRole on the route).
// Creates the tournament and registers the creator as its first organizer.
func CreateTournament(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr, _ := c.Locals("userID").(string)
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid user ID",
			})
		}

		var req CreateTournamentRequest
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

		startDate, err := parseOptionalDate(req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "start_date must be in YYYY-MM-DD format",
			})
		}
		endDate, err := parseOptionalDate(req.EndDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "end_date must be in YYYY-MM-DD format",
			})
		}

		// Transaction: the tournament and the creator's organizer row
		// succeed or fail together — no orphaned tournaments.
		var created models.Tournament
		txErr := db.Transaction(func(tx *gorm.DB) error {
			tournament := models.Tournament{
				Name:         req.Name,
				Description:  req.Description,
				Status:       models.TournamentStatusUpcoming,
				StartDate:    startDate,
				EndDate:      endDate,
				TargetPoints: req.TargetPoints,
				CreatedBy:    userID,
			}
			if err := tx.Create(&tournament).Error; err != nil {
				return err
			}

			player := models.TournamentPlayer{
				TournamentID: tournament.ID,
				UserID:       userID,
				Role:         models.TournamentPlayerRoleOrganizer,
				Status:       models.TournamentPlayerStatusRegistered,
			}
			if err := tx.Create(&player).Error; err != nil {
				return err
			}

			created = tournament
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create tournament",
			})
		}

		var creator models.User
		db.First(&creator, "id = ?", userID)
		created.Creator = creator

		return c.Status(fiber.StatusCreated).JSON(tournamentResponse(created, 1))
	}
}

// RegisterPlayer returns a handler for POST /tournaments/:id/players.
// Organizer-only. Adds a user to the tournament with an optional handicap
// index; the handicap recorded here is what every handicap allocation in
// this tournament reads.
func RegisterPlayer(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournamentID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament ID",
			})
		}

		userIDStr, _ := c.Locals("userID").(string)
		userRole, _ := c.Locals("userRole").(string)
		callerID, err := uuid.Parse(userIDStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid user ID",
			})
		}
		if !isTournamentOrganizer(db, tournamentID, callerID, userRole) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "not authorized to manage this tournament",
			})
		}

		var req RegisterPlayerRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		targetUserID, err := uuid.Parse(req.UserID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "user_id is required",
			})
		}
		if req.Handicap != nil && *req.Handicap < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "handicap must be non-negative",
			})
		}

		role := models.TournamentPlayerRolePlayer
		if req.Role == string(models.TournamentPlayerRoleOrganizer) {
			role = models.TournamentPlayerRoleOrganizer
		}

		player := models.TournamentPlayer{
			TournamentID: tournamentID,
			UserID:       targetUserID,
			Role:         role,
			Status:       models.TournamentPlayerStatusRegistered,
			Handicap:     req.Handicap,
		}
		if err := db.Create(&player).Error; err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "user is already registered for this tournament",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":            player.ID.String(),
			"tournament_id": tournamentID.String(),
			"user_id":       targetUserID.String(),
			"role":          string(role),
			"handicap":      req.Handicap,
		})
	}
}

// isTournamentOrganizer reports whether a user may manage a specific
// tournament: global admins always, everyone else (including global
// managers) only when they hold the organizer tournament_player role for
// THIS tournament. Call at the top of any handler that mutates a
// tournament's data.
func isTournamentOrganizer(db *gorm.DB, tournamentID, userID uuid.UUID, userRole string) bool {
	if userRole == "admin" {
		return true
	}

	var player models.TournamentPlayer
	err := db.Where("tournament_id = ? AND user_id = ?", tournamentID, userID).First(&player).Error
	return err == nil && player.Role == models.TournamentPlayerRoleOrganizer
}
