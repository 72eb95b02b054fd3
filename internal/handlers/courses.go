// courses.go — the /api/v1/courses routes. A course is just what scoring
// needs: a name for display plus per-hole par and stroke index. Yardage is
// carried for the scorecard view but nothing computes with it.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fairwaycup/api/internal/models"
)

// HoleRequest is one hole in a course creation payload.
type HoleRequest struct {
	Number      int  `json:"number"`
	Par         int  `json:"par"`
	StrokeIndex int  `json:"stroke_index"` // 0 = not assigned; ordinal fallback applies
	Yardage     *int `json:"yardage"`
}

// CreateCourseRequest is the JSON body for POST /api/v1/courses.
type CreateCourseRequest struct {
	Name  string        `json:"name"`
	City  string        `json:"city"`
	State string        `json:"state"`
	Holes []HoleRequest `json:"holes"`
}

// HoleResponse mirrors HoleRequest with the stored ID.
type HoleResponse struct {
	ID          string `json:"id"`
	Number      int    `json:"number"`
	Par         int    `json:"par"`
	StrokeIndex int    `json:"stroke_index"`
	Yardage     *int   `json:"yardage"`
}

// CourseResponse is a course with its holes in hole order.
type CourseResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	City      string         `json:"city"`
	State     string         `json:"state"`
	HoleCount int            `json:"hole_count"`
	Holes     []HoleResponse `json:"holes"`
}

func courseResponse(course models.Course) CourseResponse {
	resp := CourseResponse{
		ID:        course.ID.String(),
		Name:      course.Name,
		City:      course.City,
		State:     course.State,
		HoleCount: course.HoleCount,
		Holes:     make([]HoleResponse, 0, len(course.Holes)),
	}
	for _, h := range course.Holes {
		resp.Holes = append(resp.Holes, HoleResponse{
			ID:          h.ID.String(),
			Number:      h.Number,
			Par:         h.Par,
			StrokeIndex: h.StrokeIndex,
			Yardage:     h.Yardage,
		})
	}
	return resp
}

// GetCourses returns a handler for GET /api/v1/courses: every course with
// its holes, for course pickers and scorecard rendering.
func GetCourses(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var courses []models.Course
		err := db.Preload("Holes", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).Find(&courses).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch courses",
			})
		}

		response := make([]CourseResponse, 0, len(courses))
		for _, course := range courses {
			response = append(response, courseResponse(course))
		}
		return c.JSON(response)
	}
}

// CreateCourse returns a handler for POST /api/v1/courses. Requires "admin"
// or "manager" (route-level RequireRole). The course and all of its holes
// are created in one transaction.
func CreateCourse(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateCourseRequest
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
		if len(req.Holes) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "at least one hole is required",
			})
		}
		seen := make(map[int]bool, len(req.Holes))
		for _, h := range req.Holes {
			if h.Number < 1 || h.Number > len(req.Holes) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "hole numbers must be 1..N with no gaps",
				})
			}
			if seen[h.Number] {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "duplicate hole number",
				})
			}
			seen[h.Number] = true
			if h.Par < 3 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "par must be at least 3",
				})
			}
		}

		var created models.Course
		txErr := db.Transaction(func(tx *gorm.DB) error {
			course := models.Course{
				Name:      req.Name,
				City:      req.City,
				State:     req.State,
				HoleCount: len(req.Holes),
			}
			if err := tx.Create(&course).Error; err != nil {
				return err
			}

			for _, h := range req.Holes {
				hole := models.Hole{
					CourseID:    course.ID,
					Number:      h.Number,
					Par:         h.Par,
					StrokeIndex: h.StrokeIndex,
					Yardage:     h.Yardage,
				}
				if err := tx.Create(&hole).Error; err != nil {
					return err
				}
				course.Holes = append(course.Holes, hole)
			}

			created = course
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create course",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(courseResponse(created))
	}
}

// loadCourseForRound fetches a round's course with holes ordered by number.
// Shared by every handler that needs engine input.
func loadCourseForRound(db *gorm.DB, round models.Round) (models.Course, error) {
	var course models.Course
	err := db.Preload("Holes", func(db *gorm.DB) *gorm.DB {
		return db.Order("number ASC")
	}).First(&course, "id = ?", round.CourseID).Error
	return course, err
}

// parseUUIDParam is the common "read a uuid route param" helper.
func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}
