// Package middleware contains HTTP middleware for the Fairway Cup API —
// cross-cutting concerns that run on every request before the route
// handlers: authentication and role-based access control.
package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/fairwaycup/api/internal/config"
	"github.com/fairwaycup/api/internal/models"
)

// Claims is the data we expect inside an auth token payload: the standard
// registered claims (Subject = provider user ID, expiry) plus the custom
// claims configured in the identity provider's JWT template:
//
//	"role":  the user's permission level ("admin", "manager", "user")
//	"email": primary email, used to populate our users table
//	"name":  display name for our users table
type Claims struct {
	jwt.RegisteredClaims
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Auth returns a Fiber middleware that:
//  1. Validates the JWT from the "Authorization: Bearer <token>" header
//  2. Finds the matching user in our database, creating one on first visit
//     ("lazy user sync")
//  3. Syncs the user's role from the token into the database
//  4. Stores the user's internal UUID and role in the request context
//     (c.Locals) so downstream handlers never re-parse the token
func Auth(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid authorization header",
			})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		// TODO: replace ParseUnverified with full JWKS signature
		// verification before production — ParseUnverified skips the
		// signature check, which is only acceptable in development.
		token, _, err := jwt.NewParser().ParseUnverified(tokenStr, &Claims{})
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token claims",
			})
		}

		providerUserID := claims.Subject
		if providerUserID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "token missing subject",
			})
		}

		role := roleFromClaim(claims.Role)

		// Placeholder email/name in case the JWT template doesn't include
		// the custom claims yet — deterministic and unique per user.
		email := claims.Email
		if email == "" {
			email = fmt.Sprintf("%s@clerk.local", providerUserID)
		}
		name := claims.Name
		if name == "" {
			name = "User"
		}

		var user models.User
		result := db.Where("clerk_id = ?", providerUserID).First(&user)

		if result.Error != nil {
			if result.Error != gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "database error",
				})
			}

			// First visit: create the user row.
			user = models.User{
				ClerkID:     &providerUserID,
				DisplayName: name,
				Email:       email,
				Role:        role,
			}
			if err := db.Create(&user).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to create user record",
				})
			}
		} else {
			// Sync the role in case it changed at the identity provider.
			if user.Role != role && claims.Role != "" {
				db.Model(&user).Update("role", role)
				user.Role = role
			}
		}

		c.Locals("userID", user.ID.String())
		c.Locals("userRole", string(user.Role))

		return c.Next()
	}
}

// roleFromClaim converts the raw role string from the token into our typed
// UserRole, defaulting to the least-privileged role when missing or unknown.
func roleFromClaim(s string) models.UserRole {
	switch s {
	case "admin":
		return models.UserRoleAdmin
	case "manager":
		return models.UserRoleManager
	default:
		return models.UserRoleUser
	}
}
