// roles.go — role-based access control. The platform has three global
// roles (admin, manager, user); routes that require specific permissions
// apply this middleware after Auth.
package middleware

import "github.com/gofiber/fiber/v2"

// RequireRole returns a middleware that allows only users whose role matches
// one of the provided roles, responding 403 Forbidden otherwise:
//
//	api.Post("/tournaments", middleware.RequireRole("admin", "manager"), handlers.CreateTournament(db))
//
// RequireRole must run AFTER Auth, because Auth is what populates the
// "userRole" value in the request context.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, ok := c.Locals("userRole").(string)
		if !ok || userRole == "" {
			// No role in context: Auth wasn't applied or failed silently.
			// 403 rather than 401 — the user may be authenticated but
			// still have no role set.
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}

		for _, role := range roles {
			if userRole == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}
}
