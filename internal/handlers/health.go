package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health: a lightweight liveness probe with no
// database query and no authentication, used by load balancers and
// container orchestrators to decide whether this instance gets traffic.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
