// Package system serves the liveness and diagnostics endpoints.
package system

import (
	"github.com/amirasaad/finhub/pkg/config"
	"github.com/amirasaad/finhub/pkg/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Banner is returned by the root endpoint.
const Banner = "Financial Management API is running"

// EnvKeys are the settings reported by /debug-env. Only presence is
// reported, never values.
var EnvKeys = []string{
	"DATABASE_DRIVER",
	"DATABASE_URL",
	"EVENT_BUS_DRIVER",
	"EVENT_BUS_REDIS_URL",
	"EVENT_BUS_KAFKA_BROKERS",
	"AUTH_JWT_SECRET",
}

func Routes(app *fiber.App, repos repository.Provider) {
	app.Get("/", Root())
	app.Get("/health", Health())
	app.Get("/test-db", TestDB(repos))
	app.Get("/debug-env", DebugEnv())
}

func Root() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": Banner})
	}
}

func Health() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}
}

// TestDB reads at most one user row. It always answers 200; a failing store
// is reported in the body.
func TestDB(repos repository.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := repos.UserRepository().List(c.UserContext(), 1)
		if err != nil {
			log.Errorf("store probe failed: %v", err)
			return c.JSON(fiber.Map{"status": "Database connection error", "error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "Database connected", "users_rows_seen": len(users)})
	}
}

func DebugEnv() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(config.Presence(EnvKeys...))
	}
}
