// Package webapi wires the HTTP surface. Handlers are organized per resource:
// - system: banner, health and diagnostics
// - user: user creation and lookup by alias
// - transaction: ledger lines
// - account: account listing and balances
// - loan: loans, notifications and the manual overdue sweep
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/finhub/pkg/app"
	"github.com/amirasaad/finhub/pkg/config"
	accountweb "github.com/amirasaad/finhub/webapi/account"
	"github.com/amirasaad/finhub/webapi/common"
	loanweb "github.com/amirasaad/finhub/webapi/loan"
	systemweb "github.com/amirasaad/finhub/webapi/system"
	transactionweb "github.com/amirasaad/finhub/webapi/transaction"
	userweb "github.com/amirasaad/finhub/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	cfg := a.Config
	if cfg == nil {
		cfg = &config.App{}
	}

	fiberApp := fiber.New(fiber.Config{
		AppName: "finhub",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	fiberApp.Use(recover.New())
	fiberApp.Use(cors.New(corsConfig(cfg.Cors)))
	if cfg.RateLimit != nil && cfg.RateLimit.MaxRequests > 0 {
		fiberApp.Use(limiter.New(limiter.Config{
			Max:          cfg.RateLimit.MaxRequests,
			Expiration:   cfg.RateLimit.Window,
			KeyGenerator: ClientIP,
			LimitReached: func(c *fiber.Ctx) error {
				return common.ProblemDetailsJSON(
					c,
					"Too Many Requests",
					errors.New("rate limit exceeded"),
					fiber.StatusTooManyRequests,
				)
			},
		}))
	}
	fiberApp.Use(logger.New())

	systemweb.Routes(fiberApp, a.Deps.Repos)
	userweb.Routes(fiberApp, a.UserService)
	transactionweb.Routes(fiberApp, a.TransactionService)
	accountweb.Routes(fiberApp, a.AccountService)
	loanweb.Routes(fiberApp, a.LoanService, a.NotificationService, cfg)
	return fiberApp
}

// ClientIP keys rate limiting on the first X-Forwarded-For hop, then
// X-Real-IP, then the peer address.
func ClientIP(c *fiber.Ctx) string {
	if forwardedFor := c.Get(fiber.HeaderXForwardedFor); forwardedFor != "" {
		if first, _, found := strings.Cut(forwardedFor, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}

func corsConfig(cfg *config.Cors) cors.Config {
	origins := "*"
	if cfg != nil {
		if list := config.SplitList(cfg.AllowOrigins); len(list) > 0 {
			origins = strings.Join(list, ",")
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
	}
}
