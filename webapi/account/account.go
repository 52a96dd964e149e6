package account

import (
	accountsvc "github.com/amirasaad/finhub/pkg/service/account"
	"github.com/amirasaad/finhub/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, accountSvc *accountsvc.Service) {
	api := app.Group("/api/accounts")
	api.Get("/user/:user_id", ListAccounts(accountSvc))
	api.Get("/default/:user_id", DefaultAccount(accountSvc))
	api.Get("/balance/:user_id", Balance(accountSvc))
}

func ListAccounts(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accounts, err := accountSvc.ListForUser(c.UserContext(), c.Params("user_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list accounts", err)
		}
		return c.JSON(ToResponses(accounts))
	}
}

// DefaultAccount answers null when the user has no default account.
func DefaultAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := accountSvc.Default(c.UserContext(), c.Params("user_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get default account", err)
		}
		if a == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString("null")
		}
		return c.JSON(ToResponse(a))
	}
}

// Balance sums every account unless total=false, in which case only the
// default account counts.
func Balance(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		total := c.QueryBool("total", true)
		userID, balance, err := accountSvc.Balance(c.UserContext(), c.Params("user_id"), total)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't compute balance", err)
		}
		key := "default_balance"
		if total {
			key = "total_balance"
		}
		return c.JSON(fiber.Map{"userId": userID.String(), key: balance.InexactFloat64()})
	}
}
