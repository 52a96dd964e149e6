package user

import (
	usersvc "github.com/amirasaad/finhub/pkg/service/user"
	"github.com/amirasaad/finhub/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func Routes(app *fiber.App, userSvc *usersvc.Service) {
	api := app.Group("/api/users")
	api.Post("/", CreateUser(userSvc))
	api.Get("/", ListUsers(userSvc))
	api.Get("/:user_id", GetUser(userSvc))
}

// CreateUser returns the existing user for the clerk id or email, or creates
// one. Both cases answer 201.
func CreateUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateRequest](c)
		if input == nil {
			return err
		}
		u, created, err := userSvc.CreateOrGet(c.UserContext(), input.ClerkUserID, input.Email, input.Name)
		if err != nil {
			log.Errorf("create user: %v", err)
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		if !created {
			log.Debugf("user %s already exists", u.ID)
		}
		return c.Status(fiber.StatusCreated).JSON(ToResponse(u))
	}
}

func ListUsers(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := userSvc.List(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list users", err)
		}
		return c.JSON(ToResponses(users))
	}
}

// GetUser looks a user up by clerk id or email.
func GetUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := userSvc.Get(c.UserContext(), c.Params("user_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get user", err)
		}
		return c.JSON(ToResponse(u))
	}
}
