// Package loan serves loan creation, repayment, listing, notifications and
// the manual overdue sweep.
package loan

import (
	"errors"
	"time"

	"github.com/amirasaad/finhub/pkg/config"
	"github.com/amirasaad/finhub/pkg/domain"
	"github.com/amirasaad/finhub/pkg/middleware"
	loansvc "github.com/amirasaad/finhub/pkg/service/loan"
	notificationsvc "github.com/amirasaad/finhub/pkg/service/notification"
	"github.com/amirasaad/finhub/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func Routes(
	app *fiber.App,
	loanSvc *loansvc.Service,
	notificationSvc *notificationsvc.Service,
	cfg *config.App,
) {
	var jwtCfg *config.Jwt
	if cfg != nil && cfg.Auth != nil {
		jwtCfg = cfg.Auth.Jwt
	}

	api := app.Group("/api")
	api.Post("/loans", CreateLoan(loanSvc))
	api.Post("/create_loan", CreateLoan(loanSvc))
	api.Post("/loans/repay", RepayLoan(loanSvc))
	api.Post("/repay_loan", RepayLoan(loanSvc))
	api.Post("/loans/check_overdue", middleware.Protected(jwtCfg), CheckOverdue(loanSvc))
	api.Get("/loans/user/:user_id", ListLoans(loanSvc))
	api.Get("/notifications/:user_id", ListNotifications(notificationSvc))
}

func CreateLoan(loanSvc *loansvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateRequest](c)
		if input == nil {
			return err
		}
		dueAt, err := ParseDueDate(input.DueDate)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid request body", err)
		}
		l, err := loanSvc.Create(c.UserContext(), loansvc.CreateInput{
			LenderID:   uuid.MustParse(input.LenderID),
			BorrowerID: uuid.MustParse(input.BorrowerID),
			Amount:     decimal.NewFromFloat(input.Amount),
			DueAt:      dueAt,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create loan", err)
		}
		return c.Status(fiber.StatusCreated).JSON(ToResponse(l))
	}
}

// RepayLoan answers 404 for an unknown loan and 400 when it was already
// repaid.
func RepayLoan(loanSvc *loansvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RepayRequest](c)
		if input == nil {
			return err
		}
		l, err := loanSvc.Repay(c.UserContext(), uuid.MustParse(input.LoanID))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't repay loan", err)
		}
		return c.JSON(ToResponse(l))
	}
}

func ListLoans(loanSvc *loansvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loans, err := loanSvc.ListForUser(c.UserContext(), c.Params("user_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list loans", err)
		}
		return c.JSON(ToResponses(loans))
	}
}

func ListNotifications(notificationSvc *notificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ns, err := notificationSvc.ListForUser(c.UserContext(), c.Params("user_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list notifications", err)
		}
		return c.JSON(ToNotificationResponses(ns))
	}
}

// CheckOverdue runs one sweep with the current time. Without a reachable
// store there is nothing to sweep and the call still reports ok.
func CheckOverdue(loanSvc *loansvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := loanSvc.SweepOverdue(c.UserContext(), time.Now().UTC())
		if errors.Is(err, domain.ErrStoreUnavailable) {
			log.Warnf("manual overdue sweep skipped: %v", err)
			return c.JSON(fiber.Map{"status": "ok", "transitioned": res.Transitioned})
		}
		if err != nil {
			log.Errorf("manual overdue sweep: %v", err)
			return common.ProblemDetailsJSON(c, "Overdue check failed", err)
		}
		return c.JSON(fiber.Map{"status": "ok", "transitioned": res.Transitioned})
	}
}
