package transaction

import (
	txsvc "github.com/amirasaad/finhub/pkg/service/transaction"
	"github.com/amirasaad/finhub/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func Routes(app *fiber.App, txSvc *txsvc.Service) {
	api := app.Group("/api/transactions")
	api.Post("/", CreateTransaction(txSvc))
	api.Get("/user/:user_id", ListTransactions(txSvc))
}

// CreateTransaction books a transaction for the user named by the user_id
// query parameter.
func CreateTransaction(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		alias := c.Query("user_id")
		if alias == "" {
			return common.ProblemDetailsJSON(c, "Invalid request", nil, "user_id query parameter is required", fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[CreateRequest](c)
		if input == nil {
			return err
		}
		tx, err := txSvc.Create(c.UserContext(), alias, txsvc.CreateInput{
			Amount:      decimal.NewFromFloat(input.Amount),
			Type:        input.TransactionType,
			Category:    input.Category,
			Description: input.Description,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create transaction", err)
		}
		return c.Status(fiber.StatusCreated).JSON(ToResponse(tx))
	}
}

func ListTransactions(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txs, err := txSvc.ListForUser(c.UserContext(), c.Params("user_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list transactions", err)
		}
		return c.JSON(ToResponses(txs))
	}
}
