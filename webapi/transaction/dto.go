package transaction

import (
	"time"

	"github.com/amirasaad/finhub/pkg/domain/transaction"
)

// CreateRequest is the body of POST /api/transactions.
type CreateRequest struct {
	Amount          float64 `json:"amount" validate:"gte=0"`
	Category        string  `json:"category" validate:"required,max=100"`
	Description     string  `json:"description" validate:"max=500"`
	TransactionType string  `json:"transaction_type" validate:"required,oneof=income expense"`
}

type Response struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Amount          float64   `json:"amount"`
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date"`
	TransactionType string    `json:"transaction_type"`
}

func ToResponse(tx *transaction.Transaction) *Response {
	return &Response{
		ID:              tx.ID.String(),
		UserID:          tx.UserID.String(),
		Amount:          tx.Amount.InexactFloat64(),
		Category:        tx.Category,
		Description:     tx.Description,
		Date:            tx.OccurredAt,
		TransactionType: tx.Kind.APIValue(),
	}
}

func ToResponses(txs []*transaction.Transaction) []*Response {
	out := make([]*Response, 0, len(txs))
	for _, tx := range txs {
		out = append(out, ToResponse(tx))
	}
	return out
}
