package loan

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/finhub/pkg/domain"
	"github.com/amirasaad/finhub/pkg/domain/loan"
	"github.com/amirasaad/finhub/pkg/domain/notification"
)

// CreateRequest is the body of POST /api/loans.
type CreateRequest struct {
	LenderID   string  `json:"lender_id" validate:"required,uuid"`
	BorrowerID string  `json:"borrower_id" validate:"required,uuid"`
	Amount     float64 `json:"amount" validate:"gt=0"`
	DueDate    string  `json:"due_date" validate:"required"`
}

// RepayRequest is the body of POST /api/loans/repay.
type RepayRequest struct {
	LoanID string `json:"loan_id" validate:"required,uuid"`
}

// ParseDueDate accepts an RFC 3339 timestamp or a bare date, read as
// midnight UTC.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: due_date must be RFC 3339 or YYYY-MM-DD", domain.ErrValidation)
}

type Response struct {
	ID         string     `json:"id"`
	LenderID   string     `json:"lender_id"`
	BorrowerID string     `json:"borrower_id"`
	Amount     float64    `json:"amount"`
	DueDate    time.Time  `json:"due_date"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	RepaidAt   *time.Time `json:"repaid_at"`
}

func ToResponse(l *loan.Loan) *Response {
	return &Response{
		ID:         l.ID.String(),
		LenderID:   l.LenderID.String(),
		BorrowerID: l.BorrowerID.String(),
		Amount:     l.Amount.InexactFloat64(),
		DueDate:    l.DueAt,
		Status:     string(l.Status),
		CreatedAt:  l.CreatedAt,
		RepaidAt:   l.RepaidAt,
	}
}

func ToResponses(loans []*loan.Loan) []*Response {
	out := make([]*Response, 0, len(loans))
	for _, l := range loans {
		out = append(out, ToResponse(l))
	}
	return out
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	LoanID    string    `json:"loan_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

func ToNotificationResponses(ns []*notification.Notification) []*NotificationResponse {
	out := make([]*NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, &NotificationResponse{
			ID:        n.ID.String(),
			UserID:    n.RecipientID.String(),
			LoanID:    n.LoanID.String(),
			Type:      string(n.Kind),
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
			Read:      n.Read,
		})
	}
	return out
}
