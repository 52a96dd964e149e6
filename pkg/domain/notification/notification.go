package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind identifies why a notification was sent.
type Kind string

const (
	KindLoanCreated Kind = "loan_created"
	KindLoanRepaid  Kind = "loan_repaid"
	KindLoanOverdue Kind = "loan_overdue"
)

// Notification is an append-only message to a user about a loan.
type Notification struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	LoanID      uuid.UUID
	Kind        Kind
	Message     string
	CreatedAt   time.Time
	Read        bool
}

// New builds an unread notification.
func New(recipientID, loanID uuid.UUID, kind Kind, message string, at time.Time) *Notification {
	if at.IsZero() {
		at = time.Now()
	}
	return &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		LoanID:      loanID,
		Kind:        kind,
		Message:     message,
		CreatedAt:   at.UTC(),
	}
}

// BorrowerCreatedMessage is sent to the borrower when a loan is recorded.
func BorrowerCreatedMessage(amount decimal.Decimal, dueAt time.Time) string {
	return fmt.Sprintf("You received a loan of %s due on %s", amount.String(), dueAt.UTC().Format(time.RFC3339))
}

// LenderCreatedMessage is sent to the lender when a loan is recorded.
func LenderCreatedMessage(amount decimal.Decimal, borrowerID uuid.UUID, dueAt time.Time) string {
	return fmt.Sprintf("You lent %s to %s due on %s", amount.String(), borrowerID, dueAt.UTC().Format(time.RFC3339))
}

// RepaidMessage is sent to the lender when the borrower repays.
func RepaidMessage(lenderID, borrowerID uuid.UUID) string {
	return fmt.Sprintf("Loan from %s to %s has been repaid", lenderID, borrowerID)
}

// OverdueMessage is sent to the borrower by the overdue sweep.
func OverdueMessage(amount decimal.Decimal, dueAt time.Time) string {
	return fmt.Sprintf("Loan of %s is overdue. Due date was %s.", amount.String(), dueAt.UTC().Format(time.RFC3339))
}
