package loan

import (
	"fmt"
	"time"

	"github.com/amirasaad/finhub/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrLoanNotFound is returned when no loan has the requested id.
	ErrLoanNotFound = fmt.Errorf("loan %w", domain.ErrNotFound)
	// ErrAlreadyRepaid is returned when repaying a loan that is already repaid.
	ErrAlreadyRepaid = fmt.Errorf("loan already repaid: %w", domain.ErrConflict)
	// ErrAmountNotPositive is returned for zero or negative loan amounts.
	ErrAmountNotPositive = fmt.Errorf("%w: loan amount must be positive", domain.ErrValidation)
	// ErrSelfLoan is returned when lender and borrower are the same user.
	ErrSelfLoan = fmt.Errorf("%w: lender and borrower must differ", domain.ErrValidation)
	// ErrMissingParty is returned when lender or borrower is empty.
	ErrMissingParty = fmt.Errorf("%w: lender and borrower are required", domain.ErrValidation)
)

// Status of a loan. repaid is absorbing; overdue can still become repaid.
type Status string

const (
	StatusPending Status = "pending"
	StatusRepaid  Status = "repaid"
	StatusOverdue Status = "overdue"
)

// Statuses a repayment may not start from.
var NotRepayable = []Status{StatusRepaid}

// Statuses the overdue sweep never touches.
var NotSweepable = []Status{StatusRepaid, StatusOverdue}

// Loan is money lent by one user to another.
type Loan struct {
	ID         uuid.UUID
	LenderID   uuid.UUID
	BorrowerID uuid.UUID
	Amount     decimal.Decimal
	DueAt      time.Time
	Status     Status
	CreatedAt  time.Time
	RepaidAt   *time.Time
}

// New builds a pending loan created now.
func New(lenderID, borrowerID uuid.UUID, amount decimal.Decimal, dueAt time.Time) (*Loan, error) {
	if lenderID == uuid.Nil || borrowerID == uuid.Nil {
		return nil, ErrMissingParty
	}
	if lenderID == borrowerID {
		return nil, ErrSelfLoan
	}
	if !amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	return &Loan{
		ID:         uuid.New(),
		LenderID:   lenderID,
		BorrowerID: borrowerID,
		Amount:     amount,
		DueAt:      dueAt.UTC(),
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// CanRepay reports whether a repayment is accepted from the current status.
func (l *Loan) CanRepay() bool {
	return !contains(NotRepayable, l.Status)
}

// Repay moves the loan to repaid. It fails with ErrAlreadyRepaid when the
// loan is already repaid and leaves the loan untouched.
func (l *Loan) Repay(at time.Time) error {
	if !l.CanRepay() {
		return ErrAlreadyRepaid
	}
	at = at.UTC()
	l.Status = StatusRepaid
	l.RepaidAt = &at
	return nil
}

// IsOverdueAt reports whether the sweep should move this loan to overdue.
func (l *Loan) IsOverdueAt(now time.Time) bool {
	return l.DueAt.Before(now) && !contains(NotSweepable, l.Status)
}

// MarkOverdue moves a sweep candidate to overdue.
func (l *Loan) MarkOverdue() {
	l.Status = StatusOverdue
}

func contains(set []Status, s Status) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// StatusValues converts statuses to store values.
func StatusValues(set []Status) []any {
	out := make([]any, 0, len(set))
	for _, s := range set {
		out = append(out, string(s))
	}
	return out
}
