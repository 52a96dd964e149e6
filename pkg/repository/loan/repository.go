package loan

import (
	"context"
	"time"

	"github.com/amirasaad/finhub/pkg/domain/loan"
	"github.com/google/uuid"
)

// Repository defines loan data access.
type Repository interface {
	Create(ctx context.Context, l *loan.Loan) error
	// Get returns the loan or loan.ErrLoanNotFound.
	Get(ctx context.Context, id uuid.UUID) (*loan.Loan, error)
	// ListByParty returns up to limit loans where the user is lender or
	// borrower, in store order.
	ListByParty(ctx context.Context, userID uuid.UUID, limit int) ([]*loan.Loan, error)
	// ListOverdueCandidates returns loans due strictly before now that are
	// neither repaid nor already overdue.
	ListOverdueCandidates(ctx context.Context, now time.Time) ([]*loan.Loan, error)
	// MarkRepaid sets status repaid and repaid_at unless the loan is already
	// repaid. It reports whether a row changed.
	MarkRepaid(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	// MarkOverdue sets status overdue unless the loan is repaid or overdue.
	// It reports whether a row changed.
	MarkOverdue(ctx context.Context, id uuid.UUID) (bool, error)
}
