// Package loan owns the loan lifecycle: creation, repayment and the overdue
// sweep. Notifications for creation and repayment are queued on the event
// bus; overdue notifications are written synchronously by the sweep.
package loan

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/finhub/pkg/domain/events"
	"github.com/amirasaad/finhub/pkg/domain/loan"
	"github.com/amirasaad/finhub/pkg/domain/notification"
	"github.com/amirasaad/finhub/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListLimit caps ListForUser.
const ListLimit = 200

// Resolver maps a user alias to the internal user id.
type Resolver interface {
	Resolve(ctx context.Context, alias string) (uuid.UUID, error)
}

// Emitter stores a notification and reports failures.
type Emitter interface {
	Emit(ctx context.Context, recipientID, loanID uuid.UUID, kind notification.Kind, message string) error
}

// Enqueuer queues a notification write without waiting for it.
type Enqueuer interface {
	Enqueue(ctx context.Context, req *events.NotificationRequested)
}

// CreateInput describes a new loan.
type CreateInput struct {
	LenderID   uuid.UUID
	BorrowerID uuid.UUID
	Amount     decimal.Decimal
	DueAt      time.Time
}

// SweepResult counts what one overdue sweep did.
type SweepResult struct {
	// Scanned is the number of candidates the store returned.
	Scanned int
	// Transitioned is the number of loans this sweep moved to overdue.
	Transitioned int
	// Skipped counts candidates another writer changed first.
	Skipped int
	// Failed counts candidates whose status update errored.
	Failed int
	// NotifyFailed counts transitioned loans whose notification write failed.
	NotifyFailed int
}

// Service implements the loan lifecycle.
type Service struct {
	repos    repository.Provider
	resolver Resolver
	emitter  Emitter
	notifier Enqueuer
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a new loan Service.
func New(
	repos repository.Provider,
	resolver Resolver,
	emitter Emitter,
	notifier Enqueuer,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		repos:    repos,
		resolver: resolver,
		emitter:  emitter,
		notifier: notifier,
		logger:   logger.With("service", "loan"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create inserts a pending loan and queues a loan_created notification for
// each party. Queueing failures never fail the call.
func (s *Service) Create(ctx context.Context, in CreateInput) (*loan.Loan, error) {
	l, err := loan.New(in.LenderID, in.BorrowerID, in.Amount, in.DueAt)
	if err != nil {
		return nil, err
	}
	l.CreatedAt = s.now().UTC()

	if err := s.repos.LoanRepository().Create(ctx, l); err != nil {
		s.logger.Error("create loan failed", "error", err)
		return nil, err
	}
	s.logger.Info("loan created", "loan_id", l.ID, "lender_id", l.LenderID, "borrower_id", l.BorrowerID)

	s.notifier.Enqueue(ctx, events.NewNotificationRequested(
		l.BorrowerID, l.ID, notification.KindLoanCreated,
		notification.BorrowerCreatedMessage(l.Amount, l.DueAt),
	))
	s.notifier.Enqueue(ctx, events.NewNotificationRequested(
		l.LenderID, l.ID, notification.KindLoanCreated,
		notification.LenderCreatedMessage(l.Amount, l.BorrowerID, l.DueAt),
	))
	return l, nil
}

// Repay marks the loan repaid. It returns loan.ErrLoanNotFound when the loan
// does not exist and loan.ErrAlreadyRepaid when it is repaid already,
// including when a concurrent repayment wins the conditional update.
func (s *Service) Repay(ctx context.Context, loanID uuid.UUID) (*loan.Loan, error) {
	repo := s.repos.LoanRepository()
	l, err := repo.Get(ctx, loanID)
	if err != nil {
		return nil, err
	}

	at := s.now()
	if err := l.Repay(at); err != nil {
		return nil, err
	}
	changed, err := repo.MarkRepaid(ctx, l.ID, *l.RepaidAt)
	if err != nil {
		s.logger.Error("repay loan failed", "loan_id", l.ID, "error", err)
		return nil, err
	}
	if !changed {
		return nil, loan.ErrAlreadyRepaid
	}
	s.logger.Info("loan repaid", "loan_id", l.ID)

	s.notifier.Enqueue(ctx, events.NewNotificationRequested(
		l.LenderID, l.ID, notification.KindLoanRepaid,
		notification.RepaidMessage(l.LenderID, l.BorrowerID),
	))
	return l, nil
}

// SweepOverdue moves every pending loan due before now to overdue and writes
// one loan_overdue notification to its borrower. Loans are processed one at
// a time; a failure on one loan is logged and counted and the sweep goes on.
// A loan changed by a concurrent writer between the scan and the update is
// skipped without notification. The returned error is non-nil only when the
// candidate scan fails or ctx ends, in which case the result holds the
// counts so far.
func (s *Service) SweepOverdue(ctx context.Context, now time.Time) (SweepResult, error) {
	var res SweepResult
	repo := s.repos.LoanRepository()

	candidates, err := repo.ListOverdueCandidates(ctx, now)
	if err != nil {
		s.logger.Error("overdue scan failed", "error", err)
		return res, err
	}
	res.Scanned = len(candidates)

	for _, l := range candidates {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("overdue sweep interrupted", "error", err, "transitioned", res.Transitioned)
			return res, err
		}
		if !l.IsOverdueAt(now) {
			res.Skipped++
			continue
		}

		changed, err := repo.MarkOverdue(ctx, l.ID)
		if err != nil {
			res.Failed++
			s.logger.Error("mark overdue failed", "loan_id", l.ID, "error", err)
			continue
		}
		if !changed {
			res.Skipped++
			continue
		}
		res.Transitioned++

		err = s.emitter.Emit(ctx, l.BorrowerID, l.ID, notification.KindLoanOverdue,
			notification.OverdueMessage(l.Amount, l.DueAt))
		if err != nil {
			res.NotifyFailed++
			s.logger.Error("overdue notification failed", "loan_id", l.ID, "error", err)
		}
	}

	s.logger.Info("overdue sweep finished",
		"scanned", res.Scanned,
		"transitioned", res.Transitioned,
		"skipped", res.Skipped,
		"failed", res.Failed,
		"notify_failed", res.NotifyFailed,
	)
	return res, nil
}

// ListForUser returns loans where the user is lender or borrower. No order
// is applied.
func (s *Service) ListForUser(ctx context.Context, alias string) ([]*loan.Loan, error) {
	userID, err := s.resolver.Resolve(ctx, alias)
	if err != nil {
		return nil, err
	}
	return s.repos.LoanRepository().ListByParty(ctx, userID, ListLimit)
}
