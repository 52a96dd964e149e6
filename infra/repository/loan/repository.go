package loan

import (
	"context"
	"time"

	"github.com/amirasaad/finhub/pkg/domain/loan"
	repo "github.com/amirasaad/finhub/pkg/repository"
	loanrepo "github.com/amirasaad/finhub/pkg/repository/loan"
	"github.com/google/uuid"
)

type repository struct {
	gw repo.Gateway
}

// New returns a loan repository backed by gw.
func New(gw repo.Gateway) loanrepo.Repository {
	return &repository{gw: gw}
}

func (r *repository) Create(ctx context.Context, l *loan.Loan) error {
	return r.gw.Insert(ctx, Table, mapDomainToModel(l))
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	loans, err := r.list(ctx, repo.Query{
		Table:   Table,
		Filters: []repo.Filter{repo.Eq(ColID, id)},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, loan.ErrLoanNotFound
	}
	return loans[0], nil
}

func (r *repository) ListByParty(ctx context.Context, userID uuid.UUID, limit int) ([]*loan.Loan, error) {
	return r.list(ctx, repo.Query{
		Table:   Table,
		Filters: []repo.Filter{repo.AnyOf(repo.Eq(ColLenderID, userID), repo.Eq(ColBorrowerID, userID))},
		Limit:   limit,
	})
}

func (r *repository) ListOverdueCandidates(ctx context.Context, now time.Time) ([]*loan.Loan, error) {
	return r.list(ctx, repo.Query{
		Table: Table,
		Filters: []repo.Filter{
			repo.Lt(ColDueDate, now.UTC()),
			repo.NotIn(ColStatus, loan.StatusValues(loan.NotSweepable)...),
		},
	})
}

func (r *repository) MarkRepaid(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	n, err := r.gw.Update(ctx, Table,
		map[string]any{ColStatus: string(loan.StatusRepaid), ColRepaidAt: at.UTC()},
		repo.Eq(ColID, id),
		repo.NotIn(ColStatus, loan.StatusValues(loan.NotRepayable)...),
	)
	return n > 0, err
}

func (r *repository) MarkOverdue(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.gw.Update(ctx, Table,
		map[string]any{ColStatus: string(loan.StatusOverdue)},
		repo.Eq(ColID, id),
		repo.NotIn(ColStatus, loan.StatusValues(loan.NotSweepable)...),
	)
	return n > 0, err
}

func (r *repository) list(ctx context.Context, q repo.Query) ([]*loan.Loan, error) {
	var rows []Loan
	if err := r.gw.Select(ctx, q, &rows); err != nil {
		return nil, err
	}
	out := make([]*loan.Loan, 0, len(rows))
	for i := range rows {
		out = append(out, mapModelToDomain(&rows[i]))
	}
	return out, nil
}
