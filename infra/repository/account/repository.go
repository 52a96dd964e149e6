package account

import (
	"context"

	"github.com/amirasaad/finhub/pkg/domain/account"
	repo "github.com/amirasaad/finhub/pkg/repository"
	accountrepo "github.com/amirasaad/finhub/pkg/repository/account"
	"github.com/google/uuid"
)

type repository struct {
	gw repo.Gateway
}

// New returns an account repository backed by gw.
func New(gw repo.Gateway) accountrepo.Repository {
	return &repository{gw: gw}
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	return r.list(ctx, repo.Query{
		Table:   Table,
		Filters: []repo.Filter{repo.Eq(ColUserID, userID)},
		Order:   &repo.Order{Column: ColCreatedAt, Desc: true},
	})
}

func (r *repository) FindDefault(ctx context.Context, userID uuid.UUID) (*account.Account, error) {
	return r.first(ctx, repo.Eq(ColUserID, userID), repo.Eq(ColIsDefault, true))
}

func (r *repository) FindAny(ctx context.Context, userID uuid.UUID) (*account.Account, error) {
	return r.first(ctx, repo.Eq(ColUserID, userID))
}

func (r *repository) Create(ctx context.Context, a *account.Account) error {
	return r.gw.Insert(ctx, Table, mapDomainToModel(a))
}

func (r *repository) first(ctx context.Context, filters ...repo.Filter) (*account.Account, error) {
	accounts, err := r.list(ctx, repo.Query{Table: Table, Filters: filters, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, account.ErrAccountNotFound
	}
	return accounts[0], nil
}

func (r *repository) list(ctx context.Context, q repo.Query) ([]*account.Account, error) {
	var rows []Account
	if err := r.gw.Select(ctx, q, &rows); err != nil {
		return nil, err
	}
	out := make([]*account.Account, 0, len(rows))
	for i := range rows {
		out = append(out, mapModelToDomain(&rows[i]))
	}
	return out, nil
}
