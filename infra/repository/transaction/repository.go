package transaction

import (
	"context"

	"github.com/amirasaad/finhub/pkg/domain/transaction"
	repo "github.com/amirasaad/finhub/pkg/repository"
	transactionrepo "github.com/amirasaad/finhub/pkg/repository/transaction"
	"github.com/google/uuid"
)

type repository struct {
	gw repo.Gateway
}

// New returns a transaction repository backed by gw.
func New(gw repo.Gateway) transactionrepo.Repository {
	return &repository{gw: gw}
}

func (r *repository) Create(ctx context.Context, tx *transaction.Transaction) error {
	return r.gw.Insert(ctx, Table, mapDomainToModel(tx))
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*transaction.Transaction, error) {
	var rows []Transaction
	err := r.gw.Select(ctx, repo.Query{
		Table:   Table,
		Filters: []repo.Filter{repo.Eq(ColUserID, userID)},
		Order:   &repo.Order{Column: ColDate, Desc: true},
		Limit:   limit,
	}, &rows)
	if err != nil {
		return nil, err
	}
	out := make([]*transaction.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, mapModelToDomain(&rows[i]))
	}
	return out, nil
}
