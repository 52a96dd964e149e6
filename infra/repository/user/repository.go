package user

import (
	"context"

	"github.com/amirasaad/finhub/pkg/domain/user"
	repo "github.com/amirasaad/finhub/pkg/repository"
	userrepo "github.com/amirasaad/finhub/pkg/repository/user"
)

type repository struct {
	gw repo.Gateway
}

// New returns a user repository backed by gw.
func New(gw repo.Gateway) userrepo.Repository {
	return &repository{gw: gw}
}

func (r *repository) FindByAlias(ctx context.Context, alias string) (*user.User, error) {
	var rows []User
	err := r.gw.Select(ctx, repo.Query{
		Table:   Table,
		Filters: []repo.Filter{repo.AnyOf(repo.Eq(ColClerkUserID, alias), repo.Eq(ColEmail, alias))},
		Limit:   1,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, user.ErrUserNotFound
	}
	return mapModelToDomain(&rows[0]), nil
}

func (r *repository) Create(ctx context.Context, u *user.User) error {
	return r.gw.Insert(ctx, Table, mapDomainToModel(u))
}

func (r *repository) List(ctx context.Context, limit int) ([]*user.User, error) {
	var rows []User
	if err := r.gw.Select(ctx, repo.Query{Table: Table, Limit: limit}, &rows); err != nil {
		return nil, err
	}
	out := make([]*user.User, 0, len(rows))
	for i := range rows {
		out = append(out, mapModelToDomain(&rows[i]))
	}
	return out, nil
}
