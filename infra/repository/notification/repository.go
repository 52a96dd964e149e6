package notification

import (
	"context"

	"github.com/amirasaad/finhub/pkg/domain/notification"
	repo "github.com/amirasaad/finhub/pkg/repository"
	notificationrepo "github.com/amirasaad/finhub/pkg/repository/notification"
	"github.com/google/uuid"
)

type repository struct {
	gw repo.Gateway
}

// New returns a notification repository backed by gw.
func New(gw repo.Gateway) notificationrepo.Repository {
	return &repository{gw: gw}
}

func (r *repository) Create(ctx context.Context, n *notification.Notification) error {
	return r.gw.Insert(ctx, Table, mapDomainToModel(n))
}

func (r *repository) ListByRecipient(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*notification.Notification, error) {
	var rows []Notification
	err := r.gw.Select(ctx, repo.Query{
		Table:   Table,
		Filters: []repo.Filter{repo.Eq(ColUserID, userID)},
		Order:   &repo.Order{Column: ColCreatedAt, Desc: true},
		Limit:   limit,
	}, &rows)
	if err != nil {
		return nil, err
	}
	out := make([]*notification.Notification, 0, len(rows))
	for i := range rows {
		out = append(out, mapModelToDomain(&rows[i]))
	}
	return out, nil
}
