package repository

import (
	"context"
	"fmt"

	"github.com/amirasaad/finhub/pkg/domain"
	"github.com/amirasaad/finhub/pkg/repository"
)

// UnavailableGateway is installed when no store is configured. Every call
// fails with domain.ErrStoreUnavailable without touching the network.
type UnavailableGateway struct {
	Reason string
}

func (u UnavailableGateway) err(op, table string) error {
	if u.Reason == "" {
		return fmt.Errorf("%s %s: %w", op, table, domain.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s %s: %w: %s", op, table, domain.ErrStoreUnavailable, u.Reason)
}

func (u UnavailableGateway) Select(_ context.Context, q repository.Query, _ any) error {
	return u.err("select", q.Table)
}

func (u UnavailableGateway) Insert(_ context.Context, table string, _ any) error {
	return u.err("insert", table)
}

func (u UnavailableGateway) Update(_ context.Context, table string, _ map[string]any, _ ...repository.Filter) (int64, error) {
	return 0, u.err("update", table)
}

func (u UnavailableGateway) Ping(context.Context) error {
	return u.err("ping", "")
}

var _ repository.Gateway = UnavailableGateway{}
