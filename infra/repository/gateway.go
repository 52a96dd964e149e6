package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finhub/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultQueryTimeout bounds a store call when no timeout is configured.
const DefaultQueryTimeout = 5 * time.Second

// GormGateway runs gateway calls against a gorm connection. Column names are
// quoted as given, so camelCase columns keep their casing.
type GormGateway struct {
	db      *gorm.DB
	timeout time.Duration
	logger  *slog.Logger
}

// NewGormGateway wraps db. A non-positive timeout uses DefaultQueryTimeout.
func NewGormGateway(db *gorm.DB, timeout time.Duration, logger *slog.Logger) *GormGateway {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GormGateway{db: db, timeout: timeout, logger: logger.With("component", "gateway")}
}

func (g *GormGateway) Select(ctx context.Context, q repository.Query, dest any) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	tx := g.db.WithContext(ctx).Table(q.Table)
	if len(q.Columns) > 0 {
		tx = tx.Select(q.Columns)
	}
	for _, f := range q.Filters {
		expr, err := toExpression(f)
		if err != nil {
			return fmt.Errorf("select %s: %w", q.Table, err)
		}
		tx = tx.Where(expr)
	}
	if q.Order != nil {
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: q.Order.Column},
			Desc:   q.Order.Desc,
		})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if err := tx.Find(dest).Error; err != nil {
		g.logger.Debug("select failed", "table", q.Table, "error", err)
		return classify(ctx, "select", q.Table, err)
	}
	return nil
}

func (g *GormGateway) Insert(ctx context.Context, table string, record any) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.db.WithContext(ctx).Table(table).Create(record).Error; err != nil {
		g.logger.Debug("insert failed", "table", table, "error", err)
		return classify(ctx, "insert", table, err)
	}
	return nil
}

func (g *GormGateway) Update(
	ctx context.Context,
	table string,
	patch map[string]any,
	filters ...repository.Filter,
) (int64, error) {
	if len(filters) == 0 {
		return 0, fmt.Errorf("update %s: at least one filter is required", table)
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	tx := g.db.WithContext(ctx).Table(table)
	for _, f := range filters {
		expr, err := toExpression(f)
		if err != nil {
			return 0, fmt.Errorf("update %s: %w", table, err)
		}
		tx = tx.Where(expr)
	}
	res := tx.Updates(patch)
	if res.Error != nil {
		g.logger.Debug("update failed", "table", table, "error", res.Error)
		return 0, classify(ctx, "update", table, res.Error)
	}
	return res.RowsAffected, nil
}

func (g *GormGateway) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	sqlDB, err := g.db.DB()
	if err != nil {
		return classify(ctx, "ping", "", err)
	}
	return classify(ctx, "ping", "", sqlDB.PingContext(ctx))
}

func toExpression(f repository.Filter) (clause.Expression, error) {
	col := clause.Column{Name: f.Column}
	switch f.Op {
	case repository.OpEq:
		if len(f.Values) != 1 {
			return nil, fmt.Errorf("eq filter on %q needs one value", f.Column)
		}
		return clause.Eq{Column: col, Value: f.Values[0]}, nil
	case repository.OpLt:
		if len(f.Values) != 1 {
			return nil, fmt.Errorf("lt filter on %q needs one value", f.Column)
		}
		return clause.Lt{Column: col, Value: f.Values[0]}, nil
	case repository.OpNotIn:
		if len(f.Values) == 0 {
			return nil, fmt.Errorf("not_in filter on %q needs values", f.Column)
		}
		return clause.Not(clause.IN{Column: col, Values: f.Values}), nil
	case repository.OpAnyOf:
		if len(f.Any) == 0 {
			return nil, fmt.Errorf("any_of filter needs alternatives")
		}
		exprs := make([]clause.Expression, 0, len(f.Any))
		for _, alt := range f.Any {
			e, err := toExpression(alt)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, e)
		}
		return clause.Or(exprs...), nil
	}
	return nil, fmt.Errorf("unknown filter op %q", f.Op)
}

var _ repository.Gateway = (*GormGateway)(nil)
