package repository

import "context"

// Op is a filter operator understood by every Gateway.
type Op string

const (
	OpEq    Op = "eq"
	OpLt    Op = "lt"
	OpNotIn Op = "not_in"
	OpAnyOf Op = "any_of"
)

// Filter is one condition of a query. Filters passed together are ANDed.
type Filter struct {
	Op     Op
	Column string
	Values []any
	Any    []Filter
}

// Eq matches rows whose column equals v.
func Eq(column string, v any) Filter {
	return Filter{Op: OpEq, Column: column, Values: []any{v}}
}

// Lt matches rows whose column is strictly less than v.
func Lt(column string, v any) Filter {
	return Filter{Op: OpLt, Column: column, Values: []any{v}}
}

// NotIn matches rows whose column is none of values.
func NotIn(column string, values ...any) Filter {
	return Filter{Op: OpNotIn, Column: column, Values: values}
}

// AnyOf matches rows satisfying at least one of filters.
func AnyOf(filters ...Filter) Filter {
	return Filter{Op: OpAnyOf, Any: filters}
}

// Order sorts a query by one column.
type Order struct {
	Column string
	Desc   bool
}

// Query selects rows from one table. Limit <= 0 means no limit.
type Query struct {
	Table   string
	Columns []string
	Filters []Filter
	Order   *Order
	Limit   int
}

// Gateway is the only path to the remote store. Each call is a single round
// trip bounded by a timeout; nothing is retried or cached.
//
// Errors wrap domain.ErrStoreUnavailable when the store is not configured or
// did not answer in time, and domain.ErrUpstream for anything else.
type Gateway interface {
	// Select decodes matching rows into dest, a pointer to a slice.
	Select(ctx context.Context, q Query, dest any) error
	// Insert appends one record.
	Insert(ctx context.Context, table string, record any) error
	// Update applies patch to rows matching every filter and reports how many
	// rows changed. Callers use the count for compare-and-set transitions.
	Update(ctx context.Context, table string, patch map[string]any, filters ...Filter) (int64, error)
	// Ping checks the store answers.
	Ping(ctx context.Context) error
}
