package loan

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/finhub/pkg/domain"
	"github.com/amirasaad/finhub/pkg/domain/loan"
	repo "github.com/amirasaad/finhub/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Select(ctx context.Context, q repo.Query, dest any) error {
	return m.Called(ctx, q, dest).Error(0)
}

func (m *mockGateway) Insert(ctx context.Context, table string, record any) error {
	return m.Called(ctx, table, record).Error(0)
}

func (m *mockGateway) Update(ctx context.Context, table string, patch map[string]any, filters ...repo.Filter) (int64, error) {
	args := m.Called(ctx, table, patch, filters)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGateway) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestRepository_GetMapsWireColumns(t *testing.T) {
	gw := &mockGateway{}
	r := New(gw)
	id := uuid.New()
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	gw.On("Select", mock.Anything, repo.Query{
		Table:   Table,
		Filters: []repo.Filter{repo.Eq(ColID, id)},
		Limit:   1,
	}, mock.Anything).
		Run(func(args mock.Arguments) {
			rows := args.Get(2).(*[]Loan)
			*rows = append(*rows, Loan{
				ID:      id,
				Amount:  decimal.NewFromInt(100),
				DueDate: due,
				Status:  "overdue",
			})
		}).
		Return(nil)

	got, err := r.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, loan.StatusOverdue, got.Status)
	assert.True(t, due.Equal(got.DueAt))
	assert.True(t, decimal.NewFromInt(100).Equal(got.Amount))
	gw.AssertExpectations(t)
}

func TestRepository_GetMissing(t *testing.T) {
	gw := &mockGateway{}
	r := New(gw)
	gw.On("Select", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := r.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, loan.ErrLoanNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_ListOverdueCandidatesExcludesTerminalStatuses(t *testing.T) {
	gw := &mockGateway{}
	r := New(gw)
	now := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	gw.On("Select", mock.Anything, repo.Query{
		Table: Table,
		Filters: []repo.Filter{
			repo.Lt(ColDueDate, now),
			repo.NotIn(ColStatus, "repaid", "overdue"),
		},
	}, mock.Anything).Return(nil)

	loans, err := r.ListOverdueCandidates(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, loans)
	gw.AssertExpectations(t)
}

func TestRepository_MarkRepaidIsConditional(t *testing.T) {
	gw := &mockGateway{}
	r := New(gw)
	id := uuid.New()
	at := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

	gw.On("Update", mock.Anything, Table,
		map[string]any{ColStatus: "repaid", ColRepaidAt: at},
		[]repo.Filter{repo.Eq(ColID, id), repo.NotIn(ColStatus, "repaid")},
	).Return(int64(0), nil).Once()

	changed, err := r.MarkRepaid(context.Background(), id, at)
	require.NoError(t, err)
	assert.False(t, changed)
	gw.AssertExpectations(t)
}

func TestRepository_MarkOverdueIsConditional(t *testing.T) {
	gw := &mockGateway{}
	r := New(gw)
	id := uuid.New()

	gw.On("Update", mock.Anything, Table,
		map[string]any{ColStatus: "overdue"},
		[]repo.Filter{repo.Eq(ColID, id), repo.NotIn(ColStatus, "repaid", "overdue")},
	).Return(int64(1), nil).Once()

	changed, err := r.MarkOverdue(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, changed)
	gw.AssertExpectations(t)
}

func TestRepository_ListByPartyMatchesEitherSide(t *testing.T) {
	gw := &mockGateway{}
	r := New(gw)
	userID := uuid.New()

	gw.On("Select", mock.Anything, repo.Query{
		Table:   Table,
		Filters: []repo.Filter{repo.AnyOf(repo.Eq(ColLenderID, userID), repo.Eq(ColBorrowerID, userID))},
		Limit:   200,
	}, mock.Anything).Return(nil)

	_, err := r.ListByParty(context.Background(), userID, 200)
	require.NoError(t, err)
	gw.AssertExpectations(t)
}
