package user_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/finhub/infra/repository/memory"
	"github.com/amirasaad/finhub/internal/fixtures/mocks"
	"github.com/amirasaad/finhub/pkg/domain"
	"github.com/amirasaad/finhub/pkg/domain/user"
	userrepo "github.com/amirasaad/finhub/pkg/repository/user"
	usersvc "github.com/amirasaad/finhub/pkg/service/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, store *memory.Store, clerkID, email string) *user.User {
	t.Helper()
	u, err := user.New(clerkID, email, "Alice")
	require.NoError(t, err)
	require.NoError(t, store.UserRepository().Create(context.Background(), u))
	return u
}

func TestResolve_ByClerkIDAndEmailAgree(t *testing.T) {
	t.Parallel()
	store := memory.New()
	u := seedUser(t, store, "user_2abc", "alice@example.com")
	svc := usersvc.New(store, slog.Default())

	byClerk, err := svc.Resolve(context.Background(), "user_2abc")
	require.NoError(t, err)
	byEmail, err := svc.Resolve(context.Background(), "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, u.ID, byClerk)
	assert.Equal(t, byClerk, byEmail)
}

func TestResolve_UnknownAlias(t *testing.T) {
	t.Parallel()
	svc := usersvc.New(memory.New(), slog.Default())

	id, err := svc.Resolve(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, uuid.Nil, id)
}

func TestResolve_EmptyAliasNeverHitsStore(t *testing.T) {
	t.Parallel()
	users := mocks.NewMockUserRepository(t)
	svc := usersvc.New(&mocks.Provider{Provider: memory.New(), Users: users}, slog.Default())

	_, err := svc.Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestResolve_StoreErrorPropagates(t *testing.T) {
	t.Parallel()
	users := mocks.NewMockUserRepository(t)
	users.On("FindByAlias", mock.Anything, "alice@example.com").
		Return(nil, domain.ErrStoreUnavailable).Once()
	svc := usersvc.New(&mocks.Provider{Provider: memory.New(), Users: users}, slog.Default())

	_, err := svc.Resolve(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestResolve_CanceledContext(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	users := mocks.NewMockUserRepository(t)
	users.On("FindByAlias", mock.Anything, "slow@example.com").
		Run(func(mock.Arguments) { <-release }).
		Return(nil, user.ErrUserNotFound).Maybe()
	svc := usersvc.New(&mocks.Provider{Provider: memory.New(), Users: users}, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Resolve(ctx, "slow@example.com")
	close(release)
	assert.ErrorIs(t, err, context.Canceled)
}

// gatedUsers holds FindByAlias until release is closed or the lookup's
// context ends.
type gatedUsers struct {
	userrepo.Repository
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedUsers) FindByAlias(ctx context.Context, alias string) (*user.User, error) {
	g.once.Do(func() { close(g.entered) })
	select {
	case <-g.release:
		return g.Repository.FindByAlias(ctx, alias)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestResolve_CancelledCallerDoesNotFailSharedLookup(t *testing.T) {
	t.Parallel()
	store := memory.New()
	u := seedUser(t, store, "user_shared", "shared@example.com")
	users := &gatedUsers{
		Repository: store.UserRepository(),
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	svc := usersvc.New(&mocks.Provider{Provider: store, Users: users}, slog.Default())

	first, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Resolve(first, "shared@example.com")
		firstErr <- err
	}()

	select {
	case <-users.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("lookup never reached the store")
	}

	type result struct {
		id  uuid.UUID
		err error
	}
	second := make(chan result, 1)
	go func() {
		id, err := svc.Resolve(context.Background(), "shared@example.com")
		second <- result{id, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(users.release)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.Equal(t, u.ID, res.id)
	case <-time.After(2 * time.Second):
		t.Fatal("second caller never returned")
	}
}

func TestCreateOrGet(t *testing.T) {
	t.Parallel()
	store := memory.New()
	svc := usersvc.New(store, slog.Default())
	ctx := context.Background()

	first, created, err := svc.CreateOrGet(ctx, "user_1", "bob@example.com", "Bob")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := svc.CreateOrGet(ctx, "user_1", "bob@example.com", "Bob")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	byEmail, created, err := svc.CreateOrGet(ctx, "user_other", "bob@example.com", "Bob")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, byEmail.ID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateOrGet_Validation(t *testing.T) {
	t.Parallel()
	svc := usersvc.New(memory.New(), slog.Default())

	_, _, err := svc.CreateOrGet(context.Background(), "", "bob@example.com", "Bob")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateOrGet_InsertError(t *testing.T) {
	t.Parallel()
	users := mocks.NewMockUserRepository(t)
	users.On("FindByAlias", mock.Anything, mock.Anything).Return(nil, user.ErrUserNotFound).Twice()
	users.On("Create", mock.Anything, mock.Anything).Return(errors.New("boom")).Once()
	svc := usersvc.New(&mocks.Provider{Provider: memory.New(), Users: users}, slog.Default())

	u, created, err := svc.CreateOrGet(context.Background(), "user_1", "bob@example.com", "Bob")
	require.Error(t, err)
	assert.Nil(t, u)
	assert.False(t, created)
}
