package notification_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/finhub/infra/eventbus"
	"github.com/amirasaad/finhub/infra/repository/memory"
	"github.com/amirasaad/finhub/internal/fixtures/mocks"
	"github.com/amirasaad/finhub/pkg/domain"
	"github.com/amirasaad/finhub/pkg/domain/events"
	"github.com/amirasaad/finhub/pkg/domain/notification"
	"github.com/amirasaad/finhub/pkg/domain/user"
	"github.com/amirasaad/finhub/pkg/eventbus"
	notificationsvc "github.com/amirasaad/finhub/pkg/service/notification"
	usersvc "github.com/amirasaad/finhub/pkg/service/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEmitAndList(t *testing.T) {
	t.Parallel()
	store := memory.New()
	u, err := user.New("user_n", "erin@example.com", "Erin")
	require.NoError(t, err)
	require.NoError(t, store.UserRepository().Create(context.Background(), u))
	svc := notificationsvc.New(store, usersvc.New(store, slog.Default()), slog.Default())
	ctx := context.Background()

	loanID := uuid.New()
	require.NoError(t, svc.Emit(ctx, u.ID, loanID, notification.KindLoanCreated, "first"))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, svc.Emit(ctx, u.ID, loanID, notification.KindLoanRepaid, "second"))
	require.NoError(t, svc.Emit(ctx, uuid.New(), loanID, notification.KindLoanRepaid, "someone else"))

	list, err := svc.ListForUser(ctx, "erin@example.com")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)
	assert.Equal(t, "first", list[1].Message)
	assert.False(t, list[0].Read)
}

func TestEmit_ReturnsStoreErrors(t *testing.T) {
	t.Parallel()
	repo := mocks.NewMockNotificationRepository(t)
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrStoreUnavailable).Once()
	svc := notificationsvc.New(&mocks.Provider{Provider: memory.New(), Notifications: repo}, nil, slog.Default())

	err := svc.Emit(context.Background(), uuid.New(), uuid.New(), notification.KindLoanOverdue, "late")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

type emitterFunc func(ctx context.Context, recipientID, loanID uuid.UUID, kind notification.Kind, message string) error

func (f emitterFunc) Emit(ctx context.Context, recipientID, loanID uuid.UUID, kind notification.Kind, message string) error {
	return f(ctx, recipientID, loanID, kind, message)
}

func TestHandleRequested(t *testing.T) {
	t.Parallel()
	req := events.NewNotificationRequested(uuid.New(), uuid.New(), notification.KindLoanCreated, "hi")

	tests := []struct {
		name    string
		emitErr error
		wantErr bool
	}{
		{name: "stored", emitErr: nil, wantErr: false},
		{name: "store unavailable is swallowed", emitErr: domain.ErrStoreUnavailable, wantErr: false},
		{name: "upstream error is returned", emitErr: errors.New("store error: insert notifications"), wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got *events.NotificationRequested
			h := notificationsvc.HandleRequested(emitterFunc(
				func(_ context.Context, recipientID, loanID uuid.UUID, kind notification.Kind, msg string) error {
					got = &events.NotificationRequested{RecipientID: recipientID, LoanID: loanID, Kind: kind, Message: msg}
					return tc.emitErr
				}), slog.Default())

			err := h(context.Background(), req)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			require.NotNil(t, got)
			assert.Equal(t, req.RecipientID, got.RecipientID)
			assert.Equal(t, req.LoanID, got.LoanID)
			assert.Equal(t, req.Kind, got.Kind)
		})
	}
}

func TestNotifier_DropsOnBusFailure(t *testing.T) {
	t.Parallel()
	bus := &mocks.RecordingBus{Err: eventbus.ErrQueueFull}
	n := notificationsvc.NewNotifier(bus, slog.Default())

	assert.NotPanics(t, func() {
		n.Enqueue(context.Background(),
			events.NewNotificationRequested(uuid.New(), uuid.New(), notification.KindLoanRepaid, "repaid"))
	})
	assert.Empty(t, bus.Emitted())
}

func TestNotifier_WritesInBackground(t *testing.T) {
	t.Parallel()
	store := memory.New()
	svc := notificationsvc.New(store, nil, slog.Default())
	bus := infraeventbus.NewWithMemoryAsync(slog.Default(), 8, 2)
	notificationsvc.Register(bus, svc, slog.Default())
	n := notificationsvc.NewNotifier(bus, slog.Default())

	recipient := uuid.New()
	reqCtx, cancel := context.WithCancel(context.Background())
	n.Enqueue(reqCtx, events.NewNotificationRequested(recipient, uuid.New(), notification.KindLoanCreated, "hello"))
	cancel()

	ctx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	require.NoError(t, bus.Close(ctx))

	list, err := store.NotificationRepository().ListByRecipient(context.Background(), recipient, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "hello", list[0].Message)
}
