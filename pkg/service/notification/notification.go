// Package notification appends loan notifications and lists them for a user.
package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/finhub/pkg/domain/notification"
	"github.com/amirasaad/finhub/pkg/repository"
	"github.com/google/uuid"
)

// ListLimit caps ListForUser.
const ListLimit = 200

// Resolver maps a user alias to the internal user id.
type Resolver interface {
	Resolve(ctx context.Context, alias string) (uuid.UUID, error)
}

// Service writes and reads notifications.
type Service struct {
	repos    repository.Provider
	resolver Resolver
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a new notification Service.
func New(repos repository.Provider, resolver Resolver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repos:    repos,
		resolver: resolver,
		logger:   logger.With("service", "notification"),
		now:      time.Now,
	}
}

// Emit appends one unread notification. Store errors are returned as is.
func (s *Service) Emit(
	ctx context.Context,
	recipientID, loanID uuid.UUID,
	kind notification.Kind,
	message string,
) error {
	n := notification.New(recipientID, loanID, kind, message, s.now())
	if err := s.repos.NotificationRepository().Create(ctx, n); err != nil {
		return err
	}
	s.logger.Debug("notification stored", "recipient_id", recipientID, "loan_id", loanID, "kind", kind)
	return nil
}

// ListForUser returns the user's notifications, newest first.
func (s *Service) ListForUser(ctx context.Context, alias string) ([]*notification.Notification, error) {
	userID, err := s.resolver.Resolve(ctx, alias)
	if err != nil {
		return nil, err
	}
	return s.repos.NotificationRepository().ListByRecipient(ctx, userID, ListLimit)
}
