// Package user resolves the aliases the frontend uses for a person (the auth
// provider's user id or an email) and creates users on first sign-in.
package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/amirasaad/finhub/pkg/domain/user"
	"github.com/amirasaad/finhub/pkg/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ListLimit caps List.
const ListLimit = 100

// Service provides user lookups and creation.
type Service struct {
	repos  repository.Provider
	logger *slog.Logger
	group  singleflight.Group
}

// New creates a new Service with a repository provider and logger.
func New(repos repository.Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repos: repos, logger: logger.With("service", "user")}
}

// Resolve returns the internal id of the user whose auth-provider id or
// email equals alias. Concurrent lookups of one alias share a single store
// round trip; results are not cached.
func (s *Service) Resolve(ctx context.Context, alias string) (uuid.UUID, error) {
	u, err := s.Get(ctx, alias)
	if err != nil {
		return uuid.Nil, err
	}
	return u.ID, nil
}

// Get returns the user matching alias.
func (s *Service) Get(ctx context.Context, alias string) (*user.User, error) {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return nil, user.ErrUserNotFound
	}
	// The shared lookup must not die with whichever caller started it.
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(alias, func() (any, error) {
		return s.repos.UserRepository().FindByAlias(shared, alias)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			if !errors.Is(res.Err, user.ErrUserNotFound) {
				s.logger.Error("alias lookup failed", "error", res.Err)
			}
			return nil, res.Err
		}
		u := *res.Val.(*user.User)
		return &u, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// CreateOrGet returns the user already known by clerkUserID or email, or
// inserts a new one. created reports whether a row was inserted.
func (s *Service) CreateOrGet(
	ctx context.Context,
	clerkUserID, email, name string,
) (u *user.User, created bool, err error) {
	candidate, err := user.New(clerkUserID, email, name)
	if err != nil {
		return nil, false, err
	}

	repo := s.repos.UserRepository()
	for _, alias := range []string{candidate.ClerkUserID, candidate.Email} {
		existing, err := repo.FindByAlias(ctx, alias)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, user.ErrUserNotFound) {
			return nil, false, err
		}
	}

	if err := repo.Create(ctx, candidate); err != nil {
		s.logger.Error("create user failed", "error", err)
		return nil, false, err
	}
	s.logger.Info("user created", "user_id", candidate.ID)
	return candidate, true, nil
}

// List returns up to ListLimit users.
func (s *Service) List(ctx context.Context) ([]*user.User, error) {
	return s.repos.UserRepository().List(ctx, ListLimit)
}
