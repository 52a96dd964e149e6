package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirasaad/finhub/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors.
// Traverses the error chain to find GORM errors and maps them to appropriate domain errors.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		}
		currentErr = errors.Unwrap(currentErr)
	}

	return err
}

// classify turns a failed store call into the error taxonomy callers match on.
// A missed deadline means the store is unavailable; everything else is an
// upstream error carrying the operation and table.
func classify(ctx context.Context, op, table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s %s: %w", op, table, domain.ErrStoreUnavailable)
	}
	if mapped := MapGormErrorToDomain(err); mapped != err {
		return fmt.Errorf("%s %s: %w", op, table, mapped)
	}
	return fmt.Errorf("%s %s: %w: %v", op, table, domain.ErrUpstream, err)
}
