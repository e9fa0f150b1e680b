// Package usecase implements the business logic for the user feature.
package usecase

import (
	"account_backend/internal/feature/user/domain"
	"account_backend/internal/shared/apperr"
)

var (
	// ErrUserNotFound is returned when no live user matches the lookup.
	ErrUserNotFound = apperr.New(apperr.KindNotFound, "user not found")

	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	// Both cases share one message so callers cannot probe for accounts.
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "invalid email or password")

	// ErrNotAdmin is returned when valid credentials belong to a non-privileged account.
	ErrNotAdmin = apperr.New(apperr.KindForbidden, "not authorized")

	// ErrInvalidResetToken is returned for unknown, consumed or expired reset tokens.
	ErrInvalidResetToken = apperr.New(apperr.KindBadRequest, "invalid token")

	// ErrWrongPassword is returned when the current password does not match on change.
	ErrWrongPassword = apperr.New(apperr.KindBadRequest, "incorrect password")

	// ErrEmailOrUsernameInUse is returned when the store rejects a duplicate email or username.
	ErrEmailOrUsernameInUse = apperr.New(apperr.KindConflict, "email or username already in use")

	// ErrRoleUnavailable is returned when a seeded role is missing from the store.
	ErrRoleUnavailable = apperr.New(apperr.KindInfrastructure, "role unavailable")

	// Lifecycle errors surfaced by this package.
	ErrAccountDeleted  = domain.ErrAccountDeleted
	ErrAccountDisabled = domain.ErrAccountDisabled
	ErrEmailInUse      = domain.ErrEmailInUse
)
