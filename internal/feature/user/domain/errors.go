// Package domain defines domain-level errors for the user feature.
package domain

import "account_backend/internal/shared/apperr"

// Lifecycle errors returned by entity transitions.
var (
	// ErrAccountDeleted indicates the account was soft-deleted.
	ErrAccountDeleted = apperr.New(apperr.KindGone, "this user has been deleted")

	// ErrAccountDisabled indicates the account exists but is inactive.
	ErrAccountDisabled = apperr.New(apperr.KindDisabled, "this user is disabled")

	// ErrEmailInUse indicates another live account already owns the email.
	ErrEmailInUse = apperr.New(apperr.KindConflict, "email already in use")

	// ErrAlreadyDeleted is returned when deleting an account twice.
	ErrAlreadyDeleted = apperr.New(apperr.KindNotFound, "user not found")
)
