package entity

import "account_backend/internal/feature/user/domain"

// State is the lifecycle state derived from IsActive and IsDelete.
type State int

const (
	StateActive State = iota
	StateInactive
	StateDeleted
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	default:
		return "deleted"
	}
}

// State returns the lifecycle state. Deletion takes precedence over IsActive.
func (u User) State() State {
	switch {
	case u.IsDelete:
		return StateDeleted
	case !u.IsActive:
		return StateInactive
	default:
		return StateActive
	}
}

// CanSignIn reports whether the account may authenticate.
// Deleted and inactive accounts fail with distinct errors.
func (u User) CanSignIn() error {
	switch u.State() {
	case StateDeleted:
		return domain.ErrAccountDeleted
	case StateInactive:
		return domain.ErrAccountDisabled
	}
	return nil
}

// Revive handles a registration for an email that already has an account.
// Deleted accounts are brought back with the registration's fields;
// inactive accounts stay untouched; live accounts own the email.
func (u User) Revive(r Registration) (User, error) {
	switch u.State() {
	case StateInactive:
		return u, domain.ErrAccountDisabled
	case StateActive:
		return u, domain.ErrEmailInUse
	}
	next := u.WithProfile(r.Profile).WithPassword(r.Password).ClearResetToken()
	next.RoleID = r.RoleID
	next.Role = ""
	next.IsDelete = false
	next.IsActive = r.IsActive
	return next, nil
}

// SetActive returns a copy with IsActive changed.
func (u User) SetActive(active bool) User {
	u.IsActive = active
	return u
}

// MarkDeleted soft-deletes the account.
func (u User) MarkDeleted() (User, error) {
	if u.State() == StateDeleted {
		return u, domain.ErrAlreadyDeleted
	}
	u.IsDelete = true
	return u, nil
}
