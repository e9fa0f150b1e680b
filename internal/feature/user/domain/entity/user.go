// Package entity defines the domain entities for the user feature.
package entity

import (
	"time"

	roleentity "account_backend/internal/feature/role/domain/entity"
)

// User is an account record. Values are treated as immutable: every
// change goes through a method that returns the next value.
type User struct {
	ID           uint
	Firstname    string
	Lastname     string
	Email        string
	Username     string
	Phone        string
	PasswordHash string
	RoleID       uint
	// Role is populated on reads; writes only use RoleID.
	Role                 roleentity.Name
	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time
	IsActive             bool
	IsDelete             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time

	pendingPassword string
}

// Profile holds the self-editable fields of an account.
type Profile struct {
	Firstname string
	Lastname  string
	Username  string
	Phone     string
}

// Registration is the input for creating or reviving an account.
type Registration struct {
	Profile
	Email    string
	Password string
	RoleID   uint
	IsActive bool
}

// New builds an account that has not been persisted yet.
// The password is hashed by the store on first write.
func New(r Registration) User {
	u := User{
		Email:    r.Email,
		RoleID:   r.RoleID,
		IsActive: r.IsActive,
	}
	return u.WithProfile(r.Profile).WithPassword(r.Password)
}

// WithPassword returns a copy carrying a new plaintext password that the
// store must hash before writing.
func (u User) WithPassword(plain string) User {
	u.pendingPassword = plain
	return u
}

// PendingPassword returns the plaintext set by WithPassword, if any.
func (u User) PendingPassword() (string, bool) {
	return u.pendingPassword, u.pendingPassword != ""
}

// WithPasswordHash returns a copy holding hash and no pending password.
func (u User) WithPasswordHash(hash string) User {
	u.PasswordHash = hash
	u.pendingPassword = ""
	return u
}

// WithProfile returns a copy with the profile fields replaced.
func (u User) WithProfile(p Profile) User {
	u.Firstname = p.Firstname
	u.Lastname = p.Lastname
	u.Username = p.Username
	u.Phone = p.Phone
	return u
}

// WithEmail returns a copy with a new email.
func (u User) WithEmail(email string) User {
	u.Email = email
	return u
}

// Profile returns the self-editable fields.
func (u User) Profile() Profile {
	return Profile{
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Username:  u.Username,
		Phone:     u.Phone,
	}
}
