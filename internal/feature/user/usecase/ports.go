package usecase

import (
	"context"
	"time"

	roleentity "account_backend/internal/feature/role/domain/entity"
	"account_backend/internal/feature/user/domain/entity"
)

// UserRepository abstracts user persistence.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
//
// Create and Save hash a pending password (entity.User.WithPassword) before
// writing; a user without one keeps its stored hash untouched.
type UserRepository interface {
	Create(ctx context.Context, u entity.User) (entity.User, error)
	Save(ctx context.Context, u entity.User) (entity.User, error)

	// FindByEmail returns the user in any lifecycle state.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByID returns a user that is not deleted.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	// FindActiveByID returns a user that is not deleted and is active.
	FindActiveByID(ctx context.Context, id uint) (*entity.User, error)
	// FindByResetToken returns the user holding token with an expiry after now.
	FindByResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error)

	// EmailInUse reports whether an active, non-deleted user other than exceptID owns email.
	EmailInUse(ctx context.Context, email string, exceptID uint) (bool, error)
	// ListExcept returns every non-deleted user except id.
	ListExcept(ctx context.Context, id uint) ([]entity.User, error)
}

// RoleLookup resolves seeded roles by name.
type RoleLookup interface {
	RoleByName(ctx context.Context, name roleentity.Name) (*roleentity.Role, error)
}

// PasswordVerifier compares a plaintext password with a stored hash.
type PasswordVerifier interface {
	Verify(plain, hash string) bool
}

// TokenIssuer signs auth tokens.
type TokenIssuer interface {
	GenerateToken(userID uint) (string, error)
}

// TokenRevoker blocks a token id until expiresAt. A zero expiresAt revokes it permanently.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
}

// StatsRepository reads registration data for the dashboard.
type StatsRepository interface {
	// CreatedBetween returns the creation times of users created in [from, to).
	CreatedBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
	// CountAll counts every stored user regardless of state.
	CountAll(ctx context.Context) (int64, error)
}
