package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	roleentity "account_backend/internal/feature/role/domain/entity"
	"account_backend/internal/feature/user/domain/entity"
)

// dummyHash is compared against when no account matches the email, so that
// an unknown email costs the same bcrypt work as a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthResult is returned by the flows that issue a token.
type AuthResult struct {
	Token string
	User  entity.User
}

// AuthUsecase implements sign-up, sign-in, logout and principal resolution.
type AuthUsecase struct {
	users     UserRepository
	roles     RoleLookup
	passwords PasswordVerifier
	tokens    TokenIssuer
	revoker   TokenRevoker
	now       func() time.Time
}

// NewAuthUsecase creates an AuthUsecase. revoker may be nil, in which case logout is a no-op.
func NewAuthUsecase(users UserRepository, roles RoleLookup, passwords PasswordVerifier, tokens TokenIssuer, revoker TokenRevoker) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		roles:     roles,
		passwords: passwords,
		tokens:    tokens,
		revoker:   revoker,
		now:       time.Now,
	}
}

// SignUp registers an account with the default role and signs it in.
// An email owned by a deleted account revives that account; an inactive
// account is rejected; a live account owns the email.
func (u *AuthUsecase) SignUp(ctx context.Context, reg entity.Registration) (AuthResult, error) {
	role, err := resolveRole(ctx, u.roles, roleentity.NameUser)
	if err != nil {
		return AuthResult{}, err
	}
	reg.IsActive = true

	user, err := register(ctx, u.users, role, reg)
	if err != nil {
		return AuthResult{}, err
	}
	return u.issue(user)
}

// SignIn authenticates by email and password.
// The password is checked before the lifecycle so deleted and disabled
// states are only revealed to callers who know the password.
func (u *AuthUsecase) SignIn(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := u.authenticate(ctx, email, password)
	if err != nil {
		return AuthResult{}, err
	}
	if err := user.CanSignIn(); err != nil {
		return AuthResult{}, err
	}
	return u.issue(*user)
}

// AdminSignIn is SignIn restricted to the privileged role.
func (u *AuthUsecase) AdminSignIn(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := u.authenticate(ctx, email, password)
	if err != nil {
		return AuthResult{}, err
	}
	if err := user.CanSignIn(); err != nil {
		return AuthResult{}, err
	}
	if !roleentity.IsPrivileged(user.Role) {
		return AuthResult{}, ErrNotAdmin
	}
	return u.issue(*user)
}

// Logout revokes the presented token until it would have expired.
func (u *AuthUsecase) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if u.revoker == nil {
		return nil
	}
	if err := u.revoker.Revoke(ctx, jti, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// ResolvePrincipal loads the caller of an authenticated request.
// Deleted and inactive users are not found.
func (u *AuthUsecase) ResolvePrincipal(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindActiveByID(ctx, userID)
}

// authenticate always performs one bcrypt comparison.
func (u *AuthUsecase) authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	hash := dummyHash
	if user != nil {
		hash = user.PasswordHash
	}
	ok := u.passwords.Verify(password, hash)

	if user == nil || !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (u *AuthUsecase) issue(user entity.User) (AuthResult, error) {
	token, err := u.tokens.GenerateToken(user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return AuthResult{Token: token, User: user}, nil
}
