package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"account_backend/internal/feature/user/domain/entity"
)

// RecoveryUsecase implements password reset and password change.
type RecoveryUsecase struct {
	users     UserRepository
	passwords PasswordVerifier
	now       func() time.Time
}

// NewRecoveryUsecase creates a RecoveryUsecase.
func NewRecoveryUsecase(users UserRepository, passwords PasswordVerifier) *RecoveryUsecase {
	return &RecoveryUsecase{users: users, passwords: passwords, now: time.Now}
}

// RequestPasswordReset issues a reset token for the account owning email,
// replacing any earlier one. The token is returned for out-of-band delivery.
func (u *RecoveryUsecase) RequestPasswordReset(ctx context.Context, email string) (string, time.Time, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := user.CanSignIn(); err != nil {
		return "", time.Time{}, err
	}

	token, expiresAt, err := entity.NewResetToken(u.now())
	if err != nil {
		return "", time.Time{}, err
	}
	if _, err := u.users.Save(ctx, user.WithResetToken(token, expiresAt)); err != nil {
		return "", time.Time{}, fmt.Errorf("store reset token: %w", err)
	}
	return token, expiresAt, nil
}

// VerifyResetToken checks that token is current without consuming it.
func (u *RecoveryUsecase) VerifyResetToken(ctx context.Context, token string) error {
	_, err := u.findByResetToken(ctx, token)
	return err
}

// ResetPassword consumes token and sets a new password.
func (u *RecoveryUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := u.findByResetToken(ctx, token)
	if err != nil {
		return err
	}
	next := user.WithPassword(newPassword).ClearResetToken()
	if _, err := u.users.Save(ctx, next); err != nil {
		return fmt.Errorf("reset password for user %d: %w", user.ID, err)
	}
	return nil
}

// ChangePassword replaces the password of a signed-in user after checking the current one.
func (u *RecoveryUsecase) ChangePassword(ctx context.Context, userID uint, current, newPassword string) (entity.User, error) {
	user, err := u.users.FindActiveByID(ctx, userID)
	if err != nil {
		return entity.User{}, err
	}
	if !u.passwords.Verify(current, user.PasswordHash) {
		return entity.User{}, ErrWrongPassword
	}
	saved, err := u.users.Save(ctx, user.WithPassword(newPassword))
	if err != nil {
		return entity.User{}, fmt.Errorf("change password for user %d: %w", userID, err)
	}
	return saved, nil
}

func (u *RecoveryUsecase) findByResetToken(ctx context.Context, token string) (*entity.User, error) {
	now := u.now()
	user, err := u.users.FindByResetToken(ctx, token, now)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidResetToken
		}
		return nil, fmt.Errorf("find user by reset token: %w", err)
	}
	if !user.IsResetTokenValid(token, now) {
		return nil, ErrInvalidResetToken
	}
	return user, nil
}
