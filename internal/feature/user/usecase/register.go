package usecase

import (
	"context"
	"errors"
	"fmt"

	roleentity "account_backend/internal/feature/role/domain/entity"
	"account_backend/internal/feature/user/domain/entity"
)

// resolveRole loads a seeded role. A missing role is a deployment problem, not a client error.
func resolveRole(ctx context.Context, roles RoleLookup, name roleentity.Name) (*roleentity.Role, error) {
	r, err := roles.RoleByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRoleUnavailable, name, err)
	}
	return r, nil
}

// register creates an account for reg, or revives a soft-deleted account
// that owns the same email. The stored record is reused because a deleted
// account keeps its unique email and username.
func register(ctx context.Context, users UserRepository, role *roleentity.Role, reg entity.Registration) (entity.User, error) {
	reg.RoleID = role.ID

	existing, err := users.FindByEmail(ctx, reg.Email)
	switch {
	case isNotFound(err):
		created, err := users.Create(ctx, entity.New(reg))
		if err != nil {
			return entity.User{}, fmt.Errorf("create user: %w", err)
		}
		created.Role = role.Name
		return created, nil
	case err != nil:
		return entity.User{}, fmt.Errorf("find user by email: %w", err)
	}

	next, err := existing.Revive(reg)
	if err != nil {
		return entity.User{}, err
	}
	saved, err := users.Save(ctx, next)
	if err != nil {
		return entity.User{}, fmt.Errorf("revive user %d: %w", existing.ID, err)
	}
	saved.Role = role.Name
	return saved, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}
