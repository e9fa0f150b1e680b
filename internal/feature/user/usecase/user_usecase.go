package usecase

import (
	"context"
	"fmt"

	roleentity "account_backend/internal/feature/role/domain/entity"
	"account_backend/internal/feature/user/domain/entity"
)

// ProfilePatch holds the self-editable fields. Nil fields are left unchanged.
type ProfilePatch struct {
	Firstname *string
	Lastname  *string
	Username  *string
	Phone     *string
}

// AdminPatch holds the fields an administrator may change on any account.
type AdminPatch struct {
	ProfilePatch
	Email    *string
	Password *string
	IsActive *bool
}

func (p ProfilePatch) apply(prof entity.Profile) entity.Profile {
	if p.Firstname != nil {
		prof.Firstname = *p.Firstname
	}
	if p.Lastname != nil {
		prof.Lastname = *p.Lastname
	}
	if p.Username != nil {
		prof.Username = *p.Username
	}
	if p.Phone != nil {
		prof.Phone = *p.Phone
	}
	return prof
}

// UserUsecase implements profile management and the administrative user operations.
type UserUsecase struct {
	users UserRepository
	roles RoleLookup
}

// NewUserUsecase creates a UserUsecase.
func NewUserUsecase(users UserRepository, roles RoleLookup) *UserUsecase {
	return &UserUsecase{users: users, roles: roles}
}

// Me returns the caller's own account.
func (u *UserUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindActiveByID(ctx, userID)
}

// UpdateMe changes the caller's own profile fields.
func (u *UserUsecase) UpdateMe(ctx context.Context, userID uint, patch ProfilePatch) (entity.User, error) {
	user, err := u.users.FindActiveByID(ctx, userID)
	if err != nil {
		return entity.User{}, err
	}
	saved, err := u.users.Save(ctx, user.WithProfile(patch.apply(user.Profile())))
	if err != nil {
		return entity.User{}, fmt.Errorf("update user %d: %w", userID, err)
	}
	return saved, nil
}

// List returns every non-deleted account except the caller's.
func (u *UserUsecase) List(ctx context.Context, callerID uint) ([]entity.User, error) {
	users, err := u.users.ListExcept(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get returns a non-deleted account by id.
func (u *UserUsecase) Get(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// Create registers an account on behalf of an administrator.
// The same revival rules as self sign-up apply, but the activity flag is chosen by the caller.
func (u *UserUsecase) Create(ctx context.Context, reg entity.Registration) (entity.User, error) {
	role, err := resolveRole(ctx, u.roles, roleentity.NameUser)
	if err != nil {
		return entity.User{}, err
	}
	return register(ctx, u.users, role, reg)
}

// Update applies an administrative patch. A new email must not belong to another live account.
func (u *UserUsecase) Update(ctx context.Context, id uint, patch AdminPatch) (entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return entity.User{}, err
	}
	next := user.WithProfile(patch.apply(user.Profile()))

	if patch.Email != nil && *patch.Email != user.Email {
		inUse, err := u.users.EmailInUse(ctx, *patch.Email, id)
		if err != nil {
			return entity.User{}, fmt.Errorf("check email: %w", err)
		}
		if inUse {
			return entity.User{}, ErrEmailInUse
		}
		next = next.WithEmail(*patch.Email)
	}
	if patch.Password != nil {
		next = next.WithPassword(*patch.Password)
	}
	if patch.IsActive != nil {
		next = next.SetActive(*patch.IsActive)
	}

	saved, err := u.users.Save(ctx, next)
	if err != nil {
		return entity.User{}, fmt.Errorf("update user %d: %w", id, err)
	}
	return saved, nil
}

// Delete soft-deletes an account and returns its final state.
func (u *UserUsecase) Delete(ctx context.Context, id uint) (entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return entity.User{}, err
	}
	next, err := user.MarkDeleted()
	if err != nil {
		return entity.User{}, err
	}
	saved, err := u.users.Save(ctx, next)
	if err != nil {
		return entity.User{}, fmt.Errorf("delete user %d: %w", id, err)
	}
	return saved, nil
}

// SeedAdmin makes sure an administrator account exists for reg.Email.
// An existing account is left as is and reported with created=false.
func (u *UserUsecase) SeedAdmin(ctx context.Context, reg entity.Registration) (user entity.User, created bool, err error) {
	existing, err := u.users.FindByEmail(ctx, reg.Email)
	switch {
	case err == nil:
		return *existing, false, nil
	case !isNotFound(err):
		return entity.User{}, false, fmt.Errorf("find admin: %w", err)
	}

	role, err := resolveRole(ctx, u.roles, roleentity.NameAdmin)
	if err != nil {
		return entity.User{}, false, err
	}
	reg.RoleID = role.ID
	reg.IsActive = true

	saved, err := u.users.Create(ctx, entity.New(reg))
	if err != nil {
		return entity.User{}, false, fmt.Errorf("create admin: %w", err)
	}
	saved.Role = role.Name
	return saved, true, nil
}
