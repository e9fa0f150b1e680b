package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	roleentity "account_backend/internal/feature/role/domain/entity"
	"account_backend/internal/feature/user/domain/entity"
	"account_backend/internal/shared/apperr"
)

func ptr[T any](v T) *T { return &v }

func TestUserUsecase_UpdateMe(t *testing.T) {
	t.Parallel()

	var saved entity.User
	repo := &mockUserRepository{
		FindActiveByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
			return storedUser(id, "ada@example.com", "secret"), nil
		},
		SaveFunc: func(ctx context.Context, u entity.User) (entity.User, error) {
			saved = u
			return u, nil
		},
	}

	_, err := NewUserUsecase(repo, &mockRoleLookup{}).UpdateMe(context.Background(), 2, ProfilePatch{
		Firstname: ptr("Augusta"),
		Phone:     ptr("+442071838750"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Augusta", saved.Firstname)
	assert.Equal(t, "Lovelace", saved.Lastname)
	assert.Equal(t, "+442071838750", saved.Phone)
	assert.Equal(t, "ada@example.com", saved.Email)
	_, hasPending := saved.PendingPassword()
	assert.False(t, hasPending)
}

func TestUserUsecase_List(t *testing.T) {
	t.Parallel()

	var except uint
	repo := &mockUserRepository{
		ListExceptFunc: func(ctx context.Context, id uint) ([]entity.User, error) {
			except = id
			return []entity.User{*storedUser(2, "b@example.com", "x")}, nil
		},
	}
	users, err := NewUserUsecase(repo, &mockRoleLookup{}).List(context.Background(), 9)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, uint(9), except)
}

func TestUserUsecase_Create(t *testing.T) {
	t.Parallel()

	t.Run("honours the requested activity flag", func(t *testing.T) {
		t.Parallel()
		var created entity.User
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, u entity.User) (entity.User, error) {
				created = u
				u.ID = 11
				return u, nil
			},
		}
		reg := registration("new@example.com", "pass")
		reg.IsActive = false

		u, err := NewUserUsecase(repo, &mockRoleLookup{}).Create(context.Background(), reg)
		require.NoError(t, err)
		assert.Equal(t, uint(11), u.ID)
		assert.False(t, created.IsActive)
		assert.Equal(t, roleentity.NameUser, u.Role)
	})

	t.Run("revives a deleted account as inactive when asked", func(t *testing.T) {
		t.Parallel()
		old := storedUser(3, "old@example.com", "x")
		old.IsDelete = true
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return old, nil
			},
		}
		reg := registration("old@example.com", "pass")
		reg.IsActive = false

		u, err := NewUserUsecase(repo, &mockRoleLookup{}).Create(context.Background(), reg)
		require.NoError(t, err)
		assert.Equal(t, uint(3), u.ID)
		assert.Equal(t, entity.StateInactive, u.State())
	})
}

func TestUserUsecase_Update(t *testing.T) {
	t.Parallel()

	find := func(ctx context.Context, id uint) (*entity.User, error) {
		if id == 5 {
			return storedUser(5, "ada@example.com", "secret"), nil
		}
		return nil, ErrUserNotFound
	}

	t.Run("applies every field", func(t *testing.T) {
		t.Parallel()
		var saved entity.User
		repo := &mockUserRepository{
			FindByIDFunc: find,
			SaveFunc: func(ctx context.Context, u entity.User) (entity.User, error) {
				saved = u
				return u, nil
			},
		}
		_, err := NewUserUsecase(repo, &mockRoleLookup{}).Update(context.Background(), 5, AdminPatch{
			ProfilePatch: ProfilePatch{Lastname: ptr("King")},
			Email:        ptr("countess@example.com"),
			Password:     ptr("reset1"),
			IsActive:     ptr(false),
		})
		require.NoError(t, err)

		assert.Equal(t, "King", saved.Lastname)
		assert.Equal(t, "countess@example.com", saved.Email)
		assert.False(t, saved.IsActive)
		pending, _ := saved.PendingPassword()
		assert.Equal(t, "reset1", pending)
	})

	t.Run("email owned by another live account", func(t *testing.T) {
		t.Parallel()
		repo := &mockUserRepository{
			FindByIDFunc: find,
			EmailInUseFunc: func(ctx context.Context, email string, exceptID uint) (bool, error) {
				assert.Equal(t, uint(5), exceptID)
				return true, nil
			},
		}
		_, err := NewUserUsecase(repo, &mockRoleLookup{}).Update(context.Background(), 5, AdminPatch{Email: ptr("taken@example.com")})
		assert.ErrorIs(t, err, ErrEmailInUse)
	})

	t.Run("unchanged email is not checked", func(t *testing.T) {
		t.Parallel()
		repo := &mockUserRepository{
			FindByIDFunc: find,
			EmailInUseFunc: func(ctx context.Context, email string, exceptID uint) (bool, error) {
				t.Fatal("EmailInUse must not be called")
				return false, nil
			},
		}
		_, err := NewUserUsecase(repo, &mockRoleLookup{}).Update(context.Background(), 5, AdminPatch{Email: ptr("ada@example.com")})
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		repo := &mockUserRepository{FindByIDFunc: find}
		_, err := NewUserUsecase(repo, &mockRoleLookup{}).Update(context.Background(), 6, AdminPatch{})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestUserUsecase_Delete(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
			return storedUser(id, "ada@example.com", "secret"), nil
		},
	}
	u, err := NewUserUsecase(repo, &mockRoleLookup{}).Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, u.IsDelete)
	assert.Equal(t, entity.StateDeleted, u.State())

	_, err = NewUserUsecase(&mockUserRepository{}, &mockRoleLookup{}).Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserUsecase_SeedAdmin(t *testing.T) {
	t.Parallel()

	t.Run("creates the admin once", func(t *testing.T) {
		t.Parallel()
		var created entity.User
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, u entity.User) (entity.User, error) {
				created = u
				u.ID = 1
				return u, nil
			},
		}
		u, isNew, err := NewUserUsecase(repo, &mockRoleLookup{}).SeedAdmin(context.Background(), registration("root@example.com", "rootpw"))
		require.NoError(t, err)
		assert.True(t, isNew)
		assert.Equal(t, roleentity.NameAdmin, u.Role)
		assert.Equal(t, uint(2), created.RoleID)
		assert.True(t, created.IsActive)
	})

	t.Run("existing account is kept", func(t *testing.T) {
		t.Parallel()
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return storedUser(1, email, "x"), nil
			},
			CreateFunc: func(ctx context.Context, u entity.User) (entity.User, error) {
				t.Fatal("Create must not be called")
				return u, nil
			},
		}
		_, isNew, err := NewUserUsecase(repo, &mockRoleLookup{}).SeedAdmin(context.Background(), registration("root@example.com", "rootpw"))
		require.NoError(t, err)
		assert.False(t, isNew)
	})
}
