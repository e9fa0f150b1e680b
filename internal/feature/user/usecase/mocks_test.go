package usecase

import (
	"context"
	"time"

	roleentity "account_backend/internal/feature/role/domain/entity"
	"account_backend/internal/feature/user/domain/entity"
)

// mockUserRepository はUserRepositoryのモック実装です。
// nilの関数フィールドは既定の振る舞いを使います。
type mockUserRepository struct {
	CreateFunc           func(ctx context.Context, u entity.User) (entity.User, error)
	SaveFunc             func(ctx context.Context, u entity.User) (entity.User, error)
	FindByEmailFunc      func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc         func(ctx context.Context, id uint) (*entity.User, error)
	FindActiveByIDFunc   func(ctx context.Context, id uint) (*entity.User, error)
	FindByResetTokenFunc func(ctx context.Context, token string, now time.Time) (*entity.User, error)
	EmailInUseFunc       func(ctx context.Context, email string, exceptID uint) (bool, error)
	ListExceptFunc       func(ctx context.Context, id uint) ([]entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u entity.User) (entity.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	u.ID = 1
	return u, nil
}

func (m *mockUserRepository) Save(ctx context.Context, u entity.User) (entity.User, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, u)
	}
	return u, nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindActiveByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindActiveByIDFunc != nil {
		return m.FindActiveByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error) {
	if m.FindByResetTokenFunc != nil {
		return m.FindByResetTokenFunc(ctx, token, now)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) EmailInUse(ctx context.Context, email string, exceptID uint) (bool, error) {
	if m.EmailInUseFunc != nil {
		return m.EmailInUseFunc(ctx, email, exceptID)
	}
	return false, nil
}

func (m *mockUserRepository) ListExcept(ctx context.Context, id uint) ([]entity.User, error) {
	if m.ListExceptFunc != nil {
		return m.ListExceptFunc(ctx, id)
	}
	return nil, nil
}

// mockRoleLookup は既定でUser(ID 1)とAdmin(ID 2)を返します。
type mockRoleLookup struct {
	RoleByNameFunc func(ctx context.Context, name roleentity.Name) (*roleentity.Role, error)
}

func (m *mockRoleLookup) RoleByName(ctx context.Context, name roleentity.Name) (*roleentity.Role, error) {
	if m.RoleByNameFunc != nil {
		return m.RoleByNameFunc(ctx, name)
	}
	r := roleentity.New(name)
	r.ID = 1
	if name == roleentity.NameAdmin {
		r.ID = 2
	}
	return &r, nil
}

// fakePasswords treats "hashed:<plain>" as the hash of plain.
type fakePasswords struct {
	calls []string
}

func (f *fakePasswords) Verify(plain, hash string) bool {
	f.calls = append(f.calls, hash)
	return hash == "hashed:"+plain
}

type mockTokenIssuer struct {
	GenerateTokenFunc func(userID uint) (string, error)
}

func (m *mockTokenIssuer) GenerateToken(userID uint) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID)
	}
	return "mock-jwt-token", nil
}

type mockTokenRevoker struct {
	RevokeFunc func(ctx context.Context, jti string, expiresAt time.Time) error
}

func (m *mockTokenRevoker) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, jti, expiresAt)
	}
	return nil
}

type mockStatsRepository struct {
	CreatedBetweenFunc func(ctx context.Context, from, to time.Time) ([]time.Time, error)
	CountAllFunc       func(ctx context.Context) (int64, error)
}

func (m *mockStatsRepository) CreatedBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	if m.CreatedBetweenFunc != nil {
		return m.CreatedBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *mockStatsRepository) CountAll(ctx context.Context) (int64, error) {
	if m.CountAllFunc != nil {
		return m.CountAllFunc(ctx)
	}
	return 0, nil
}

// storedUser returns a persisted account whose password is plain.
func storedUser(id uint, email, plain string) *entity.User {
	return &entity.User{
		ID:           id,
		Firstname:    "Ada",
		Lastname:     "Lovelace",
		Email:        email,
		Username:     "ada",
		Phone:        "+16502530000",
		PasswordHash: "hashed:" + plain,
		RoleID:       1,
		Role:         roleentity.NameUser,
		IsActive:     true,
	}
}

func registration(email, plain string) entity.Registration {
	return entity.Registration{
		Profile: entity.Profile{
			Firstname: "Grace",
			Lastname:  "Hopper",
			Username:  "grace",
			Phone:     "+16502530001",
		},
		Email:    email,
		Password: plain,
	}
}
