package handler

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	roleentity "account_backend/internal/feature/role/domain/entity"
	"account_backend/internal/feature/user/domain/entity"
	"account_backend/internal/feature/user/usecase"
	jwtmw "account_backend/internal/platform/jwt"
	"account_backend/internal/platform/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validation.Register("US"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const validPhone = "+16502530000"

var testUser = entity.User{
	ID:        7,
	Firstname: "Ada",
	Lastname:  "Lovelace",
	Username:  "ada",
	Email:     "ada@example.com",
	Phone:     validPhone,
	RoleID:    1,
	Role:      roleentity.NameUser,
	IsActive:  true,
	CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	UpdatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
}

// asCaller stands in for jwtmw.AuthRequired.
func asCaller(id uint, role roleentity.Name, jti string, exp time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &jwtmw.Claims{}
		claims.ID = jti
		if !exp.IsZero() {
			claims.ExpiresAt = jwt.NewNumericDate(exp)
		}
		c.Set(jwtmw.ContextUserID, id)
		c.Set(jwtmw.ContextPrincipal, jwtmw.Principal{UserID: id, Role: role})
		c.Set(jwtmw.ContextClaims, claims)
		c.Next()
	}
}

type mockAuthUsecase struct {
	SignUpFunc      func(ctx context.Context, reg entity.Registration) (usecase.AuthResult, error)
	SignInFunc      func(ctx context.Context, email, password string) (usecase.AuthResult, error)
	AdminSignInFunc func(ctx context.Context, email, password string) (usecase.AuthResult, error)
	LogoutFunc      func(ctx context.Context, jti string, expiresAt time.Time) error
}

func (m *mockAuthUsecase) SignUp(ctx context.Context, reg entity.Registration) (usecase.AuthResult, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, reg)
	}
	return usecase.AuthResult{Token: "mock-jwt-token", User: testUser}, nil
}

func (m *mockAuthUsecase) SignIn(ctx context.Context, email, password string) (usecase.AuthResult, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	return usecase.AuthResult{Token: "mock-jwt-token", User: testUser}, nil
}

func (m *mockAuthUsecase) AdminSignIn(ctx context.Context, email, password string) (usecase.AuthResult, error) {
	if m.AdminSignInFunc != nil {
		return m.AdminSignInFunc(ctx, email, password)
	}
	return usecase.AuthResult{}, usecase.ErrNotAdmin
}

func (m *mockAuthUsecase) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, jti, expiresAt)
	}
	return nil
}

type mockRecoveryUsecase struct {
	RequestFunc func(ctx context.Context, email string) (string, time.Time, error)
	VerifyFunc  func(ctx context.Context, token string) error
	ResetFunc   func(ctx context.Context, token, newPassword string) error
	ChangeFunc  func(ctx context.Context, userID uint, current, newPassword string) (entity.User, error)
}

func (m *mockRecoveryUsecase) RequestPasswordReset(ctx context.Context, email string) (string, time.Time, error) {
	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, email)
	}
	return "reset-token", time.Now().Add(time.Hour), nil
}

func (m *mockRecoveryUsecase) VerifyResetToken(ctx context.Context, token string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	return nil
}

func (m *mockRecoveryUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, token, newPassword)
	}
	return nil
}

func (m *mockRecoveryUsecase) ChangePassword(ctx context.Context, userID uint, current, newPassword string) (entity.User, error) {
	if m.ChangeFunc != nil {
		return m.ChangeFunc(ctx, userID, current, newPassword)
	}
	return testUser, nil
}

type mockUserUsecase struct {
	MeFunc       func(ctx context.Context, userID uint) (*entity.User, error)
	UpdateMeFunc func(ctx context.Context, userID uint, patch usecase.ProfilePatch) (entity.User, error)
	ListFunc     func(ctx context.Context, callerID uint) ([]entity.User, error)
	GetFunc      func(ctx context.Context, id uint) (*entity.User, error)
	CreateFunc   func(ctx context.Context, reg entity.Registration) (entity.User, error)
	UpdateFunc   func(ctx context.Context, id uint, patch usecase.AdminPatch) (entity.User, error)
	DeleteFunc   func(ctx context.Context, id uint) (entity.User, error)
}

func (m *mockUserUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, userID)
	}
	u := testUser
	return &u, nil
}

func (m *mockUserUsecase) UpdateMe(ctx context.Context, userID uint, patch usecase.ProfilePatch) (entity.User, error) {
	if m.UpdateMeFunc != nil {
		return m.UpdateMeFunc(ctx, userID, patch)
	}
	return testUser, nil
}

func (m *mockUserUsecase) List(ctx context.Context, callerID uint) ([]entity.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, callerID)
	}
	return nil, nil
}

func (m *mockUserUsecase) Get(ctx context.Context, id uint) (*entity.User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, usecase.ErrUserNotFound
}

func (m *mockUserUsecase) Create(ctx context.Context, reg entity.Registration) (entity.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, reg)
	}
	return testUser, nil
}

func (m *mockUserUsecase) Update(ctx context.Context, id uint, patch usecase.AdminPatch) (entity.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return testUser, nil
}

func (m *mockUserUsecase) Delete(ctx context.Context, id uint) (entity.User, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return entity.User{}, usecase.ErrUserNotFound
}

type mockStatsUsecase struct {
	MonthsFunc func(ctx context.Context) ([]usecase.MonthCount, error)
	WeeksFunc  func(ctx context.Context) ([]usecase.WeekCount, error)
	TotalFunc  func(ctx context.Context) (int64, error)
}

func (m *mockStatsUsecase) RegisteredPerMonth(ctx context.Context) ([]usecase.MonthCount, error) {
	if m.MonthsFunc != nil {
		return m.MonthsFunc(ctx)
	}
	return nil, nil
}

func (m *mockStatsUsecase) WeeklyRegistersCount(ctx context.Context) ([]usecase.WeekCount, error) {
	if m.WeeksFunc != nil {
		return m.WeeksFunc(ctx)
	}
	return []usecase.WeekCount{}, nil
}

func (m *mockStatsUsecase) TotalRegistered(ctx context.Context) (int64, error) {
	if m.TotalFunc != nil {
		return m.TotalFunc(ctx)
	}
	return 0, nil
}
