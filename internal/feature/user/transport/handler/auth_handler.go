// Package handler はuserフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account_backend/internal/feature/user/domain/entity"
	"account_backend/internal/feature/user/transport/http/dto"
	"account_backend/internal/feature/user/usecase"
	"account_backend/internal/platform/http/httperr"
	jwtmw "account_backend/internal/platform/jwt"
	"account_backend/internal/platform/metrics"
	"account_backend/internal/shared/apperr"
)

// AuthUsecase は認証フローのユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	SignUp(ctx context.Context, reg entity.Registration) (usecase.AuthResult, error)
	SignIn(ctx context.Context, email, password string) (usecase.AuthResult, error)
	AdminSignIn(ctx context.Context, email, password string) (usecase.AuthResult, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

// RecoveryUsecase はパスワード再設定・変更のユースケースを定義します。
type RecoveryUsecase interface {
	RequestPasswordReset(ctx context.Context, email string) (string, time.Time, error)
	VerifyResetToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID uint, current, newPassword string) (entity.User, error)
}

// AuthHandler は認証関連のHTTPリクエストを処理します。
type AuthHandler struct {
	auth     AuthUsecase
	recovery RecoveryUsecase
	log      *zap.Logger
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase, recovery RecoveryUsecase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, recovery: recovery, log: log}
}

// SignUp は POST /users/signup を処理します。
// - 入力不正は400
// - 削除済みアカウントのメールアドレスは同じレコードを再有効化
// - 無効化されたアカウントは403、使用中のメールアドレスは400
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, h.log, err)
		return
	}
	res, err := h.auth.SignUp(c.Request.Context(), req.Registration())
	h.record(metrics.FlowSignUp, err)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	h.log.Info("user signed up", zap.Uint("user_id", res.User.ID))
	c.JSON(http.StatusOK, newAuthResponse(res))
}

// SignIn は POST /users/signin を処理します。
// 不明なメールアドレスと誤ったパスワードは同じ401を返します。
func (h *AuthHandler) SignIn(c *gin.Context) {
	h.signIn(c, metrics.FlowSignIn, h.auth.SignIn)
}

// AdminSignIn は POST /users/admin-signin を処理します。
// 管理者以外のアカウントは403です。
func (h *AuthHandler) AdminSignIn(c *gin.Context) {
	h.signIn(c, metrics.FlowAdminSignIn, h.auth.AdminSignIn)
}

func (h *AuthHandler) signIn(c *gin.Context, flow string, fn func(ctx context.Context, email, password string) (usecase.AuthResult, error)) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, h.log, err)
		return
	}
	res, err := fn(c.Request.Context(), req.Email, req.Password)
	h.record(flow, err)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newAuthResponse(res))
}

// Logout は POST /users/logout を処理します。現在のトークンを失効させます。
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.Response{Error: "unauthorized"})
		return
	}
	if err := h.auth.Logout(c.Request.Context(), claims.ID, claims.ExpiresAtTime()); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusOK)
}

// PasswordRecoveryRequest は POST /users/password-recovery-request を処理します。
// トークンはレスポンスに含めません（配送は対象外）。
func (h *AuthHandler) PasswordRecoveryRequest(c *gin.Context) {
	var req dto.PasswordRecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, h.log, err)
		return
	}
	_, expiresAt, err := h.recovery.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	h.log.Info("password reset requested", zap.Time("expires_at", expiresAt))
	c.Status(http.StatusOK)
}

// VerifyResetToken は POST /users/verify-password-token/:token を処理します。
func (h *AuthHandler) VerifyResetToken(c *gin.Context) {
	if err := h.recovery.VerifyResetToken(c.Request.Context(), c.Param("token")); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusOK)
}

// RecoverPassword は POST /users/recover-password/:token を処理します。
func (h *AuthHandler) RecoverPassword(c *gin.Context) {
	var req dto.RecoverPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, h.log, err)
		return
	}
	if err := h.recovery.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusOK)
}

// ChangePassword は PUT /users/change-password を処理します。
// 現在のパスワードが一致しない場合は400です。
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	p, ok := jwtmw.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.Response{Error: "unauthorized"})
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, h.log, err)
		return
	}
	user, err := h.recovery.ChangePassword(c.Request.Context(), p.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *AuthHandler) record(flow string, err error) {
	result := "success"
	if err != nil {
		result = apperr.KindOf(err).String()
	}
	metrics.AuthAttempt(flow, result)
}

func newAuthResponse(res usecase.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{Token: res.Token, User: dto.NewUserResponse(res.User)}
}
