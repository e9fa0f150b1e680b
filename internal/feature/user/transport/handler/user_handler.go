package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account_backend/internal/feature/user/domain/entity"
	"account_backend/internal/feature/user/transport/http/dto"
	"account_backend/internal/feature/user/usecase"
	"account_backend/internal/platform/http/httperr"
	jwtmw "account_backend/internal/platform/jwt"
)

var errPasswordMismatch = errors.New("password and confirmPassword must match")

// UserUsecase はアカウント管理のユースケースを定義します。
type UserUsecase interface {
	Me(ctx context.Context, userID uint) (*entity.User, error)
	UpdateMe(ctx context.Context, userID uint, patch usecase.ProfilePatch) (entity.User, error)
	List(ctx context.Context, callerID uint) ([]entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	Create(ctx context.Context, reg entity.Registration) (entity.User, error)
	Update(ctx context.Context, id uint, patch usecase.AdminPatch) (entity.User, error)
	Delete(ctx context.Context, id uint) (entity.User, error)
}

// UserHandler はアカウント管理のHTTPリクエストを処理します。
type UserHandler struct {
	users UserUsecase
	log   *zap.Logger
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// Me は GET /users/me を処理します。
func (h *UserHandler) Me(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	user, err := h.users.Me(c.Request.Context(), p.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

// UpdateMe は PUT /users/me を処理します。
// email, password, roleId, isActive, isDelete を含むリクエストは400です。
func (h *UserHandler) UpdateMe(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req dto.UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, h.log, err)
		return
	}
	user, err := h.users.UpdateMe(c.Request.Context(), p.UserID, req.Patch())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// List は GET /users を処理します。呼び出し元自身と削除済みユーザーは含みません。
func (h *UserHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	users, err := h.users.List(c.Request.Context(), p.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserListResponse(users))
}

// Get は GET /users/:id を処理します。
func (h *UserHandler) Get(c *gin.Context) {
	id, err := httperr.PathID(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

// Create は POST /users を処理します。トークンは発行しません。
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, h.log, err)
		return
	}
	user, err := h.users.Create(c.Request.Context(), req.Registration())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	h.log.Info("user created by admin", zap.Uint("user_id", user.ID))
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Update は PUT /users/:id を処理します。
func (h *UserHandler) Update(c *gin.Context) {
	id, err := httperr.PathID(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, h.log, err)
		return
	}
	if !req.PasswordsMatch() {
		httperr.BadRequest(c, h.log, errPasswordMismatch)
		return
	}
	user, err := h.users.Update(c.Request.Context(), id, req.Patch())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Delete は DELETE /users/:id を処理します。削除後のユーザーを返します。
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := httperr.PathID(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	user, err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	h.log.Info("user deleted", zap.Uint("user_id", user.ID))
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *UserHandler) principal(c *gin.Context) (jwtmw.Principal, bool) {
	p, ok := jwtmw.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.Response{Error: "unauthorized"})
	}
	return p, ok
}
