// Package handler はroleフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account_backend/internal/feature/role/domain/entity"
	"account_backend/internal/feature/role/transport/http/dto"
	"account_backend/internal/platform/http/httperr"
)

// RoleUsecase はロール操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type RoleUsecase interface {
	ListAssignableRoles(ctx context.Context) ([]entity.Role, error)
	GetRole(ctx context.Context, id uint) (*entity.Role, error)
	CreateRole(ctx context.Context, name string) (*entity.Role, error)
}

// RoleHandler はロール操作のHTTPリクエストを処理します。
type RoleHandler struct {
	roles RoleUsecase
	log   *zap.Logger
}

// NewRoleHandler はRoleHandlerの新しいインスタンスを生成します。
func NewRoleHandler(roles RoleUsecase, log *zap.Logger) *RoleHandler {
	return &RoleHandler{roles: roles, log: log}
}

// List は GET /roles を処理します。認証不要です。
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roles.ListAssignableRoles(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRoleListResponse(roles))
}

// Get は GET /roles/:id を処理します。
// - IDが不正な場合は400
// - 存在しない、または管理者ロールの場合は404
func (h *RoleHandler) Get(c *gin.Context) {
	id, err := httperr.PathID(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	role, err := h.roles.GetRole(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRoleResponse(*role))
}

// Create は POST /roles を処理します。
// - 管理者ロール、未定義のロール名、既存のロール名はいずれも400
// - 成功時は201
func (h *RoleHandler) Create(c *gin.Context) {
	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, h.log, err)
		return
	}
	role, err := h.roles.CreateRole(c.Request.Context(), req.Name)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	h.log.Info("role created", zap.Uint("role_id", role.ID), zap.String("name", string(role.Name)))
	c.JSON(http.StatusCreated, dto.NewRoleResponse(*role))
}
