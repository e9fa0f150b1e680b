// Package dto はroleフィーチャーのHTTPリクエスト/レスポンス型を定義します。
package dto

import (
	"time"

	"account_backend/internal/feature/role/domain/entity"
)

// CreateRoleRequest はロール作成リクエストです。
type CreateRoleRequest struct {
	Name string `json:"name" binding:"required"`
}

// RoleResponse はロールのレスポンス表現です。
type RoleResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	IsDelete  bool      `json:"isDelete"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewRoleResponse はエンティティをレスポンスに変換します。
func NewRoleResponse(r entity.Role) RoleResponse {
	return RoleResponse{
		ID:        r.ID,
		Name:      string(r.Name),
		IsActive:  r.IsActive,
		IsDelete:  r.IsDelete,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// NewRoleListResponse はエンティティのスライスを変換します。空の場合も空配列を返します。
func NewRoleListResponse(roles []entity.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, NewRoleResponse(r))
	}
	return out
}
