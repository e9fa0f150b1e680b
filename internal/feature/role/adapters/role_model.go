package adapters

import (
	"time"

	"account_backend/internal/feature/role/domain/entity"
)

// RoleModel はrolesテーブルのGORMモデルです。
// bool列にdefaultタグを付けないこと（falseのゼロ値がINSERTで省略されるため）。
type RoleModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:32;not null;index"`
	IsActive  bool   `gorm:"not null"`
	IsDelete  bool   `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName はGORM用のテーブル名を返します。
func (RoleModel) TableName() string {
	return "roles"
}

// ToEntity はGORMモデルをドメインエンティティに変換します。
func (m *RoleModel) ToEntity() entity.Role {
	return entity.Role{
		ID:        m.ID,
		Name:      entity.Name(m.Name),
		IsActive:  m.IsActive,
		IsDelete:  m.IsDelete,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// RoleModelFromEntity はドメインエンティティをGORMモデルに変換します。
func RoleModelFromEntity(r entity.Role) *RoleModel {
	return &RoleModel{
		ID:        r.ID,
		Name:      string(r.Name),
		IsActive:  r.IsActive,
		IsDelete:  r.IsDelete,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
