package adapters

import (
	"time"

	roleadapters "account_backend/internal/feature/role/adapters"
	roleentity "account_backend/internal/feature/role/domain/entity"
	"account_backend/internal/feature/user/domain/entity"
)

// UserModel is the GORM model for the users table.
// Bool columns carry no default tag: GORM would drop a false zero value on insert.
type UserModel struct {
	ID                   uint                   `gorm:"primaryKey"`
	Firstname            string                 `gorm:"size:100;not null"`
	Lastname             string                 `gorm:"size:100;not null"`
	Email                string                 `gorm:"size:255;not null;uniqueIndex"`
	Username             string                 `gorm:"size:100;not null;uniqueIndex"`
	Phone                string                 `gorm:"size:32;not null"`
	Password             string                 `gorm:"size:255;not null"`
	RoleID               uint                   `gorm:"not null;index"`
	Role                 roleadapters.RoleModel `gorm:"foreignKey:RoleID"`
	ResetPasswordToken   *string                `gorm:"size:64;index"`
	ResetPasswordExpires *time.Time
	IsActive             bool `gorm:"not null"`
	IsDelete             bool `gorm:"not null;index"`
	CreatedAt            time.Time `gorm:"index"`
	UpdatedAt            time.Time
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts the GORM model to a domain entity.
// Role is only set when the association was preloaded.
func (m *UserModel) ToEntity() entity.User {
	return entity.User{
		ID:                   m.ID,
		Firstname:            m.Firstname,
		Lastname:             m.Lastname,
		Email:                m.Email,
		Username:             m.Username,
		Phone:                m.Phone,
		PasswordHash:         m.Password,
		RoleID:               m.RoleID,
		Role:                 roleentity.Name(m.Role.Name),
		ResetPasswordToken:   m.ResetPasswordToken,
		ResetPasswordExpires: m.ResetPasswordExpires,
		IsActive:             m.IsActive,
		IsDelete:             m.IsDelete,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// UserModelFromEntity converts a domain entity to a GORM model.
// The role association is left empty; writes go through RoleID.
func UserModelFromEntity(u entity.User) *UserModel {
	return &UserModel{
		ID:                   u.ID,
		Firstname:            u.Firstname,
		Lastname:             u.Lastname,
		Email:                u.Email,
		Username:             u.Username,
		Phone:                u.Phone,
		Password:             u.PasswordHash,
		RoleID:               u.RoleID,
		ResetPasswordToken:   u.ResetPasswordToken,
		ResetPasswordExpires: u.ResetPasswordExpires,
		IsActive:             u.IsActive,
		IsDelete:             u.IsDelete,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}
