package dto

import (
	"encoding/json"
	"time"

	"account_backend/internal/feature/user/domain/entity"
	"account_backend/internal/feature/user/usecase"
)

// UpdateMeRequest is the body of PUT /users/me.
// Credential and lifecycle fields must be absent.
type UpdateMeRequest struct {
	Firstname *string `json:"firstname" binding:"omitempty,min=1"`
	Lastname  *string `json:"lastname" binding:"omitempty,min=1"`
	Username  *string `json:"username" binding:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,phone"`

	Email    json.RawMessage `json:"email" binding:"isdefault"`
	Password json.RawMessage `json:"password" binding:"isdefault"`
	RoleID   json.RawMessage `json:"roleId" binding:"isdefault"`
	IsActive json.RawMessage `json:"isActive" binding:"isdefault"`
	IsDelete json.RawMessage `json:"isDelete" binding:"isdefault"`
}

// Patch converts the request into a usecase patch.
func (r UpdateMeRequest) Patch() usecase.ProfilePatch {
	return usecase.ProfilePatch{
		Firstname: r.Firstname,
		Lastname:  r.Lastname,
		Username:  r.Username,
		Phone:     r.Phone,
	}
}

// CreateUserRequest is the body of POST /users (admin).
type CreateUserRequest struct {
	SignUpRequest
	IsActive *bool `json:"isActive" binding:"required"`
}

// UpdateUserRequest is the body of PUT /users/:id (admin).
// password and confirmPassword must be sent together.
type UpdateUserRequest struct {
	Firstname       *string `json:"firstname" binding:"omitempty,min=1"`
	Lastname        *string `json:"lastname" binding:"omitempty,min=1"`
	Username        *string `json:"username" binding:"omitempty,min=1,max=100"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Phone           *string `json:"phone" binding:"omitempty,phone"`
	Password        *string `json:"password" binding:"omitempty,min=4,max=20"`
	ConfirmPassword *string `json:"confirmPassword"`
	IsActive        *bool   `json:"isActive"`

	RoleID   json.RawMessage `json:"roleId" binding:"isdefault"`
	IsDelete json.RawMessage `json:"isDelete" binding:"isdefault"`
}

// PasswordsMatch reports whether password and confirmPassword are both absent or equal.
func (r UpdateUserRequest) PasswordsMatch() bool {
	switch {
	case r.Password == nil && r.ConfirmPassword == nil:
		return true
	case r.Password == nil || r.ConfirmPassword == nil:
		return false
	default:
		return *r.Password == *r.ConfirmPassword
	}
}

// Patch converts the request into a usecase patch.
func (r UpdateUserRequest) Patch() usecase.AdminPatch {
	return usecase.AdminPatch{
		ProfilePatch: usecase.ProfilePatch{
			Firstname: r.Firstname,
			Lastname:  r.Lastname,
			Username:  r.Username,
			Phone:     r.Phone,
		},
		Email:    r.Email,
		Password: r.Password,
		IsActive: r.IsActive,
	}
}

// UserResponse is the public view of an account. It never carries password or reset data.
type UserResponse struct {
	ID        uint      `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	RoleID    uint      `json:"roleId"`
	Role      string    `json:"role,omitempty"`
	IsActive  bool      `json:"isActive"`
	IsDelete  bool      `json:"isDelete"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse converts an entity to its public view.
func NewUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		RoleID:    u.RoleID,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		IsDelete:  u.IsDelete,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserListResponse converts a slice of entities. An empty input yields an empty array.
func NewUserListResponse(users []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// Registration builds the entity input from a sign-up body.
func (r SignUpRequest) Registration() entity.Registration {
	return entity.Registration{
		Profile: entity.Profile{
			Firstname: r.Firstname,
			Lastname:  r.Lastname,
			Username:  r.Username,
			Phone:     r.Phone,
		},
		Email:    r.Email,
		Password: r.Password,
	}
}

// Registration builds the entity input for an admin-created account.
func (r CreateUserRequest) Registration() entity.Registration {
	reg := r.SignUpRequest.Registration()
	reg.IsActive = r.IsActive != nil && *r.IsActive
	return reg
}
