// Package dto defines data transfer objects for the user feature's HTTP transport layer.
package dto

// SignUpRequest is the body of POST /users/signup.
type SignUpRequest struct {
	Firstname       string `json:"firstname" binding:"required"`
	Lastname        string `json:"lastname" binding:"required"`
	Username        string `json:"username" binding:"required,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required,phone"`
	Password        string `json:"password" binding:"required,min=4,max=20"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// SignInRequest is the body of POST /users/signin and /users/admin-signin.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PasswordRecoveryRequest is the body of POST /users/password-recovery-request.
type PasswordRecoveryRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RecoverPasswordRequest is the body of POST /users/recover-password/:token.
type RecoverPasswordRequest struct {
	Password        string `json:"password" binding:"required,min=4,max=20"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// ChangePasswordRequest is the body of PUT /users/change-password.
type ChangePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required,min=4,max=20"`
	ConfirmNewPassword string `json:"confirmNewPassword" binding:"required,eqfield=NewPassword"`
}

// AuthResponse is returned by the flows that issue a token.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
