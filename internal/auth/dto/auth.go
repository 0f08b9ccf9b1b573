package dto

import authdomain "taskmanager-backend/internal/auth/domain"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UpdateProfileRequest carries the mutable profile fields. Nil fields are
// left unchanged.
type UpdateProfileRequest struct {
	Name *string `json:"name"`
	Age  *int    `json:"age" binding:"omitempty,min=0"`
}

type AuthResponse struct {
	Token string           `json:"token"`
	User  *authdomain.User `json:"user"`
}

type AvatarResponse struct {
	Avatar  string `json:"avatar"`
	Message string `json:"message"`
}

// AvatarUpload is an uploaded image as received at the HTTP boundary.
type AvatarUpload struct {
	Data     []byte
	MimeType string
	Filename string
}
