package usecase

import (
	"context"

	authdomain "taskmanager-backend/internal/auth/domain"
	authdto "taskmanager-backend/internal/auth/dto"
)

// AuthUsecase defines the interface for account and session logic
type AuthUsecase interface {
	// Register creates an account and returns a session token for it
	Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.AuthResponse, error)

	// Login checks credentials and returns a session token
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.AuthResponse, error)

	// VerifyToken resolves a bearer token to a user id without side effects
	VerifyToken(token string) (string, error)

	// GetProfile returns the user record; the password hash is never serialized
	GetProfile(ctx context.Context, userID string) (*authdomain.User, error)

	// UpdateProfile changes name and/or age
	UpdateProfile(ctx context.Context, userID string, req *authdto.UpdateProfileRequest) (*authdomain.User, error)

	// UpdateAvatar stores a new avatar image and returns its public path
	UpdateAvatar(ctx context.Context, userID string, upload authdto.AvatarUpload) (string, error)
}
