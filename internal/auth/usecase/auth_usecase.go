package usecase

import (
	"context"
	"log/slog"
	"strings"

	authdomain "taskmanager-backend/internal/auth/domain"
	authdto "taskmanager-backend/internal/auth/dto"
	"taskmanager-backend/internal/auth/repository"
	"taskmanager-backend/pkg/apperror"
	"taskmanager-backend/pkg/config"
	"taskmanager-backend/pkg/storage"
)

const minPasswordLength = 6

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	tokens   *TokenManager
	avatars  storage.Storage
	config   *config.Config
	log      *slog.Logger
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, tokens *TokenManager, avatars storage.Storage, cfg *config.Config, log *slog.Logger) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		avatars:  avatars,
		config:   cfg,
		log:      log.With("component", "auth"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *authUsecase) Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)

	switch {
	case name == "":
		return nil, apperror.Validation("name", "Name is required")
	case email == "":
		return nil, apperror.Validation("email", "Please include a valid email")
	case len(req.Password) < minPasswordLength:
		return nil, apperror.Validation("password", "Please enter a password with 6 or more characters")
	}

	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.WithParam(apperror.ErrDuplicateEmail, "email", "User already exists")
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Avatar:   u.config.DefaultAvatarPath,
	}

	// A concurrent registration can still win the race; the unique index
	// turns it into ErrDuplicateEmail.
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	u.log.InfoContext(ctx, "user registered", "user_id", user.ID)
	return u.issue(user)
}

func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.AuthResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, apperror.WithParam(apperror.ErrNotFound, "email", "Email Not Exist")
	}

	if !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, apperror.WithParam(apperror.ErrInvalidCredential, "password", "Password Incorrect")
	}

	return u.issue(user)
}

func (u *authUsecase) issue(user *authdomain.User) (*authdto.AuthResponse, error) {
	token, err := u.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &authdto.AuthResponse{Token: token, User: user}, nil
}

func (u *authUsecase) VerifyToken(token string) (string, error) {
	return u.tokens.Verify(token)
}

func (u *authUsecase) GetProfile(ctx context.Context, userID string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, userID string, req *authdto.UpdateProfileRequest) (*authdomain.User, error) {
	fields := map[string]interface{}{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.Validation("name", "Name cannot be empty")
		}
		fields["name"] = name
	}
	if req.Age != nil {
		if *req.Age < 0 {
			return nil, apperror.Validation("age", "Age cannot be negative")
		}
		fields["age"] = *req.Age
	}

	if len(fields) > 0 {
		found, err := u.userRepo.UpdateFields(ctx, userID, fields)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, apperror.NotFound("User not found")
		}
	}

	return u.GetProfile(ctx, userID)
}
