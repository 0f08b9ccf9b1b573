package repository

import (
	"context"

	authdomain "taskmanager-backend/internal/auth/domain"
)

// UserRepository is the credential store. Lookups return (nil, nil) when no
// user matches.
type UserRepository interface {
	// Create assigns an ID and timestamps and inserts the user. A taken
	// email yields apperror.ErrDuplicateEmail.
	Create(ctx context.Context, user *authdomain.User) error

	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)

	FindByID(ctx context.Context, id string) (*authdomain.User, error)

	// UpdateFields sets the given columns on one user. It reports false if
	// no user has that ID.
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (bool, error)
}
