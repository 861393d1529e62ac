package repository

import (
	"context"

	"crmapi/internal/model"
)

// UserRepository defines data access for API users.
type UserRepository interface {
	// Create inserts a user. Returns ErrDuplicate when the username is taken.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
}
