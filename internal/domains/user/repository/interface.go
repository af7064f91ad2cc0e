package repository

import (
	"context"

	"bookshare-backend/internal/domains/user/model"

	"github.com/google/uuid"
)

// Interface is the user data access contract.
type Interface interface {
	// Insert persists a new user, filling ID and CreatedAt. Unique
	// collisions surface as model.ErrEmailTaken / model.ErrUsernameTaken.
	Insert(ctx context.Context, user *model.User) error

	// FindByEmail returns model.ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID returns model.ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}
