package service

import (
	"context"

	"bookshare-backend/internal/domains/user/model"

	"github.com/google/uuid"
)

// ServiceInterface is the identity API.
type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserDTO, error)
}
