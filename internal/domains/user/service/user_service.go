package service

import (
	"context"
	"errors"
	"fmt"

	"bookshare-backend/internal/domains/user/model"
	"bookshare-backend/internal/domains/user/repository"
	"bookshare-backend/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, login and profile reads.
type UserService struct {
	repo repository.Interface
	jwt  *jwt.Manager
}

func NewService(repo repository.Interface, jwtManager *jwt.Manager) ServiceInterface {
	return &UserService{
		repo: repo,
		jwt:  jwtManager,
	}
}

func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("password hash failed: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		ProfileImage: fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", req.Username),
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}

	return s.authResponse(user)
}

func (s *UserService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := user.ToDTO()
	return &dto, nil
}

func (s *UserService) authResponse(user *model.User) (*model.AuthResponse, error) {
	token, err := s.jwt.GenerateAccessToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}

	return &model.AuthResponse{
		Token: token,
		User:  user.ToDTO(),
	}, nil
}
