package services

import (
	"context"
	"strings"

	"tcontrol/internal/models"
	"tcontrol/internal/repositories"
)

type UserService interface {
	CreateUser(ctx context.Context, user *models.User, plainPassword string) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type userService struct {
	repo repositories.UserRepository
	auth AuthService
}

func NewUserService(repo repositories.UserRepository, auth AuthService) UserService {
	return &userService{repo: repo, auth: auth}
}

func (s *userService) CreateUser(ctx context.Context, user *models.User, plainPassword string) error {
	hash, err := s.auth.HashPassword(plainPassword)
	if err != nil {
		return err
	}
	user.Email = strings.TrimSpace(strings.ToLower(user.Email))
	user.PasswordHash = hash
	user.IsActive = true
	return s.repo.Store(ctx, user)
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
}
