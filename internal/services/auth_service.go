package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"tcontrol/internal/middleware"
	"tcontrol/internal/models"
	"tcontrol/internal/repositories"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService interface {
	HashPassword(plain string) (string, error)
	// Authenticate verifies email+password and returns the user, or
	// ErrInvalidCredentials (never leaks which part was wrong).
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	CreateAccessToken(userID int64) (string, error)
}

type authService struct {
	users  repositories.UserRepository
	jwtKey []byte
	ttl    time.Duration
}

func NewAuthService(users repositories.UserRepository, jwtSecret string, accessTTLMinutes int) AuthService {
	return &authService{
		users:  users,
		jwtKey: []byte(jwtSecret),
		ttl:    time.Duration(accessTTLMinutes) * time.Minute,
	}
}

func (s *authService) HashPassword(plain string) (string, error) {
	if strings.TrimSpace(plain) == "" {
		return "", fmt.Errorf("password is required")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (s *authService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("[auth] bcrypt mismatch for userID=%d", user.ID)
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) CreateAccessToken(userID int64) (string, error) {
	now := time.Now()
	claims := &middleware.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}
