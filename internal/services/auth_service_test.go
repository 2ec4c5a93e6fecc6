package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"tcontrol/internal/middleware"
	"tcontrol/internal/models"
)

func seedUser(t *testing.T, users *fakeUserRepo, auth AuthService, email, password string, active bool) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	u := &models.User{Email: email, FullName: "Test User", PasswordHash: hash, IsActive: active}
	if err := users.Store(context.Background(), u); err != nil {
		t.Fatalf("store user failed: %v", err)
	}
	return u
}

func TestAuthenticate_Success(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	auth := NewAuthService(users, "test-secret", 60)
	want := seedUser(t, users, auth, "agent@example.com", "s3cret", true)

	got, err := auth.Authenticate(context.Background(), "Agent@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != want.ID {
		t.Fatalf("authenticated wrong user: %d != %d", got.ID, want.ID)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	auth := NewAuthService(users, "test-secret", 60)
	seedUser(t, users, auth, "agent@example.com", "s3cret", true)

	_, err := auth.Authenticate(context.Background(), "agent@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	auth := NewAuthService(users, "test-secret", 60)

	_, err := auth.Authenticate(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	auth := NewAuthService(users, "test-secret", 60)
	seedUser(t, users, auth, "gone@example.com", "s3cret", false)

	_, err := auth.Authenticate(context.Background(), "gone@example.com", "s3cret")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCreateAccessToken_RoundTrips(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	auth := NewAuthService(users, "test-secret", 60)

	tokenStr, err := auth.CreateAccessToken(77)
	if err != nil {
		t.Fatalf("CreateAccessToken failed: %v", err)
	}

	claims := &middleware.Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.UserID != 77 {
		t.Fatalf("expected user_id=77 in claims, got %d", claims.UserID)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("expected iat and exp claims to be set")
	}
}
