package service

import (
	"crypto/subtle"

	"lexideck/internal/domain"
	"lexideck/internal/repository"
)

// AuthService handles authentication logic
type AuthService struct {
	userRepo    repository.UserRepository
	botPassword string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, botPassword string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		botPassword: botPassword,
	}
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.botPassword)) == 1
}

// Ensure creates the user record if missing and returns it
func (s *AuthService) Ensure(userID int64) (*domain.User, error) {
	return s.userRepo.Ensure(userID)
}

// Authorize authorizes a user
func (s *AuthService) Authorize(userID int64) error {
	return s.userRepo.Authorize(userID)
}
