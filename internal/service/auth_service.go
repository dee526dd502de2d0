package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pathlight/internal/models"
	"github.com/pathlight/internal/repository"
	"github.com/pathlight/pkg/crypto"
)

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInactiveAccount    = errors.New("inactive user")
	ErrDuplicateEmail     = errors.New("the user with this email already exists in the system")
	ErrUnauthorized       = errors.New("could not validate credentials")
	ErrPasswordTooLong    = crypto.ErrPasswordTooLong
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *TokenService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo *repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// SignupRequest represents the signup request
type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email,max=255"`
	Password string  `json:"password" binding:"required"`
	Name     *string `json:"name" binding:"omitempty,max=255"`
}

// LoginRequest represents the OAuth2 password form. Username holds the email.
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse represents the bearer token response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Signup registers a new user
func (s *AuthService) Signup(ctx context.Context, req *SignupRequest) (*models.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           models.NewID(),
		Email:        req.Email,
		Name:         req.Name,
		IsActive:     true,
		PasswordHash: passwordHash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent signup
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a bearer token
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	token, err := s.tokens.Issue(user.ID.String(), s.tokens.TTL())
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// Authenticate resolves a bearer token into the user it was issued for.
// Every failure other than a store error is ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	subject, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	userID, err := models.ParseID(subject)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return user, nil
}

// DeleteAccount deletes the user and every debt and goal it owns
func (s *AuthService) DeleteAccount(ctx context.Context, userID models.ID) error {
	if err := s.userRepo.DeleteWithOwnedData(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	return nil
}

// SetActiveByEmail enables or disables login for the user with the email
func (s *AuthService) SetActiveByEmail(ctx context.Context, email string, active bool) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.userRepo.SetActive(ctx, user.ID, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.IsActive = active
	return user, nil
}
