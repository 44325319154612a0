package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rahafha1/project-manager-api/internal/access"
	"github.com/rahafha1/project-manager-api/internal/auth"
	"github.com/rahafha1/project-manager-api/internal/constants"
	"github.com/rahafha1/project-manager-api/internal/models"
	"github.com/rahafha1/project-manager-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	IsSuperuser bool
	IsStaff     bool
}

// LoginInput represents login credentials.
type LoginInput struct {
	Username string
	Password string
}

// Register creates a new active user. Account flags are only honored when
// the caller sets them explicitly, which the public endpoint never does.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: string(hashedPassword),
		IsSuperuser:  input.IsSuperuser,
		IsStaff:      input.IsStaff,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, auth.Pair, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.Pair{}, ErrInvalidCredentials
		}
		return nil, auth.Pair{}, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, auth.Pair{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, auth.Pair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, auth.Pair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return user, pair, nil
}

// Refresh exchanges a refresh token for a new access token. The user must
// still exist and be active.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	token, userID, err := s.tokens.Refresh(refreshToken)
	if err != nil {
		return "", err
	}
	if _, err := s.ActiveUser(ctx, userID); err != nil {
		return "", err
	}
	return token, nil
}

// ParseAccessToken validates an access token and returns its user id.
func (s *AuthService) ParseAccessToken(token string) (uint64, error) {
	claims, err := s.tokens.Parse(token, auth.TokenAccess)
	if err != nil {
		return 0, err
	}
	return claims.UserID()
}

// ActiveUser loads a user and rejects disabled accounts.
func (s *AuthService) ActiveUser(ctx context.Context, userID uint64) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

// Principal resolves the principal for a user id, reloading the account
// flags from the store.
func (s *AuthService) Principal(ctx context.Context, userID uint64) (access.Principal, error) {
	user, err := s.ActiveUser(ctx, userID)
	if err != nil {
		return access.Principal{}, err
	}
	return access.PrincipalFromUser(user), nil
}

// GetUser returns a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
