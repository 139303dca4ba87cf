package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
)

type AuthService interface {
	Register(req models.RegisterRequest) (*models.User, error)
	Login(req models.LoginRequest) (*models.LoginResponse, error)
	Refresh(refreshToken string) (*models.RefreshResponse, error)
	CurrentUser(userID uuid.UUID) (*models.User, error)
}

type authService struct {
	users  repositories.UserRepository
	tokens TokenService
	log    *zap.Logger
}

func NewAuthService(users repositories.UserRepository, tokens TokenService, log *zap.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		log:    log,
	}
}

// Register implements AuthService.
func (s *authService) Register(req models.RegisterRequest) (*models.User, error) {
	const op = "register"

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, ValidationError(op, "Email and password are required")
	}

	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, ConflictError(op, "Email already registered", nil)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, ServiceError(op, "Failed to register user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ServiceError(op, "Failed to hash password", err)
	}

	user := &models.User{
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		return nil, ServiceError(op, "Failed to register user", err)
	}

	s.log.Info("👤 User registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Login implements AuthService.
func (s *authService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	const op = "login"

	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, UnauthorizedError(op, "Invalid credentials")
		}
		return nil, ServiceError(op, "Failed to log in", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, UnauthorizedError(op, "Invalid credentials")
	}

	access, err := s.tokens.Issue(user.ID, TokenAccess)
	if err != nil {
		return nil, ServiceError(op, "Failed to issue token", err)
	}
	refresh, err := s.tokens.Issue(user.ID, TokenRefresh)
	if err != nil {
		return nil, ServiceError(op, "Failed to issue token", err)
	}

	return &models.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}

// Refresh implements AuthService. Only refresh tokens are accepted.
func (s *authService) Refresh(refreshToken string) (*models.RefreshResponse, error) {
	const op = "refresh"

	userID, err := s.tokens.Verify(refreshToken, TokenRefresh)
	if err != nil {
		return nil, UnauthorizedError(op, "Invalid refresh token")
	}

	user, err := s.CurrentUser(userID)
	if err != nil {
		return nil, err
	}

	access, err := s.tokens.Issue(user.ID, TokenAccess)
	if err != nil {
		return nil, ServiceError(op, "Failed to issue token", err)
	}

	return &models.RefreshResponse{AccessToken: access, User: user}, nil
}

func (s *authService) CurrentUser(userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFoundError("current_user", "User not found", err)
		}
		return nil, ServiceError("current_user", "Failed to load user", err)
	}
	return user, nil
}
