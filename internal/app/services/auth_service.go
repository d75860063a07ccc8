package services

import (
	"context"
	"errors"
	"strings"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/app/models/dto"
	"github.com/oseghale/unireg/internal/app/repositories"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
	"github.com/oseghale/unireg/internal/pkg/auth"
	"github.com/oseghale/unireg/internal/pkg/logger"
)

// authUserStore is the slice of user persistence the auth service needs.
type authUserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
}

type authServiceImpl struct {
	userRepo   authUserStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo authUserStore, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Signup registers a new account with the default role.
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)
	password := req.Password

	if email == "" || fullName == "" || password == "" {
		return nil, apperrors.NewBadRequestError("email, full_name and password are required")
	}
	if len(password) < 8 {
		return nil, apperrors.NewBadRequestError("Password must be at least 8 characters long")
	}

	if _, err := s.userRepo.GetUserByEmail(ctx, email); err == nil {
		return nil, apperrors.NewBadRequestError("Email already registered")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:          email,
		FullName:       fullName,
		HashedPassword: hashedPassword,
		Role:           models.RoleUser,
		IsActive:       true,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// Lost a race against a concurrent signup with the same email.
			return nil, apperrors.NewBadRequestError("Email already registered")
		}
		return nil, err
	}

	logger.Info().Int64("userID", user.ID).Msg("New account registered")
	return user, nil
}

// Login verifies credentials and issues a bearer token pair.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*auth.TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := req.Password

	if email == "" || password == "" {
		return nil, apperrors.NewBadRequestError("email and password are required")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid credentials")
		}
		return nil, err
	}
	if !auth.CheckPassword(user.HashedPassword, password) {
		return nil, apperrors.NewUnauthorizedError("Invalid credentials")
	}
	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("User is inactive")
	}

	return s.jwtService.GenerateTokenPair(user.ID)
}

// Refresh exchanges a refresh token for a fresh bearer token pair.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	if refreshToken == "" {
		return nil, apperrors.NewBadRequestError("refresh_token is required")
	}

	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenWrongType) {
			return nil, apperrors.NewBadRequestError("Invalid refresh token")
		}
		return nil, apperrors.NewUnauthorizedError("Invalid token")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("User is inactive")
	}

	return s.jwtService.GenerateTokenPair(user.ID)
}
