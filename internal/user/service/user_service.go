package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/gestock/inventory-backend/internal/auth"
	"github.com/gestock/inventory-backend/internal/platform/logger"
	"github.com/gestock/inventory-backend/internal/user/domain"
	"github.com/gestock/inventory-backend/internal/user/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserAlreadyExists  = errors.New("user already exists with that email, username or CIF")
)

type UserService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
}

type userServiceImpl struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userServiceImpl{repo: repo}
}

func (s *userServiceImpl) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	req.CIF = strings.TrimSpace(req.CIF)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Svc.Register: failed to hash password", err)
		return nil, fmt.Errorf("could not process registration: %w", err)
	}

	user := &domain.User{
		CIF:          req.CIF,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		IsAdmin:      req.IsAdmin,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserConflict) {
			return nil, ErrUserAlreadyExists
		}
		logger.Error("Svc.Register: repo error", err)
		return nil, fmt.Errorf("could not save user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userServiceImpl) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		logger.Error("Svc.Login: repo error", err)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.SignToken(user.ID, user.Username, user.Email, user.IsAdmin)
	if err != nil {
		logger.Error("Svc.Login: failed to sign token", err)
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	user.PasswordHash = ""
	return &domain.LoginResponse{User: *user, Token: token}, nil
}
