package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestock/inventory-backend/internal/user/domain"
	"github.com/gestock/inventory-backend/internal/user/repository"
	"github.com/gestock/inventory-backend/internal/user/repository/mocks"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.TODO()

	t.Run("Successful registration hashes the password and hides it", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := NewUserService(mockRepo)

		mockRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "ana@example.com" && u.Username == "ana" &&
				u.PasswordHash != "" && u.PasswordHash != "sup3rsecret"
		})).Return(nil).Once()

		user, err := svc.Register(ctx, domain.RegisterRequest{
			CIF:      "B12345678",
			Username: "ana",
			Email:    "Ana@Example.com",
			Password: "sup3rsecret",
		})
		assert.NoError(t, err)
		assert.Equal(t, "ana@example.com", user.Email)
		assert.Empty(t, user.PasswordHash)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Conflicting user maps to ErrUserAlreadyExists", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := NewUserService(mockRepo)

		mockRepo.On("CreateUser", ctx, mock.Anything).Return(repository.ErrUserConflict).Once()

		_, err := svc.Register(ctx, domain.RegisterRequest{
			CIF:      "B12345678",
			Username: "ana",
			Email:    "ana@example.com",
			Password: "sup3rsecret",
		})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.TODO()

	hashed, err := bcrypt.GenerateFromPassword([]byte("sup3rsecret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	t.Run("Valid credentials yield a token", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := NewUserService(mockRepo)

		user := &domain.User{Username: "ana", Email: "ana@example.com", PasswordHash: string(hashed)}
		mockRepo.On("GetUserByEmail", ctx, "ana@example.com").Return(user, nil).Once()

		response, err := svc.Login(ctx, domain.LoginRequest{Email: "ana@example.com", Password: "sup3rsecret"})
		assert.NoError(t, err)
		assert.NotEmpty(t, response.Token)
		assert.Empty(t, response.User.PasswordHash)
	})

	t.Run("Wrong password maps to ErrInvalidCredentials", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := NewUserService(mockRepo)

		user := &domain.User{Email: "ana@example.com", PasswordHash: string(hashed)}
		mockRepo.On("GetUserByEmail", ctx, "ana@example.com").Return(user, nil).Once()

		_, err := svc.Login(ctx, domain.LoginRequest{Email: "ana@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown user maps to ErrInvalidCredentials", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := NewUserService(mockRepo)

		mockRepo.On("GetUserByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrUserNotFound).Once()

		_, err := svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
