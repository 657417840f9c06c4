package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	uDomain "github.com/gestock/inventory-backend/internal/user/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *uDomain.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = bson.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*uDomain.User, error) {
	args := m.Called(ctx, email)
	if res := args.Get(0); res != nil {
		return res.(*uDomain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id bson.ObjectID) (*uDomain.User, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*uDomain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
