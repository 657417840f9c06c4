package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	plDomain "github.com/gestock/inventory-backend/internal/productline/domain"
)

type MockProductLineRepository struct {
	mock.Mock
}

func (m *MockProductLineRepository) ListByUser(ctx context.Context, userID bson.ObjectID) ([]plDomain.ProductLine, error) {
	args := m.Called(ctx, userID)
	if res := args.Get(0); res != nil {
		return res.([]plDomain.ProductLine), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductLineRepository) GetByID(ctx context.Context, id bson.ObjectID) (*plDomain.ProductLine, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*plDomain.ProductLine), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductLineRepository) GetByName(ctx context.Context, userID bson.ObjectID, name string) (*plDomain.ProductLine, error) {
	args := m.Called(ctx, userID, name)
	if res := args.Get(0); res != nil {
		return res.(*plDomain.ProductLine), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductLineRepository) Create(ctx context.Context, line *plDomain.ProductLine) error {
	args := m.Called(ctx, line)
	if args.Error(0) == nil && line.ID.IsZero() {
		line.ID = bson.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockProductLineRepository) Update(ctx context.Context, line *plDomain.ProductLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockProductLineRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
