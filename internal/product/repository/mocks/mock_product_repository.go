package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	pDomain "github.com/gestock/inventory-backend/internal/product/domain"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListByUser(ctx context.Context, userID bson.ObjectID) ([]pDomain.Product, error) {
	args := m.Called(ctx, userID)
	if res := args.Get(0); res != nil {
		return res.([]pDomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id bson.ObjectID) (*pDomain.Product, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*pDomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) GetByBarcode(ctx context.Context, barcode string) (*pDomain.Product, error) {
	args := m.Called(ctx, barcode)
	if res := args.Get(0); res != nil {
		return res.(*pDomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *pDomain.Product) error {
	args := m.Called(ctx, product)
	if args.Error(0) == nil && product.ID.IsZero() {
		product.ID = bson.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *pDomain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountByProductLine(ctx context.Context, lineID bson.ObjectID) (int64, error) {
	args := m.Called(ctx, lineID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) UpdatePosition(ctx context.Context, id bson.ObjectID, position int) (bool, error) {
	args := m.Called(ctx, id, position)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) SetStock(ctx context.Context, id bson.ObjectID, newStock int) error {
	args := m.Called(ctx, id, newStock)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStockByBarcode(ctx context.Context, barcode string, sold int) (*pDomain.Product, error) {
	args := m.Called(ctx, barcode, sold)
	if res := args.Get(0); res != nil {
		return res.(*pDomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
