package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	lDomain "github.com/gestock/inventory-backend/internal/ledger/domain"
	lRepo "github.com/gestock/inventory-backend/internal/ledger/repository"
)

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx context.Context, record *lDomain.StockModification) error {
	args := m.Called(ctx, record)
	if args.Error(0) == nil && record.ID.IsZero() {
		record.ID = bson.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByID(ctx context.Context, id bson.ObjectID) (*lDomain.StockModification, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*lDomain.StockModification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLedgerRepository) List(ctx context.Context) ([]lDomain.StockModification, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]lDomain.StockModification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepository) ChangeTotals(ctx context.Context, userID bson.ObjectID, order lRepo.SortOrder, limit int) ([]lDomain.ProductChangeSummary, error) {
	args := m.Called(ctx, userID, order, limit)
	if res := args.Get(0); res != nil {
		return res.([]lDomain.ProductChangeSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepository) BreakageFacets(ctx context.Context, userID bson.ObjectID, limit int) (*lDomain.BreakageFacets, error) {
	args := m.Called(ctx, userID, limit)
	if res := args.Get(0); res != nil {
		return res.(*lDomain.BreakageFacets), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepository) SalesFacets(ctx context.Context, userID bson.ObjectID, limit int) (*lDomain.SalesFacets, error) {
	args := m.Called(ctx, userID, limit)
	if res := args.Get(0); res != nil {
		return res.(*lDomain.SalesFacets), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
