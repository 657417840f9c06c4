package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	lDomain "github.com/gestock/inventory-backend/internal/ledger/domain"
	lMocks "github.com/gestock/inventory-backend/internal/ledger/repository/mocks"
	dbMocks "github.com/gestock/inventory-backend/internal/platform/database/mocks"
	"github.com/gestock/inventory-backend/internal/product/domain"
	"github.com/gestock/inventory-backend/internal/product/repository"
	"github.com/gestock/inventory-backend/internal/product/repository/mocks"
)

func newBatchTestService() (*mocks.MockProductRepository, *lMocks.MockLedgerRepository, ProductService) {
	mockRepo := new(mocks.MockProductRepository)
	mockLedger := new(lMocks.MockLedgerRepository)
	svc := NewProductService(mockRepo, mockLedger, new(dbMocks.MockTransactor))
	return mockRepo, mockLedger, svc
}

func TestProductService_ApplyPositionBatch(t *testing.T) {
	ctx := context.TODO()
	idA := bson.NewObjectID()
	idB := bson.NewObjectID()

	t.Run("Counts only writes that modified something", func(t *testing.T) {
		mockRepo, _, svc := newBatchTestService()
		mockRepo.On("UpdatePosition", mock.Anything, idA, 1).Return(true, nil).Once()
		mockRepo.On("UpdatePosition", mock.Anything, idB, 2).Return(false, nil).Once()

		count, err := svc.ApplyPositionBatch(ctx, []domain.PositionUpdate{
			{ProductID: idA.Hex(), Position: 1},
			{ProductID: idB.Hex(), Position: 2},
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
		mockRepo.AssertExpectations(t)
	})

	t.Run("One failing item fails the whole call", func(t *testing.T) {
		mockRepo, _, svc := newBatchTestService()
		writeErr := errors.New("write failed")
		mockRepo.On("UpdatePosition", mock.Anything, idA, 1).Return(true, nil).Once()
		mockRepo.On("UpdatePosition", mock.Anything, idB, 2).Return(false, writeErr).Once()

		_, err := svc.ApplyPositionBatch(ctx, []domain.PositionUpdate{
			{ProductID: idA.Hex(), Position: 1},
			{ProductID: idB.Hex(), Position: 2},
		})
		assert.ErrorIs(t, err, writeErr)
		// The successful write was still dispatched, best-effort.
		mockRepo.AssertExpectations(t)
	})

	t.Run("Malformed product id fails the call", func(t *testing.T) {
		mockRepo, _, svc := newBatchTestService()

		_, err := svc.ApplyPositionBatch(ctx, []domain.PositionUpdate{
			{ProductID: "not-an-object-id", Position: 3},
		})
		assert.ErrorIs(t, err, ErrInvalidProductID)
		mockRepo.AssertNotCalled(t, "UpdatePosition")
	})
}

func TestProductService_ApplyStockBatch(t *testing.T) {
	ctx := context.TODO()
	userID := bson.NewObjectID()

	t.Run("Negative delta classified as sale with absolute quantity", func(t *testing.T) {
		mockRepo, mockLedger, svc := newBatchTestService()
		productID := bson.NewObjectID()
		product := &domain.Product{ID: productID, Stock: domain.Stock{Current: 10}}

		mockRepo.On("GetByID", mock.Anything, productID).Return(product, nil).Once()
		mockRepo.On("SetStock", mock.Anything, productID, 5).Return(nil).Once()
		mockLedger.On("Append", mock.Anything, mock.MatchedBy(func(m *lDomain.StockModification) bool {
			return m.Type == lDomain.TypeSale && m.QuantityChanged == 5 &&
				m.ProductID == productID && m.UserID == userID
		})).Return(nil).Once()

		result, err := svc.ApplyStockBatch(ctx, userID, []domain.StockUpdate{
			{ProductID: productID.Hex(), NewStock: 5},
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, result.UpdatedCount)
		assert.Len(t, result.Modifications, 1)
		assert.Equal(t, lDomain.TypeSale, result.Modifications[0].Type)
		mockRepo.AssertExpectations(t)
		mockLedger.AssertExpectations(t)
	})

	t.Run("Positive delta classified as restock", func(t *testing.T) {
		mockRepo, mockLedger, svc := newBatchTestService()
		productID := bson.NewObjectID()
		product := &domain.Product{ID: productID, Stock: domain.Stock{Current: 3}}

		mockRepo.On("GetByID", mock.Anything, productID).Return(product, nil).Once()
		mockRepo.On("SetStock", mock.Anything, productID, 8).Return(nil).Once()
		mockLedger.On("Append", mock.Anything, mock.MatchedBy(func(m *lDomain.StockModification) bool {
			return m.Type == lDomain.TypeRestock && m.QuantityChanged == 5
		})).Return(nil).Once()

		result, err := svc.ApplyStockBatch(ctx, userID, []domain.StockUpdate{
			{ProductID: productID.Hex(), NewStock: 8},
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, result.UpdatedCount)
		mockLedger.AssertExpectations(t)
	})

	t.Run("Missing product is skipped without failing the batch", func(t *testing.T) {
		mockRepo, mockLedger, svc := newBatchTestService()
		existingID := bson.NewObjectID()
		missingID := bson.NewObjectID()
		product := &domain.Product{ID: existingID, Stock: domain.Stock{Current: 4}}

		mockRepo.On("GetByID", mock.Anything, existingID).Return(product, nil).Once()
		mockRepo.On("GetByID", mock.Anything, missingID).Return(nil, repository.ErrProductNotFound).Once()
		mockRepo.On("SetStock", mock.Anything, existingID, 2).Return(nil).Once()
		mockLedger.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

		result, err := svc.ApplyStockBatch(ctx, userID, []domain.StockUpdate{
			{ProductID: existingID.Hex(), NewStock: 2},
			{ProductID: missingID.Hex(), NewStock: 7},
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, result.UpdatedCount)
		assert.Len(t, result.Modifications, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Ledger failure fails the call after the stock write", func(t *testing.T) {
		mockRepo, mockLedger, svc := newBatchTestService()
		productID := bson.NewObjectID()
		product := &domain.Product{ID: productID, Stock: domain.Stock{Current: 9}}
		appendErr := errors.New("ledger unavailable")

		mockRepo.On("GetByID", mock.Anything, productID).Return(product, nil).Once()
		mockRepo.On("SetStock", mock.Anything, productID, 1).Return(nil).Once()
		mockLedger.On("Append", mock.Anything, mock.Anything).Return(appendErr).Once()

		_, err := svc.ApplyStockBatch(ctx, userID, []domain.StockUpdate{
			{ProductID: productID.Hex(), NewStock: 1},
		})
		assert.ErrorIs(t, err, appendErr)
		mockRepo.AssertExpectations(t)
	})
}

func TestProductService_ApplyBreakageBatch(t *testing.T) {
	ctx := context.TODO()
	userID := bson.NewObjectID()

	t.Run("Type is breakage regardless of delta sign", func(t *testing.T) {
		mockRepo, mockLedger, svc := newBatchTestService()
		downID := bson.NewObjectID()
		upID := bson.NewObjectID()

		mockRepo.On("GetByID", mock.Anything, downID).Return(&domain.Product{ID: downID, Stock: domain.Stock{Current: 10}}, nil).Once()
		mockRepo.On("GetByID", mock.Anything, upID).Return(&domain.Product{ID: upID, Stock: domain.Stock{Current: 2}}, nil).Once()
		mockRepo.On("SetStock", mock.Anything, downID, 5).Return(nil).Once()
		mockRepo.On("SetStock", mock.Anything, upID, 6).Return(nil).Once()
		mockLedger.On("Append", mock.Anything, mock.MatchedBy(func(m *lDomain.StockModification) bool {
			return m.Type == lDomain.TypeBreakage
		})).Return(nil).Twice()

		result, err := svc.ApplyBreakageBatch(ctx, userID, []domain.StockUpdate{
			{ProductID: downID.Hex(), NewStock: 5},
			{ProductID: upID.Hex(), NewStock: 6},
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, result.UpdatedCount)
		for _, modification := range result.Modifications {
			assert.Equal(t, lDomain.TypeBreakage, modification.Type)
		}
		mockLedger.AssertExpectations(t)
	})
}
