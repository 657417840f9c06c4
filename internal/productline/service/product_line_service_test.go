package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	pMocks "github.com/gestock/inventory-backend/internal/product/repository/mocks"
	"github.com/gestock/inventory-backend/internal/productline/domain"
	"github.com/gestock/inventory-backend/internal/productline/repository"
	"github.com/gestock/inventory-backend/internal/productline/repository/mocks"
)

func newLineTestService() (*mocks.MockProductLineRepository, *pMocks.MockProductRepository, ProductLineService) {
	mockRepo := new(mocks.MockProductLineRepository)
	mockProducts := new(pMocks.MockProductRepository)
	svc := NewProductLineService(mockRepo, mockProducts)
	return mockRepo, mockProducts, svc
}

func TestProductLineService_CreateProductLine(t *testing.T) {
	ctx := context.TODO()
	userID := bson.NewObjectID()

	t.Run("Duplicate name maps to ErrNameAlreadyExists", func(t *testing.T) {
		mockRepo, _, svc := newLineTestService()
		existing := &domain.ProductLine{ID: bson.NewObjectID(), Name: "Dairy"}
		mockRepo.On("GetByName", ctx, userID, "Dairy").Return(existing, nil).Once()

		_, err := svc.CreateProductLine(ctx, userID, domain.CreateProductLineRequest{Name: "Dairy"})
		assert.ErrorIs(t, err, ErrNameAlreadyExists)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Fresh name creates the line for the caller", func(t *testing.T) {
		mockRepo, _, svc := newLineTestService()
		mockRepo.On("GetByName", ctx, userID, "Dairy").Return(nil, repository.ErrProductLineNotFound).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.ProductLine) bool {
			return l.Name == "Dairy" && l.UserID == userID
		})).Return(nil).Once()

		line, err := svc.CreateProductLine(ctx, userID, domain.CreateProductLineRequest{Name: "Dairy"})
		assert.NoError(t, err)
		assert.False(t, line.ID.IsZero())
		mockRepo.AssertExpectations(t)
	})
}

func TestProductLineService_DeleteProductLine(t *testing.T) {
	ctx := context.TODO()

	t.Run("Line with associated products is refused", func(t *testing.T) {
		mockRepo, mockProducts, svc := newLineTestService()
		lineID := bson.NewObjectID()
		mockProducts.On("CountByProductLine", ctx, lineID).Return(int64(3), nil).Once()

		err := svc.DeleteProductLine(ctx, lineID.Hex())
		assert.ErrorIs(t, err, ErrLineHasProducts)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		mockProducts.AssertExpectations(t)
	})

	t.Run("Unreferenced line is deleted", func(t *testing.T) {
		mockRepo, mockProducts, svc := newLineTestService()
		lineID := bson.NewObjectID()
		mockProducts.On("CountByProductLine", ctx, lineID).Return(int64(0), nil).Once()
		mockRepo.On("Delete", ctx, lineID).Return(nil).Once()

		err := svc.DeleteProductLine(ctx, lineID.Hex())
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Malformed id rejects before any lookup", func(t *testing.T) {
		mockRepo, mockProducts, svc := newLineTestService()

		err := svc.DeleteProductLine(ctx, "not-an-object-id")
		assert.ErrorIs(t, err, ErrInvalidProductLineID)
		mockProducts.AssertNotCalled(t, "CountByProductLine", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
