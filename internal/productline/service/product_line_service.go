package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/gestock/inventory-backend/internal/platform/logger"
	prodRepo "github.com/gestock/inventory-backend/internal/product/repository"
	"github.com/gestock/inventory-backend/internal/productline/domain"
	"github.com/gestock/inventory-backend/internal/productline/repository"
)

var (
	ErrInvalidProductLineID = errors.New("invalid product line id")
	ErrNameAlreadyExists    = errors.New("a product line with that name already exists")
	ErrLineHasProducts      = errors.New("product line cannot be deleted because it has associated products")
)

type ProductLineService interface {
	ListProductLines(ctx context.Context, userID bson.ObjectID) ([]domain.ProductLine, error)
	GetProductLine(ctx context.Context, id string) (*domain.ProductLine, error)
	CreateProductLine(ctx context.Context, userID bson.ObjectID, req domain.CreateProductLineRequest) (*domain.ProductLine, error)
	UpdateProductLine(ctx context.Context, id string, req domain.UpdateProductLineRequest) (*domain.ProductLine, error)
	DeleteProductLine(ctx context.Context, id string) error
}

type productLineServiceImpl struct {
	repo        repository.ProductLineRepository
	productRepo prodRepo.ProductRepository
}

func NewProductLineService(repo repository.ProductLineRepository, productRepo prodRepo.ProductRepository) ProductLineService {
	return &productLineServiceImpl{repo: repo, productRepo: productRepo}
}

func (s *productLineServiceImpl) ListProductLines(ctx context.Context, userID bson.ObjectID) ([]domain.ProductLine, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *productLineServiceImpl) GetProductLine(ctx context.Context, id string) (*domain.ProductLine, error) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidProductLineID
	}
	return s.repo.GetByID(ctx, objID)
}

func (s *productLineServiceImpl) CreateProductLine(ctx context.Context, userID bson.ObjectID, req domain.CreateProductLineRequest) (*domain.ProductLine, error) {
	if _, err := s.repo.GetByName(ctx, userID, req.Name); err == nil {
		return nil, ErrNameAlreadyExists
	} else if !errors.Is(err, repository.ErrProductLineNotFound) {
		logger.Error("Svc.CreateProductLine: name lookup failed", err)
		return nil, err
	}

	line := &domain.ProductLine{
		Name:     req.Name,
		UserID:   userID,
		Position: req.Position,
		Color:    req.Color,
	}
	if err := s.repo.Create(ctx, line); err != nil {
		logger.Error("Svc.CreateProductLine: repo error", err)
		return nil, err
	}
	return line, nil
}

func (s *productLineServiceImpl) UpdateProductLine(ctx context.Context, id string, req domain.UpdateProductLineRequest) (*domain.ProductLine, error) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidProductLineID
	}

	line, err := s.repo.GetByID(ctx, objID)
	if err != nil {
		return nil, err
	}

	line.Name = req.Name
	if req.Position != nil {
		line.Position = req.Position
	}
	if req.Color != "" {
		line.Color = req.Color
	}

	if err := s.repo.Update(ctx, line); err != nil {
		logger.Error("Svc.UpdateProductLine: repo error", err)
		return nil, err
	}
	return line, nil
}

// DeleteProductLine refuses to remove a line that products still reference.
func (s *productLineServiceImpl) DeleteProductLine(ctx context.Context, id string) error {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidProductLineID
	}

	count, err := s.productRepo.CountByProductLine(ctx, objID)
	if err != nil {
		logger.Error("Svc.DeleteProductLine: product count failed", err)
		return err
	}
	if count > 0 {
		return ErrLineHasProducts
	}

	return s.repo.Delete(ctx, objID)
}
