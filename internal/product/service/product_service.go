package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	lDomain "github.com/gestock/inventory-backend/internal/ledger/domain"
	lRepo "github.com/gestock/inventory-backend/internal/ledger/repository"
	"github.com/gestock/inventory-backend/internal/platform/database"
	"github.com/gestock/inventory-backend/internal/platform/logger"
	"github.com/gestock/inventory-backend/internal/product/domain"
	"github.com/gestock/inventory-backend/internal/product/repository"
)

var (
	ErrInvalidProductID     = errors.New("invalid product id")
	ErrBarcodeAlreadyExists = errors.New("a product with that barcode already exists")
)

// BatchStockResult is the outcome of a best-effort stock or breakage batch:
// how many items went through and the ledger records written for them.
type BatchStockResult struct {
	UpdatedCount  int                         `json:"updatedCount"`
	Modifications []lDomain.StockModification `json:"modifications"`
}

type ProductService interface {
	ListProducts(ctx context.Context, userID bson.ObjectID) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, userID bson.ObjectID, req domain.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// Batch Mutation Coordinator: concurrent per-item fan-out, best-effort.
	ApplyPositionBatch(ctx context.Context, items []domain.PositionUpdate) (int, error)
	ApplyStockBatch(ctx context.Context, userID bson.ObjectID, items []domain.StockUpdate) (*BatchStockResult, error)
	ApplyBreakageBatch(ctx context.Context, userID bson.ObjectID, items []domain.StockUpdate) (*BatchStockResult, error)

	// CSV Reconciliation Pipeline: streaming, all-or-nothing.
	ProcessSalesCSV(ctx context.Context, userID bson.ObjectID, path string) ([]domain.StockCorrection, error)
}

type productServiceImpl struct {
	repo       repository.ProductRepository
	ledger     lRepo.LedgerRepository
	transactor database.Transactor
}

func NewProductService(repo repository.ProductRepository, ledger lRepo.LedgerRepository, transactor database.Transactor) ProductService {
	return &productServiceImpl{repo: repo, ledger: ledger, transactor: transactor}
}

func (s *productServiceImpl) ListProducts(ctx context.Context, userID bson.ObjectID) ([]domain.Product, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *productServiceImpl) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidProductID
	}
	return s.repo.GetByID(ctx, objID)
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, userID bson.ObjectID, req domain.CreateProductRequest) (*domain.Product, error) {
	if _, err := s.repo.GetByBarcode(ctx, req.Barcode); err == nil {
		return nil, ErrBarcodeAlreadyExists
	} else if !errors.Is(err, repository.ErrProductNotFound) {
		logger.Error("Svc.CreateProduct: barcode lookup failed", err)
		return nil, err
	}

	product := &domain.Product{
		Name:           req.Name,
		Category:       req.Category,
		Price:          req.Price,
		Format:         req.Format,
		Description:    req.Description,
		ExpirationDate: req.ExpirationDate,
		Barcode:        req.Barcode,
		Images:         req.Images,
		Position:       req.Position,
		UserID:         userID,
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.ProductLineID != "" {
		lineID, err := bson.ObjectIDFromHex(req.ProductLineID)
		if err != nil {
			return nil, ErrInvalidProductID
		}
		product.ProductLineID = &lineID
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrBarcodeConflict) {
			return nil, ErrBarcodeAlreadyExists
		}
		logger.Error("Svc.CreateProduct: repo error", err)
		return nil, err
	}
	return product, nil
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (*domain.Product, error) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidProductID
	}

	product, err := s.repo.GetByID(ctx, objID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.ProductLineID != "" {
		lineID, err := bson.ObjectIDFromHex(req.ProductLineID)
		if err != nil {
			return nil, ErrInvalidProductID
		}
		product.ProductLineID = &lineID
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Format != nil {
		product.Format = *req.Format
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.ExpirationDate != nil {
		product.ExpirationDate = req.ExpirationDate
	}
	if req.Barcode != "" {
		product.Barcode = req.Barcode
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.Position != nil {
		product.Position = *req.Position
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrBarcodeConflict) {
			return nil, ErrBarcodeAlreadyExists
		}
		logger.Error("Svc.UpdateProduct: repo error", err)
		return nil, err
	}
	return product, nil
}

func (s *productServiceImpl) DeleteProduct(ctx context.Context, id string) error {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidProductID
	}
	return s.repo.Delete(ctx, objID)
}
