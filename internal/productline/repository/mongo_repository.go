package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gestock/inventory-backend/internal/platform/database"
	"github.com/gestock/inventory-backend/internal/platform/logger"
	"github.com/gestock/inventory-backend/internal/productline/domain"
)

const productLinesCollection = "product_lines"

var ErrProductLineNotFound = errors.New("product line not found")

type ProductLineRepository interface {
	ListByUser(ctx context.Context, userID bson.ObjectID) ([]domain.ProductLine, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*domain.ProductLine, error)
	GetByName(ctx context.Context, userID bson.ObjectID, name string) (*domain.ProductLine, error)
	Create(ctx context.Context, line *domain.ProductLine) error
	Update(ctx context.Context, line *domain.ProductLine) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

type mongoProductLineRepository struct {
	col *mongo.Collection
}

func NewMongoProductLineRepository(h *database.Handle) ProductLineRepository {
	return &mongoProductLineRepository{col: h.DB.Collection(productLinesCollection)}
}

func (r *mongoProductLineRepository) ListByUser(ctx context.Context, userID bson.ObjectID) ([]domain.ProductLine, error) {
	cursor, err := r.col.Find(ctx, bson.M{"user": userID})
	if err != nil {
		logger.Error("ProductLine.ListByUser: query failed", err)
		return nil, err
	}
	lines := []domain.ProductLine{}
	if err := cursor.All(ctx, &lines); err != nil {
		logger.Error("ProductLine.ListByUser: cursor decode failed", err)
		return nil, err
	}
	return lines, nil
}

func (r *mongoProductLineRepository) GetByID(ctx context.Context, id bson.ObjectID) (*domain.ProductLine, error) {
	var line domain.ProductLine
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&line)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductLineNotFound
		}
		logger.Error("ProductLine.GetByID: query failed", err)
		return nil, err
	}
	return &line, nil
}

func (r *mongoProductLineRepository) GetByName(ctx context.Context, userID bson.ObjectID, name string) (*domain.ProductLine, error) {
	var line domain.ProductLine
	err := r.col.FindOne(ctx, bson.M{"user": userID, "product_line_name": name}).Decode(&line)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductLineNotFound
		}
		logger.Error("ProductLine.GetByName: query failed", err)
		return nil, err
	}
	return &line, nil
}

func (r *mongoProductLineRepository) Create(ctx context.Context, line *domain.ProductLine) error {
	line.ID = bson.NewObjectID()
	if line.Color == "" {
		line.Color = "#808080"
	}
	if _, err := r.col.InsertOne(ctx, line); err != nil {
		logger.Error("ProductLine.Create: insert failed", err)
		return err
	}
	return nil
}

func (r *mongoProductLineRepository) Update(ctx context.Context, line *domain.ProductLine) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": line.ID}, line)
	if err != nil {
		logger.Error("ProductLine.Update: replace failed", err)
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProductLineNotFound
	}
	return nil
}

func (r *mongoProductLineRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Error("ProductLine.Delete: delete failed", err)
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProductLineNotFound
	}
	return nil
}
