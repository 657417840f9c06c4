package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/gestock/inventory-backend/internal/platform/database"
	"github.com/gestock/inventory-backend/internal/platform/logger"
	"github.com/gestock/inventory-backend/internal/product/domain"
)

const productsCollection = "products"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrBarcodeConflict = errors.New("a product with that barcode already exists")
)

type ProductRepository interface {
	ListByUser(ctx context.Context, userID bson.ObjectID) ([]domain.Product, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*domain.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id bson.ObjectID) error
	CountByProductLine(ctx context.Context, lineID bson.ObjectID) (int64, error)

	// Batch building blocks. Each issues a single independent write; callers
	// decide whether they run under a session or stand alone.
	UpdatePosition(ctx context.Context, id bson.ObjectID, position int) (modified bool, err error)
	SetStock(ctx context.Context, id bson.ObjectID, newStock int) error
	DecrementStockByBarcode(ctx context.Context, barcode string, sold int) (*domain.Product, error)

	EnsureIndexes(ctx context.Context) error
}

type mongoProductRepository struct {
	col *mongo.Collection
}

func NewMongoProductRepository(h *database.Handle) ProductRepository {
	return &mongoProductRepository{col: h.DB.Collection(productsCollection)}
}

func (r *mongoProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "barcode", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "position", Value: 1}}},
	})
	return err
}

func (r *mongoProductRepository) ListByUser(ctx context.Context, userID bson.ObjectID) ([]domain.Product, error) {
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		logger.Error("ListByUser: query failed", err)
		return nil, err
	}
	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		logger.Error("ListByUser: cursor decode failed", err)
		return nil, err
	}
	return products, nil
}

func (r *mongoProductRepository) GetByID(ctx context.Context, id bson.ObjectID) (*domain.Product, error) {
	var product domain.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetByID: query failed", err)
		return nil, err
	}
	return &product, nil
}

func (r *mongoProductRepository) GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	var product domain.Product
	err := r.col.FindOne(ctx, bson.M{"barcode": barcode}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetByBarcode: query failed", err)
		return nil, err
	}
	return &product, nil
}

func (r *mongoProductRepository) Create(ctx context.Context, product *domain.Product) error {
	product.ID = bson.NewObjectID()
	product.CreatedAt = time.Now()
	product.LastModified = product.CreatedAt

	if _, err := r.col.InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrBarcodeConflict
		}
		logger.Error("Create: insert failed", err)
		return err
	}
	return nil
}

func (r *mongoProductRepository) Update(ctx context.Context, product *domain.Product) error {
	product.LastModified = time.Now()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrBarcodeConflict
		}
		logger.Error("Update: replace failed", err)
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *mongoProductRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Error("Delete: delete failed", err)
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *mongoProductRepository) CountByProductLine(ctx context.Context, lineID bson.ObjectID) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"product_line": lineID})
	if err != nil {
		logger.Error("CountByProductLine: count failed", err)
		return 0, err
	}
	return count, nil
}

// UpdatePosition reports whether the underlying write actually modified the
// document. A write of the already-stored position counts as not modified.
func (r *mongoProductRepository) UpdatePosition(ctx context.Context, id bson.ObjectID, position int) (bool, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"position": position, "last_modified": time.Now()}})
	if err != nil {
		logger.Error("UpdatePosition: update failed", err)
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *mongoProductRepository) SetStock(ctx context.Context, id bson.ObjectID, newStock int) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"stock.current": newStock, "last_modified": time.Now()}})
	if err != nil {
		logger.Error("SetStock: update failed", err)
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DecrementStockByBarcode atomically decrements stock.current and stamps
// last_modified, returning the post-update document. There is no floor: stock
// may go negative.
func (r *mongoProductRepository) DecrementStockByBarcode(ctx context.Context, barcode string, sold int) (*domain.Product, error) {
	var product domain.Product
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"barcode": barcode},
		bson.M{
			"$inc": bson.M{"stock.current": -sold},
			"$set": bson.M{"last_modified": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		logger.Error("DecrementStockByBarcode: update failed", err)
		return nil, err
	}
	return &product, nil
}
