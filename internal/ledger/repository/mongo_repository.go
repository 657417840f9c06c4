package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gestock/inventory-backend/internal/ledger/domain"
	"github.com/gestock/inventory-backend/internal/platform/database"
	"github.com/gestock/inventory-backend/internal/platform/logger"
)

const (
	ledgerCollection   = "stock_modifications"
	productsCollection = "products"
)

var ErrRecordNotFound = errors.New("stock modification record not found")

// SortOrder selects the direction of a ranked rollup.
type SortOrder int

const (
	Descending SortOrder = -1
	Ascending  SortOrder = 1
)

// LedgerRepository is the append-only audit trail of stock changes plus the
// read-only aggregation queries computed over it. There is deliberately no
// update operation: corrections are new records.
type LedgerRepository interface {
	Append(ctx context.Context, record *domain.StockModification) error
	GetByID(ctx context.Context, id bson.ObjectID) (*domain.StockModification, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	List(ctx context.Context) ([]domain.StockModification, error)

	ChangeTotals(ctx context.Context, userID bson.ObjectID, order SortOrder, limit int) ([]domain.ProductChangeSummary, error)
	BreakageFacets(ctx context.Context, userID bson.ObjectID, limit int) (*domain.BreakageFacets, error)
	SalesFacets(ctx context.Context, userID bson.ObjectID, limit int) (*domain.SalesFacets, error)

	EnsureIndexes(ctx context.Context) error
}

type mongoLedgerRepository struct {
	col *mongo.Collection
}

func NewMongoLedgerRepository(h *database.Handle) LedgerRepository {
	return &mongoLedgerRepository{col: h.DB.Collection(ledgerCollection)}
}

func (r *mongoLedgerRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "product_id", Value: 1}}},
	})
	return err
}

func (r *mongoLedgerRepository) Append(ctx context.Context, record *domain.StockModification) error {
	record.ID = bson.NewObjectID()
	if record.DateModified.IsZero() {
		record.DateModified = time.Now()
	}
	if _, err := r.col.InsertOne(ctx, record); err != nil {
		logger.Error("Ledger.Append: insert failed", err)
		return err
	}
	return nil
}

func (r *mongoLedgerRepository) GetByID(ctx context.Context, id bson.ObjectID) (*domain.StockModification, error) {
	var record domain.StockModification
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		logger.Error("Ledger.GetByID: query failed", err)
		return nil, err
	}
	return &record, nil
}

func (r *mongoLedgerRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Error("Ledger.Delete: delete failed", err)
		return err
	}
	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *mongoLedgerRepository) List(ctx context.Context) ([]domain.StockModification, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		logger.Error("Ledger.List: query failed", err)
		return nil, err
	}
	records := []domain.StockModification{}
	if err := cursor.All(ctx, &records); err != nil {
		logger.Error("Ledger.List: cursor decode failed", err)
		return nil, err
	}
	return records, nil
}

// lookupProductStages joins product metadata onto each ledger record.
func lookupProductStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         productsCollection,
			"localField":   "product_id",
			"foreignField": "_id",
			"as":           "productDetails",
		}}},
		{{Key: "$unwind", Value: "$productDetails"}},
	}
}

func (r *mongoLedgerRepository) ChangeTotals(ctx context.Context, userID bson.ObjectID, order SortOrder, limit int) ([]domain.ProductChangeSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
	}
	pipeline = append(pipeline, lookupProductStages()...)
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: bson.M{
			"_id":              "$product_id",
			"name":             bson.M{"$first": "$productDetails.product_name"},
			"barcode":          bson.M{"$first": "$productDetails.barcode"},
			"lastModifiedDate": bson.M{"$last": "$date_modified"},
			"totalChanges":     bson.M{"$sum": "$quantity_changed"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"totalChanges": int(order)}}},
		bson.D{{Key: "$limit", Value: limit}},
	)

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Error("Ledger.ChangeTotals: aggregate failed", err)
		return nil, err
	}
	var summaries []domain.ProductChangeSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		logger.Error("Ledger.ChangeTotals: cursor decode failed", err)
		return nil, err
	}
	return summaries, nil
}

func (r *mongoLedgerRepository) BreakageFacets(ctx context.Context, userID bson.ObjectID, limit int) (*domain.BreakageFacets, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"type": domain.TypeBreakage, "user_id": userID}}},
	}
	pipeline = append(pipeline, lookupProductStages()...)
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: bson.M{
			"_id":            "$product_id",
			"productName":    bson.M{"$first": "$productDetails.product_name"},
			"barcode":        bson.M{"$first": "$productDetails.barcode"},
			"lastBrokenDate": bson.M{"$last": "$date_modified"},
			"totalBroken":    bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$facet", Value: bson.M{
			"mostBroken": bson.A{
				bson.M{"$sort": bson.M{"totalBroken": -1}},
				bson.M{"$limit": limit},
			},
			"leastBroken": bson.A{
				bson.M{"$sort": bson.M{"totalBroken": 1}},
				bson.M{"$limit": limit},
			},
		}}},
	)

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Error("Ledger.BreakageFacets: aggregate failed", err)
		return nil, err
	}
	var results []domain.BreakageFacets
	if err := cursor.All(ctx, &results); err != nil {
		logger.Error("Ledger.BreakageFacets: cursor decode failed", err)
		return nil, err
	}
	if len(results) == 0 {
		return &domain.BreakageFacets{}, nil
	}
	return &results[0], nil
}

func (r *mongoLedgerRepository) SalesFacets(ctx context.Context, userID bson.ObjectID, limit int) (*domain.SalesFacets, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"type": domain.TypeSale, "user_id": userID}}},
	}
	pipeline = append(pipeline, lookupProductStages()...)
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          "$product_id",
			"productName":  bson.M{"$first": "$productDetails.product_name"},
			"barcode":      bson.M{"$first": "$productDetails.barcode"},
			"lastSaleDate": bson.M{"$last": "$date_modified"},
			"totalSales":   bson.M{"$sum": "$quantity_changed"},
		}}},
		bson.D{{Key: "$facet", Value: bson.M{
			"mostSales": bson.A{
				bson.M{"$sort": bson.M{"totalSales": -1}},
				bson.M{"$limit": limit},
			},
			"leastSales": bson.A{
				bson.M{"$sort": bson.M{"totalSales": 1}},
				bson.M{"$limit": limit},
			},
		}}},
	)

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Error("Ledger.SalesFacets: aggregate failed", err)
		return nil, err
	}
	var results []domain.SalesFacets
	if err := cursor.All(ctx, &results); err != nil {
		logger.Error("Ledger.SalesFacets: cursor decode failed", err)
		return nil, err
	}
	if len(results) == 0 {
		return &domain.SalesFacets{}, nil
	}
	return &results[0], nil
}
