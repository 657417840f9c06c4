package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Ledger record types. Batch stock updates infer TypeRestock/TypeSale from the
// delta sign; breakage batches force TypeBreakage; TypeAdjustment and
// TypeReturn only enter through manual administrative records.
const (
	TypeSale       = "sale"
	TypeBreakage   = "breakage"
	TypeAdjustment = "adjustment"
	TypeReturn     = "return"
	TypeRestock    = "restock"
)

// ManualTypes are the types accepted when a record is created by hand rather
// than derived by a batch operation.
var ManualTypes = []string{TypeSale, TypeBreakage, TypeAdjustment, TypeReturn}

// StockModification is one immutable entry in the audit ledger. Records are
// never updated; corrections are new records. QuantityChanged is always the
// absolute magnitude of the underlying delta.
type StockModification struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID       bson.ObjectID `bson:"product_id" json:"product_id"`
	Type            string        `bson:"type" json:"type"`
	QuantityChanged int           `bson:"quantity_changed" json:"quantity_changed"`
	DateModified    time.Time     `bson:"date_modified" json:"date_modified"`
	UserID          bson.ObjectID `bson:"user_id" json:"user_id"`
}

func IsManualType(t string) bool {
	for _, allowed := range ManualTypes {
		if t == allowed {
			return true
		}
	}
	return false
}

// ProductChangeSummary is one row of the grouped change-volume rollup.
type ProductChangeSummary struct {
	ProductID    bson.ObjectID `bson:"_id" json:"product_id"`
	Name         string        `bson:"name" json:"name"`
	Barcode      string        `bson:"barcode" json:"barcode"`
	LastModified time.Time     `bson:"lastModifiedDate" json:"last_modified"`
	TotalChanges int           `bson:"totalChanges" json:"total_changes"`
}

// BreakageSummary counts breakage events per product, not summed quantity.
type BreakageSummary struct {
	ProductID   bson.ObjectID `bson:"_id" json:"product_id"`
	ProductName string        `bson:"productName" json:"product_name"`
	Barcode     string        `bson:"barcode" json:"barcode"`
	LastBroken  time.Time     `bson:"lastBrokenDate" json:"-"`
	TotalBroken int           `bson:"totalBroken" json:"total_broken"`
}

type SalesSummary struct {
	ProductID   bson.ObjectID `bson:"_id" json:"product_id"`
	ProductName string        `bson:"productName" json:"product_name"`
	Barcode     string        `bson:"barcode" json:"barcode"`
	LastSale    time.Time     `bson:"lastSaleDate" json:"last_sale"`
	TotalSales  int           `bson:"totalSales" json:"total_sales"`
}

// BreakageFacets and SalesFacets are the two ranked result sets produced by a
// single aggregation pass.
type BreakageFacets struct {
	MostBroken  []BreakageSummary `bson:"mostBroken" json:"mostBroken"`
	LeastBroken []BreakageSummary `bson:"leastBroken" json:"leastBroken"`
}

type SalesFacets struct {
	MostSales  []SalesSummary `bson:"mostSales" json:"mostSales"`
	LeastSales []SalesSummary `bson:"leastSales" json:"leastSales"`
}
