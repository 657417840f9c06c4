package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Stock struct {
	Current     int `bson:"current" json:"current"`
	MinRequired int `bson:"min_required" json:"min_required"`
}

type Product struct {
	ID             bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name           string         `bson:"product_name" json:"product_name"`
	ProductLineID  *bson.ObjectID `bson:"product_line,omitempty" json:"product_line,omitempty"`
	Category       string         `bson:"category" json:"category"`
	Stock          Stock          `bson:"stock" json:"stock"`
	Price          float64        `bson:"price" json:"price"`
	Format         float64        `bson:"format" json:"format"`
	Description    string         `bson:"description" json:"description"`
	ExpirationDate *time.Time     `bson:"expiration_date,omitempty" json:"expiration_date,omitempty"`
	Barcode        string         `bson:"barcode" json:"barcode"`
	Images         []string       `bson:"images,omitempty" json:"images,omitempty"`
	Position       int            `bson:"position" json:"position"`
	UserID         bson.ObjectID  `bson:"user_id" json:"user_id"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
	LastModified   time.Time      `bson:"last_modified" json:"last_modified"`
}

type CreateProductRequest struct {
	Name           string     `json:"product_name" binding:"required"`
	ProductLineID  string     `json:"product_line"`
	Category       string     `json:"category" binding:"required"`
	Stock          *Stock     `json:"stock"`
	Price          float64    `json:"price" binding:"required"`
	Format         float64    `json:"format" binding:"required"`
	Description    string     `json:"description" binding:"required"`
	ExpirationDate *time.Time `json:"expiration_date"`
	Barcode        string     `json:"barcode" binding:"required"`
	Images         []string   `json:"images"`
	Position       int        `json:"position"`
}

// UpdateProductRequest carries partial updates; empty fields keep the stored
// value.
type UpdateProductRequest struct {
	Name           string     `json:"product_name"`
	ProductLineID  string     `json:"product_line"`
	Category       string     `json:"category"`
	Stock          *Stock     `json:"stock"`
	Price          *float64   `json:"price"`
	Format         *float64   `json:"format"`
	Description    string     `json:"description"`
	ExpirationDate *time.Time `json:"expiration_date"`
	Barcode        string     `json:"barcode"`
	Images         *[]string  `json:"images"`
	Position       *int       `json:"position"`
}

// PositionUpdate is one item of a best-effort position batch.
type PositionUpdate struct {
	ProductID string `json:"productId" binding:"required"`
	Position  int    `json:"position"`
}

// StockUpdate is one item of a best-effort stock or breakage batch. NewStock
// is the absolute stock level to write, not a delta.
type StockUpdate struct {
	ProductID string `json:"productId" binding:"required"`
	NewStock  int    `json:"newStock"`
}

type BatchResult struct {
	Message      string `json:"message"`
	UpdatedCount int    `json:"updatedCount"`
}

// StockCorrection is one committed row of a CSV reconciliation run.
type StockCorrection struct {
	Barcode      string    `json:"barcode"`
	NewStock     int       `json:"newStock"`
	LastModified time.Time `json:"lastModified"`
}
