package domain

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type ProductLine struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string        `bson:"product_line_name" json:"product_line_name"`
	UserID   bson.ObjectID `bson:"user" json:"user"`
	Position *int          `bson:"position,omitempty" json:"position,omitempty"`
	Color    string        `bson:"color" json:"color"`
}

type CreateProductLineRequest struct {
	Name     string `json:"product_line_name" binding:"required"`
	Position *int   `json:"position"`
	Color    string `json:"color"`
}

type UpdateProductLineRequest struct {
	Name     string `json:"product_line_name" binding:"required"`
	Position *int   `json:"position"`
	Color    string `json:"color"`
}
