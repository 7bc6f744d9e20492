package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Stock     int                `bson:"stock" json:"stock"`
	Category  string             `bson:"category" json:"category"`
	Photo     string             `bson:"photo" json:"photo"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SearchQuery carries the supported filters of GET /product/all.
// Zero values mean "filter not applied".
type SearchQuery struct {
	Search   string
	Sort     string // "asc" or "desc", by price
	Category string
	Price    float64 // upper bound, inclusive
	Page     int
}
