package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
)

type OrderItem struct {
	Name      string             `bson:"name" json:"name"`
	Photo     string             `bson:"photo" json:"photo"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
}

type ShippingInfo struct {
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Country string `bson:"country" json:"country"`
	PinCode string `bson:"pinCode" json:"pinCode"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ShippingInfo    ShippingInfo       `bson:"shippingInfo" json:"shippingInfo"`
	UserID          string             `bson:"user" json:"user"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	Tax             float64            `bson:"tax" json:"tax"`
	ShippingCharges float64            `bson:"shippingCharges" json:"shippingCharges"`
	Discount        float64            `bson:"discount" json:"discount"`
	Total           float64            `bson:"total" json:"total"`
	Status          string             `bson:"status" json:"status"`
	OrderItems      []OrderItem        `bson:"orderItems" json:"orderItems"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type NewOrderRequest struct {
	ShippingInfo    ShippingInfo `json:"shippingInfo"`
	UserID          string       `json:"user"`
	Subtotal        float64      `json:"subtotal"`
	Tax             float64      `json:"tax"`
	ShippingCharges float64      `json:"shippingCharges"`
	Discount        float64      `json:"discount"`
	Total           float64      `json:"total"`
	OrderItems      []OrderItem  `json:"orderItems"`
}
