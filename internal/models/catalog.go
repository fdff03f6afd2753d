package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Level       string             `bson:"level" json:"level"`
	Featured    bool               `bson:"featured" json:"featured"`
	Published   bool               `bson:"published" json:"published"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ServiceOffering is a creator's bookable service listing.
type ServiceOffering struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner        primitive.ObjectID `bson:"owner" json:"owner"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	DeliveryDays int                `bson:"deliveryDays" json:"deliveryDays"`
	Category     string             `bson:"category" json:"category"`
	Featured     bool               `bson:"featured" json:"featured"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
