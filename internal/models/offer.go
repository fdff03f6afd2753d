package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Offer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	DiscountPct float64            `bson:"discountPct" json:"discountPct"`
	ValidUntil  time.Time          `bson:"validUntil" json:"validUntil"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// AssignedOffer links an offer to a specific user.
type AssignedOffer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OfferID    primitive.ObjectID `bson:"offerId" json:"offerId"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	AssignedAt time.Time          `bson:"assignedAt" json:"assignedAt"`
	Redeemed   bool               `bson:"redeemed" json:"redeemed"`
}
