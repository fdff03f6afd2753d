package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (b BookingStatus) Valid() bool {
	switch b {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ServiceID    primitive.ObjectID `bson:"serviceId" json:"serviceId"`
	ClientID     primitive.ObjectID `bson:"clientId" json:"clientId"`
	OwnerID      primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	ScheduledFor time.Time          `bson:"scheduledFor" json:"scheduledFor"`
	Status       BookingStatus      `bson:"status" json:"status"`
	Note         string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
