package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Enquiry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Subject   string             `bson:"subject" json:"subject"`
	Message   string             `bson:"message" json:"message"`
	Handled   bool               `bson:"handled" json:"handled"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
