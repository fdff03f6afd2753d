package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation is a two-party message thread. One conversation exists per
// participant pair; creation is idempotent on the pair.
type Conversation struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Participants  []primitive.ObjectID `bson:"participants" json:"participants"`
	LastMessageAt time.Time            `bson:"lastMessageAt" json:"lastMessageAt"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
}

type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID primitive.ObjectID `bson:"conversationId" json:"conversationId"`
	Sender         primitive.ObjectID `bson:"sender" json:"sender"`
	Body           string             `bson:"body" json:"body"`
	SentAt         time.Time          `bson:"sentAt" json:"sentAt"`
	Read           bool               `bson:"read" json:"read"`
}
