package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin   = "admin"
	RoleCreator = "creator"
	RoleClient  = "client"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	Bio       string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Skills    []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	AvatarURL string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCreator, RoleClient:
		return true
	}
	return false
}
