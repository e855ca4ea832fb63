package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SingletonKey is the well-known key of the provisioned admin and user records.
const SingletonKey = "default"

type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Key       string             `bson:"key" json:"-"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Avatar    string             `bson:"avatar" json:"avatar"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultAdmin is written when the profile is provisioned for the first time.
func DefaultAdmin() Admin {
	return Admin{
		Key:  SingletonKey,
		Name: "Admin",
		Role: "Admin",
	}
}

// UpdateAdmin is a partial profile update. Empty strings leave the stored value
// alone, except Avatar which is applied whenever the key is present.
type UpdateAdmin struct {
	Name   string  `json:"name"`
	Email  string  `json:"email" binding:"omitempty,email"`
	Phone  string  `json:"phone"`
	Role   string  `json:"role"`
	Avatar *string `json:"avatar"`
}
