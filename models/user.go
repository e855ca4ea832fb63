package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the single credential holder. Pass stores a bcrypt hash; records written
// by older deployments may still hold plaintext until the next successful login.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Key      string             `bson:"key" json:"-"`
	Username string             `bson:"username" json:"username"`
	Pass     string             `bson:"pass" json:"-"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=1"`
}
