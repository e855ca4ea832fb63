package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session records one successful login.
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	IP        string             `bson:"ip" json:"ip"`
	Device    string             `bson:"device" json:"device"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
