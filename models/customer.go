package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Customer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name" binding:"required"`
	Mobile    string             `bson:"mobile" json:"mobile"`
	Address   string             `bson:"address" json:"address"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type UpdateCustomer struct {
	Name    *string `json:"name,omitempty" binding:"omitempty,min=1"`
	Mobile  *string `json:"mobile,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (u UpdateCustomer) Fields() map[string]interface{} {
	set := map[string]interface{}{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Mobile != nil {
		set["mobile"] = *u.Mobile
	}
	if u.Address != nil {
		set["address"] = *u.Address
	}
	return set
}
