package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is one stock keeping unit. Stock is decremented by invoice creation and
// is allowed to go below zero.
type Product struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name" binding:"required"`
	Category string             `bson:"category" json:"category"`
	Price    float64            `bson:"price" json:"price" binding:"gte=0"`
	Stock    float64            `bson:"stock" json:"stock"`
	Unit     string             `bson:"unit" json:"unit"`
	AlertQty string             `bson:"alertQty" json:"alertQty"`
	Date     time.Time          `bson:"date" json:"date"`
}

// UpdateProduct carries a merge update: only non-nil fields are written.
type UpdateProduct struct {
	Name     *string  `json:"name,omitempty" binding:"omitempty,min=1"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	Stock    *float64 `json:"stock,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
	AlertQty *string  `json:"alertQty,omitempty"`
}

// Fields returns the $set document for the update.
func (u UpdateProduct) Fields() map[string]interface{} {
	set := map[string]interface{}{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.Stock != nil {
		set["stock"] = *u.Stock
	}
	if u.Unit != nil {
		set["unit"] = *u.Unit
	}
	if u.AlertQty != nil {
		set["alertQty"] = *u.AlertQty
	}
	return set
}
