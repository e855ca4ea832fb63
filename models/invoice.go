package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CalcByQty  = "qty"
	CalcByFeet = "feet"

	DefaultPaymentMethod = "Cash"
	InitialPaymentRemark = "Initial Payment"
)

// CustomerSnapshot is copied into the document at creation time and is not a live
// reference to the customers collection.
type CustomerSnapshot struct {
	Name    string `bson:"name" json:"name"`
	Mobile  string `bson:"mobile" json:"mobile"`
	Address string `bson:"address" json:"address"`
}

type LineItem struct {
	ProductID   string  `bson:"productId,omitempty" json:"productId,omitempty"`
	Name        string  `bson:"name" json:"name"`
	Unit        string  `bson:"unit" json:"unit"`
	Price       float64 `bson:"price" json:"price" binding:"gte=0"`
	Qty         float64 `bson:"qty" json:"qty" binding:"gte=0"`
	Feet        float64 `bson:"feet" json:"feet" binding:"gte=0"`
	CalcBy      string  `bson:"calcBy" json:"calcBy" binding:"omitempty,oneof=qty feet"`
	Description string  `bson:"description" json:"description"`
	Total       float64 `bson:"total" json:"total" binding:"gte=0"`
}

type PaymentEntry struct {
	Date   time.Time `bson:"date" json:"date"`
	Amount float64   `bson:"amount" json:"amount"`
	Method string    `bson:"method" json:"method"`
	Remark string    `bson:"remark" json:"remark"`
}

type Payment struct {
	SubTotal   float64        `bson:"subTotal" json:"subTotal"`
	Discount   float64        `bson:"discount" json:"discount"`
	GrandTotal float64        `bson:"grandTotal" json:"grandTotal"`
	Paid       float64        `bson:"paid" json:"paid"`
	Due        float64        `bson:"due" json:"due"`
	Method     string         `bson:"method" json:"method"`
	History    []PaymentEntry `bson:"history" json:"history"`
}

type Invoice struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	InvoiceNo string             `bson:"invoiceNo" json:"invoiceNo"`
	Date      time.Time          `bson:"date" json:"date"`
	Customer  CustomerSnapshot   `bson:"customer" json:"customer"`
	Items     []LineItem         `bson:"items" json:"items"`
	Payment   Payment            `bson:"payment" json:"payment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PaymentInput is the payment block accepted from clients. History is a pointer so
// that an absent key can be told apart from an explicit empty list.
type PaymentInput struct {
	SubTotal   float64         `json:"subTotal" binding:"gte=0"`
	Discount   float64         `json:"discount" binding:"gte=0"`
	GrandTotal float64         `json:"grandTotal" binding:"gte=0"`
	Paid       float64         `json:"paid" binding:"gte=0"`
	Due        float64         `json:"due"`
	Method     string          `json:"method"`
	History    *[]PaymentEntry `json:"history,omitempty"`
}

// InvoiceInput is the body of create-invoice, update-invoice and the quotation
// equivalents. Date accepts RFC 3339 or a plain yyyy-mm-dd day.
type InvoiceInput struct {
	Date     string           `json:"date"`
	Customer CustomerSnapshot `json:"customer"`
	Items    []LineItem       `json:"items" binding:"dive"`
	Payment  PaymentInput     `json:"payment"`
}

type DueCollection struct {
	Amount float64 `json:"amount" binding:"gt=0"`
	Method string  `json:"method"`
	Remark string  `json:"remark"`
	Date   string  `json:"date"`
}
