package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuotationPayment mirrors Payment without the collection history.
type QuotationPayment struct {
	SubTotal   float64 `bson:"subTotal" json:"subTotal"`
	Discount   float64 `bson:"discount" json:"discount"`
	GrandTotal float64 `bson:"grandTotal" json:"grandTotal"`
	Paid       float64 `bson:"paid" json:"paid"`
	Due        float64 `bson:"due" json:"due"`
	Method     string  `bson:"method" json:"method"`
}

type Quotation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	QuotationNo string             `bson:"quotationNo" json:"quotationNo"`
	Date        time.Time          `bson:"date" json:"date"`
	Customer    CustomerSnapshot   `bson:"customer" json:"customer"`
	Items       []LineItem         `bson:"items" json:"items"`
	Payment     QuotationPayment   `bson:"payment" json:"payment"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
