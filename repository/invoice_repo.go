package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type invoiceRepository struct {
	coll *mongo.Collection
}

func NewInvoiceRepository(coll *mongo.Collection) InvoiceRepository {
	return &invoiceRepository{coll: coll}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	if inv.ID.IsZero() {
		inv.ID = primitive.NewObjectID()
	}
	inv.CreatedAt = now()
	inv.UpdatedAt = inv.CreatedAt
	if inv.Payment.History == nil {
		inv.Payment.History = []models.PaymentEntry{}
	}
	if _, err := r.coll.InsertOne(ctx, inv); err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]models.Invoice, error) {
	return findAll[models.Invoice](ctx, r.coll, bson.M{}, "createdAt")
}

func (r *invoiceRepository) ListDue(ctx context.Context) ([]models.Invoice, error) {
	return findAll[models.Invoice](ctx, r.coll, bson.M{"payment.due": bson.M{"$gt": 0}}, "createdAt")
}

func (r *invoiceRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	return findByID[models.Invoice](ctx, r.coll, id)
}

func (r *invoiceRepository) Update(ctx context.Context, id primitive.ObjectID, inv *models.Invoice, replaceHistory bool) (*models.Invoice, error) {
	set := bson.M{
		"customer":           inv.Customer,
		"items":              inv.Items,
		"payment.subTotal":   inv.Payment.SubTotal,
		"payment.discount":   inv.Payment.Discount,
		"payment.grandTotal": inv.Payment.GrandTotal,
		"payment.paid":       inv.Payment.Paid,
		"payment.due":        inv.Payment.Due,
		"payment.method":     inv.Payment.Method,
		"updatedAt":          now(),
	}
	if !inv.Date.IsZero() {
		set["date"] = inv.Date
	}
	if replaceHistory {
		history := inv.Payment.History
		if history == nil {
			history = []models.PaymentEntry{}
		}
		set["payment.history"] = history
	}
	return setByID[models.Invoice](ctx, r.coll, id, set)
}

// collectDuePipeline appends entry to the history, adds its amount to paid and
// derives due from the stored grandTotal, all in one update. Both figures are
// rounded to cents.
func collectDuePipeline(entry models.PaymentEntry, at time.Time) mongo.Pipeline {
	literal := func(v interface{}) bson.D { return bson.D{{Key: "$literal", Value: v}} }
	round2 := func(expr interface{}) bson.D { return bson.D{{Key: "$round", Value: bson.A{expr, 2}}} }

	paid := bson.D{{Key: "$add", Value: bson.A{
		bson.D{{Key: "$ifNull", Value: bson.A{"$payment.paid", 0}}}, entry.Amount,
	}}}
	due := bson.D{{Key: "$subtract", Value: bson.A{
		bson.D{{Key: "$ifNull", Value: bson.A{"$payment.grandTotal", 0}}}, "$payment.paid",
	}}}
	history := bson.D{{Key: "$concatArrays", Value: bson.A{
		bson.D{{Key: "$ifNull", Value: bson.A{"$payment.history", bson.A{}}}},
		literal(bson.A{entry}),
	}}}

	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "payment.paid", Value: round2(paid)},
			{Key: "payment.method", Value: literal(entry.Method)},
			{Key: "payment.history", Value: history},
			{Key: "updatedAt", Value: literal(at)},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "payment.due", Value: round2(due)},
		}}},
	}
}

func (r *invoiceRepository) CollectDue(ctx context.Context, id primitive.ObjectID, entry models.PaymentEntry) (*models.Invoice, error) {
	update := collectDuePipeline(entry, now())

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var inv models.Invoice
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&inv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("collect due on %s: %w", id.Hex(), err)
	}
	return &inv, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *invoiceRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
