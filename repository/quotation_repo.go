package repository

import (
	"context"
	"fmt"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type quotationRepository struct {
	coll *mongo.Collection
}

func NewQuotationRepository(coll *mongo.Collection) QuotationRepository {
	return &quotationRepository{coll: coll}
}

func (r *quotationRepository) Create(ctx context.Context, q *models.Quotation) error {
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	q.CreatedAt = now()
	q.UpdatedAt = q.CreatedAt
	if _, err := r.coll.InsertOne(ctx, q); err != nil {
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

func (r *quotationRepository) List(ctx context.Context) ([]models.Quotation, error) {
	return findAll[models.Quotation](ctx, r.coll, bson.M{}, "createdAt")
}

func (r *quotationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Quotation, error) {
	return findByID[models.Quotation](ctx, r.coll, id)
}

func (r *quotationRepository) Update(ctx context.Context, id primitive.ObjectID, q *models.Quotation) (*models.Quotation, error) {
	set := bson.M{
		"customer":  q.Customer,
		"items":     q.Items,
		"payment":   q.Payment,
		"updatedAt": now(),
	}
	if !q.Date.IsZero() {
		set["date"] = q.Date
	}
	return setByID[models.Quotation](ctx, r.coll, id, set)
}

func (r *quotationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *quotationRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
