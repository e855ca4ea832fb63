package repository

import (
	"context"
	"fmt"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type customerRepository struct {
	coll *mongo.Collection
}

func NewCustomerRepository(coll *mongo.Collection) CustomerRepository {
	return &customerRepository{coll: coll}
}

func (r *customerRepository) Create(ctx context.Context, c *models.Customer) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.CreatedAt = now()
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *customerRepository) List(ctx context.Context) ([]models.Customer, error) {
	return findAll[models.Customer](ctx, r.coll, bson.M{}, "createdAt")
}

func (r *customerRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Customer, error) {
	return setByID[models.Customer](ctx, r.coll, id, bson.M(fields))
}

func (r *customerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}
