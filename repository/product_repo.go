package repository

import (
	"context"
	"fmt"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type productRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(coll *mongo.Collection) ProductRepository {
	return &productRepository{coll: coll}
}

func (r *productRepository) Create(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Date.IsZero() {
		p.Date = now()
	}
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productRepository) List(ctx context.Context) ([]models.Product, error) {
	return findAll[models.Product](ctx, r.coll, bson.M{}, "date")
}

func (r *productRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return findByID[models.Product](ctx, r.coll, id)
}

func (r *productRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Product, error) {
	return setByID[models.Product](ctx, r.coll, id, bson.M(fields))
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *productRepository) AdjustStock(ctx context.Context, id primitive.ObjectID, delta float64) (bool, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"stock": delta}})
	if err != nil {
		return false, fmt.Errorf("adjust stock of %s: %w", id.Hex(), err)
	}
	return res.MatchedCount > 0, nil
}
