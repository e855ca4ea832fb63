package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type counterRepository struct {
	coll *mongo.Collection
}

func NewCounterRepository(coll *mongo.Collection) CounterRepository {
	return &counterRepository{coll: coll}
}

type counter struct {
	Name string `bson:"_id"`
	Seq  int64  `bson:"seq"`
}

func (r *counterRepository) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var c counter
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("next %s sequence: %w", name, err)
	}
	return c.Seq, nil
}

func (r *counterRepository) EnsureAtLeast(ctx context.Context, name string, floor int64) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": name}, bson.M{"$max": bson.M{"seq": floor}}, opts)
	if err != nil {
		return fmt.Errorf("raise %s sequence: %w", name, err)
	}
	return nil
}
