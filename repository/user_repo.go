package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(coll *mongo.Collection) UserRepository {
	return &userRepository{coll: coll}
}

func (r *userRepository) FindDefault(ctx context.Context) (*models.User, error) {
	var u models.User
	err := r.coll.FindOne(ctx, singletonFilter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *userRepository) EnsureDefault(ctx context.Context, u models.User) (bool, error) {
	if err := adoptLegacy(ctx, r.coll); err != nil {
		return false, fmt.Errorf("adopt user: %w", err)
	}
	res, err := r.coll.UpdateOne(ctx, singletonFilter,
		bson.M{"$setOnInsert": bson.M{"username": u.Username, "pass": u.Pass}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("provision user: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *userRepository) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"pass": hash}})
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
