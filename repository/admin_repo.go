package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type adminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(coll *mongo.Collection) AdminRepository {
	return &adminRepository{coll: coll}
}

var singletonFilter = bson.M{"key": models.SingletonKey}

// adoptLegacy tags a record written before singleton keys existed so that it keeps
// being used instead of a fresh default.
func adoptLegacy(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.UpdateOne(ctx,
		bson.M{"key": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"key": models.SingletonKey}},
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return err
	}
	return nil
}

func (r *adminRepository) Ensure(ctx context.Context, defaults models.Admin) (*models.Admin, error) {
	var admin models.Admin
	err := r.coll.FindOne(ctx, singletonFilter).Decode(&admin)
	if err == nil {
		return &admin, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if err := adoptLegacy(ctx, r.coll); err != nil {
		return nil, fmt.Errorf("adopt admin: %w", err)
	}

	ts := now()
	insert := bson.M{
		"name":      defaults.Name,
		"email":     defaults.Email,
		"phone":     defaults.Phone,
		"avatar":    defaults.Avatar,
		"role":      defaults.Role,
		"createdAt": ts,
		"updatedAt": ts,
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err = r.coll.FindOneAndUpdate(ctx, singletonFilter, bson.M{"$setOnInsert": insert}, opts).Decode(&admin)
	if err != nil {
		return nil, fmt.Errorf("provision admin: %w", err)
	}
	return &admin, nil
}

func (r *adminRepository) Update(ctx context.Context, fields map[string]interface{}) (*models.Admin, error) {
	set := bson.M{"updatedAt": now()}
	for k, v := range fields {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var admin models.Admin
	err := r.coll.FindOneAndUpdate(ctx, singletonFilter, bson.M{"$set": set}, opts).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update admin: %w", err)
	}
	return &admin, nil
}
