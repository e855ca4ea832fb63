package repository

import (
	"context"
	"fmt"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type sessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(coll *mongo.Collection) SessionRepository {
	return &sessionRepository{coll: coll}
}

func (r *sessionRepository) Create(ctx context.Context, s *models.Session) error {
	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}
