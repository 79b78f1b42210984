package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ecoengage/service/models"
)

type mongoInitiativeStore struct {
	collection *mongo.Collection
}

// NewMongoInitiativeStore returns an InitiativeStore backed by the
// initiatives collection.
func NewMongoInitiativeStore(db *mongo.Database) InitiativeStore {
	return &mongoInitiativeStore{collection: db.Collection("initiatives")}
}

func (s *mongoInitiativeStore) List(ctx context.Context) ([]models.Initiative, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	initiatives := []models.Initiative{}
	if err := cursor.All(ctx, &initiatives); err != nil {
		return nil, err
	}
	return initiatives, nil
}
