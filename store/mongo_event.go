package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecoengage/service/models"
)

type mongoEventStore struct {
	collection *mongo.Collection
}

// NewMongoEventStore returns an EventStore backed by the events collection.
func NewMongoEventStore(db *mongo.Database) EventStore {
	return &mongoEventStore{collection: db.Collection("events")}
}

func (s *mongoEventStore) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	e.ID = primitive.NewObjectID()
	if e.UsersRegistered == nil {
		e.UsersRegistered = []string{}
	}
	if e.Images == nil {
		e.Images = []string{}
	}
	if _, err := s.collection.InsertOne(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *mongoEventStore) GetByID(ctx context.Context, id string) (*models.Event, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var ev models.Event
	if err := s.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&ev); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ev, nil
}

// Filter matches the keyword case-insensitively against name, title and
// description, and bounds eventStartDate by the optional date range.
func (s *mongoEventStore) Filter(ctx context.Context, f EventFilter) ([]models.Event, error) {
	query := bson.M{}
	if f.Keyword != "" {
		regex := primitive.Regex{Pattern: f.Keyword, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"title": regex},
			bson.M{"description": regex},
		}
	}
	dateRange := bson.M{}
	if f.StartDate != nil {
		dateRange["$gte"] = *f.StartDate
	}
	if f.EndDate != nil {
		dateRange["$lte"] = *f.EndDate
	}
	if len(dateRange) > 0 {
		query["eventStartDate"] = dateRange
	}

	cursor, err := s.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *mongoEventStore) ListByRegisteredUser(ctx context.Context, userID string) ([]models.Event, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"usersRegistered": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *mongoEventStore) Update(ctx context.Context, id string, e *models.Event) (*models.Event, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"name":            e.Name,
		"title":           e.Title,
		"description":     e.Description,
		"eventStartDate":  e.EventStartDate,
		"eventEndDate":    e.EventEndDate,
		"usersRegistered": e.UsersRegistered,
		"images":          e.Images,
		"location":        e.Location,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ev models.Event
	if err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&ev); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ev, nil
}

func (s *mongoEventStore) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleRegistration mirrors the like toggle: $pull when registered,
// $addToSet when not.
func (s *mongoEventStore) ToggleRegistration(ctx context.Context, id, userID string) (*models.Event, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ev models.Event
	err = s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID, "usersRegistered": userID},
		bson.M{"$pull": bson.M{"usersRegistered": userID}},
		opts,
	).Decode(&ev)
	if err == nil {
		return &ev, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	err = s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID},
		bson.M{"$addToSet": bson.M{"usersRegistered": userID}},
		opts,
	).Decode(&ev)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}
