package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecoengage/service/models"
)

type mongoCommentStore struct {
	collection *mongo.Collection
}

// NewMongoCommentStore returns a CommentStore backed by the comments collection.
func NewMongoCommentStore(db *mongo.Database) CommentStore {
	return &mongoCommentStore{collection: db.Collection("comments")}
}

func (s *mongoCommentStore) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	if _, err := ValidateCommentContent(c.CommentContent); err != nil {
		return nil, err
	}
	c.ID = primitive.NewObjectID()
	if c.TimeStamp.IsZero() {
		c.TimeStamp = time.Now()
	}
	if _, err := s.collection.InsertOne(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *mongoCommentStore) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var cmt models.Comment
	if err := s.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&cmt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cmt, nil
}

func (s *mongoCommentStore) List(ctx context.Context) ([]models.Comment, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *mongoCommentStore) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"postId": postID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *mongoCommentStore) UpdateContent(ctx context.Context, id, content string) (*models.Comment, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	update := bson.M{"$set": bson.M{"commentContent": content}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var cmt models.Comment
	if err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&cmt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cmt, nil
}

func (s *mongoCommentStore) Delete(ctx context.Context, id string) error {
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

func (s *mongoCommentStore) DeleteByPost(ctx context.Context, postID string) error {
	_, err := s.collection.DeleteMany(ctx, bson.M{"postId": postID})
	return err
}
