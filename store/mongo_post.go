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

type mongoPostStore struct {
	collection *mongo.Collection
}

// NewMongoPostStore returns a PostStore backed by the posts collection.
func NewMongoPostStore(db *mongo.Database) PostStore {
	return &mongoPostStore{collection: db.Collection("posts")}
}

func (s *mongoPostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	p.ID = primitive.NewObjectID()
	if p.CreationDate.IsZero() {
		p.CreationDate = time.Now()
	}
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	if p.Likes == nil {
		p.Likes = []string{}
	}
	if _, err := s.collection.InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *mongoPostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var post models.Post
	if err := s.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *mongoPostStore) List(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "creationDate", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *mongoPostStore) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "creationDate", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{"authorId": authorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *mongoPostStore) UpdateContent(ctx context.Context, id, title, content string) (*models.Post, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	update := bson.M{"$set": bson.M{"title": title, "content": content}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	if err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *mongoPostStore) Delete(ctx context.Context, id string) error {
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

// ToggleLike uses $pull / $addToSet instead of read-modify-write so that
// concurrent toggles by the same user cannot produce duplicate ids.
func (s *mongoPostStore) ToggleLike(ctx context.Context, id, userID string) (*models.Post, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	// Unlike: pull the id if it is present.
	var post models.Post
	err = s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID, "likes": userID},
		bson.M{"$pull": bson.M{"likes": userID}},
		opts,
	).Decode(&post)
	if err == nil {
		return &post, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	// Like: the id was absent, add it exactly once.
	err = s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID},
		bson.M{"$addToSet": bson.M{"likes": userID}},
		opts,
	).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *mongoPostStore) AppendComment(ctx context.Context, postID string, c models.Comment) error {
	objectID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$push": bson.M{"comments": c}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoPostStore) UpdateComment(ctx context.Context, postID, commentID, content string) error {
	postOID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrNotFound
	}
	commentOID, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": postOID, "comments._id": commentOID},
		bson.M{"$set": bson.M{"comments.$.commentContent": content}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoPostStore) RemoveComment(ctx context.Context, postID, commentID string) error {
	postOID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrNotFound
	}
	commentOID, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": postOID},
		bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentOID}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
