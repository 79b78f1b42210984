package store

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecoengage/service/models"
)

type mongoUserStore struct {
	collection *mongo.Collection
}

// NewMongoUserStore returns a UserStore backed by the users collection.
// EnsureUserIndexes should be called once at boot for the unique email index.
func NewMongoUserStore(db *mongo.Database) UserStore {
	return &mongoUserStore{collection: db.Collection("users")}
}

// EnsureUserIndexes creates the unique index that enforces email uniqueness.
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *mongoUserStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	u.ID = primitive.NewObjectID()
	if u.UserID == "" {
		u.UserID = primitive.NewObjectID().Hex()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if _, err := s.collection.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

func (s *mongoUserStore) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	if err := s.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *mongoUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u models.User
	if err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *mongoUserStore) UpdateProfile(ctx context.Context, userID string, fields ProfileUpdate) (*models.User, error) {
	set := bson.M{}
	if fields.FirstName != nil {
		set["firstName"] = *fields.FirstName
	}
	if fields.LastName != nil {
		set["lastName"] = *fields.LastName
	}
	if fields.Language != nil {
		set["language"] = *fields.Language
	}
	if fields.Bio != nil {
		set["bio"] = *fields.Bio
	}
	if len(set) == 0 {
		return s.GetByID(ctx, userID)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	if err := s.collection.FindOneAndUpdate(ctx, bson.M{"userId": userID}, bson.M{"$set": set}, opts).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *mongoUserStore) UpdatePassword(ctx context.Context, email, passwordHash string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"password": passwordHash}},
		opts,
	).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
