package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User represents a registered member. Passwords are stored as bcrypt hashes only.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID    string             `bson:"userId" json:"userId"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Language  string             `bson:"language" json:"language"`
	Bio       string             `bson:"bio" json:"bio"`
}
