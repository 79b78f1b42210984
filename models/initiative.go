package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Initiative is a curated environmental cause shown on the initiatives page.
type Initiative struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Donate      string             `bson:"donate" json:"donate"`
	Link        string             `bson:"link" json:"link"`
}
