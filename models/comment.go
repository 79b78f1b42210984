package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is the authoritative comment record. A copy of every comment is also
// embedded in the owning post's comments array for fast read access; the
// standalone collection remains the source of truth.
type Comment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID         string             `bson:"postId" json:"postId"`
	Author         string             `bson:"author" json:"author"`
	AuthorID       string             `bson:"authorId" json:"authorId"`
	TimeStamp      time.Time          `bson:"timeStamp" json:"timeStamp"`
	CommentContent string             `bson:"commentContent" json:"commentContent"`
}
