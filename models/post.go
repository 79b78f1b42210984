package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a user-authored social entry. Likes holds the ids of users who
// liked the post, each at most once. Comments mirrors the standalone comment
// collection for this post.
type Post struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Content      string             `bson:"content" json:"content"`
	Author       string             `bson:"author" json:"author"`
	AuthorID     string             `bson:"authorId" json:"authorId"`
	CreationDate time.Time          `bson:"creationDate" json:"creationDate"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Comments     []Comment          `bson:"comments" json:"comments"`
	Likes        []string           `bson:"likes" json:"likes"`
}

// LikedBy reports whether userID is present in the likes list.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
