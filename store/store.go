// Package store provides the persistence layer over MongoDB collections and
// the cross-collection consistency logic for posts and comments.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/ecoengage/service/models"
)

// MaxCommentLength caps comment content; content is trimmed before the check.
const MaxCommentLength = 2000

var (
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned for empty or over-length user content.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized is returned when the caller does not own the resource.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDuplicateEmail is returned when a sign-up reuses an existing email.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore persists identity records.
type UserStore interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, fields ProfileUpdate) (*models.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) (*models.User, error)
}

// ProfileUpdate carries the user-editable profile fields. Nil pointers leave
// the stored value untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Language  *string
	Bio       *string
}

// PostStore persists posts including their embedded comment mirror and likes.
type PostStore interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	UpdateContent(ctx context.Context, id, title, content string) (*models.Post, error)
	Delete(ctx context.Context, id string) error

	// ToggleLike flips the caller's membership in the likes list using
	// set-membership operators, so a user id never appears twice.
	ToggleLike(ctx context.Context, id, userID string) (*models.Post, error)

	// Embedded comment mirror maintenance, driven by CommentSync.
	AppendComment(ctx context.Context, postID string, c models.Comment) error
	UpdateComment(ctx context.Context, postID, commentID, content string) error
	RemoveComment(ctx context.Context, postID, commentID string) error
}

// CommentStore persists the authoritative comment collection.
type CommentStore interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	List(ctx context.Context) ([]models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
	UpdateContent(ctx context.Context, id, content string) (*models.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByPost(ctx context.Context, postID string) error
}

// EventFilter narrows event listings. A nil date leaves that bound open.
type EventFilter struct {
	Keyword   string
	StartDate *time.Time
	EndDate   *time.Time
}

// EventStore persists community events.
type EventStore interface {
	Create(ctx context.Context, e *models.Event) (*models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Filter(ctx context.Context, f EventFilter) ([]models.Event, error)
	ListByRegisteredUser(ctx context.Context, userID string) ([]models.Event, error)
	Update(ctx context.Context, id string, e *models.Event) (*models.Event, error)
	Delete(ctx context.Context, id string) error
	ToggleRegistration(ctx context.Context, id, userID string) (*models.Event, error)
}

// InitiativeStore lists curated initiatives.
type InitiativeStore interface {
	List(ctx context.Context) ([]models.Initiative, error)
}
