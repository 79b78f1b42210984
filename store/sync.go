package store

import (
	"context"
	"strings"
	"time"

	"github.com/ecoengage/service/models"
)

// CommentSync keeps the standalone comment collection and the embedded
// comments array of the owning post aligned across create, update and delete.
// The two writes are not wrapped in a transaction; the comment collection is
// written as the source of truth and the post mirror follows. A crash between
// the two leaves the mirror stale until the next write to the same comment.
type CommentSync struct {
	Posts    PostStore
	Comments CommentStore
}

// NewCommentSync builds the synchronization protocol over the two stores.
func NewCommentSync(posts PostStore, comments CommentStore) *CommentSync {
	return &CommentSync{Posts: posts, Comments: comments}
}

// ValidateCommentContent trims the content and enforces the length bounds.
func ValidateCommentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrValidation
	}
	if len([]rune(content)) > MaxCommentLength {
		return "", ErrValidation
	}
	return content, nil
}

// CreateForPost persists a new comment for the post and appends its snapshot
// to the post's embedded comments array.
func (s *CommentSync) CreateForPost(ctx context.Context, postID string, c models.Comment) (*models.Comment, error) {
	content, err := ValidateCommentContent(c.CommentContent)
	if err != nil {
		return nil, err
	}

	// Verify the post exists before writing anything.
	if _, err := s.Posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	c.PostID = postID
	c.CommentContent = content
	if c.TimeStamp.IsZero() {
		c.TimeStamp = time.Now()
	}

	created, err := s.Comments.Create(ctx, &c)
	if err != nil {
		return nil, err
	}
	if err := s.Posts.AppendComment(ctx, postID, *created); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateContent rewrites a comment's content in both representations. Only
// the comment's author may update it.
func (s *CommentSync) UpdateContent(ctx context.Context, commentID, callerID, content string) (*models.Comment, error) {
	content, err := ValidateCommentContent(content)
	if err != nil {
		return nil, err
	}

	cmt, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !CanModifyComment(callerID, cmt) {
		return nil, ErrUnauthorized
	}

	// Mirror first, authoritative record last, matching the create order.
	if err := s.Posts.UpdateComment(ctx, cmt.PostID, commentID, content); err != nil && err != ErrNotFound {
		return nil, err
	}
	return s.Comments.UpdateContent(ctx, commentID, content)
}

// Delete removes a comment from the post mirror and then from the comment
// collection. The comment's author or the owning post's author may delete it.
func (s *CommentSync) Delete(ctx context.Context, commentID, callerID string) error {
	cmt, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	// The post may already be gone; authorization then falls back to the
	// comment author alone.
	post, err := s.Posts.GetByID(ctx, cmt.PostID)
	if err != nil && err != ErrNotFound {
		return err
	}
	if !CanDeleteComment(callerID, cmt, post) {
		return ErrUnauthorized
	}

	if post != nil {
		if err := s.Posts.RemoveComment(ctx, cmt.PostID, commentID); err != nil && err != ErrNotFound {
			return err
		}
	}
	return s.Comments.Delete(ctx, commentID)
}

// DeletePostCascade deletes a post together with its comments, so no orphaned
// comments remain queryable after the post disappears.
func (s *CommentSync) DeletePostCascade(ctx context.Context, postID string) error {
	if err := s.Posts.Delete(ctx, postID); err != nil {
		return err
	}
	return s.Comments.DeleteByPost(ctx, postID)
}
