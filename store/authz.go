package store

import (
	"strings"

	"github.com/ecoengage/service/models"
)

// IsOwner compares a caller id against a stored author id. Ids are hex object
// id strings; comparison normalizes whitespace and case so tokens minted from
// differently-cased hex still match.
func IsOwner(callerID, authorID string) bool {
	callerID = strings.TrimSpace(callerID)
	authorID = strings.TrimSpace(authorID)
	if callerID == "" || authorID == "" {
		return false
	}
	return strings.EqualFold(callerID, authorID)
}

// CanModifyPost reports whether the caller may update or delete the post.
// A nil post fails closed.
func CanModifyPost(callerID string, p *models.Post) bool {
	if p == nil {
		return false
	}
	return IsOwner(callerID, p.AuthorID)
}

// CanModifyComment reports whether the caller may update the comment.
func CanModifyComment(callerID string, c *models.Comment) bool {
	if c == nil {
		return false
	}
	return IsOwner(callerID, c.AuthorID)
}

// CanDeleteComment reports whether the caller may delete the comment: the
// comment's author always may, and the owning post's author may moderate
// comments on their own post. When the owning post is gone only the comment
// author qualifies.
func CanDeleteComment(callerID string, c *models.Comment, p *models.Post) bool {
	if c == nil {
		return false
	}
	if IsOwner(callerID, c.AuthorID) {
		return true
	}
	return p != nil && IsOwner(callerID, p.AuthorID)
}
