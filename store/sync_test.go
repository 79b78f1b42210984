package store

import (
	"context"
	"strings"
	"testing"

	"github.com/ecoengage/service/models"
)

func newSyncFixture(t *testing.T) (*CommentSync, *MemoryPostStore, *MemoryCommentStore, *models.Post) {
	t.Helper()
	posts := NewMemoryPostStore()
	comments := NewMemoryCommentStore()
	sync := NewCommentSync(posts, comments)

	post, err := posts.Create(context.Background(), &models.Post{
		Title:    "Tree Day",
		Content:  "Planting trees in the park",
		Author:   "Ana",
		AuthorID: "owner",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return sync, posts, comments, post
}

func TestCreateForPostMirrorsComment(t *testing.T) {
	sync, posts, comments, post := newSyncFixture(t)
	ctx := context.Background()

	created, err := sync.CreateForPost(ctx, post.ID.Hex(), models.Comment{
		Author:         "Ben",
		AuthorID:       "ben",
		CommentContent: "Nice!",
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	got, err := posts.GetByID(ctx, post.ID.Hex())
	if err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if len(got.Comments) != 1 {
		t.Fatalf("expected 1 embedded comment, got %d", len(got.Comments))
	}
	if got.Comments[0].ID != created.ID || got.Comments[0].CommentContent != "Nice!" {
		t.Fatalf("embedded snapshot mismatch: %+v", got.Comments[0])
	}

	standalone, err := comments.GetByID(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("standalone comment missing: %v", err)
	}
	if standalone.PostID != post.ID.Hex() {
		t.Fatalf("postId not set on standalone comment: %q", standalone.PostID)
	}
}

func TestCreateForPostUnknownPost(t *testing.T) {
	sync, _, _, _ := newSyncFixture(t)
	_, err := sync.CreateForPost(context.Background(), "missing", models.Comment{
		AuthorID:       "ben",
		CommentContent: "hello",
	})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateContentSyncsBothCollections(t *testing.T) {
	sync, posts, comments, post := newSyncFixture(t)
	ctx := context.Background()

	created, err := sync.CreateForPost(ctx, post.ID.Hex(), models.Comment{
		AuthorID:       "ben",
		CommentContent: "first",
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if _, err := sync.UpdateContent(ctx, created.ID.Hex(), "stranger", "edited"); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for non-author, got %v", err)
	}

	updated, err := sync.UpdateContent(ctx, created.ID.Hex(), "ben", "edited")
	if err != nil {
		t.Fatalf("update comment: %v", err)
	}
	if updated.CommentContent != "edited" {
		t.Fatalf("standalone content not updated: %q", updated.CommentContent)
	}

	got, _ := posts.GetByID(ctx, post.ID.Hex())
	if got.Comments[0].CommentContent != "edited" {
		t.Fatalf("embedded content not updated: %q", got.Comments[0].CommentContent)
	}

	standalone, _ := comments.GetByID(ctx, created.ID.Hex())
	if standalone.CommentContent != got.Comments[0].CommentContent {
		t.Fatalf("collections diverged: %q vs %q", standalone.CommentContent, got.Comments[0].CommentContent)
	}
}

func TestDeleteCommentAuthorization(t *testing.T) {
	sync, posts, comments, post := newSyncFixture(t)
	ctx := context.Background()

	created, err := sync.CreateForPost(ctx, post.ID.Hex(), models.Comment{
		AuthorID:       "ben",
		CommentContent: "to be moderated",
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := sync.Delete(ctx, created.ID.Hex(), "stranger"); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// The post owner can moderate.
	if err := sync.Delete(ctx, created.ID.Hex(), "owner"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := comments.GetByID(ctx, created.ID.Hex()); err != ErrNotFound {
		t.Fatalf("standalone comment should be gone, got %v", err)
	}
	got, _ := posts.GetByID(ctx, post.ID.Hex())
	if len(got.Comments) != 0 {
		t.Fatalf("embedded comment should be gone, have %d", len(got.Comments))
	}
}

func TestDeletePostCascade(t *testing.T) {
	sync, posts, comments, post := newSyncFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := sync.CreateForPost(ctx, post.ID.Hex(), models.Comment{
			AuthorID:       "ben",
			CommentContent: "comment",
		}); err != nil {
			t.Fatalf("create comment %d: %v", i, err)
		}
	}

	if err := sync.DeletePostCascade(ctx, post.ID.Hex()); err != nil {
		t.Fatalf("cascade delete: %v", err)
	}
	if _, err := posts.GetByID(ctx, post.ID.Hex()); err != ErrNotFound {
		t.Fatalf("post should be gone, got %v", err)
	}
	left, _ := comments.ListByPost(ctx, post.ID.Hex())
	if len(left) != 0 {
		t.Fatalf("expected no orphaned comments, got %d", len(left))
	}
}

func TestValidateCommentContent(t *testing.T) {
	cases := []struct {
		content string
		ok      bool
	}{
		{"hello", true},
		{"  trimmed  ", true},
		{"", false},
		{"   ", false},
		{strings.Repeat("a", MaxCommentLength), true},
		{strings.Repeat("a", MaxCommentLength+1), false},
	}
	for i, c := range cases {
		_, err := ValidateCommentContent(c.content)
		if c.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !c.ok && err != ErrValidation {
			t.Fatalf("case %d expected ErrValidation, got %v", i, err)
		}
	}
}

func TestToggleLikeMembership(t *testing.T) {
	_, posts, _, post := newSyncFixture(t)
	ctx := context.Background()

	liked, err := posts.ToggleLike(ctx, post.ID.Hex(), "ben")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !liked.LikedBy("ben") {
		t.Fatal("like should be present after first toggle")
	}

	unliked, err := posts.ToggleLike(ctx, post.ID.Hex(), "ben")
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if unliked.LikedBy("ben") {
		t.Fatal("like should be removed after second toggle")
	}
	if len(unliked.Likes) != 0 {
		t.Fatalf("likes should be empty, got %v", unliked.Likes)
	}
}

func TestEventFilterKeywordAndDates(t *testing.T) {
	events := NewMemoryEventStore()
	ctx := context.Background()

	beach, _ := events.Create(ctx, &models.Event{Name: "Beach Cleanup", Description: "Pick up litter on the shore"})
	if _, err := events.Create(ctx, &models.Event{Name: "Park Planting", Description: "Plant saplings"}); err != nil {
		t.Fatalf("create event: %v", err)
	}

	got, err := events.Filter(ctx, EventFilter{Keyword: "beach"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 1 || got[0].ID != beach.ID {
		t.Fatalf("keyword filter mismatch: %+v", got)
	}

	all, _ := events.Filter(ctx, EventFilter{})
	if len(all) != 2 {
		t.Fatalf("empty filter should return all, got %d", len(all))
	}
}
