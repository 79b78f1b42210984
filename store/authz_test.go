package store

import (
	"testing"

	"github.com/ecoengage/service/models"
)

func TestIsOwner(t *testing.T) {
	cases := []struct {
		caller string
		author string
		want   bool
	}{
		{"u1", "u1", true},
		{"u1", "u2", false},
		{"U1", "u1", true},
		{" u1 ", "u1", true},
		{"", "u1", false},
		{"u1", "", false},
		{"", "", false},
	}
	for i, c := range cases {
		if got := IsOwner(c.caller, c.author); got != c.want {
			t.Fatalf("case %d IsOwner(%q,%q)=%v want %v", i, c.caller, c.author, got, c.want)
		}
	}
}

func TestCanModifyPost(t *testing.T) {
	post := &models.Post{AuthorID: "owner"}
	if !CanModifyPost("owner", post) {
		t.Fatal("owner should be allowed to modify")
	}
	if CanModifyPost("intruder", post) {
		t.Fatal("non-owner must not modify")
	}
	if CanModifyPost("owner", nil) {
		t.Fatal("nil post must fail closed")
	}
}

func TestCanDeleteComment(t *testing.T) {
	comment := &models.Comment{AuthorID: "writer"}
	post := &models.Post{AuthorID: "owner"}

	if !CanDeleteComment("writer", comment, post) {
		t.Fatal("comment author should delete own comment")
	}
	if !CanDeleteComment("owner", comment, post) {
		t.Fatal("post owner should moderate comments on own post")
	}
	if CanDeleteComment("random", comment, post) {
		t.Fatal("unrelated user must not delete")
	}

	// Post already gone: only the comment author remains authorized.
	if !CanDeleteComment("writer", comment, nil) {
		t.Fatal("comment author should delete when post is gone")
	}
	if CanDeleteComment("owner", comment, nil) {
		t.Fatal("post owner claim needs the post record")
	}
	if CanDeleteComment("writer", nil, post) {
		t.Fatal("nil comment must fail closed")
	}
}
