package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ecoengage/service/models"
	"github.com/ecoengage/service/store"
)

var router *gin.Engine

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "router-test-secret")
	os.Setenv("GIN_MODE", "test")
	os.Setenv("GIN_PATH", filepath.Join(os.TempDir(), "ecoengage_router_test.log"))

	router = SetupRouter(Stores{
		Users:       store.NewMemoryUserStore(),
		Posts:       store.NewMemoryPostStore(),
		Comments:    store.NewMemoryCommentStore(),
		Events:      store.NewMemoryEventStore(),
		Initiatives: store.NewMemoryInitiativeStore(models.Initiative{Name: "Plastic Free July", Description: "Reduce single-use plastic"}),
	})
	os.Exit(m.Run())
}

func doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func signUp(t *testing.T, firstName, email string) string {
	t.Helper()
	w := doJSON(t, http.MethodPost, "/auth/signup", "", gin.H{
		"firstName": firstName,
		"lastName":  "Tester",
		"email":     email,
		"password":  "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("signup status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	decode(t, w, &resp)
	if resp.AccessToken == "" {
		t.Fatal("signup returned empty token")
	}
	return resp.AccessToken
}

func createPost(t *testing.T, token, title, content string) models.Post {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("title", title)
	_ = mw.WriteField("content", content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/posts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("create post status %d: %s", w.Code, w.Body.String())
	}
	var post models.Post
	decode(t, w, &post)
	return post
}

func TestHealth(t *testing.T) {
	w := doJSON(t, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health status %d", w.Code)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	signUp(t, "Dana", "dana@example.com")
	w := doJSON(t, http.MethodPost, "/auth/signup", "", gin.H{
		"firstName": "Dana",
		"lastName":  "Tester",
		"email":     "dana@example.com",
		"password":  "secret123",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSigninWrongPassword(t *testing.T) {
	signUp(t, "Eve", "eve@example.com")
	w := doJSON(t, http.MethodPost, "/auth/signin", "", gin.H{
		"email":    "eve@example.com",
		"password": "not-the-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", w.Code)
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	w := doJSON(t, http.MethodGet, "/auth/user", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	w = doJSON(t, http.MethodGet, "/auth/user", "garbage-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", w.Code)
	}
}

func TestProfileUpdateLanguage(t *testing.T) {
	token := signUp(t, "Franka", "franka@example.com")
	w := doJSON(t, http.MethodPatch, "/auth/user", token, gin.H{"language": "de"})
	if w.Code != http.StatusOK {
		t.Fatalf("update profile status %d: %s", w.Code, w.Body.String())
	}
	var user models.User
	decode(t, w, &user)
	if user.Language != "de" {
		t.Fatalf("language not updated: %q", user.Language)
	}
}

func TestPostLifecycleWithCommentSync(t *testing.T) {
	owner := signUp(t, "Ana", "ana@example.com")
	visitor := signUp(t, "Ben", "ben@example.com")

	post := createPost(t, owner, "Tree Day", "Planting trees in the park")
	postID := post.ID.Hex()

	// Comment through the post-scoped route.
	w := doJSON(t, http.MethodPost, "/comments/post/"+postID, visitor, gin.H{"commentContent": "Nice!"})
	if w.Code != http.StatusOK {
		t.Fatalf("create comment status %d: %s", w.Code, w.Body.String())
	}
	var comment models.Comment
	decode(t, w, &comment)

	// The embedded mirror carries the same id and content.
	w = doJSON(t, http.MethodGet, "/posts/"+postID, "", nil)
	var got models.Post
	decode(t, w, &got)
	if len(got.Comments) != 1 || got.Comments[0].ID != comment.ID || got.Comments[0].CommentContent != "Nice!" {
		t.Fatalf("embedded comment mismatch: %+v", got.Comments)
	}

	// Only the post author may edit the post.
	w = doJSON(t, http.MethodPatch, "/posts/"+postID, visitor, gin.H{"title": "Hacked", "content": "Hacked"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign edit, got %d", w.Code)
	}

	// Like toggling is idempotent over two calls.
	w = doJSON(t, http.MethodPatch, "/posts/"+postID+"/toggle-like", visitor, nil)
	decode(t, w, &got)
	if len(got.Likes) != 1 {
		t.Fatalf("expected 1 like after toggle, got %v", got.Likes)
	}
	w = doJSON(t, http.MethodPatch, "/posts/"+postID+"/toggle-like", visitor, nil)
	decode(t, w, &got)
	if len(got.Likes) != 0 {
		t.Fatalf("expected 0 likes after second toggle, got %v", got.Likes)
	}

	// The post owner moderates the visitor's comment away.
	w = doJSON(t, http.MethodDelete, "/comments/"+comment.ID.Hex(), owner, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("moderate comment status %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, http.MethodGet, "/comments/"+comment.ID.Hex(), "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted comment, got %d", w.Code)
	}

	// Deleting the post cascades to its remaining comments.
	w = doJSON(t, http.MethodPost, "/comments/post/"+postID, visitor, gin.H{"commentContent": "again"})
	if w.Code != http.StatusOK {
		t.Fatalf("recreate comment status %d", w.Code)
	}
	w = doJSON(t, http.MethodDelete, "/posts/"+postID, owner, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete post status %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, http.MethodGet, "/comments/post/"+postID, "", nil)
	var left []models.Comment
	decode(t, w, &left)
	if len(left) != 0 {
		t.Fatalf("expected no comments after cascade, got %d", len(left))
	}
	w = doJSON(t, http.MethodGet, "/posts/"+postID, "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted post, got %d", w.Code)
	}
}

func TestCommentValidationBounds(t *testing.T) {
	owner := signUp(t, "Gus", "gus@example.com")
	post := createPost(t, owner, "Compost 101", "Start a compost bin")

	w := doJSON(t, http.MethodPost, "/comments/post/"+post.ID.Hex(), owner, gin.H{"commentContent": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank comment, got %d", w.Code)
	}

	long := make([]byte, store.MaxCommentLength+1)
	for i := range long {
		long[i] = 'a'
	}
	w = doJSON(t, http.MethodPost, "/comments/post/"+post.ID.Hex(), owner, gin.H{"commentContent": string(long)})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for over-length comment, got %d", w.Code)
	}
}

func TestEventFilterAndRegistration(t *testing.T) {
	token := signUp(t, "Hana", "hana@example.com")

	w := doJSON(t, http.MethodPost, "/events", "", gin.H{"name": "Beach Cleanup", "description": "Pick up litter"})
	if w.Code != http.StatusOK {
		t.Fatalf("create event status %d: %s", w.Code, w.Body.String())
	}
	var beach models.Event
	decode(t, w, &beach)

	w = doJSON(t, http.MethodPost, "/events", "", gin.H{"name": "Park Planting", "description": "Plant saplings"})
	if w.Code != http.StatusOK {
		t.Fatalf("create event status %d", w.Code)
	}

	w = doJSON(t, http.MethodGet, "/events?providedKeyword=beach&startDate=null&endDate=null", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("filter status %d: %s", w.Code, w.Body.String())
	}
	var events []models.Event
	decode(t, w, &events)
	if len(events) != 1 || events[0].Name != "Beach Cleanup" {
		t.Fatalf("keyword filter mismatch: %+v", events)
	}

	path := fmt.Sprintf("/events/%s/toggle-registration", beach.ID.Hex())
	w = doJSON(t, http.MethodPatch, path, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("register status %d: %s", w.Code, w.Body.String())
	}
	var registered models.Event
	decode(t, w, &registered)
	if len(registered.UsersRegistered) != 1 {
		t.Fatalf("expected one registration, got %v", registered.UsersRegistered)
	}

	w = doJSON(t, http.MethodPost, "/events/user", "", gin.H{"userId": registered.UsersRegistered[0]})
	decode(t, w, &events)
	if len(events) != 1 || events[0].ID != beach.ID {
		t.Fatalf("events by user mismatch: %+v", events)
	}

	w = doJSON(t, http.MethodPatch, path, token, nil)
	decode(t, w, &registered)
	if len(registered.UsersRegistered) != 0 {
		t.Fatalf("expected registration removed, got %v", registered.UsersRegistered)
	}
}

func TestInitiativesList(t *testing.T) {
	w := doJSON(t, http.MethodGet, "/initiatives", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("initiatives status %d", w.Code)
	}
	var items []models.Initiative
	decode(t, w, &items)
	if len(items) != 1 || items[0].Name != "Plastic Free July" {
		t.Fatalf("initiative seed mismatch: %+v", items)
	}
}
