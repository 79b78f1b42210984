package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ecoengage/service/models"
)

// In-memory store implementations with the same contracts as the Mongo ones.
// They back the handler and sync tests and make the server runnable without a
// database for local experiments.

// MemoryPostStore is an in-memory PostStore.
type MemoryPostStore struct {
	mu    sync.RWMutex
	posts map[string]models.Post
}

// NewMemoryPostStore returns an empty in-memory post store.
func NewMemoryPostStore() *MemoryPostStore {
	return &MemoryPostStore{posts: map[string]models.Post{}}
}

func clonePost(p models.Post) models.Post {
	cp := p
	cp.Comments = append([]models.Comment{}, p.Comments...)
	cp.Likes = append([]string{}, p.Likes...)
	return cp
}

func (s *MemoryPostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = primitive.NewObjectID()
	if p.CreationDate.IsZero() {
		p.CreationDate = time.Now()
	}
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	if p.Likes == nil {
		p.Likes = []string{}
	}
	s.posts[p.ID.Hex()] = clonePost(*p)
	return p, nil
}

func (s *MemoryPostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := clonePost(p)
	return &cp, nil
}

func (s *MemoryPostStore) List(ctx context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Post{}
	for _, p := range s.posts {
		out = append(out, clonePost(p))
	}
	return out, nil
}

func (s *MemoryPostStore) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Post{}
	for _, p := range s.posts {
		if IsOwner(authorID, p.AuthorID) {
			out = append(out, clonePost(p))
		}
	}
	return out, nil
}

func (s *MemoryPostStore) UpdateContent(ctx context.Context, id, title, content string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Title = title
	p.Content = content
	s.posts[id] = p
	cp := clonePost(p)
	return &cp, nil
}

func (s *MemoryPostStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *MemoryPostStore) ToggleLike(ctx context.Context, id, userID string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	likes := []string{}
	removed := false
	for _, uid := range p.Likes {
		if uid == userID {
			removed = true
			continue
		}
		likes = append(likes, uid)
	}
	if !removed {
		likes = append(likes, userID)
	}
	p.Likes = likes
	s.posts[id] = p
	cp := clonePost(p)
	return &cp, nil
}

func (s *MemoryPostStore) AppendComment(ctx context.Context, postID string, c models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return ErrNotFound
	}
	p.Comments = append(p.Comments, c)
	s.posts[postID] = p
	return nil
}

func (s *MemoryPostStore) UpdateComment(ctx context.Context, postID, commentID, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return ErrNotFound
	}
	for i := range p.Comments {
		if p.Comments[i].ID.Hex() == commentID {
			p.Comments[i].CommentContent = content
			s.posts[postID] = p
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryPostStore) RemoveComment(ctx context.Context, postID, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return ErrNotFound
	}
	kept := p.Comments[:0]
	for _, c := range p.Comments {
		if c.ID.Hex() != commentID {
			kept = append(kept, c)
		}
	}
	p.Comments = kept
	s.posts[postID] = p
	return nil
}

// MemoryCommentStore is an in-memory CommentStore.
type MemoryCommentStore struct {
	mu       sync.RWMutex
	comments map[string]models.Comment
}

// NewMemoryCommentStore returns an empty in-memory comment store.
func NewMemoryCommentStore() *MemoryCommentStore {
	return &MemoryCommentStore{comments: map[string]models.Comment{}}
}

func (s *MemoryCommentStore) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	if _, err := ValidateCommentContent(c.CommentContent); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = primitive.NewObjectID()
	if c.TimeStamp.IsZero() {
		c.TimeStamp = time.Now()
	}
	s.comments[c.ID.Hex()] = *c
	return c, nil
}

func (s *MemoryCommentStore) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryCommentStore) List(ctx context.Context) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Comment{}
	for _, c := range s.comments {
		out = append(out, c)
	}
	return out, nil
}

func (s *MemoryCommentStore) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Comment{}
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *MemoryCommentStore) UpdateContent(ctx context.Context, id, content string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.CommentContent = content
	s.comments[id] = c
	return &c, nil
}

func (s *MemoryCommentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

func (s *MemoryCommentStore) DeleteByPost(ctx context.Context, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
		}
	}
	return nil
}

// MemoryUserStore is an in-memory UserStore.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]models.User // keyed by userId
}

// NewMemoryUserStore returns an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[string]models.User{}}
}

func (s *MemoryUserStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return nil, ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	if u.UserID == "" {
		u.UserID = primitive.NewObjectID().Hex()
	}
	s.users[u.UserID] = *u
	return u, nil
}

func (s *MemoryUserStore) GetByID(ctx context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) UpdateProfile(ctx context.Context, userID string, fields ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	if fields.FirstName != nil {
		u.FirstName = *fields.FirstName
	}
	if fields.LastName != nil {
		u.LastName = *fields.LastName
	}
	if fields.Language != nil {
		u.Language = *fields.Language
	}
	if fields.Bio != nil {
		u.Bio = *fields.Bio
	}
	s.users[userID] = u
	return &u, nil
}

func (s *MemoryUserStore) UpdatePassword(ctx context.Context, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for id, u := range s.users {
		if u.Email == email {
			u.Password = passwordHash
			s.users[id] = u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// MemoryEventStore is an in-memory EventStore.
type MemoryEventStore struct {
	mu     sync.RWMutex
	events map[string]models.Event
}

// NewMemoryEventStore returns an empty in-memory event store.
func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{events: map[string]models.Event{}}
}

func cloneEvent(e models.Event) models.Event {
	ce := e
	ce.UsersRegistered = append([]string{}, e.UsersRegistered...)
	ce.Images = append([]string{}, e.Images...)
	return ce
}

func (s *MemoryEventStore) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = primitive.NewObjectID()
	if e.UsersRegistered == nil {
		e.UsersRegistered = []string{}
	}
	if e.Images == nil {
		e.Images = []string{}
	}
	s.events[e.ID.Hex()] = cloneEvent(*e)
	return e, nil
}

func (s *MemoryEventStore) GetByID(ctx context.Context, id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	ce := cloneEvent(e)
	return &ce, nil
}

func (s *MemoryEventStore) Filter(ctx context.Context, f EventFilter) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keyword := strings.ToLower(f.Keyword)
	out := []models.Event{}
	for _, e := range s.events {
		if keyword != "" {
			haystack := strings.ToLower(e.Name + " " + e.Title + " " + e.Description)
			if !strings.Contains(haystack, keyword) {
				continue
			}
		}
		if f.StartDate != nil && e.EventStartDate.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && e.EventStartDate.After(*f.EndDate) {
			continue
		}
		out = append(out, cloneEvent(e))
	}
	return out, nil
}

func (s *MemoryEventStore) ListByRegisteredUser(ctx context.Context, userID string) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Event{}
	for _, e := range s.events {
		if (&e).RegisteredBy(userID) {
			out = append(out, cloneEvent(e))
		}
	}
	return out, nil
}

func (s *MemoryEventStore) Update(ctx context.Context, id string, e *models.Event) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	updated := *e
	updated.ID = existing.ID
	s.events[id] = cloneEvent(updated)
	ce := cloneEvent(updated)
	return &ce, nil
}

func (s *MemoryEventStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return ErrNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *MemoryEventStore) ToggleRegistration(ctx context.Context, id, userID string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	kept := []string{}
	removed := false
	for _, uid := range e.UsersRegistered {
		if uid == userID {
			removed = true
			continue
		}
		kept = append(kept, uid)
	}
	if !removed {
		kept = append(kept, userID)
	}
	e.UsersRegistered = kept
	s.events[id] = e
	ce := cloneEvent(e)
	return &ce, nil
}

// MemoryInitiativeStore is an in-memory InitiativeStore.
type MemoryInitiativeStore struct {
	mu          sync.RWMutex
	initiatives []models.Initiative
}

// NewMemoryInitiativeStore returns an in-memory initiative store seeded with
// the given initiatives.
func NewMemoryInitiativeStore(seed ...models.Initiative) *MemoryInitiativeStore {
	s := &MemoryInitiativeStore{}
	for _, in := range seed {
		if in.ID.IsZero() {
			in.ID = primitive.NewObjectID()
		}
		s.initiatives = append(s.initiatives, in)
	}
	return s
}

func (s *MemoryInitiativeStore) List(ctx context.Context) ([]models.Initiative, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Initiative{}, s.initiatives...), nil
}
