package controllers

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ecoengage/service/config"
	"github.com/ecoengage/service/middleware"
	"github.com/ecoengage/service/models"
	"github.com/ecoengage/service/store"
	"github.com/ecoengage/service/utils"
)

const postsCachePrefix = "posts:"

// PostController manages community posts and their embedded comment mirror.
type PostController struct {
	posts store.PostStore
	sync  *store.CommentSync
}

// NewPostController creates a new PostController instance.
func NewPostController(posts store.PostStore, sync *store.CommentSync) *PostController {
	return &PostController{posts: posts, sync: sync}
}

// Create accepts a multipart form with title, content and an optional image
// and stores a new post authored by the caller.
func (p *PostController) Create(ctx *gin.Context) {
	userID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "unauthenticated")
		return
	}

	title := strings.TrimSpace(ctx.PostForm("title"))
	content := strings.TrimSpace(ctx.PostForm("content"))
	if title == "" || content == "" {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "title and content are required")
		return
	}

	post := models.Post{
		Title:        utils.Sanitize(title),
		Content:      utils.Sanitize(content),
		Author:       middleware.CallerFirstName(ctx),
		AuthorID:     userID,
		CreationDate: time.Now(),
	}

	if file, err := ctx.FormFile("image"); err == nil && file != nil {
		url, err := saveUpload(ctx, file.Filename, "image")
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, utils.CodeInternal, "failed to store image")
			return
		}
		post.Image = url
	}

	created, err := p.posts.Create(ctx.Request.Context(), &post)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix(postsCachePrefix)
	utils.Success(ctx, created)
}

// List returns the full feed, newest first. The serialized feed is cached in
// Redis when caching is enabled.
func (p *PostController) List(ctx *gin.Context) {
	cacheKey := postsCachePrefix + "feed"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	posts, err := p.posts.List(ctx.Request.Context())
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.CacheSetJSON(cacheKey, posts, 5*time.Minute)
	utils.Success(ctx, posts)
}

// GetByID returns a single post including its embedded comments and likes.
func (p *PostController) GetByID(ctx *gin.Context) {
	post, err := p.posts.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.Success(ctx, post)
}

// ListMine returns the caller's own posts, newest first.
func (p *PostController) ListMine(ctx *gin.Context) {
	userID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "unauthenticated")
		return
	}
	posts, err := p.posts.ListByAuthor(ctx.Request.Context(), userID)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.Success(ctx, posts)
}

// Update rewrites a post's title and content. Only the author may edit.
func (p *PostController) Update(ctx *gin.Context) {
	userID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "unauthenticated")
		return
	}

	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "invalid request payload")
		return
	}

	post, err := p.posts.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	if !store.CanModifyPost(userID, post) {
		utils.Error(ctx, http.StatusForbidden, utils.CodeUnauthorized, "only the author can edit this post")
		return
	}

	updated, err := p.posts.UpdateContent(ctx.Request.Context(), ctx.Param("id"),
		utils.Sanitize(strings.TrimSpace(req.Title)),
		utils.Sanitize(strings.TrimSpace(req.Content)))
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix(postsCachePrefix)
	utils.Success(ctx, updated)
}

// Delete removes a post and cascades deletion to its comments. Only the
// author may delete.
func (p *PostController) Delete(ctx *gin.Context) {
	userID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "unauthenticated")
		return
	}

	post, err := p.posts.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	if !store.CanModifyPost(userID, post) {
		utils.Error(ctx, http.StatusForbidden, utils.CodeUnauthorized, "only the author can delete this post")
		return
	}

	if err := p.sync.DeletePostCascade(ctx.Request.Context(), ctx.Param("id")); err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix(postsCachePrefix)
	utils.Success(ctx, gin.H{"deleted": true})
}

// ToggleLike flips the caller's like on the post and returns the updated post.
func (p *PostController) ToggleLike(ctx *gin.Context) {
	userID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "unauthenticated")
		return
	}

	post, err := p.posts.ToggleLike(ctx.Request.Context(), ctx.Param("id"), userID)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix(postsCachePrefix)
	utils.Success(ctx, post)
}

// saveUpload writes the named multipart file to the upload directory under a
// random name and returns the public URL.
func saveUpload(ctx *gin.Context, originalName, field string) (string, error) {
	cfg := config.Get()
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext
	dst := filepath.Join(cfg.UploadDir, name)

	file, err := ctx.FormFile(field)
	if err != nil {
		return "", err
	}
	if err := ctx.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return cfg.BaseURL + "/uploads/" + name, nil
}
