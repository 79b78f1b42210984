package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecoengage/service/middleware"
	"github.com/ecoengage/service/models"
	"github.com/ecoengage/service/store"
	"github.com/ecoengage/service/utils"
)

// CommentController manages the comment collection and keeps the post mirror
// synchronized through CommentSync.
type CommentController struct {
	comments store.CommentStore
	sync     *store.CommentSync
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(comments store.CommentStore, sync *store.CommentSync) *CommentController {
	return &CommentController{comments: comments, sync: sync}
}

// List returns every comment across all posts.
func (c *CommentController) List(ctx *gin.Context) {
	comments, err := c.comments.List(ctx.Request.Context())
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.Success(ctx, comments)
}

// ListByPost returns the comments attached to one post.
func (c *CommentController) ListByPost(ctx *gin.Context) {
	comments, err := c.comments.ListByPost(ctx.Request.Context(), ctx.Param("postId"))
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.Success(ctx, comments)
}

// GetByID returns a single comment.
func (c *CommentController) GetByID(ctx *gin.Context) {
	comment, err := c.comments.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.Success(ctx, comment)
}

// Create stores a new comment whose post id is carried in the body.
func (c *CommentController) Create(ctx *gin.Context) {
	userID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "unauthenticated")
		return
	}

	var req struct {
		PostID         string `json:"postId" binding:"required"`
		CommentContent string `json:"commentContent" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "invalid request payload")
		return
	}

	comment := models.Comment{
		Author:         middleware.CallerFirstName(ctx),
		AuthorID:       userID,
		TimeStamp:      time.Now(),
		CommentContent: utils.Sanitize(req.CommentContent),
	}
	created, err := c.sync.CreateForPost(ctx.Request.Context(), req.PostID, comment)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix(postsCachePrefix)
	utils.Success(ctx, created)
}

// CreateForPost stores a new comment on the post in the URL and mirrors it
// into the post's embedded comments.
func (c *CommentController) CreateForPost(ctx *gin.Context) {
	userID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "unauthenticated")
		return
	}

	var req struct {
		CommentContent string `json:"commentContent" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "invalid request payload")
		return
	}

	comment := models.Comment{
		Author:         middleware.CallerFirstName(ctx),
		AuthorID:       userID,
		TimeStamp:      time.Now(),
		CommentContent: utils.Sanitize(req.CommentContent),
	}
	created, err := c.sync.CreateForPost(ctx.Request.Context(), ctx.Param("postId"), comment)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix(postsCachePrefix)
	utils.Success(ctx, created)
}

// Update rewrites a comment's content in both collections. Only the comment's
// author may edit.
func (c *CommentController) Update(ctx *gin.Context) {
	userID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "unauthenticated")
		return
	}

	var req struct {
		CommentContent string `json:"commentContent" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "invalid request payload")
		return
	}

	updated, err := c.sync.UpdateContent(ctx.Request.Context(), ctx.Param("id"), userID, utils.Sanitize(req.CommentContent))
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix(postsCachePrefix)
	utils.Success(ctx, updated)
}

// Delete removes a comment from both collections. The comment's author or the
// owning post's author may delete it.
func (c *CommentController) Delete(ctx *gin.Context) {
	userID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "unauthenticated")
		return
	}

	if err := c.sync.Delete(ctx.Request.Context(), ctx.Param("id"), userID); err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.InvalidateByPrefix(postsCachePrefix)
	utils.Success(ctx, gin.H{"deleted": true})
}
