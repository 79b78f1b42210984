package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoengage/service/middleware"
	"github.com/ecoengage/service/models"
	"github.com/ecoengage/service/store"
	"github.com/ecoengage/service/utils"
)

// AuthController manages sign-up, sign-in and profile operations.
type AuthController struct {
	users store.UserStore
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(users store.UserStore) *AuthController {
	return &AuthController{users: users}
}

// SignUp registers a new user and responds with a 10-day access token.
func (a *AuthController) SignUp(ctx *gin.Context) {
	var req struct {
		FirstName string `json:"firstName" binding:"required"`
		LastName  string `json:"lastName" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=6"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "invalid request payload")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, utils.CodeInternal, "failed to hash password")
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
		Language:  "en",
		Bio:       "sample bio",
	}
	created, err := a.users.Create(ctx.Request.Context(), &user)
	if err != nil {
		if err == store.ErrDuplicateEmail {
			utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "user already exists")
			return
		}
		writeStoreError(ctx, err)
		return
	}

	token, err := utils.GenerateToken(created.Email, created.UserID, created.FirstName, created.LastName, utils.SignupTokenTTL)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, utils.CodeInternal, "failed to issue token")
		return
	}
	utils.Success(ctx, gin.H{"accessToken": token})
}

// SignIn verifies credentials and responds with a 24-hour access token.
func (a *AuthController) SignIn(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "invalid request payload")
		return
	}

	user, err := a.users.GetByEmail(ctx.Request.Context(), req.Email)
	if err != nil {
		if err == store.ErrNotFound {
			utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "no user with this email")
			return
		}
		writeStoreError(ctx, err)
		return
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.Email, user.UserID, user.FirstName, user.LastName, utils.SigninTokenTTL)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, utils.CodeInternal, "failed to issue token")
		return
	}
	utils.Success(ctx, gin.H{"accessToken": token})
}

// GetUser returns the authenticated caller's profile.
func (a *AuthController) GetUser(ctx *gin.Context) {
	userID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "unauthenticated")
		return
	}
	user, err := a.users.GetByID(ctx.Request.Context(), userID)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.Success(ctx, user)
}

// UpdateUser edits the caller's own profile fields, including the preferred
// language.
func (a *AuthController) UpdateUser(ctx *gin.Context) {
	userID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "unauthenticated")
		return
	}

	var req struct {
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
		Language  *string `json:"language"`
		Bio       *string `json:"bio"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "invalid request payload")
		return
	}

	updated, err := a.users.UpdateProfile(ctx.Request.Context(), userID, store.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Language:  req.Language,
		Bio:       req.Bio,
	})
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.Success(ctx, updated)
}

// ChangePassword resets the password for the given email.
func (a *AuthController) ChangePassword(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "invalid request payload")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, utils.CodeInternal, "failed to hash password")
		return
	}
	updated, err := a.users.UpdatePassword(ctx.Request.Context(), req.Email, hash)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.Success(ctx, updated)
}
