package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ecoengage/service/utils"
)

const (
	// ContextUserIDKey is the key used to store the authenticated user id in Gin context.
	ContextUserIDKey = "user_id"
	// ContextEmailKey stores the caller's email inside Gin context.
	ContextEmailKey = "email"
	// ContextFirstNameKey stores the caller's first name inside Gin context.
	ContextFirstNameKey = "first_name"
	// ContextLastNameKey stores the caller's last name inside Gin context.
	ContextLastNameKey = "last_name"
)

// AuthRequired ensures the request carries a valid bearer token and stashes
// the token's identity claims in the request context.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "empty bearer token")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "invalid or expired token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextEmailKey, claims.Email)
		ctx.Set(ContextFirstNameKey, claims.FirstName)
		ctx.Set(ContextLastNameKey, claims.LastName)
		ctx.Next()
	}
}

// CallerID returns the authenticated user id from the context.
func CallerID(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// CallerFirstName returns the authenticated caller's first name, used as the
// author display name on posts and comments.
func CallerFirstName(ctx *gin.Context) string {
	value, exists := ctx.Get(ContextFirstNameKey)
	if !exists {
		return ""
	}
	name, _ := value.(string)
	return name
}
