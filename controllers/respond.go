package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoengage/service/store"
	"github.com/ecoengage/service/utils"
)

// writeStoreError maps store-level errors onto the HTTP error taxonomy.
func writeStoreError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, utils.CodeNotFound, "resource not found")
	case errors.Is(err, store.ErrValidation):
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "invalid content")
	case errors.Is(err, store.ErrUnauthorized):
		utils.Error(ctx, http.StatusForbidden, utils.CodeUnauthorized, "not authorized for this resource")
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorf("store error: %v", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, utils.CodeInternal, "error occurred while processing the request")
	}
}
