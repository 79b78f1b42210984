package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/ecoengage/service/store"
	"github.com/ecoengage/service/utils"
)

// InitiativeController serves the curated initiative catalog.
type InitiativeController struct {
	initiatives store.InitiativeStore
}

// NewInitiativeController creates a new InitiativeController instance.
func NewInitiativeController(initiatives store.InitiativeStore) *InitiativeController {
	return &InitiativeController{initiatives: initiatives}
}

// List returns every initiative.
func (i *InitiativeController) List(ctx *gin.Context) {
	items, err := i.initiatives.List(ctx.Request.Context())
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.Success(ctx, items)
}
