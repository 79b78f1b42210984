package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecoengage/service/middleware"
	"github.com/ecoengage/service/models"
	"github.com/ecoengage/service/store"
	"github.com/ecoengage/service/utils"
)

// EventController manages community events and registration toggles.
type EventController struct {
	events store.EventStore
}

// NewEventController creates a new EventController instance.
func NewEventController(events store.EventStore) *EventController {
	return &EventController{events: events}
}

// List returns events filtered by an optional keyword and date range. Clients
// send the literal string "null" for an absent parameter.
func (e *EventController) List(ctx *gin.Context) {
	filter := store.EventFilter{
		Keyword: queryOrEmpty(ctx, "providedKeyword"),
	}

	start, err := parseDateParam(ctx, "startDate")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "invalid startDate")
		return
	}
	end, err := parseDateParam(ctx, "endDate")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "invalid endDate")
		return
	}
	filter.StartDate = start
	filter.EndDate = end

	events, err := e.events.Filter(ctx.Request.Context(), filter)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.Success(ctx, events)
}

// Create stores a new event.
func (e *EventController) Create(ctx *gin.Context) {
	var event models.Event
	if err := ctx.ShouldBindJSON(&event); err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "invalid request payload")
		return
	}
	if strings.TrimSpace(event.Name) == "" {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "event name is required")
		return
	}

	created, err := e.events.Create(ctx.Request.Context(), &event)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.Success(ctx, created)
}

// GetByID returns a single event.
func (e *EventController) GetByID(ctx *gin.Context) {
	event, err := e.events.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.Success(ctx, event)
}

// ListByUser returns the events a user is registered for. The user id comes
// in the request body.
func (e *EventController) ListByUser(ctx *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "invalid request payload")
		return
	}

	events, err := e.events.ListByRegisteredUser(ctx.Request.Context(), req.UserID)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.Success(ctx, events)
}

// Update replaces an event's editable fields.
func (e *EventController) Update(ctx *gin.Context) {
	var event models.Event
	if err := ctx.ShouldBindJSON(&event); err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "invalid request payload")
		return
	}

	updated, err := e.events.Update(ctx.Request.Context(), ctx.Param("id"), &event)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.Success(ctx, updated)
}

// Delete removes an event.
func (e *EventController) Delete(ctx *gin.Context) {
	if err := e.events.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"deleted": true})
}

// ToggleRegistration flips the caller's registration on the event.
func (e *EventController) ToggleRegistration(ctx *gin.Context) {
	userID, ok := middleware.CallerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, utils.CodeUnauthenticated, "unauthenticated")
		return
	}

	event, err := e.events.ToggleRegistration(ctx.Request.Context(), ctx.Param("id"), userID)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	utils.Success(ctx, event)
}

// queryOrEmpty treats a missing value or the literal "null" as empty.
func queryOrEmpty(ctx *gin.Context, name string) string {
	v := strings.TrimSpace(ctx.Query(name))
	if v == "null" || v == "undefined" {
		return ""
	}
	return v
}

// parseDateParam parses an RFC 3339 query date, allowing "null" and absence.
func parseDateParam(ctx *gin.Context, name string) (*time.Time, error) {
	v := queryOrEmpty(ctx, name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		// Date-only values come from date pickers.
		t, err = time.Parse("2006-01-02", v)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}
