package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventLocation is the venue of an environmental event.
type EventLocation struct {
	Address1  string  `bson:"address1" json:"address1"`
	Address2  string  `bson:"address2" json:"address2"`
	City      string  `bson:"city" json:"city"`
	State     string  `bson:"state" json:"state"`
	ZipCode   string  `bson:"zipCode" json:"zipCode"`
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// Event is a community event users can register for.
type Event struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	EventStartDate  time.Time          `bson:"eventStartDate" json:"eventStartDate"`
	EventEndDate    time.Time          `bson:"eventEndDate" json:"eventEndDate"`
	UsersRegistered []string           `bson:"usersRegistered" json:"usersRegistered"`
	Images          []string           `bson:"images" json:"images"`
	Location        EventLocation      `bson:"location" json:"location"`
}

// RegisteredBy reports whether userID is registered for the event.
func (e *Event) RegisteredBy(userID string) bool {
	for _, id := range e.UsersRegistered {
		if id == userID {
			return true
		}
	}
	return false
}
