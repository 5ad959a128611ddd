package models

import "time"

// Event is a gathering organized by a player or club, with an attendee list
// of profile uids.
type Event struct {
	ID            string    `bson:"_id" json:"id" validate:"required"`
	OrganizerID   string    `bson:"organizerId" json:"organizerId" validate:"required"`
	OrganizerType string    `bson:"organizerType" json:"organizerType" validate:"required,oneof=player club"`
	Name          string    `bson:"name" json:"name" validate:"required"`
	Description   string    `bson:"description" json:"description"`
	Date          time.Time `bson:"date" json:"date" validate:"required"`
	Location      string    `bson:"location" json:"location"`
	Attendees     []string  `bson:"attendees" json:"attendees"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}
