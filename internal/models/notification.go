package models

import "time"

// Notification kinds.
const (
	NotificationFollow      = "follow"
	NotificationComment     = "comment"
	NotificationEventInvite = "event_invite"
)

// Notification is delivered to a recipient profile and points at the
// record that triggered it.
type Notification struct {
	ID          string    `bson:"_id" json:"id" validate:"required"`
	RecipientID string    `bson:"recipientId" json:"recipientId" validate:"required"`
	Type        string    `bson:"type" json:"type" validate:"required,oneof=follow comment event_invite"`
	RelatedID   string    `bson:"relatedId" json:"relatedId"`
	Read        bool      `bson:"read" json:"read"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
