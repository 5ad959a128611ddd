package models

import "time"

// Message is a direct message between two profiles.
type Message struct {
	ID         string    `bson:"_id" json:"id" validate:"required"`
	SenderID   string    `bson:"senderId" json:"senderId" validate:"required"`
	ReceiverID string    `bson:"receiverId" json:"receiverId" validate:"required"`
	Content    string    `bson:"content" json:"content"`
	Read       bool      `bson:"read" json:"read"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}
