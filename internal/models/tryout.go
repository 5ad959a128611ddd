package models

import "time"

// Tryout application states.
const (
	TryoutPending  = "pending"
	TryoutAccepted = "accepted"
	TryoutRejected = "rejected"
)

// Tryout is a player's application to a club.
type Tryout struct {
	ID        string    `bson:"_id" json:"id" validate:"required"`
	PlayerID  string    `bson:"playerId" json:"playerId" validate:"required"`
	ClubID    string    `bson:"clubId" json:"clubId" validate:"required"`
	Status    string    `bson:"status" json:"status" validate:"required,oneof=pending accepted rejected"`
	AppliedAt time.Time `bson:"appliedAt" json:"appliedAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
