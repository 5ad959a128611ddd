package models

import "time"

// Reaction kinds a user can attach to a post.
const (
	ReactionLike = "like"
	ReactionFire = "fire"
	ReactionClap = "clap"
)

// Reaction records one user's reaction to a post.
type Reaction struct {
	ID        string    `bson:"_id" json:"id" validate:"required"`
	PostID    string    `bson:"postId" json:"postId" validate:"required"`
	UserID    string    `bson:"userId" json:"userId" validate:"required"`
	Type      string    `bson:"type" json:"type" validate:"required,oneof=like fire clap"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
