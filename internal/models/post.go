package models

import "time"

// Author kinds shared by posts and events.
const (
	AuthorTypePlayer = "player"
	AuthorTypeClub   = "club"
)

// Post is a feed entry published by a player or club profile.
type Post struct {
	ID         string    `bson:"_id" json:"id" validate:"required"`
	AuthorID   string    `bson:"authorId" json:"authorId" validate:"required"`
	AuthorType string    `bson:"authorType" json:"authorType" validate:"required,oneof=player club"`
	Content    string    `bson:"content" json:"content" validate:"required"`
	Images     []string  `bson:"images,omitempty" json:"images,omitempty"`
	Videos     []string  `bson:"videos,omitempty" json:"videos,omitempty"`
	Likes      int       `bson:"likes" json:"likes" validate:"min=0"`
	Comments   int       `bson:"comments" json:"comments" validate:"min=0"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}
