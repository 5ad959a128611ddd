package models

import "time"

// Comment is a reply attached to a post.
type Comment struct {
	ID         string    `bson:"_id" json:"id" validate:"required"`
	PostID     string    `bson:"postId" json:"postId" validate:"required"`
	AuthorID   string    `bson:"authorId" json:"authorId" validate:"required"`
	Content    string    `bson:"content" json:"content"`
	Likes      int       `bson:"likes" json:"likes" validate:"min=0"`
	ReplyCount int       `bson:"replyCount" json:"replyCount" validate:"min=0"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}
