package models

import "time"

// Follow links a follower profile to the profile it follows. Follows are
// never edited, only created and deleted, so there is no updatedAt.
type Follow struct {
	ID          string    `bson:"_id" json:"id" validate:"required"`
	FollowerID  string    `bson:"followerId" json:"followerId" validate:"required"`
	FollowingID string    `bson:"followingId" json:"followingId" validate:"required"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
