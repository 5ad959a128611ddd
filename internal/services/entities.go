package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/RouqX7/AthleteConnect/internal/database"
	"github.com/RouqX7/AthleteConnect/internal/models"
	"github.com/RouqX7/AthleteConnect/internal/validation"
)

// Per-kind constructors. Each binds the generic service to one record
// type, its owner field, and the defaults a fresh record gets.

func NewPostService(store database.Store[models.Post], validate *validation.Validator, logger *zap.Logger) *EntityService[models.Post] {
	return NewEntityService(EntityInfo[models.Post]{
		Kind:  "post",
		SetID: func(p *models.Post, id string) { p.ID = id },
		Defaults: func(p *models.Post, ownerID string, now time.Time) {
			p.AuthorID = ownerID
			p.Likes = 0
			p.Comments = 0
			p.CreatedAt = now
			p.UpdatedAt = now
		},
		TouchField: "updatedAt",
	}, store, validate, logger)
}

func NewCommentService(store database.Store[models.Comment], validate *validation.Validator, logger *zap.Logger) *EntityService[models.Comment] {
	return NewEntityService(EntityInfo[models.Comment]{
		Kind:  "comment",
		SetID: func(c *models.Comment, id string) { c.ID = id },
		Defaults: func(c *models.Comment, ownerID string, now time.Time) {
			c.AuthorID = ownerID
			c.Likes = 0
			c.ReplyCount = 0
			c.CreatedAt = now
			c.UpdatedAt = now
		},
		TouchField: "updatedAt",
	}, store, validate, logger)
}

func NewEventService(store database.Store[models.Event], validate *validation.Validator, logger *zap.Logger) *EntityService[models.Event] {
	return NewEntityService(EntityInfo[models.Event]{
		Kind:  "event",
		SetID: func(e *models.Event, id string) { e.ID = id },
		Defaults: func(e *models.Event, ownerID string, now time.Time) {
			e.OrganizerID = ownerID
			if e.Attendees == nil {
				e.Attendees = []string{}
			}
			e.CreatedAt = now
			e.UpdatedAt = now
		},
		TouchField: "updatedAt",
	}, store, validate, logger)
}

func NewMessageService(store database.Store[models.Message], validate *validation.Validator, logger *zap.Logger) *EntityService[models.Message] {
	return NewEntityService(EntityInfo[models.Message]{
		Kind:  "message",
		SetID: func(m *models.Message, id string) { m.ID = id },
		Defaults: func(m *models.Message, ownerID string, now time.Time) {
			m.SenderID = ownerID
			m.Read = false
			m.CreatedAt = now
			m.UpdatedAt = now
		},
		TouchField: "updatedAt",
	}, store, validate, logger)
}

func NewReactionService(store database.Store[models.Reaction], validate *validation.Validator, logger *zap.Logger) *EntityService[models.Reaction] {
	return NewEntityService(EntityInfo[models.Reaction]{
		Kind:  "reaction",
		SetID: func(r *models.Reaction, id string) { r.ID = id },
		Defaults: func(r *models.Reaction, ownerID string, now time.Time) {
			r.UserID = ownerID
			if r.Type == "" {
				r.Type = models.ReactionLike
			}
			r.CreatedAt = now
			r.UpdatedAt = now
		},
		TouchField: "updatedAt",
	}, store, validate, logger)
}

func NewNotificationService(store database.Store[models.Notification], validate *validation.Validator, logger *zap.Logger) *EntityService[models.Notification] {
	return NewEntityService(EntityInfo[models.Notification]{
		Kind:  "notification",
		SetID: func(n *models.Notification, id string) { n.ID = id },
		Defaults: func(n *models.Notification, ownerID string, now time.Time) {
			n.RecipientID = ownerID
			if n.Type == "" {
				n.Type = models.NotificationFollow
			}
			n.Read = false
			n.CreatedAt = now
			n.UpdatedAt = now
		},
		TouchField: "updatedAt",
	}, store, validate, logger)
}

func NewFollowService(store database.Store[models.Follow], validate *validation.Validator, logger *zap.Logger) *EntityService[models.Follow] {
	return NewEntityService(EntityInfo[models.Follow]{
		Kind:  "follow",
		SetID: func(f *models.Follow, id string) { f.ID = id },
		Defaults: func(f *models.Follow, ownerID string, now time.Time) {
			f.FollowerID = ownerID
			f.CreatedAt = now
		},
		// Follows are created and deleted, never edited.
		TouchField: "",
	}, store, validate, logger)
}

func NewTryoutService(store database.Store[models.Tryout], validate *validation.Validator, logger *zap.Logger) *EntityService[models.Tryout] {
	return NewEntityService(EntityInfo[models.Tryout]{
		Kind:  "tryout",
		SetID: func(t *models.Tryout, id string) { t.ID = id },
		Defaults: func(t *models.Tryout, ownerID string, now time.Time) {
			t.PlayerID = ownerID
			if t.Status == "" {
				t.Status = models.TryoutPending
			}
			t.AppliedAt = now
			t.UpdatedAt = now
		},
		TouchField: "updatedAt",
	}, store, validate, logger)
}
