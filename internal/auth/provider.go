package auth

import (
	"context"
	"time"
)

// Session is the result of a successful register or sign-in.
type Session struct {
	UID   string `json:"uid"`
	Token string `json:"token"`
}

// Credential is the identity record the default provider keeps per user.
type Credential struct {
	UID            string    `bson:"_id" json:"id"`
	Email          string    `bson:"email" json:"email"`
	PasswordHash   string    `bson:"passwordHash" json:"passwordHash"`
	SessionVersion int       `bson:"sessionVersion" json:"sessionVersion"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// Provider is the identity-provider contract the service layer consumes.
// Profile documents are not the provider's concern; it only owns
// credentials and tokens.
type Provider interface {
	// Register creates a user for the given credentials and returns a
	// signed session.
	Register(ctx context.Context, email, password string) (Session, error)

	// SignIn verifies the credentials and returns a signed session.
	SignIn(ctx context.Context, email, password string) (Session, error)

	// VerifyToken resolves a bearer token to the uid it was issued for.
	VerifyToken(ctx context.Context, token string) (string, error)

	// RevokeSessions invalidates every outstanding token for uid.
	RevokeSessions(ctx context.Context, uid string) error

	// DeleteUser removes the identity record for uid.
	DeleteUser(ctx context.Context, uid string) error

	// CustomToken issues a fresh token for an existing uid without
	// credentials, for trusted server-side flows.
	CustomToken(ctx context.Context, uid string) (string, error)
}
