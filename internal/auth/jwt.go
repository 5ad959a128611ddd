package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/RouqX7/AthleteConnect/internal/database"
	"github.com/RouqX7/AthleteConnect/internal/utils"
)

const defaultTokenTTL = 24 * time.Hour

// Claims carried by issued tokens. SessionVersion is compared against the
// stored credential on verification so revocation invalidates tokens that
// are otherwise still unexpired.
type Claims struct {
	UserID         string `json:"user_id"`
	SessionVersion int    `json:"session_version"`
	jwt.RegisteredClaims
}

// JWTProvider implements Provider with bcrypt-hashed credentials in the
// document store and HS256 tokens.
type JWTProvider struct {
	creds  database.Store[Credential]
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewJWTProvider(creds database.Store[Credential], secret string, ttl time.Duration, logger *zap.Logger) *JWTProvider {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTProvider{
		creds:  creds,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

func (p *JWTProvider) Register(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, utils.NewInvalidInputError("email and password are required")
	}

	existing, err := p.creds.GetByField(ctx, "email", email)
	if err != nil {
		return Session{}, err
	}
	if len(existing) > 0 {
		return Session{}, utils.NewAppError(utils.ErrDuplicate, "user already exists", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, utils.NewAppError(utils.ErrAuthProvider, "failed to hash password", err)
	}

	cred := Credential{
		UID:            uuid.NewString(),
		Email:          email,
		PasswordHash:   string(hash),
		SessionVersion: 1,
		CreatedAt:      p.now().UTC(),
	}
	if _, err := p.creds.Add(ctx, cred.UID, &cred); err != nil {
		return Session{}, err
	}

	token, err := p.sign(cred.UID, cred.SessionVersion)
	if err != nil {
		return Session{}, err
	}
	p.logger.Info("user registered", zap.String("uid", cred.UID))
	return Session{UID: cred.UID, Token: token}, nil
}

func (p *JWTProvider) SignIn(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, utils.NewInvalidInputError("email and password are required")
	}

	matches, err := p.creds.GetByField(ctx, "email", email)
	if err != nil {
		return Session{}, err
	}
	if len(matches) == 0 {
		return Session{}, utils.NewAppError(utils.ErrInvalidCredentials, "invalid credentials", nil)
	}

	cred := matches[0]
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return Session{}, utils.NewAppError(utils.ErrInvalidCredentials, "invalid credentials", nil)
	}

	token, err := p.sign(cred.UID, cred.SessionVersion)
	if err != nil {
		return Session{}, err
	}
	return Session{UID: cred.UID, Token: token}, nil
}

func (p *JWTProvider) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, utils.NewAppError(utils.ErrInvalidToken, "unexpected signing method", nil)
			}
			return p.secret, nil
		},
	)
	if err != nil || !token.Valid {
		return "", utils.NewAppError(utils.ErrInvalidToken, "invalid token", err)
	}

	cred, err := p.creds.Get(ctx, claims.UserID)
	if err != nil {
		return "", utils.NewAppError(utils.ErrInvalidToken, "invalid token", err)
	}
	if claims.SessionVersion != cred.SessionVersion {
		return "", utils.NewAppError(utils.ErrInvalidToken, "token has been revoked", nil)
	}
	return claims.UserID, nil
}

func (p *JWTProvider) RevokeSessions(ctx context.Context, uid string) error {
	cred, err := p.creds.Get(ctx, uid)
	if err != nil {
		return err
	}
	return p.creds.Update(ctx, uid, map[string]any{"sessionVersion": cred.SessionVersion + 1})
}

func (p *JWTProvider) DeleteUser(ctx context.Context, uid string) error {
	return p.creds.Delete(ctx, uid)
}

func (p *JWTProvider) CustomToken(ctx context.Context, uid string) (string, error) {
	cred, err := p.creds.Get(ctx, uid)
	if err != nil {
		return "", err
	}
	return p.sign(cred.UID, cred.SessionVersion)
}

func (p *JWTProvider) sign(uid string, sessionVersion int) (string, error) {
	now := p.now()
	claims := &Claims{
		UserID:         uid,
		SessionVersion: sessionVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "athleteconnect-api",
			Subject:   uid,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", utils.NewAppError(utils.ErrAuthProvider, "failed to sign token", err)
	}
	return signed, nil
}
