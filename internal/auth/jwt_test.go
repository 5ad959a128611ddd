package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RouqX7/AthleteConnect/internal/utils"
)

// credStore is a minimal in-memory Store[Credential] for provider tests.
type credStore struct {
	records map[string]*Credential
}

func newCredStore() *credStore {
	return &credStore{records: map[string]*Credential{}}
}

func (s *credStore) Add(ctx context.Context, id string, record *Credential) (string, error) {
	cp := *record
	s.records[id] = &cp
	return id, nil
}

func (s *credStore) Get(ctx context.Context, id string) (*Credential, error) {
	record, ok := s.records[id]
	if !ok {
		return nil, utils.NewNotFoundError("credential")
	}
	cp := *record
	return &cp, nil
}

func (s *credStore) GetAll(ctx context.Context) ([]*Credential, error) {
	out := []*Credential{}
	for _, record := range s.records {
		cp := *record
		out = append(out, &cp)
	}
	return out, nil
}

func (s *credStore) GetByField(ctx context.Context, field, value string) ([]*Credential, error) {
	out := []*Credential{}
	for _, record := range s.records {
		if field == "email" && record.Email == value {
			cp := *record
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *credStore) Update(ctx context.Context, id string, partial map[string]any) error {
	record, ok := s.records[id]
	if !ok {
		return utils.NewNotFoundError("credential")
	}
	buf, err := json.Marshal(record)
	if err != nil {
		return err
	}
	doc := map[string]any{}
	if err := json.Unmarshal(buf, &doc); err != nil {
		return err
	}
	for k, v := range partial {
		doc[k] = v
	}
	buf, err = json.Marshal(doc)
	if err != nil {
		return err
	}
	var merged Credential
	if err := json.Unmarshal(buf, &merged); err != nil {
		return err
	}
	s.records[id] = &merged
	return nil
}

func (s *credStore) Delete(ctx context.Context, id string) error {
	delete(s.records, id)
	return nil
}

func newTestProvider(t *testing.T) (*JWTProvider, *credStore) {
	t.Helper()
	store := newCredStore()
	return NewJWTProvider(store, "test-secret", time.Hour, zap.NewNop()), store
}

func TestRegisterVerifyRoundTrip(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()

	session, err := provider.Register(ctx, "a@b.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, session.UID)
	assert.NotEmpty(t, session.Token)

	uid, err := provider.VerifyToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UID, uid)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()

	_, err := provider.Register(ctx, "a@b.com", "correct-horse")
	require.NoError(t, err)

	_, err = provider.Register(ctx, "a@b.com", "another-pass")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrDuplicate))
}

func TestSignInChecksPassword(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()

	registered, err := provider.Register(ctx, "a@b.com", "correct-horse")
	require.NoError(t, err)

	session, err := provider.SignIn(ctx, "a@b.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, registered.UID, session.UID)

	_, err = provider.SignIn(ctx, "a@b.com", "wrong")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidCredentials))

	_, err = provider.SignIn(ctx, "nobody@b.com", "whatever")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidCredentials))
}

func TestRevokeInvalidatesOutstandingTokens(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()

	session, err := provider.Register(ctx, "a@b.com", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, provider.RevokeSessions(ctx, session.UID))

	_, err = provider.VerifyToken(ctx, session.Token)
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidToken))

	// A fresh sign-in works and carries the new session version.
	fresh, err := provider.SignIn(ctx, "a@b.com", "correct-horse")
	require.NoError(t, err)
	uid, err := provider.VerifyToken(ctx, fresh.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UID, uid)
}

func TestVerifyRejectsGarbageAndDeletedUsers(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()

	_, err := provider.VerifyToken(ctx, "not-a-jwt")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidToken))

	session, err := provider.Register(ctx, "a@b.com", "correct-horse")
	require.NoError(t, err)
	require.NoError(t, provider.DeleteUser(ctx, session.UID))

	_, err = provider.VerifyToken(ctx, session.Token)
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidToken))
}

func TestCustomTokenForExistingUser(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()

	session, err := provider.Register(ctx, "a@b.com", "correct-horse")
	require.NoError(t, err)

	token, err := provider.CustomToken(ctx, session.UID)
	require.NoError(t, err)

	uid, err := provider.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, session.UID, uid)

	_, err = provider.CustomToken(ctx, "ghost")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}
