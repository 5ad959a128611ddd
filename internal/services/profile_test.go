package services

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RouqX7/AthleteConnect/internal/auth"
	"github.com/RouqX7/AthleteConnect/internal/models"
	"github.com/RouqX7/AthleteConnect/internal/pagination"
	"github.com/RouqX7/AthleteConnect/internal/utils"
	"github.com/RouqX7/AthleteConnect/internal/validation"
)

// stubProvider fakes the identity provider: tokens are "tok-<uid>" and
// uids are assigned sequentially.
type stubProvider struct {
	next    int
	byEmail map[string]string
	revoked map[string]int
	deleted map[string]bool
}

func newStubProvider() *stubProvider {
	return &stubProvider{
		byEmail: map[string]string{},
		revoked: map[string]int{},
		deleted: map[string]bool{},
	}
}

func (s *stubProvider) Register(ctx context.Context, email, password string) (auth.Session, error) {
	if _, ok := s.byEmail[email]; ok {
		return auth.Session{}, utils.NewAppError(utils.ErrDuplicate, "user already exists", nil)
	}
	s.next++
	uid := fmt.Sprintf("uid-%d", s.next)
	s.byEmail[email] = uid
	return auth.Session{UID: uid, Token: "tok-" + uid}, nil
}

func (s *stubProvider) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	uid, ok := s.byEmail[email]
	if !ok {
		return auth.Session{}, utils.NewAppError(utils.ErrInvalidCredentials, "invalid credentials", nil)
	}
	return auth.Session{UID: uid, Token: "tok-" + uid}, nil
}

func (s *stubProvider) VerifyToken(ctx context.Context, token string) (string, error) {
	if len(token) > 4 && token[:4] == "tok-" {
		return token[4:], nil
	}
	return "", utils.NewAppError(utils.ErrInvalidToken, "invalid token", nil)
}

func (s *stubProvider) RevokeSessions(ctx context.Context, uid string) error {
	s.revoked[uid]++
	return nil
}

func (s *stubProvider) DeleteUser(ctx context.Context, uid string) error {
	s.deleted[uid] = true
	return nil
}

func (s *stubProvider) CustomToken(ctx context.Context, uid string) (string, error) {
	return "tok-" + uid, nil
}

func newTestProfileService(t *testing.T) (*ProfileService, *stubProvider, *memStore[models.Profile]) {
	t.Helper()
	provider := newStubProvider()
	store := newMemStore[models.Profile]("user")
	svc := NewProfileService(provider, store, validation.New(), zap.NewNop())
	return svc, provider, store
}

func validRegisterInput(email string) RegisterInput {
	return RegisterInput{
		Email:       email,
		Password:    "correct-horse",
		Username:    "alice",
		FirstName:   "Alice",
		LastName:    "Anders",
		ProfileType: models.ProfileTypePlayer,
	}
}

func TestRegisterPersistsDefaultProfile(t *testing.T) {
	svc, _, store := newTestProfileService(t)

	resp := svc.Register(context.Background(), validRegisterInput("a@b.com"))
	require.True(t, resp.Success, resp.Message)
	require.NotNil(t, resp.Data)
	assert.NotEmpty(t, resp.Data.Token)

	profile, err := store.Get(context.Background(), resp.Data.UID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", profile.User.AuthInfo.Email)
	assert.Equal(t, models.ProfileTypePlayer, profile.ProfileType)
	assert.Equal(t, models.AccountInactive, profile.AccountStatus)
	assert.False(t, profile.Verified)
	require.NotNil(t, profile.Player)
	assert.Nil(t, profile.Club)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	svc, provider, store := newTestProfileService(t)

	input := validRegisterInput("not-an-email")
	input.Password = "short"

	resp := svc.Register(context.Background(), input)
	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Contains(t, resp.Message, "email")
	assert.Contains(t, resp.Message, "password")
	assert.Empty(t, provider.byEmail)
	assert.Equal(t, 0, store.len())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestProfileService(t)

	require.True(t, svc.Register(context.Background(), validRegisterInput("a@b.com")).Success)

	resp := svc.Register(context.Background(), validRegisterInput("a@b.com"))
	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusConflict, resp.Status)
}

func TestLoginAndLogout(t *testing.T) {
	svc, provider, _ := newTestProfileService(t)

	registered := svc.Register(context.Background(), validRegisterInput("a@b.com"))
	require.True(t, registered.Success)

	login := svc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "correct-horse"})
	require.True(t, login.Success, login.Message)
	assert.Equal(t, registered.Data.UID, login.Data.UID)

	logout := svc.Logout(context.Background(), login.Data.Token)
	require.True(t, logout.Success, logout.Message)
	assert.Equal(t, 1, provider.revoked[registered.Data.UID])
}

func TestGetUserByTokenFallback(t *testing.T) {
	svc, _, _ := newTestProfileService(t)

	registered := svc.Register(context.Background(), validRegisterInput("a@b.com"))
	require.True(t, registered.Success)

	resp := svc.GetUser(context.Background(), registered.Data.Token, "")
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, registered.Data.UID, resp.Data.UID())
}

func TestEditUserEnumRejectionLeavesProfileUnchanged(t *testing.T) {
	svc, _, store := newTestProfileService(t)

	registered := svc.Register(context.Background(), validRegisterInput("a@b.com"))
	require.True(t, registered.Success)
	uid := registered.Data.UID

	resp := svc.EditUser(context.Background(), uid, map[string]any{"accountStatus": "frozen"})
	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	profile, err := store.Get(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, models.AccountInactive, profile.AccountStatus)
}

func TestEditUserRefreshesLastUpdated(t *testing.T) {
	svc, _, store := newTestProfileService(t)

	registered := svc.Register(context.Background(), validRegisterInput("a@b.com"))
	require.True(t, registered.Success)
	uid := registered.Data.UID

	before, err := store.Get(context.Background(), uid)
	require.NoError(t, err)

	resp := svc.EditUser(context.Background(), uid, map[string]any{"verified": true})
	require.True(t, resp.Success, resp.Message)
	assert.True(t, resp.Data.Verified)
	assert.False(t, resp.Data.LastUpdated.Before(before.LastUpdated))
}

func TestDeleteUserRemovesProviderAndDocument(t *testing.T) {
	svc, provider, store := newTestProfileService(t)

	registered := svc.Register(context.Background(), validRegisterInput("a@b.com"))
	require.True(t, registered.Success)
	uid := registered.Data.UID

	resp := svc.DeleteUser(context.Background(), uid)
	require.True(t, resp.Success, resp.Message)
	assert.True(t, provider.deleted[uid])
	assert.Equal(t, 0, store.len())
}

func TestListUsersPaginates(t *testing.T) {
	svc, _, store := newTestProfileService(t)

	now := time.Now().UTC()
	for i := 0; i < 25; i++ {
		uid := fmt.Sprintf("uid-%03d", i)
		profile := models.DefaultProfile(fmt.Sprintf("u%d@b.com", i), uid, "u", "First", "Last", models.ProfileTypePlayer, now)
		_, err := store.Add(context.Background(), uid, &profile)
		require.NoError(t, err)
	}

	first := svc.ListUsers(context.Background(), pagination.PageRequest{Limit: 20, Order: pagination.OrderAsc})
	require.True(t, first.Success, first.Message)
	assert.Equal(t, 20, first.Data.Count)
	assert.Equal(t, int64(25), first.Data.Total)
	assert.True(t, first.Data.HasNextPage)
	require.NotNil(t, first.Data.NextPageOffset)

	second := svc.ListUsers(context.Background(), pagination.PageRequest{
		Limit:  20,
		Offset: first.Data.NextPageOffset,
		Order:  pagination.OrderAsc,
	})
	require.True(t, second.Success, second.Message)
	assert.Equal(t, 5, second.Data.Count)
	assert.False(t, second.Data.HasNextPage)

	cursor := svc.ListUsers(context.Background(), pagination.PageRequest{
		Limit:  20,
		Cursor: *first.Data.NextPageToken,
		Order:  pagination.OrderAsc,
	})
	require.True(t, cursor.Success, cursor.Message)
	assert.Equal(t, 5, cursor.Data.Count)
}

func TestCustomToken(t *testing.T) {
	svc, _, _ := newTestProfileService(t)

	registered := svc.Register(context.Background(), validRegisterInput("a@b.com"))
	require.True(t, registered.Success)

	resp := svc.CustomToken(context.Background(), registered.Data.UID)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, "tok-"+registered.Data.UID, *resp.Data)
}
