package services

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/RouqX7/AthleteConnect/internal/auth"
	"github.com/RouqX7/AthleteConnect/internal/database"
	"github.com/RouqX7/AthleteConnect/internal/models"
	"github.com/RouqX7/AthleteConnect/internal/pagination"
	"github.com/RouqX7/AthleteConnect/internal/response"
	"github.com/RouqX7/AthleteConnect/internal/validation"
)

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Username    string `json:"username" validate:"required"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	ProfileType string `json:"profileType" validate:"required,oneof=player club"`
}

// LoginInput is the payload for sign-in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileService owns accounts: the identity provider holds credentials
// and tokens, the profile store holds the account document keyed by uid.
type ProfileService struct {
	provider auth.Provider
	profiles database.PagedStore[models.Profile]
	validate *validation.Validator
	logger   *zap.Logger
	now      func() time.Time
}

func NewProfileService(provider auth.Provider, profiles database.PagedStore[models.Profile], validate *validation.Validator, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		provider: provider,
		profiles: profiles,
		validate: validate,
		logger:   logger.With(zap.String("entity", "profile")),
		now:      time.Now,
	}
}

// Register creates the identity-provider user and persists the default
// profile document for it, then returns the signed session.
func (s *ProfileService) Register(ctx context.Context, input RegisterInput) response.Response[auth.Session] {
	return Run(ctx, s.validate, &input,
		func(ctx context.Context, in *RegisterInput) (auth.Session, error) {
			session, err := s.provider.Register(ctx, in.Email, in.Password)
			if err != nil {
				return auth.Session{}, err
			}

			profile := models.DefaultProfile(in.Email, session.UID, in.Username, in.FirstName, in.LastName, in.ProfileType, s.now().UTC())
			if _, err := s.profiles.Add(ctx, session.UID, &profile); err != nil {
				// The credential exists but the document does not; roll the
				// user back so register stays all-or-nothing.
				if delErr := s.provider.DeleteUser(ctx, session.UID); delErr != nil {
					s.logger.Error("failed to roll back user after profile write failure",
						zap.String("uid", session.UID), zap.Error(delErr))
				}
				return auth.Session{}, err
			}

			s.logger.Info("profile registered", zap.String("uid", session.UID))
			return session, nil
		},
		"user registered successfully",
		"failed to register user",
	)
}

func (s *ProfileService) Login(ctx context.Context, input LoginInput) response.Response[auth.Session] {
	return Run(ctx, s.validate, &input,
		func(ctx context.Context, in *LoginInput) (auth.Session, error) {
			return s.provider.SignIn(ctx, in.Email, in.Password)
		},
		"user logged in successfully",
		"failed to log in",
	)
}

// Logout revokes every outstanding session for the token's user.
func (s *ProfileService) Logout(ctx context.Context, token string) response.Response[string] {
	if token == "" {
		return response.Fail[string](http.StatusBadRequest, "missing token")
	}

	uid, err := s.provider.VerifyToken(ctx, token)
	if err != nil {
		return response.FromError[string](err, "failed to log out")
	}
	if err := s.provider.RevokeSessions(ctx, uid); err != nil {
		return response.FromError[string](err, "failed to log out")
	}
	return response.Ok(http.StatusOK, "user logged out successfully", uid)
}

// GetUser resolves a profile by uid, or by token when no uid is given.
func (s *ProfileService) GetUser(ctx context.Context, token, uid string) response.Response[models.Profile] {
	if uid == "" {
		if token == "" {
			return response.Fail[models.Profile](http.StatusBadRequest, "missing user id or token")
		}
		resolved, err := s.provider.VerifyToken(ctx, token)
		if err != nil {
			return response.FromError[models.Profile](err, "failed to fetch user")
		}
		uid = resolved
	}

	profile, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return response.FromError[models.Profile](err, "failed to fetch user")
	}
	return response.Ok(http.StatusOK, "user fetched successfully", *profile)
}

// AddUser persists a caller-supplied profile document keyed by its uid.
func (s *ProfileService) AddUser(ctx context.Context, profile models.Profile) response.Response[models.Profile] {
	if profile.UID() == "" {
		return response.Fail[models.Profile](http.StatusBadRequest, "missing profile uid")
	}
	profile.LastUpdated = s.now().UTC()

	return Run(ctx, s.validate, &profile,
		func(ctx context.Context, p *models.Profile) (models.Profile, error) {
			if _, err := s.profiles.Add(ctx, p.UID(), p); err != nil {
				return *p, err
			}
			return *p, nil
		},
		"user added successfully",
		"failed to add user",
	)
}

// EditUser merges the supplied fields into the stored profile, with the
// same strip-validate-persist contract as entity updates.
func (s *ProfileService) EditUser(ctx context.Context, uid string, input map[string]any) response.Response[models.Profile] {
	if uid == "" {
		return response.Fail[models.Profile](http.StatusBadRequest, "missing user id")
	}

	partial := validation.StripUnknown[models.Profile](input)
	if len(partial) == 0 {
		return response.Fail[models.Profile](http.StatusBadRequest, "no updatable fields supplied")
	}

	current, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return response.FromError[models.Profile](err, "failed to update user")
	}
	merged, err := mergeRecord(current, partial)
	if err != nil {
		return response.Fail[models.Profile](http.StatusBadRequest, "failed to update user: "+err.Error())
	}
	if violations := s.validate.Struct(*merged); len(violations) > 0 {
		return response.Fail[models.Profile](http.StatusBadRequest, "failed to update user: "+validation.Aggregate(violations))
	}

	partial["lastUpdated"] = s.now().UTC()
	if err := s.profiles.Update(ctx, uid, partial); err != nil {
		return response.FromError[models.Profile](err, "failed to update user")
	}

	updated, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return response.FromError[models.Profile](err, "failed to fetch updated user")
	}
	return response.Ok(http.StatusOK, "user updated successfully", *updated)
}

// DeleteUser removes both the identity-provider user and the profile
// document.
func (s *ProfileService) DeleteUser(ctx context.Context, uid string) response.Response[string] {
	if uid == "" {
		return response.Fail[string](http.StatusBadRequest, "missing user id")
	}

	if err := s.provider.DeleteUser(ctx, uid); err != nil {
		return response.FromError[string](err, "failed to delete user")
	}
	if err := s.profiles.Delete(ctx, uid); err != nil {
		return response.FromError[string](err, "failed to delete user")
	}
	s.logger.Info("profile deleted", zap.String("uid", uid))
	return response.Ok(http.StatusOK, "user deleted successfully", uid)
}

// ListUsers returns one page of profiles ordered by uid.
func (s *ProfileService) ListUsers(ctx context.Context, req pagination.PageRequest) response.Response[pagination.Page[*models.Profile]] {
	if req.Limit <= 0 {
		req.Limit = pagination.DefaultLimit
	}

	items, total, err := s.profiles.ListPage(ctx, req)
	if err != nil {
		return response.FromError[pagination.Page[*models.Profile]](err, "failed to list users")
	}

	page := pagination.Build(items, total, req, func(p *models.Profile) string { return p.UID() })
	return response.Ok(http.StatusOK, "users fetched successfully", page)
}

// CustomToken issues a fresh token for an existing uid.
func (s *ProfileService) CustomToken(ctx context.Context, uid string) response.Response[string] {
	if uid == "" {
		return response.Fail[string](http.StatusBadRequest, "missing user id")
	}

	token, err := s.provider.CustomToken(ctx, uid)
	if err != nil {
		return response.FromError[string](err, "failed to generate token")
	}
	return response.Ok(http.StatusOK, "token generated successfully", token)
}
