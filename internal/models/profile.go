package models

import "time"

// Profile kinds and account states.
const (
	ProfileTypePlayer = "player"
	ProfileTypeClub   = "club"

	AccountActive    = "active"
	AccountInactive  = "inactive"
	AccountSuspended = "suspended"
)

// AuthInfo mirrors the identity-provider view of a user.
type AuthInfo struct {
	UID         string    `bson:"uid" json:"uid" validate:"required"`
	FirstName   string    `bson:"firstName" json:"firstName" validate:"required"`
	LastName    string    `bson:"lastName" json:"lastName" validate:"required"`
	Username    string    `bson:"username,omitempty" json:"username,omitempty"`
	Email       string    `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Phone       string    `bson:"phone,omitempty" json:"phone,omitempty"`
	UserType    string    `bson:"userType,omitempty" json:"userType,omitempty"`
	SecureLogin bool      `bson:"secureLogin" json:"secureLogin"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	LastLogin   time.Time `bson:"lastLogin" json:"lastLogin"`
}

// Location is a point with optional human-readable address parts.
type Location struct {
	Long        float64 `bson:"long" json:"long"`
	Lat         float64 `bson:"lat" json:"lat"`
	FullAddress string  `bson:"fullAddress,omitempty" json:"fullAddress,omitempty"`
	Country     string  `bson:"country,omitempty" json:"country,omitempty"`
	AreaName    string  `bson:"areaName,omitempty" json:"areaName,omitempty"`
}

// SocialLinks keeps per-network profile URLs; the map form allows networks
// beyond the well-known ones.
type SocialLinks map[string]string

// BasicUserInfo is the shared, kind-independent part of a profile.
type BasicUserInfo struct {
	AuthInfo    AuthInfo    `bson:"authInfo" json:"authInfo" validate:"required"`
	Image       string      `bson:"image,omitempty" json:"image,omitempty"`
	Club        string      `bson:"club,omitempty" json:"club,omitempty"`
	Bio         string      `bson:"bio,omitempty" json:"bio,omitempty"`
	IsAgreed    bool        `bson:"isAgreed" json:"isAgreed"`
	Location    *Location   `bson:"location,omitempty" json:"location,omitempty"`
	Website     string      `bson:"website,omitempty" json:"website,omitempty"`
	SocialLinks SocialLinks `bson:"socialLinks,omitempty" json:"socialLinks,omitempty"`
}

// UserPreferences holds per-user app settings.
type UserPreferences struct {
	Theme         string              `bson:"theme,omitempty" json:"theme,omitempty" validate:"omitempty,oneof=light dark"`
	Notifications NotificationToggles `bson:"notifications" json:"notifications"`
	Language      string              `bson:"language,omitempty" json:"language,omitempty"`
}

// NotificationToggles enables or disables each delivery channel.
type NotificationToggles struct {
	Email bool `bson:"email" json:"email"`
	SMS   bool `bson:"sms" json:"sms"`
	Push  bool `bson:"push" json:"push"`
}

// PlayerProfile is the payload populated when ProfileType is "player".
type PlayerProfile struct {
	Club        string      `bson:"club,omitempty" json:"club,omitempty"`
	Sports      string      `bson:"sports" json:"sports"`
	Role        string      `bson:"role,omitempty" json:"role,omitempty" validate:"omitempty,oneof=player captain"`
	Positions   []string    `bson:"positions,omitempty" json:"positions,omitempty"`
	SocialLinks SocialLinks `bson:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	Images      []string    `bson:"images,omitempty" json:"images,omitempty"`
	Websites    []string    `bson:"websites,omitempty" json:"websites,omitempty"`
	Location    string      `bson:"location,omitempty" json:"location,omitempty"`
}

// ClubProfile is the payload populated when ProfileType is "club".
type ClubProfile struct {
	Name        string      `bson:"name" json:"name"`
	Sports      string      `bson:"sports" json:"sports"`
	Role        string      `bson:"role,omitempty" json:"role,omitempty" validate:"omitempty,oneof=owner manager staff coach"`
	SocialLinks SocialLinks `bson:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	Images      []string    `bson:"images,omitempty" json:"images,omitempty"`
	Websites    []string    `bson:"websites,omitempty" json:"websites,omitempty"`
	Location    string      `bson:"location,omitempty" json:"location,omitempty"`
}

// Profile is the persisted account record, keyed by the auth uid. Exactly
// one of Player/Club is populated, matching ProfileType; the cross-field
// rule is enforced by a struct-level validation.
type Profile struct {
	User          BasicUserInfo    `bson:"user" json:"user" validate:"required"`
	Verified      bool             `bson:"verified" json:"verified"`
	ProfileType   string           `bson:"profileType" json:"profileType" validate:"required,oneof=player club"`
	Player        *PlayerProfile   `bson:"player,omitempty" json:"player,omitempty"`
	Club          *ClubProfile     `bson:"club,omitempty" json:"club,omitempty"`
	AccountStatus string           `bson:"accountStatus,omitempty" json:"accountStatus,omitempty" validate:"omitempty,oneof=active inactive suspended"`
	LastUpdated   time.Time        `bson:"lastUpdated" json:"lastUpdated"`
	Preferences   *UserPreferences `bson:"preferences,omitempty" json:"preferences,omitempty"`
}

// UID returns the profile's identity, which doubles as its document id.
func (p *Profile) UID() string {
	return p.User.AuthInfo.UID
}

// DefaultProfile builds the profile persisted for a freshly registered
// user: unverified, inactive, light theme, every notification channel on,
// and the variant payload matching profileType.
func DefaultProfile(email, uid, username, firstName, lastName, profileType string, now time.Time) Profile {
	profile := Profile{
		Verified:      false,
		AccountStatus: AccountInactive,
		LastUpdated:   now,
		ProfileType:   profileType,
		Preferences: &UserPreferences{
			Theme: "light",
			Notifications: NotificationToggles{
				Email: true,
				SMS:   true,
				Push:  true,
			},
		},
		User: BasicUserInfo{
			AuthInfo: AuthInfo{
				UID:         uid,
				FirstName:   firstName,
				LastName:    lastName,
				Email:       email,
				Username:    username,
				SecureLogin: true,
				LastLogin:   now,
				CreatedAt:   now,
			},
			SocialLinks: SocialLinks{},
		},
	}

	if profileType == ProfileTypeClub {
		profile.Club = &ClubProfile{
			Role:        "manager",
			SocialLinks: SocialLinks{},
			Images:      []string{},
			Websites:    []string{},
		}
	} else {
		profile.Player = &PlayerProfile{
			Role:        "player",
			Positions:   []string{},
			SocialLinks: SocialLinks{},
			Images:      []string{},
			Websites:    []string{},
		}
	}

	return profile
}
