package models

import "time"

// User represents an account entity used for authentication and authorization.
// A user is created either by local registration (PasswordHash set) or by the
// first Google sign-in (ProviderID set). At least one of the two is present.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Email is the unique, required e-mail address of the user.
	Email string `json:"email"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// AvatarURL is an optional picture URL, filled from the identity provider.
	AvatarURL *string `json:"avatar_url,omitempty"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Nil for accounts created through the identity provider.
	PasswordHash *string `json:"-"`

	// ProviderID is the stable identifier assigned by the identity provider.
	// Unique when present.
	ProviderID *string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasPassword reports whether the account can sign in with a local password.
func (u User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Identity is the authenticated principal resolved from a request: either
// from a bearer credential or from a server-side session.
type Identity struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// ProviderProfile is the subset of an identity provider's user profile used
// to find or create the local account.
type ProviderProfile struct {
	ProviderID string
	Email      string
	Name       string
	AvatarURL  string
}
