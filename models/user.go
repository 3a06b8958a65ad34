package models

import "time"

// User is a storefront account. It doubles as the register/login request
// body; Password is only ever populated on inbound requests and is never
// serialized back out.
type User struct {
	// UserID is the internal unique identifier of the user.
	// Persistence-layer only, never exposed via JSON.
	UserID int64 `json:"-"`

	// Login is the unique login identifier used during authentication.
	Login string `json:"login"`

	// Name is the display name shown in the storefront UI.
	Name string `json:"name,omitempty"`

	// Password carries the plaintext password of a register/login request.
	// It is hashed at the service boundary and never stored or echoed.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash persisted for the account.
	// Never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the account creation timestamp.
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
